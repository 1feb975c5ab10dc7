package main

import (
	"os"

	"github.com/akgec/studentreg/internal/pkg/logger" // Still needed for initial error logging
	"github.com/akgec/studentreg/internal/server"
)

// @title Student Registration API
// @version 1.0
// @description Form session API for the AKGEC student registration form

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
