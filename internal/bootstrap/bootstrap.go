package bootstrap

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/akgec/studentreg/internal/app/captcha"
	appControllers "github.com/akgec/studentreg/internal/app/controllers"
	"github.com/akgec/studentreg/internal/app/models"
	"github.com/akgec/studentreg/internal/app/registrar"
	appRoutes "github.com/akgec/studentreg/internal/app/routes"
	appServices "github.com/akgec/studentreg/internal/app/services"
	"github.com/akgec/studentreg/internal/config"
	appMiddleware "github.com/akgec/studentreg/internal/middleware"
	"github.com/akgec/studentreg/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Registrar        *registrar.Client
	Sessions         *appServices.SessionStore
	FormController   *appControllers.FormController
	HealthController *appControllers.HealthController
	RateLimiter      *appMiddleware.RateLimiter // nil when disabled
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env, configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("No .env file loaded")
	}

	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:     logLevel,
		Pretty:    prettyLog,
		File:      cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
	})

	lgr := logger.Default()
	lgr.Info().
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Str("logFile", cfg.Logging.File).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies initializes the registration client, session store and controllers.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Registrar = registrar.NewClient(registrar.Config{
		Endpoint:  cfg.Registration.Endpoint,
		Timeout:   config.ParseDuration(cfg.Registration.Timeout, 30*time.Second),
		UserAgent: cfg.Registration.UserAgent,
	}, lgr)

	displayTimeout := config.ParseDuration(cfg.Submission.DisplayTimeout, appServices.DefaultDisplayTimeout)
	sessionLogger := lgr.With().Str("component", "submission").Logger()

	var err error
	deps.Sessions, err = appServices.NewSessionStore(cfg.Session.MaxSessions, func() *appServices.SubmissionController {
		return appServices.NewSubmissionController(appServices.SubmissionConfig{
			Schema:         models.RegistrationSchema,
			DisplayTimeout: displayTimeout,
			Logger:         sessionLogger,
		}, deps.Registrar, captcha.NewWidget())
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create session store")
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	deps.FormController = appControllers.NewFormController(
		deps.Sessions,
		models.RegistrationSchema,
		appControllers.CookieConfig{
			Name:   cfg.Session.CookieName,
			MaxAge: config.ParseDuration(cfg.Session.CookieMaxAge, 2*time.Hour),
			Secure: cfg.Session.CookieSecure,
		},
		lgr,
	)
	deps.HealthController = appControllers.NewHealthController(deps.Sessions)

	if cfg.RateLimit.Enabled {
		deps.RateLimiter = appMiddleware.NewRateLimiter(appMiddleware.RateLimitConfig{
			Requests: cfg.RateLimit.Requests,
			Interval: config.ParseDuration(cfg.RateLimit.Interval, time.Minute),
			Burst:    cfg.RateLimit.Burst,
		})
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router,
		deps.FormController,
		deps.HealthController,
		deps.RateLimiter,
	)

	return router
}
