package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akgec/studentreg/internal/app/models/dto"
	"github.com/akgec/studentreg/internal/app/services"
)

// HealthController reports liveness
type HealthController struct {
	sessions  *services.SessionStore
	startedAt time.Time
}

// NewHealthController creates a new HealthController
func NewHealthController(sessions *services.SessionStore) *HealthController {
	return &HealthController{sessions: sessions, startedAt: time.Now()}
}

// Ping answers with pong
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
}

// Health reports uptime and live session count
func (c *HealthController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"uptime":   time.Since(c.startedAt).Round(time.Second).String(),
		"sessions": c.sessions.Len(),
	}, "ok"))
}
