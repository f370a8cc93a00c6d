package handler

import (
	"context"
	"net/http"
	"time"

	"gihanotis/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// HealthHandler answers monitoring probes with database connectivity status.
type HealthHandler interface {
	Check(c *gin.Context)
}

type healthHandler struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sqlx.DB, logger *zap.Logger) HealthHandler {
	return &healthHandler{
		db:     db,
		logger: logger,
	}
}

func (h *healthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	database := "connected"
	code := http.StatusOK

	if err := repository.HealthCheck(ctx, h.db); err != nil {
		h.logger.Error("Health check failed", zap.Error(err))
		status = "degraded"
		database = "disconnected"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": database,
	})
}
