package handler

import (
	"errors"
	"net/http"
	"time"

	"gihanotis/internal/config"
	"gihanotis/internal/middleware"
	"gihanotis/internal/models"
	"gihanotis/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler interface {
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Status(c *gin.Context)
}

type authHandler struct {
	auth   service.AuthService
	cfg    *config.Config
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth service.AuthService, cfg *config.Config, logger *zap.Logger) AuthHandler {
	return &authHandler{
		auth:   auth,
		cfg:    cfg,
		logger: logger,
	}
}

// Login validates admin credentials and sets the session cookie.
func (h *authHandler) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		return
	}

	token, expiresAt, err := h.auth.Login(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.Warn("Failed login attempt", zap.String("username", input.Username))
		}
		abortWithError(c, h.logger, err)
		return
	}

	h.setSessionCookie(c, token, time.Until(expiresAt))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful"})
}

// Logout clears the session cookie.
func (h *authHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -time.Hour)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}

// Status reports whether the caller holds a valid admin session.
func (h *authHandler) Status(c *gin.Context) {
	authenticated := false
	var username *string

	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie != "" {
		if claims, err := h.auth.ParseToken(cookie); err == nil {
			authenticated = true
			username = &claims.Username
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": authenticated,
		"username":      username,
	})
}

func (h *authHandler) setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	// Secure cookies require HTTPS, which production is assumed to have.
	c.SetCookie(middleware.SessionCookie, token, int(ttl.Seconds()), "/", "", h.cfg.IsProduction(), true)
}
