package handler

import (
	"net/http"

	"gihanotis/internal/notifier"
	"gihanotis/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ResponseHandler serves the admin accept/unaccept actions.
type ResponseHandler interface {
	Accept(c *gin.Context)
	Unaccept(c *gin.Context)
}

type responseHandler struct {
	reconcile service.ReconcileService
	telegram  *notifier.Telegram
	logger    *zap.Logger
}

// NewResponseHandler creates a new response handler.
func NewResponseHandler(reconcile service.ReconcileService, telegram *notifier.Telegram, logger *zap.Logger) ResponseHandler {
	return &responseHandler{
		reconcile: reconcile,
		telegram:  telegram,
		logger:    logger,
	}
}

// Accept marks a response as accepted and decrements the request's need.
func (h *responseHandler) Accept(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.reconcile.Accept(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	if result.NewQuantityNeeded == 0 {
		h.telegram.RequestFulfilled(result.RequestID)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"message":             "Response accepted",
		"new_quantity_needed": result.NewQuantityNeeded,
	})
}

// Unaccept reverses an accept, restoring the request's need.
func (h *responseHandler) Unaccept(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.reconcile.Unaccept(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"message":             "Response unaccepted",
		"new_quantity_needed": result.NewQuantityNeeded,
	})
}
