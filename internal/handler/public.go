package handler

import (
	"net/http"

	"gihanotis/internal/models"
	"gihanotis/internal/notifier"
	"gihanotis/internal/repository"
	"gihanotis/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PublicHandler serves the anonymous public surface: browsing open requests
// and submitting responses against them.
type PublicHandler interface {
	ListRequests(c *gin.Context)
	GetRequest(c *gin.Context)
	CreateResponse(c *gin.Context)
}

type publicHandler struct {
	requestRepo  repository.RequestRepository
	responseRepo repository.ResponseRepository
	telegram     *notifier.Telegram
	logger       *zap.Logger
}

// NewPublicHandler creates a new public handler.
func NewPublicHandler(requestRepo repository.RequestRepository, responseRepo repository.ResponseRepository, telegram *notifier.Telegram, logger *zap.Logger) PublicHandler {
	return &publicHandler{
		requestRepo:  requestRepo,
		responseRepo: responseRepo,
		telegram:     telegram,
		logger:       logger,
	}
}

// ListRequests returns open requests only, paginated.
func (h *publicHandler) ListRequests(c *gin.Context) {
	page, perPage, err := validation.ValidatePagination(c.Query("page"), c.Query("per_page"))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	requests, err := h.requestRepo.ListOpen(c.Request.Context(), perPage, (page-1)*perPage)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	total, err := h.requestRepo.CountOpen(c.Request.Context())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       requests,
		"pagination": paginationMeta(page, perPage, total),
	})
}

// GetRequest returns a single open request. Closed requests are
// indistinguishable from missing ones on the public surface.
func (h *publicHandler) GetRequest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	req, err := h.requestRepo.GetOpenByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	if req == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found or closed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": req})
}

// CreateResponse submits an offer against an open request.
func (h *publicHandler) CreateResponse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input models.CreateResponseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if input.QuantityAvailable == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: quantity_available"})
		return
	}
	if input.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: location"})
		return
	}

	if err := validation.ValidateCreateResponse(&input); err != nil {
		h.logger.Warn("Validation error in create response", zap.Int64("request_id", id), zap.Error(err))
		abortWithError(c, h.logger, err)
		return
	}

	resp, err := h.responseRepo.Create(c.Request.Context(), id, &input)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found or closed"})
		return
	}

	h.logger.Info("Response created",
		zap.Int64("id", resp.ID),
		zap.Int64("request_id", id),
		zap.Int("quantity", resp.QuantityAvailable),
	)
	h.telegram.ResponseSubmitted(id, resp.QuantityAvailable, resp.Location)

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": resp})
}
