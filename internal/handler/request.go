package handler

import (
	"net/http"

	"gihanotis/internal/models"
	"gihanotis/internal/repository"
	"gihanotis/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestHandler serves the admin CRUD surface for requests.
type RequestHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type requestHandler struct {
	requestRepo  repository.RequestRepository
	responseRepo repository.ResponseRepository
	logger       *zap.Logger
}

// NewRequestHandler creates a new request handler.
func NewRequestHandler(requestRepo repository.RequestRepository, responseRepo repository.ResponseRepository, logger *zap.Logger) RequestHandler {
	return &requestHandler{
		requestRepo:  requestRepo,
		responseRepo: responseRepo,
		logger:       logger,
	}
}

// List returns all requests with response counts, paginated.
func (h *requestHandler) List(c *gin.Context) {
	page, perPage, err := validation.ValidatePagination(c.Query("page"), c.Query("per_page"))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	requests, err := h.requestRepo.List(c.Request.Context(), perPage, (page-1)*perPage)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	total, err := h.requestRepo.Count(c.Request.Context())
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

// Create inserts a new request.
func (h *requestHandler) Create(c *gin.Context) {
	var input models.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if input.ItemName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: item_name"})
		return
	}
	if input.QuantityNeeded == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: quantity_needed"})
		return
	}
	if input.Unit == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: unit"})
		return
	}

	if err := validation.ValidateCreateRequest(&input); err != nil {
		h.logger.Warn("Validation error in create request", zap.Error(err))
		abortWithError(c, h.logger, err)
		return
	}

	req, err := h.requestRepo.Create(c.Request.Context(), &input)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	h.logger.Info("Request created",
		zap.Int64("id", req.ID),
		zap.String("item", req.ItemName),
		zap.String("by", c.GetString("username")),
	)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": req})
}

// Get returns a single request with all its responses.
func (h *requestHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	req, err := h.requestRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	if req == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	responses, err := h.responseRepo.ListByRequest(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    models.RequestDetail{Request: *req, Responses: responses},
	})
}

// Update applies a partial patch to a request.
func (h *requestHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch models.UpdateRequestPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := validation.ValidateUpdateRequest(&patch); err != nil {
		h.logger.Warn("Validation error in update request", zap.Int64("id", id), zap.Error(err))
		abortWithError(c, h.logger, err)
		return
	}

	req, err := h.requestRepo.Update(c.Request.Context(), id, &patch)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	if req == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": req})
}

// Delete removes a request and, by cascade, its responses.
func (h *requestHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	found, err := h.requestRepo.Delete(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	h.logger.Info("Request deleted", zap.Int64("id", id), zap.String("by", c.GetString("username")))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Request deleted"})
}
