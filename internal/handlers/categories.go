package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/product-curator/internal/blacklist"
	"github.com/jonesrussell/product-curator/internal/events"
	"github.com/jonesrussell/product-curator/internal/logger"
	"github.com/jonesrussell/product-curator/internal/models"
)

type CategoryHandler struct {
	blacklist *blacklist.Service
	publisher *events.Publisher
	logger    logger.Logger
}

func NewCategoryHandler(bl *blacklist.Service, publisher *events.Publisher, log logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		blacklist: bl,
		publisher: publisher,
		logger:    log,
	}
}

// List returns every known category with its blacklist flag.
func (h *CategoryHandler) List(c *gin.Context) {
	categories := h.blacklist.ListAllWithStatus(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// ListBlacklisted returns the ids of all blacklisted categories.
func (h *CategoryHandler) ListBlacklisted(c *gin.Context) {
	ids := h.blacklist.ListBlacklisted(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"categories": ids,
		"count":      len(ids),
	})
}

type categoryStatusRequest struct {
	IsBlacklisted bool `json:"isBlacklisted"`
}

// Update sets one category's blacklist flag.
func (h *CategoryHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req categoryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid request body",
			logger.String("category_id", id),
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !h.blacklist.SetStatus(c.Request.Context(), id, req.IsBlacklisted) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	h.publisher.PublishAsync(events.NewCategoryEvent(id, req.IsBlacklisted))

	c.JSON(http.StatusOK, models.CategoryStatus{
		ID:            id,
		IsBlacklisted: req.IsBlacklisted,
	})
}

type batchUpdateRequest struct {
	Updates []models.CategoryUpdate `json:"updates" binding:"required"`
}

// BatchUpdate applies a set of blacklist flag changes and reports the
// success and failure tallies.
func (h *CategoryHandler) BatchUpdate(c *gin.Context) {
	var req batchUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid request body",
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result := h.blacklist.BatchSetStatus(c.Request.Context(), req.Updates)

	for _, u := range req.Updates {
		h.publisher.PublishAsync(events.NewCategoryEvent(u.ID, u.IsBlacklisted))
	}

	h.logger.Info("Batch category update",
		logger.Int("success", result.Success),
		logger.Int("failed", result.Failed),
	)

	c.JSON(http.StatusOK, result)
}
