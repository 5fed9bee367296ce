package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/product-curator/internal/blacklist"
	"github.com/jonesrussell/product-curator/internal/filter"
	"github.com/jonesrussell/product-curator/internal/logger"
	"github.com/jonesrussell/product-curator/internal/models"
	"github.com/jonesrussell/product-curator/internal/session"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

type ProductHandler struct {
	sessions  *session.Store
	blacklist *blacklist.Service
	logger    logger.Logger
}

func NewProductHandler(sessions *session.Store, bl *blacklist.Service, log logger.Logger) *ProductHandler {
	return &ProductHandler{
		sessions:  sessions,
		blacklist: bl,
		logger:    log,
	}
}

// List returns a page of the session's current filtered view.
func (h *ProductHandler) List(c *gin.Context) {
	s, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	view := s.View()
	page, pageSize := parsePagination(c)

	start := (page - 1) * pageSize
	if start > len(view) {
		start = len(view)
	}
	end := start + pageSize
	if end > len(view) {
		end = len(view)
	}

	c.JSON(http.StatusOK, gin.H{
		"products": view[start:end],
		"total":    len(view),
		"page":     page,
		"pageSize": pageSize,
		"stats":    filter.ComputeStats(view),
	})
}

// Filter applies new criteria to the session's collection. The
// blacklist is snapshotted once per pass via a batch lookup over the
// collection's sub-categories.
func (h *ProductHandler) Filter(c *gin.Context) {
	s, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var criteria models.FilterCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		h.logger.Debug("Invalid filter criteria",
			logger.String("session_id", s.ID),
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter criteria", "details": err.Error()})
		return
	}

	snapshot := h.blacklist.GetBatchStatus(c.Request.Context(), s.SubCategories())
	filtered, stats := s.ApplyFilter(criteria, snapshot)

	h.logger.Info("Filter applied",
		logger.String("session_id", s.ID),
		logger.Int("matched", len(filtered)),
		logger.Int("total", s.Count()),
	)

	c.JSON(http.StatusOK, gin.H{
		"products": filtered,
		"total":    len(filtered),
		"stats":    stats,
	})
}

func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
