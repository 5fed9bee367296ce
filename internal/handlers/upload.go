package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/product-curator/internal/importer"
	"github.com/jonesrussell/product-curator/internal/logger"
	"github.com/jonesrussell/product-curator/internal/session"
)

type UploadHandler struct {
	sessions *session.Store
	logger   logger.Logger
}

func NewUploadHandler(sessions *session.Store, log logger.Logger) *UploadHandler {
	return &UploadHandler{
		sessions: sessions,
		logger:   log,
	}
}

// Create accepts a multipart .xlsx export, parses it into product
// records and opens a session over the collection.
func (h *UploadHandler) Create(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.logger.Debug("Missing upload file",
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file field", "details": err.Error()})
		return
	}

	if err := importer.ValidateFile(fileHeader.Filename, fileHeader.Size); err != nil {
		h.logger.Debug("Rejected upload",
			logger.String("filename", fileHeader.Filename),
			logger.Int("size", int(fileHeader.Size)),
			logger.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open upload",
			logger.String("filename", fileHeader.Filename),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	products, err := importer.Parse(file, nil)
	if err != nil {
		h.logger.Warn("Failed to parse workbook",
			logger.String("filename", fileHeader.Filename),
			logger.Error(err),
		)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	s := h.sessions.Create(products)

	h.logger.Info("Upload ingested",
		logger.String("session_id", s.ID),
		logger.String("filename", fileHeader.Filename),
		logger.Int("product_count", len(products)),
	)

	c.JSON(http.StatusCreated, gin.H{
		"sessionId":    s.ID,
		"productCount": len(products),
		"ranges":       s.Ranges(),
		"options":      s.Options(),
	})
}
