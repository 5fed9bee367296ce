package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/product-curator/internal/blacklist"
	"github.com/jonesrussell/product-curator/internal/events"
	"github.com/jonesrussell/product-curator/internal/handlers"
	"github.com/jonesrussell/product-curator/internal/logger"
	"github.com/jonesrussell/product-curator/internal/session"
)

const (
	corsMaxAgeHours = 12
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Sessions    *session.Store
	Blacklist   *blacklist.Service
	Publisher   *events.Publisher
	CORSOrigins []string
	Logger      logger.Logger
}

func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: deps.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"X-CSRF-Token", "Authorization", "accept", "origin",
			"Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))

	// Middleware
	router.Use(ginLogger(deps.Logger))
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1
	v1 := router.Group("/api/v1")
	uploadHandler := handlers.NewUploadHandler(deps.Sessions, deps.Logger)
	productHandler := handlers.NewProductHandler(deps.Sessions, deps.Blacklist, deps.Logger)
	categoryHandler := handlers.NewCategoryHandler(deps.Blacklist, deps.Publisher, deps.Logger)

	// Upload and session endpoints
	v1.POST("/uploads", uploadHandler.Create)
	sessions := v1.Group("/sessions")
	sessions.GET("/:id/products", productHandler.List)
	sessions.POST("/:id/filter", productHandler.Filter)

	// Category blacklist endpoints
	categories := v1.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/blacklisted", categoryHandler.ListBlacklisted)
	categories.PUT("/:id", categoryHandler.Update)
	categories.POST("/batch", categoryHandler.BatchUpdate)

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", statusCode),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", duration),
		)
	}
}
