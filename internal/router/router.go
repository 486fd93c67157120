package router

import (
	"github.com/gin-gonic/gin"

	"sofhub/internal/config"
	"sofhub/internal/handler"
	"sofhub/internal/middleware"
	"sofhub/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	extractionH *handler.ExtractionHandler,
	recordH *handler.RecordHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Upload and extraction
	protected.POST("/extractions", extractionH.Ingest)

	// Current in-memory result and pre-save corrections
	ws := protected.Group("/workspace")
	ws.GET("", extractionH.Current)
	ws.GET("/source", extractionH.SourceURL)
	ws.DELETE("", extractionH.Clear)
	ws.PUT("/events/:ref", extractionH.UpdateEvent)
	ws.DELETE("/events/:ref", extractionH.DeleteEvent)

	// Saved records
	records := protected.Group("/records")
	records.POST("", recordH.Save)
	records.GET("", recordH.List)
	records.GET("/:id", recordH.GetByID)
	records.PATCH("/:id", recordH.Rename)
	records.DELETE("/:id", recordH.Delete)

	// Export artifacts
	exp := protected.Group("/export")
	exp.GET("/csv", exportH.CSV)
	exp.GET("/json", exportH.JSON)

	return r
}
