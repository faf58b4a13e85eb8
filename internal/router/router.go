package router

import (
	"github.com/gin-gonic/gin"

	"flyerwatch/internal/handler"
	"flyerwatch/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	adminToken string,
	flyerH *handler.FlyerHandler,
	ingestH *handler.IngestHandler,
	recordH *handler.RecordHandler,
	prefH *handler.PreferenceHandler,
	validityH *handler.ValidityHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(adminToken))

	// Flyer routes
	flyers := v1.Group("/flyers")
	flyers.POST("", flyerH.Upload)
	flyers.GET("", flyerH.List)
	flyers.GET("/:id", flyerH.Get)
	flyers.GET("/:id/pages/:page", flyerH.PageURL)
	flyers.GET("/:id/records", recordH.ListByFlyer)
	flyers.GET("/:id/records/export", recordH.Export)

	// Detection ingest
	v1.POST("/detections", ingestH.Ingest)

	// Record routes
	records := v1.Group("/records")
	records.GET("", recordH.List)
	records.GET("/:imageID", recordH.Get)

	// Preference routes
	prefs := v1.Group("/preferences")
	prefs.GET("", prefH.List)
	prefs.GET("/:userID", prefH.Get)
	prefs.PUT("/:userID", prefH.Set)
	prefs.DELETE("/:userID", prefH.Delete)

	// Validity scan trigger
	v1.POST("/validity/scan", validityH.Scan)

	return r
}
