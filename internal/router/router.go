package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gstims/docs"
	"gstims/internal/config"
	"gstims/internal/handler"
	"gstims/internal/middleware"
	"gstims/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	imsH *handler.IMSHandler,
	syncH *handler.SyncHandler,
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

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	ims := protected.Group("/ims")
	ims.POST("/reconcile", imsH.Reconcile)
	ims.POST("/actions", imsH.UpdateAction)
	ims.GET("/invoice-details", imsH.InvoiceDetails)
	ims.POST("/links", imsH.Link)
	ims.DELETE("/links", imsH.Unlink)
	ims.GET("/link-options", imsH.LinkOptions)
	ims.GET("/period-options", imsH.PeriodOptions)

	// Portal sync
	ims.POST("/download", syncH.Download)
	ims.POST("/save", syncH.Save)
	ims.POST("/reset", syncH.Reset)
	ims.POST("/sync-reupload", syncH.SyncReupload)
	ims.GET("/action-status", syncH.ActionStatus)

	ims.POST("/export", exportH.Export)

	return r
}
