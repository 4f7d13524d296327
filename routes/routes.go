package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/xener/energy-api/handlers"
	"github.com/xener/energy-api/services"
	"github.com/xener/energy-api/storage"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, store storage.Storage, demoUserID int) {
	authHandler := &handlers.AuthHandler{Store: store, DemoUserID: demoUserID}

	rg.POST("/auth/login", authHandler.Login)
	rg.POST("/auth/demo", authHandler.DemoLogin)
	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/password", authHandler.PasswordLogin)
}

// SetupUserRoutes sets up protected user routes.
func SetupUserRoutes(rg *gin.RouterGroup, store storage.Storage) {
	userHandler := &handlers.UserHandler{Store: store}

	rg.GET("/users/:id", userHandler.GetUser)
	rg.PATCH("/users/:id/energy-score", userHandler.UpdateEnergyScore)
	rg.POST("/user/2fa/setup", userHandler.Setup2FA)
	rg.POST("/user/2fa/verify", userHandler.Verify2FA)
	rg.POST("/user/2fa/disable", userHandler.Disable2FA)
}

// SetupApplianceRoutes sets up protected appliance CRUD routes.
func SetupApplianceRoutes(rg *gin.RouterGroup, store storage.Storage, ws *handlers.WSHandler) {
	h := &handlers.ApplianceHandler{Store: store, WS: ws}

	rg.GET("/appliances/:userId", h.ListByUser)
	rg.POST("/appliances", h.Create)
	rg.PATCH("/appliances/:id", h.Update)
	rg.DELETE("/appliances/:id", h.Delete)
}

// SetupBillRoutes sets up bill CRUD plus the OCR extraction endpoints.
func SetupBillRoutes(rg *gin.RouterGroup, store storage.Storage, ws *handlers.WSHandler) {
	h := &handlers.BillHandler{Store: store, WS: ws}

	rg.GET("/bills/:userId", h.ListByUser)
	rg.GET("/bills/:userId/latest", h.LatestByUser)
	rg.POST("/bills", h.Create)
	rg.POST("/bills/extract", h.Extract)
	rg.POST("/bills/extract/pdf", h.ExtractPDF)
}

// SetupTipRoutes sets up tip listing, generation and bookmarking.
func SetupTipRoutes(rg *gin.RouterGroup, store storage.Storage, generator services.TipGenerator, ws *handlers.WSHandler) {
	h := &handlers.TipsHandler{Store: store, Generator: generator, WS: ws}

	rg.GET("/tips/:userId", h.ListByUser)
	rg.POST("/tips/generate", h.Generate)
	rg.PATCH("/tips/:id/bookmark", h.Bookmark)
}

// SetupUsageRoutes sets up usage record routes.
func SetupUsageRoutes(rg *gin.RouterGroup, store storage.Storage, ws *handlers.WSHandler) {
	h := &handlers.UsageHandler{Store: store, WS: ws}

	rg.GET("/usage/:userId", h.ListByUser)
	rg.POST("/usage", h.Create)
}

// SetupDashboardRoutes sets up the aggregated dashboard endpoint.
func SetupDashboardRoutes(rg *gin.RouterGroup, store storage.Storage) {
	h := &handlers.DashboardHandler{Service: services.NewDashboardService(store)}

	rg.GET("/dashboard/:userId", h.GetStats)
}

// SetupExportRoutes sets up the XLSX download endpoint.
func SetupExportRoutes(rg *gin.RouterGroup, store storage.Storage) {
	h := &handlers.ExportHandler{Service: services.NewExportService(store)}

	rg.GET("/export/user/:userId", h.ExportUser)
}
