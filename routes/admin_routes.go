package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/HSouheill/barrim_admin/controllers"
	"github.com/HSouheill/barrim_admin/middleware"
)

// Controllers bundles the handlers mounted under /api/admin
type Controllers struct {
	Auth        *controllers.AuthController
	Wholesale   *controllers.WholesaleRequestController
	Banners     *controllers.BannerController
	Vouchers    *controllers.VoucherController
	GeneralData *controllers.GeneralDataController
	Subscribers *controllers.SubscriberController
	Files       *controllers.FileController
}

// RegisterAdminRoutes sets up all admin dashboard routes
func RegisterAdminRoutes(e *echo.Echo, h Controllers, jwtSecret string) {
	admin := e.Group("/api/admin")

	// Public routes (no auth required)
	admin.POST("/login", h.Auth.Login)

	// File previews are embedded in <img> tags, so they are addressed by
	// their unguessable id rather than a bearer token
	admin.GET("/files/:id/preview", h.Files.PreviewFile)
	admin.GET("/files/:id/download", h.Files.DownloadFile)

	// Protected routes (require admin authentication)
	protected := admin.Group("")
	protected.Use(middleware.JWTMiddleware(jwtSecret))
	protected.Use(middleware.RequireUserType("admin"))

	protected.GET("/dashboard/greeting", h.Auth.GetDashboard)
	protected.GET("/ws", h.Auth.Connect)

	// Wholesale account requests
	protected.GET("/wholesale-requests", h.Wholesale.GetWholesaleRequests)
	protected.GET("/wholesale-requests/:id", h.Wholesale.GetWholesaleRequest)
	protected.POST("/wholesale-requests/:id/approve", h.Wholesale.ApproveWholesaleRequest)
	protected.POST("/wholesale-requests/:id/reject", h.Wholesale.RejectWholesaleRequest)

	// Banners
	protected.GET("/banners", h.Banners.GetBanners)
	protected.GET("/banners/:id", h.Banners.GetBanner)
	protected.POST("/banners", h.Banners.CreateBanner)
	protected.PUT("/banners/:id", h.Banners.UpdateBanner)
	protected.DELETE("/banners/:id", h.Banners.DeleteBanner)

	// Vouchers
	protected.GET("/vouchers", h.Vouchers.GetVouchers)
	protected.POST("/vouchers", h.Vouchers.CreateVoucher)
	protected.PUT("/vouchers/:id", h.Vouchers.UpdateVoucher)
	protected.DELETE("/vouchers/:id", h.Vouchers.DeleteVoucher)
	protected.GET("/vouchers/:id/qr", h.Vouchers.GetVoucherQRCode)

	// General data
	protected.GET("/general-data", h.GeneralData.GetGeneralData)
	protected.PUT("/general-data/:id/images", h.GeneralData.UpdateImages)
	protected.PUT("/general-data/:id/links", h.GeneralData.UpdateLinks)

	// Newsletter subscribers
	protected.GET("/subscribers", h.Subscribers.GetSubscribers)
	protected.POST("/subscribers/delete", h.Subscribers.DeleteSubscribers)
	protected.POST("/subscribers/mailto", h.Subscribers.GetMailtoLink)
	protected.POST("/subscribers/broadcast", h.Subscribers.Broadcast)

	// Files
	protected.POST("/files", h.Files.UploadFile)
	protected.DELETE("/files/:id", h.Files.DeleteFile)
}
