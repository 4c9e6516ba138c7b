package api

import (
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	intconfig "yelloride/internal/config"
	h "yelloride/internal/http/handlers"
	"yelloride/internal/http/middleware"
	"yelloride/internal/services"
)

// Deps bundles the wired services the router mounts.
type Deps struct {
	Catalog services.CatalogService
	Booking services.BookingService
	Voucher services.VoucherService
	Quote   services.QuoteService
	Auth    services.AuthService
}

func NewRouter(cfg *intconfig.Config, deps Deps) *gin.Engine {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logrus.WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"success": false,
			"message": "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	catalog := h.CatalogHandler{Svc: deps.Catalog}
	booking := h.BookingHandler{Svc: deps.Booking, Voucher: deps.Voucher}
	quote := h.QuoteHandler{Svc: deps.Quote}
	auth := h.AuthHandler{Svc: deps.Auth}
	admin := middleware.RequireAdmin(deps.Auth)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-status", h.DBCheck)

		taxi := api.Group("/taxi")
		taxi.GET("", catalog.List)
		taxi.GET("/all", catalog.ListAll)
		taxi.GET("/route", catalog.Match)
		taxi.GET("/departures", catalog.Departures)
		taxi.GET("/arrivals", catalog.Arrivals)
		taxi.GET("/regions", catalog.Regions)
		taxi.GET("/stats", catalog.Stats)
		taxi.POST("/upload", admin, catalog.Upload)
		taxi.DELETE("", admin, catalog.Clear)
		taxi.DELETE("/all", admin, catalog.Clear)

		api.POST("/quote", quote.Quote)
		api.POST("/wizard/validate", h.WizardValidate)

		bookings := api.Group("/bookings")
		bookings.POST("", booking.Create)
		bookings.GET("", admin, booking.List)
		bookings.GET("/search", booking.Search)
		bookings.GET("/number/:bookingNumber", booking.GetByNumber)
		bookings.GET("/:id", booking.GetByID)
		bookings.PUT("/:id", booking.Update)
		bookings.PATCH("/:id", booking.Update)
		bookings.POST("/:id/cancel", booking.Cancel)
		bookings.GET("/:id/voucher", booking.VoucherPDF)

		api.POST("/auth/login", auth.Login)
	}

	return r
}
