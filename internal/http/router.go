package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	intconfig "tours/internal/config"
	"tours/internal/domain"
	h "tours/internal/http/handlers"
	"tours/internal/http/middleware"
)

func NewRouter(env intconfig.Env, deps h.Deps) *gin.Engine {
	h.Configure(deps)
	if err := h.RegisterValidators(); err != nil {
		log.Warn().Err(err).Msg("failed to register validators")
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(),
		middleware.CORS(env.CORSOrigins), middleware.Metrics(),
		middleware.AuthOptional(h.TokenParser()))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", h.Metrics())

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.GET("/me", middleware.RequireRoles(), h.Me)

		// Public catalog
		api.GET("/home", h.HomePage)
		api.GET("/about", h.AboutStats)
		api.POST("/contact", h.SubmitContact)
		api.GET("/search", h.Search)
		api.GET("/cities/popular", h.PopularCities)
		api.GET("/cities/suggest", h.SuggestCities)
		api.GET("/cities/available", h.AvailableCities)
		api.GET("/cabs/featured", h.FeaturedCabs)
		api.GET("/cabs/:id", h.CabInfo)
		api.GET("/prices/:id", h.CabDetails)

		// Customer bookings
		bookings := api.Group("/bookings")
		bookings.GET("/form/:priceId", h.BookingForm)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/mine", middleware.RequireRoles(), h.MyBookings)
		bookings.GET("/:id", h.BookingConfirmation)
		bookings.POST("/:id/cancel", middleware.RequireRoles(), h.CancelBooking)
		bookings.GET("/:id/invoice", h.DownloadInvoice)

		admin := api.Group("/admin", middleware.RequireRoles(domain.RoleAdmin))
		mountAdmin(admin)
	}

	h.SetRouter(r)
	return r
}

func mountAdmin(g *gin.RouterGroup) {
	g.GET("/dashboard", h.Dashboard)

	cabs := g.Group("/cabs")
	cabs.GET("", h.ListCabs)
	cabs.GET("/:id", h.GetCab)
	cabs.POST("", h.CreateCab)
	cabs.PUT("/:id", h.UpdateCab)
	cabs.DELETE("/:id", h.DeleteCab)
	cabs.PATCH("/:id/toggle-status", h.ToggleCabStatus)

	cities := g.Group("/cities")
	cities.GET("", h.ListCities)
	cities.GET("/:id", h.GetCity)
	cities.POST("", h.CreateCity)
	cities.PUT("/:id", h.UpdateCity)
	cities.DELETE("/:id", h.DeleteCity)

	routes := g.Group("/routes")
	routes.GET("", h.ListRoutes)
	routes.GET("/:id", h.GetRoute)
	routes.POST("", h.CreateRoute)
	routes.PUT("/:id", h.UpdateRoute)
	routes.DELETE("/:id", h.DeleteRoute)

	prices := g.Group("/prices")
	prices.GET("", h.ListPrices)
	prices.GET("/options", h.PriceFormOptions)
	prices.GET("/:id", h.GetPrice)
	prices.POST("", h.CreatePrice)
	prices.PUT("/:id", h.UpdatePrice)
	prices.DELETE("/:id", h.DeletePrice)
	prices.PATCH("/:id/toggle-availability", h.TogglePriceAvailability)

	bookings := g.Group("/bookings")
	bookings.GET("", h.AdminListBookings)
	bookings.GET("/export", h.ExportBookings)
	bookings.GET("/pending-count", h.PendingBookingsCount)
	bookings.GET("/:id", h.AdminBookingDetails)
	bookings.PUT("/:id/status", h.AdminUpdateBookingStatus)
	bookings.PUT("/:id/payment", h.AdminUpdatePayment)
	bookings.PUT("/:id/driver", h.AdminAssignDriver)
	bookings.POST("/:id/cancel", h.AdminCancelBooking)
}
