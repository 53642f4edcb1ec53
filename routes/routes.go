package routes

import (
	"net/http"
	"time"

	"buskpod/handlers"
	"buskpod/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)
		api.POST("/refresh", hb.Auth.Refresh)
		api.POST("/forgot-password", hb.Auth.ForgotPassword)
		api.POST("/reset-password", hb.Auth.ResetPassword)
		api.POST("/logout", middleware.JWTAuthUserMiddleware(), hb.Auth.Logout)
	}
}

// RegisterUserRoutes registers profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	api.Use(middleware.JWTAuthUserMiddleware())
	{
		api.GET("/me", hb.Users.Profile)
		api.PATCH("/me", hb.Users.UpdateProfile)
		api.POST("/me/password", hb.Users.ChangePassword)
		api.DELETE("/me", hb.Users.Deactivate)
	}
}

// RegisterBuskerRoutes registers performer profile endpoints.
func RegisterBuskerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/buskers")
	api.Use(middleware.JWTAuthUserMiddleware())
	{
		api.POST("/register", hb.Buskers.Register)
		api.GET("/me", hb.Buskers.Me)
		api.PATCH("/me", hb.Buskers.Update)
		api.POST("/me/id-proof", hb.Buskers.UploadIDProof)
	}
}

// RegisterPodRoutes registers the public pod catalogue.
func RegisterPodRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/pods")
	{
		api.GET("", hb.Pods.List)
		api.GET("/search", hb.Pods.Search)
		api.GET("/:id", hb.Pods.Get)
		api.GET("/:id/availability", hb.Pods.Availability)
	}
}

// RegisterBookingRoutes registers the pod booking lifecycle for users.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthUserMiddleware())
	{
		api.POST("", hb.Bookings.Create)
		api.GET("", hb.Bookings.MyBookings)
		api.GET("/:id", hb.Bookings.Get)
		api.POST("/:id/cancel", hb.Bookings.Cancel)
		api.POST("/:id/payment-proof", hb.Bookings.SubmitPaymentProof)
		api.POST("/upload/payment-proof", hb.Uploads.PaymentProof)
	}
}

// RegisterEventRoutes registers the event catalogue and ticketing.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/events")
	{
		api.GET("", hb.Events.List)
		api.GET("/:id", hb.Events.Get)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware())
		protected.POST("/:id/book", hb.Events.BookTickets)
		protected.GET("/bookings/mine", hb.Events.MyBookings)
	}
}

// RegisterLocationRoutes registers the busking location directory.
func RegisterLocationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/locations")
	{
		api.GET("/states", hb.Locations.States)
		api.GET("/cities", hb.Locations.Cities)
		api.GET("", hb.Locations.ByCity)
		api.GET("/grouped", hb.Locations.Grouped)
		api.GET("/:id", hb.Locations.Get)
	}
}

// RegisterAdminRoutes registers the back-office surface. Every mutating route
// is gated on a permission string; super admins pass all gates.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.POST("/login", hb.Admin.Login)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthAdminMiddleware(hb.AdminRepo))
		protected.GET("/dashboard", hb.Admin.Dashboard)

		protected.GET("/users", middleware.RequirePermission("users.view"), hb.Admin.ListUsers)
		protected.PATCH("/users/:id/active", middleware.RequirePermission("users.manage"), hb.Admin.SetUserActive)

		protected.GET("/buskers/pending", middleware.RequirePermission("buskers.verify"), hb.Admin.PendingBuskers)
		protected.POST("/buskers/:id/verify", middleware.RequirePermission("buskers.verify"), hb.Admin.VerifyBusker)

		protected.GET("/bookings", middleware.RequirePermission("bookings.view"), hb.Bookings.ListAll)
		protected.POST("/bookings/:id/verify-payment", middleware.RequirePermission("bookings.verify"), hb.Bookings.VerifyPayment)

		protected.POST("/pods", middleware.RequirePermission("pods.manage"), hb.Pods.Create)
		protected.PATCH("/pods/:id", middleware.RequirePermission("pods.manage"), hb.Pods.Update)
		protected.DELETE("/pods/:id", middleware.RequirePermission("pods.manage"), hb.Pods.Delete)

		protected.POST("/events", middleware.RequirePermission("events.manage"), hb.Events.Create)
		protected.PATCH("/events/:id", middleware.RequirePermission("events.manage"), hb.Events.Update)
		protected.POST("/events/:id/publish", middleware.RequirePermission("events.manage"), hb.Events.SetPublished)

		protected.POST("/admins", middleware.RequirePermission("admins.manage"), hb.Admin.CreateAdmin)
		protected.GET("/admins", middleware.RequirePermission("admins.manage"), hb.Admin.ListAdmins)
		protected.DELETE("/admins/:id", middleware.RequirePermission("admins.manage"), hb.Admin.DeleteAdmin)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes wires global middleware and every route group.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterBuskerRoutes(r, hb)
	RegisterPodRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterLocationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
