package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/eventhive/eventhive/config"
	"github.com/eventhive/eventhive/internal/handlers"
	"github.com/eventhive/eventhive/internal/middleware"
	"github.com/eventhive/eventhive/internal/models"
	"github.com/eventhive/eventhive/internal/sweeper"
)

const sweepInterval = time.Minute

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	var locker sweeper.Locker
	if cfg.RedisAddr != "" {
		locker = &sweeper.RedisLocker{
			Client: redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}),
		}
	}
	go sweeper.Run(context.Background(), db, locker, sweepInterval)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	setupRoutes(r, db)

	return r.Run(":" + cfg.Port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB) {
	r.Use(middleware.DatabaseMiddleware(db))

	authLimiter := middleware.NewIPRateLimiter(rate.Every(time.Minute/10), 10)

	public := r.Group("/v1")
	{
		auth := public.Group("/auth")
		auth.Use(authLimiter.Middleware())
		{
			auth.POST("/signup", handlers.Signup)
			auth.POST("/signin", handlers.Signin)
			auth.POST("/signout", handlers.Signout)
		}

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/categories", handlers.ListCategories)
			eventPublic.GET("/:id", handlers.GetEvent)
		}

		facilityPublic := public.Group("/facilities")
		{
			facilityPublic.GET("", handlers.ListFacilities)
			facilityPublic.GET("/:id", handlers.GetFacility)
		}

		public.GET("/courts/:id/slots", handlers.ListCourtSlots)
		public.GET("/tickets/:id", handlers.GetTicket)

		public.POST("/webhooks/razorpay", handlers.RazorpayWebhook)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		profile := protected.Group("/profile")
		{
			profile.GET("", handlers.GetProfile)
			profile.PATCH("", handlers.UpdateProfile)
			profile.GET("/bookings", handlers.GetMyBookings)
		}

		orders := protected.Group("/payment-orders")
		{
			orders.GET("", handlers.ListMyPaymentOrders)
			orders.POST("", handlers.CreatePaymentOrder)
			orders.POST("/:id/verify", handlers.VerifyPayment)
			orders.POST("/:id/fail", handlers.FailPayment)
			orders.PATCH("/:id/cancel", handlers.CancelPaymentOrder)
		}

		protected.GET("/bookings/:id/qr", handlers.GenerateBookingQR)
		protected.POST("/slots/:id/book", handlers.BookTimeSlot)
		protected.PATCH("/bookings/court/:id/cancel", handlers.CancelCourtBooking)
		protected.POST("/reports", handlers.SubmitReport)
		protected.POST("/upload", handlers.UploadImage)
		protected.DELETE("/upload", handlers.DeleteUpload)

		organizer := protected.Group("")
		organizer.Use(middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin))
		{
			eventProtected := organizer.Group("/events")
			{
				eventProtected.POST("", handlers.CreateEvent)
				eventProtected.PUT("/:id", handlers.UpdateEvent)
				eventProtected.DELETE("/:id", handlers.DeleteEvent)
			}

			tickets := organizer.Group("/tickets")
			{
				tickets.POST("", handlers.CreateTicket)
				tickets.PUT("/:id", handlers.UpdateTicket)
				tickets.DELETE("/:id", handlers.DeleteTicket)
				tickets.POST("/validate", handlers.ValidateTicket)
			}

			facilities := organizer.Group("/facilities")
			{
				facilities.POST("", handlers.CreateFacility)
				facilities.PATCH("/:id", handlers.UpdateFacility)
				facilities.DELETE("/:id", handlers.DeleteFacility)
			}

			courts := organizer.Group("/courts")
			{
				courts.POST("", handlers.CreateCourt)
				courts.PATCH("/:id", handlers.UpdateCourt)
				courts.DELETE("/:id", handlers.DeleteCourt)
				courts.POST("/:id/slots/generate", handlers.GenerateCourtSlots)
			}

			organizer.PATCH("/slots/:id/maintenance", handlers.SetSlotMaintenance)
			organizer.PATCH("/bookings/court/:id/complete", handlers.CompleteCourtBooking)
		}

		admin := protected.Group("")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			admin.POST("/categories", handlers.CreateCategory)
			admin.GET("/reports", handlers.ListReports)
			admin.PATCH("/reports/:id/status", handlers.UpdateReportStatus)
			admin.DELETE("/reports/:id", handlers.DeleteReport)
		}
	}
}
