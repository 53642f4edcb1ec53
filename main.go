package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buskpod/config"
	"buskpod/cron"
	"buskpod/database"
	adminRepoPkg "buskpod/database/repository/admin"
	bookingRepoPkg "buskpod/database/repository/booking"
	buskerRepoPkg "buskpod/database/repository/busker"
	eventRepoPkg "buskpod/database/repository/event"
	locationRepoPkg "buskpod/database/repository/location"
	podRepoPkg "buskpod/database/repository/pod"
	userRepoPkg "buskpod/database/repository/user"
	"buskpod/handlers"
	"buskpod/middleware"
	"buskpod/routes"
	"buskpod/services/admin"
	"buskpod/services/booking"
	"buskpod/services/busker"
	"buskpod/services/event"
	"buskpod/services/location"
	"buskpod/services/notification"
	"buskpod/services/pod"
	"buskpod/services/scheduling"
	"buskpod/services/user"
	"buskpod/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	adminRepo := adminRepoPkg.NewMongoAdminRepo()
	buskerRepo := buskerRepoPkg.NewMongoBuskerRepo()
	podRepo := podRepoPkg.NewMongoPodRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	eventRepo := eventRepoPkg.NewMongoEventRepo()
	locationRepo := locationRepoPkg.NewMongoLocationRepo()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelIndexes()
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to create user indexes: %v", err)
	}
	if err := adminRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to create admin indexes: %v", err)
	}
	if err := buskerRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to create busker indexes: %v", err)
	}
	if err := bookingRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to create booking indexes: %v", err)
	}
	if err := eventRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to create event indexes: %v", err)
	}

	// Services.
	userService := user.NewDefaultUserService(userRepo)
	buskerService := busker.NewDefaultBuskerService(buskerRepo)
	schedulingService := scheduling.NewService(bookingRepo, podRepo)
	podService := pod.NewDefaultPodService(podRepo, schedulingService)
	notificationService := notification.NewDefaultNotificationService(userRepo)
	bookingService := booking.NewDefaultBookingService(bookingRepo, podRepo, locationRepo, notificationService)
	eventService := event.NewDefaultEventService(eventRepo)
	locationService := location.NewDefaultLocationService(locationRepo)
	adminService := admin.NewDefaultAdminService(adminRepo, userRepo, buskerRepo, bookingRepo, eventRepo)

	// Background worker: notification delivery and booking completion sweep.
	worker := cron.NewWorker(&notification.EmailSender{}, notification.NewSMSSender(), bookingRepo)
	worker.Start()
	defer worker.Shutdown()

	// Handlers and routes.
	handlerBundle := handlers.NewHandlerBundle(
		adminRepo,
		userService,
		buskerService,
		podService,
		bookingService,
		eventService,
		locationService,
		adminService,
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
