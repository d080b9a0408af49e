package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timebridge/config"
	"timebridge/cron"
	"timebridge/database"
	availabilityRepo "timebridge/database/repository/availability"
	providerRepo "timebridge/database/repository/provider"
	requesterRepo "timebridge/database/repository/requester"
	sessionRepo "timebridge/database/repository/session"
	"timebridge/handlers"
	"timebridge/middleware"
	"timebridge/routes"
	"timebridge/services/matching"
	"timebridge/services/payment"
	"timebridge/services/scheduling"
	"timebridge/services/session"
	"timebridge/services/stats"
	"timebridge/services/tasks"
	"timebridge/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitMatchCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// Repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	reqRepo := requesterRepo.NewMongoRequesterRepo()
	sessRepo := sessionRepo.NewMongoSessionRepo()
	windowRepo := availabilityRepo.NewMongoAvailabilityRepo()

	// Background task queue for session reminders.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	// Services.
	clock := utils.NewClock()
	schedulingService := &scheduling.DefaultSchedulingService{
		ProviderRepo: provRepo,
		SessionRepo:  sessRepo,
		WindowRepo:   windowRepo,
		Clock:        clock,
	}
	profileStats := &stats.DefaultProfileStats{
		ProviderRepo:  provRepo,
		RequesterRepo: reqRepo,
	}
	sessionService := &session.DefaultSessionService{
		SessionRepo:   sessRepo,
		ProviderRepo:  provRepo,
		RequesterRepo: reqRepo,
		Scheduler:     schedulingService,
		Stats:         profileStats,
		Reminders:     &tasks.AsynqReminderScheduler{Client: asynqClient},
		Clock:         clock,
	}
	matchingService := &matching.DefaultMatchingService{
		ProviderRepo:  provRepo,
		RequesterRepo: reqRepo,
		CacheClient:   utils.GetMatchCacheClient(),
	}
	refundProcessor := payment.NewStripeRefundProcessor(logger)

	cron.InitReminderWorker(sessRepo, cron.LoggingNotifier{})

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Sessions:     handlers.NewSessionHandler(sessionService, refundProcessor, logger),
		Availability: handlers.NewAvailabilityHandler(schedulingService, logger),
		Matching:     handlers.NewMatchingHandler(matchingService, logger),
	}
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
