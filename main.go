// File: slotwise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotwise/config"
	"slotwise/cron"
	"slotwise/database"
	availabilityRepo "slotwise/database/repository/availability"
	eventRepo "slotwise/database/repository/event"
	leaveRepo "slotwise/database/repository/leave"
	policyRepo "slotwise/database/repository/policy"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/routes"
	"slotwise/services/calendar"
	"slotwise/services/meetlink"
	"slotwise/services/notification"
	"slotwise/services/scheduling"
	"slotwise/services/tasks"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitLockClient()

	busyProvider, err := calendar.NewGoogleBusyProvider(context.Background(), config.AppConfig.GoogleCredentialsFile)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize google calendar provider: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	groupRepo := policyRepo.NewMongoPolicyRepo()
	eventsRepo := eventRepo.NewMongoEventRepo()
	leavesRepo := leaveRepo.NewMongoLeaveRepo()

	// services.
	redisQueueOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	dispatcher := tasks.NewDispatcher(redisQueueOpt)
	defer dispatcher.Close()

	engine := scheduling.NewEngine(
		availRepo,
		groupRepo,
		eventsRepo,
		leavesRepo,
		busyProvider,
		&utils.SlotLocker{Client: utils.GetLockClient()},
		meetlink.NewStaticResolver(),
		dispatcher,
	)

	notificationService := notification.NewDefaultNotificationService()
	cron.InitConfirmationWorker(notificationService, eventsRepo, groupRepo)
	cron.StartCalendarVerificationSweep(availRepo, busyProvider, time.Hour)

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient(), utils.GetLockClient()}, database.MongoClient)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Schedule: handlers.NewScheduleHandler(engine),
		Windows:  handlers.NewWindowsHandler(availRepo, utils.GetCacheClient()),
		Manage:   handlers.NewManageHandler(availRepo, groupRepo),
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
