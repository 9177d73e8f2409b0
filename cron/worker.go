package cron

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"slotwise/config"
	availabilityRepo "slotwise/database/repository/availability"
	eventRepo "slotwise/database/repository/event"
	policyRepo "slotwise/database/repository/policy"
	"slotwise/services/calendar"
	"slotwise/services/notification"
	"slotwise/services/tasks"
	"slotwise/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitConfirmationWorker runs the async confirmation worker in background.
func InitConfirmationWorker(notifSvc notification.NotificationService, events eventRepo.EventRepository, policies policyRepo.PolicyRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingConfirmation, handleConfirmationTask(notifSvc, events, policies))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ConfirmationWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ConfirmationWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ConfirmationWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleConfirmationTask(notifSvc notification.NotificationService, events eventRepo.EventRepository, policies policyRepo.PolicyRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ConfirmationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ConfirmationHandler] Invalid payload: %v", err)
			return err
		}

		event, err := events.GetByID(ctx, p.EventID)
		if err != nil {
			log.Printf("[ConfirmationHandler] Could not load event %s: %v", p.EventID, err)
			return err
		}

		// Only group bookings carry a webhook; personal bookings are logged.
		var webhook string
		if groupID, ok := strings.CutPrefix(event.Scope, "group:"); ok {
			policy, err := policies.GetByID(ctx, groupID)
			if err == nil {
				webhook = policy.Webhook
			} else {
				log.Printf("[ConfirmationHandler] Could not load group %s: %v", groupID, err)
			}
		}

		if err := notifSvc.SendBookingConfirmation(ctx, event, webhook); err != nil {
			log.Printf("[ConfirmationHandler] Failed to deliver confirmation for %s: %v", p.EventID, err)
			return err
		}
		return nil
	}
}

// StartCalendarVerificationSweep periodically probes every wired calendar so
// broken credentials surface in the logs before a caller hits them.
func StartCalendarVerificationSweep(availability availabilityRepo.AvailabilityRepository, busy calendar.BusyPeriodProvider, interval time.Duration) {
	if busy == nil || !busy.Enabled() {
		log.Println("[CalendarSweep] Busy provider not configured; sweep disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			sweepOnce(availability, busy)
			<-ticker.C
		}
	}()
}

func sweepOnce(availability availabilityRepo.AvailabilityRepository, busy calendar.BusyPeriodProvider) {
	logger := utils.GetLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	docs, err := availability.ListWithCalendars(ctx)
	if err != nil {
		logger.Error("calendar sweep could not list availabilities", zap.Error(err))
		return
	}

	dayStart, dayEnd := utils.DayBoundsUTC(time.Now().UTC())
	for _, doc := range docs {
		_, err := busy.GetBusyIntervals(ctx, doc.GoogleCalendarID, dayStart, dayEnd, true)
		if err != nil {
			logger.Warn("calendar probe failed",
				zap.String("user", doc.User),
				zap.String("calendarId", doc.GoogleCalendarID),
				zap.Error(err))
		}
	}
	logger.Debug("calendar sweep finished", zap.Int("calendars", len(docs)))
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ConfirmationWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
