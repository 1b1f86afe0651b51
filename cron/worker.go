package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"advoqat/config"
	"advoqat/models"
	"advoqat/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// reminderLeads are how long before the consultation each reminder fires:
// a day-ahead heads-up and a final one an hour out.
var reminderLeads = []time.Duration{24 * time.Hour, time.Hour}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}
}

// NewTaskClient returns an asynq client for scheduling reminder tasks.
func NewTaskClient() *asynq.Client {
	return asynq.NewClient(redisOpts())
}

// ScheduleConsultationReminder enqueues one reminder task per lead time still
// ahead of the consultation. A consultation starting inside every lead window
// gets a single immediate reminder instead.
func ScheduleConsultationReminder(client *asynq.Client, p models.ReminderPayload) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	fireTimes := reminderFireTimes(p.Datetime, time.Now())
	for _, fireAt := range fireTimes {
		task := asynq.NewTask(TypeReminderSend, payload)
		opts := []asynq.Option{asynq.MaxRetry(3), asynq.Queue("default")}
		if !fireAt.IsZero() {
			opts = append(opts, asynq.ProcessAt(fireAt))
		}
		if _, err := client.Enqueue(task, opts...); err != nil {
			return fmt.Errorf("failed to enqueue reminder for consultation %s: %w", p.ConsultationID, err)
		}
	}
	return nil
}

// reminderFireTimes returns when reminders for a consultation at datetime
// should fire, given the current time. A zero time means enqueue immediately;
// that happens when the consultation starts inside every lead window.
func reminderFireTimes(datetime, now time.Time) []time.Time {
	var times []time.Time
	for _, lead := range reminderLeads {
		fireAt := datetime.Add(-lead)
		if fireAt.After(now) {
			times = append(times, fireAt)
		}
	}
	if len(times) == 0 {
		times = append(times, time.Time{})
	}
	return times
}

// ReminderClient wraps the asynq client behind the scheduler dependency the
// booking service takes.
type ReminderClient struct {
	client *asynq.Client
}

func NewReminderClient() *ReminderClient {
	return &ReminderClient{client: NewTaskClient()}
}

func (c *ReminderClient) ScheduleConsultationReminder(p models.ReminderPayload) error {
	return ScheduleConsultationReminder(c.client, p)
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(notifSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] triggering reminder for consultation %s (user %s)", p.ConsultationID, p.UserID)

		data := map[string]string{
			"consultationId": p.ConsultationID,
			"datetime":       p.Datetime.Format(time.RFC3339),
			"method":         p.Method,
		}

		if err := notifSvc.NotifyConsultationReminder(ctx, p.UserID, p.LawyerName, p.Method, data); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
