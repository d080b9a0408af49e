package cron

import (
	"context"
	"encoding/json"
	"time"

	"timebridge/config"
	sessionRepo "timebridge/database/repository/session"
	"timebridge/models"
	"timebridge/services/tasks"
	"timebridge/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderNotifier delivers a due session reminder to both participants.
// Push/email transports plug in behind this seam.
type ReminderNotifier interface {
	NotifySessionReminder(ctx context.Context, sess *models.Session) error
}

// LoggingNotifier records due reminders in the application log. It stands in
// until a push or email transport is wired behind the ReminderNotifier seam.
type LoggingNotifier struct{}

func (LoggingNotifier) NotifySessionReminder(ctx context.Context, sess *models.Session) error {
	utils.GetLogger().Info("session reminder due",
		zap.String("sessionID", sess.ID),
		zap.String("providerID", sess.ProviderID),
		zap.String("requesterID", sess.RequesterID),
		zap.Time("scheduledStart", sess.ScheduledStart))
	return nil
}

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(repo sessionRepo.SessionRepository, notifier ReminderNotifier) {
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
	mux.HandleFunc(tasks.TypeSessionReminder, handleReminderTask(repo, notifier))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("reminder worker exhausted start attempts")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

func handleReminderTask(repo sessionRepo.SessionRepository, notifier ReminderNotifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p tasks.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		sess, err := repo.GetByID(ctx, p.SessionID)
		if err != nil {
			return err
		}
		// A cancelled or already-started session silently drops its reminder.
		if sess == nil || sess.Status != models.SessionScheduled {
			logger.Info("skipping reminder for inactive session",
				zap.String("sessionID", p.SessionID))
			return nil
		}

		logger.Info("firing session reminder",
			zap.String("sessionID", sess.ID),
			zap.Time("scheduledStart", sess.ScheduledStart))
		return notifier.NotifySessionReminder(ctx, sess)
	}
}
