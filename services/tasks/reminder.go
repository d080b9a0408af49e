package tasks

import (
	"encoding/json"
	"time"

	"timebridge/models"

	"github.com/hibiken/asynq"
)

const TypeSessionReminder = "reminder:session"

// reminderLead is how far before the scheduled start the reminder fires.
const reminderLead = time.Hour

// ReminderPayload is the task body delivered to the reminder worker.
type ReminderPayload struct {
	SessionID      string    `json:"sessionId"`
	ProviderID     string    `json:"providerId"`
	RequesterID    string    `json:"requesterId"`
	ScheduledStart time.Time `json:"scheduledStart"`
}

// ReminderScheduler enqueues session reminders.
type ReminderScheduler interface {
	ScheduleSessionReminder(session *models.Session) error
}

// AsynqReminderScheduler enqueues reminders on the asynq queue.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

func (s *AsynqReminderScheduler) ScheduleSessionReminder(session *models.Session) error {
	payload := ReminderPayload{
		SessionID:      session.ID,
		ProviderID:     session.ProviderID,
		RequesterID:    session.RequesterID,
		ScheduledStart: session.ScheduledStart,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeSessionReminder, b)
	_, err = s.Client.Enqueue(task, asynq.ProcessAt(session.ScheduledStart.Add(-reminderLead)))
	return err
}
