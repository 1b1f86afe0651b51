package models

import "time"

type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	Read      bool           `json:"read"`
}

// ReminderPayload is the asynq task payload for consultation reminders.
type ReminderPayload struct {
	ConsultationID string    `json:"consultationId"`
	UserID         string    `json:"userId"`
	LawyerName     string    `json:"lawyerName"`
	Datetime       time.Time `json:"datetime"`
	Method         string    `json:"method"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
}
