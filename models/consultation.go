package models

import "time"

// Consultation statuses as reported by the core platform API. The client side
// of this service only reflects backend-reported state, it never enforces
// transitions between these values.
const (
	ConsultationScheduled   = "scheduled"
	ConsultationConfirmed   = "confirmed"
	ConsultationCompleted   = "completed"
	ConsultationCancelled   = "cancelled"
	ConsultationRescheduled = "rescheduled"
	ConsultationNoShow      = "no_show"
)

// Consultation methods.
const (
	MethodVideo = "video"
	MethodChat  = "chat"
	MethodVoice = "voice"
)

// ValidMethod reports whether m is a supported consultation method.
func ValidMethod(m string) bool {
	return m == MethodVideo || m == MethodChat || m == MethodVoice
}

// Consultation is a server-owned consultation record.
type Consultation struct {
	ID         string    `json:"id"`
	LawyerID   string    `json:"lawyerId"`
	LawyerName string    `json:"lawyerName,omitempty"`
	ClientID   string    `json:"clientId"`
	Datetime   time.Time `json:"datetime"`
	Method     string    `json:"method"`
	Status     string    `json:"status"`
	RoomURL    string    `json:"roomUrl,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Fee        float64   `json:"fee,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// ConsultationUpdate is the PATCH payload for reschedule/cancel actions.
type ConsultationUpdate struct {
	Action      string     `json:"action"` // "reschedule" or "cancel"
	NewDatetime *time.Time `json:"newDatetime,omitempty"`
}
