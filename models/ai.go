package models

import "time"

// AIRequest is the payload coming from the dashboard into /api/ai/chat.
type AIRequest struct {
	UserID string `json:"user_id"` // unique user identifier
	Text   string `json:"text"`    // user's message (voice->text or typed)
}

// AIAction is a single button/card action returned alongside a reply.
type AIAction struct {
	Label       string `json:"label"`                // text on the button
	Type        string `json:"type"`                 // e.g. "book", "select_lawyer", "chat"
	Specialty   string `json:"specialty,omitempty"`  // when recommending a practice area
	LawyerID    string `json:"lawyer_id,omitempty"`  // when selecting a lawyer
	Description string `json:"description,omitempty"`
}

// AIResponse is what the assistant handler returns to the dashboard.
type AIResponse struct {
	Intent       string     `json:"intent"`    // "chat", "recommend", or "book"
	Specialty    string     `json:"specialty"` // the practice area being discussed
	ResponseText string     `json:"response"`  // natural-language reply
	Actions      []AIAction `json:"actions"`   // only non-nil during booking handoff
}

// AIContext is the short-lived conversation state kept in Redis.
type AIContext struct {
	Specialty   string `json:"specialty"`
	BookingStep int    `json:"bookingStep"`
	LawyerID    string `json:"lawyerId,omitempty"`
}

// ChatMessage is one archived turn of an assistant conversation.
type ChatMessage struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Role      string    `bson:"role" json:"role"` // "user" or "assistant"
	Text      string    `bson:"text" json:"text"`
	Intent    string    `bson:"intent,omitempty" json:"intent,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
