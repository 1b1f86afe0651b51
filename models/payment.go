package models

import "time"

// CheckoutSession references an externally hosted Stripe checkout page.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// PaymentSessionRequest carries everything the payment gateway needs to open
// a checkout session for a confirmed consultation booking.
type PaymentSessionRequest struct {
	ConsultationID string    `json:"consultationId"`
	LawyerName     string    `json:"lawyerName"`
	Datetime       time.Time `json:"datetime"`
	Method         string    `json:"method"`
	Fee            float64   `json:"fee"`
	UserID         string    `json:"userId"`
}

// PaymentRecord is the locally archived trace of a checkout, used for the
// payment history view and webhook reconciliation.
type PaymentRecord struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"user_id" json:"userId"`
	SessionID   string    `bson:"session_id" json:"sessionId"`
	Kind        string    `bson:"kind" json:"kind"` // consultation|document
	ReferenceID string    `bson:"reference_id" json:"referenceId"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Amount      float64   `bson:"amount" json:"amount"`
	Currency    string    `bson:"currency" json:"currency"`
	Status      string    `bson:"status" json:"status"` // pending|paid|cancelled
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
