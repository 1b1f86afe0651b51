package models

import "time"

// LegalCase is a client-submitted case handled by the core platform.
type LegalCase struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Status      string    `json:"status"` // pending|active|completed
	LawyerID    string    `json:"lawyerId,omitempty"`
	Evidence    []string  `json:"evidence,omitempty"` // storage asset ids
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// CaseSubmission is the payload accepted from the client dashboard.
type CaseSubmission struct {
	Title       string   `json:"title" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Evidence    []string `json:"evidence,omitempty"`
}
