package paymentRepo

import "advoqat/models"

// PaymentRepository archives checkout records for history and reconciliation.
type PaymentRepository interface {
	Create(rec *models.PaymentRecord) error
	GetBySessionID(sessionID string) (*models.PaymentRecord, error)
	ListByUser(userID string) ([]models.PaymentRecord, error)
	UpdateStatus(sessionID, status string) error
}
