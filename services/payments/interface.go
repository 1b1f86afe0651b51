package payments

import (
	"context"
	"errors"

	paymentRepo "advoqat/database/repository/payment"
	"advoqat/models"

	"go.uber.org/zap"
)

var (
	// ErrAlreadyPaid indicates the target of the checkout is already paid for.
	ErrAlreadyPaid = errors.New("already paid")
	// ErrUnknownSession indicates no archived record matches the session ID.
	ErrUnknownSession = errors.New("unknown checkout session")
)

// DocumentGate is the slice of the document service the payment flow needs:
// reading the price, binding a checkout session, and unlocking on success.
type DocumentGate interface {
	Get(userID, documentID string) (*models.GeneratedDocument, error)
	AttachCheckout(userID, documentID, sessionID string) (*models.GeneratedDocument, error)
	Unlock(checkoutID string) (*models.GeneratedDocument, error)
}

// PaymentService archives checkout sessions, opens document checkouts, and
// reconciles outcomes reported by Stripe.
type PaymentService interface {
	CreateDocumentCheckout(ctx context.Context, userID, documentID string) (*models.CheckoutSession, error)
	RecordConsultationCheckout(req models.PaymentSessionRequest, sess *models.CheckoutSession) error
	History(userID string) ([]models.PaymentRecord, error)
	ConfirmReturn(sessionID, outcome string) (*models.PaymentRecord, error)
	HandleWebhook(payload []byte, signature string) error
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Repo          paymentRepo.PaymentRepository
	Documents     DocumentGate
	SuccessURL    string
	CancelURL     string
	WebhookSecret string
	Logger        *zap.Logger
}
