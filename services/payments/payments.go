package payments

import (
	"context"
	"fmt"

	"advoqat/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// Payment outcomes as reported by the checkout return URL.
const (
	OutcomeSuccess   = "success"
	OutcomeCancelled = "cancelled"
)

// CreateDocumentCheckout opens a Stripe Checkout session for a locked
// document and archives a pending payment record.
func (s *DefaultPaymentService) CreateDocumentCheckout(ctx context.Context, userID, documentID string) (*models.CheckoutSession, error) {
	doc, err := s.Documents.Get(userID, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status == models.DocumentPaid {
		return nil, ErrAlreadyPaid
	}
	if doc.Price <= 0 {
		return nil, fmt.Errorf("document %s has no price", documentID)
	}

	name := fmt.Sprintf("Legal document: %s", doc.Title)
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(name),
					},
					UnitAmount: stripe.Int64(int64(doc.Price * 100)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.SuccessURL + "?payment=success&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.CancelURL + "?payment=cancelled&session_id={CHECKOUT_SESSION_ID}"),
		Params: stripe.Params{
			Context: ctx,
			Metadata: map[string]string{
				"documentId": documentID,
				"userId":     userID,
				"kind":       "document",
			},
		},
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	if sess.URL == "" {
		return nil, fmt.Errorf("checkout session %s has no URL", sess.ID)
	}

	if _, err := s.Documents.AttachCheckout(userID, documentID, sess.ID); err != nil {
		return nil, err
	}

	rec := &models.PaymentRecord{
		ID:          uuid.New().String(),
		UserID:      userID,
		SessionID:   sess.ID,
		Kind:        "document",
		ReferenceID: documentID,
		Description: name,
		Amount:      doc.Price,
		Currency:    "usd",
		Status:      "pending",
	}
	if err := s.Repo.Create(rec); err != nil {
		return nil, fmt.Errorf("failed to archive payment record: %w", err)
	}

	s.Logger.Info("document checkout opened",
		zap.String("documentId", documentID), zap.String("sessionId", sess.ID))
	return &models.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// RecordConsultationCheckout archives a pending record for a consultation
// checkout opened by the booking flow.
func (s *DefaultPaymentService) RecordConsultationCheckout(req models.PaymentSessionRequest, sess *models.CheckoutSession) error {
	rec := &models.PaymentRecord{
		ID:          uuid.New().String(),
		UserID:      req.UserID,
		SessionID:   sess.ID,
		Kind:        "consultation",
		ReferenceID: req.ConsultationID,
		Description: fmt.Sprintf("Legal consultation with %s (%s)", req.LawyerName, req.Method),
		Amount:      req.Fee,
		Currency:    "usd",
		Status:      "pending",
	}
	if err := s.Repo.Create(rec); err != nil {
		return fmt.Errorf("failed to archive payment record: %w", err)
	}
	return nil
}

// History returns the user's archived payments, newest first.
func (s *DefaultPaymentService) History(userID string) ([]models.PaymentRecord, error) {
	return s.Repo.ListByUser(userID)
}

// ConfirmReturn reconciles a checkout outcome reported by the return URL. On
// success the record is marked paid and a document checkout unlocks its
// document; a cancelled outcome only marks the record.
func (s *DefaultPaymentService) ConfirmReturn(sessionID, outcome string) (*models.PaymentRecord, error) {
	rec, err := s.Repo.GetBySessionID(sessionID)
	if err != nil {
		return nil, ErrUnknownSession
	}

	switch outcome {
	case OutcomeSuccess:
		if rec.Status != "paid" {
			if err := s.Repo.UpdateStatus(sessionID, "paid"); err != nil {
				return nil, err
			}
			rec.Status = "paid"
		}
		if rec.Kind == "document" {
			if _, err := s.Documents.Unlock(sessionID); err != nil {
				s.Logger.Error("failed to unlock document after payment",
					zap.String("sessionId", sessionID), zap.Error(err))
				return nil, err
			}
		}
	case OutcomeCancelled:
		if rec.Status == "pending" {
			if err := s.Repo.UpdateStatus(sessionID, "cancelled"); err != nil {
				return nil, err
			}
			rec.Status = "cancelled"
		}
	default:
		return nil, fmt.Errorf("unknown payment outcome %q", outcome)
	}

	s.Logger.Info("payment reconciled",
		zap.String("sessionId", sessionID),
		zap.String("kind", rec.Kind),
		zap.String("status", rec.Status),
	)
	return rec, nil
}
