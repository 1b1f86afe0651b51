package booking

import (
	"context"
	"time"

	"advoqat/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Resume restores a saved journey directly into the review step (details is
// skipped; its fields are already populated) and clears the slot immediately
// so a stale journey cannot be reused if the user abandons again.
func (s *DefaultJourneyService) Resume(ctx context.Context, clientID string) (*ReviewSummary, error) {
	journey, err := s.Store.Load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if journey == nil {
		return nil, ErrNoSavedJourney
	}

	if err := s.Store.Clear(ctx, clientID); err != nil {
		s.Logger.Warn("failed to clear resumed journey slot", zap.Error(err))
	}

	journey.Step = models.StepReview
	return s.reviewSummary(journey), nil
}

// Dismiss drops the saved journey without restoring any state.
func (s *DefaultJourneyService) Dismiss(ctx context.Context, clientID string) error {
	return s.Store.Clear(ctx, clientID)
}

// HasSavedJourney reports whether a resumable journey exists; the dashboard
// uses it to decide whether to show the continue-booking banner.
func (s *DefaultJourneyService) HasSavedJourney(ctx context.Context, clientID string) (bool, error) {
	journey, err := s.Store.Load(ctx, clientID)
	if err != nil {
		return false, err
	}
	return journey != nil, nil
}

// PaymentReturn processes the payment-redirect outcome. Success re-reads the
// consultation's backend state, clears the saved journey, and yields a success
// notification; cancelled yields a distinct notification and leaves the saved
// journey in place so it can still be resumed.
func (s *DefaultJourneyService) PaymentReturn(ctx context.Context, clientID, outcome, sessionID string) (*models.Notification, error) {
	switch outcome {
	case "success":
		return s.paymentSucceeded(ctx, clientID, sessionID)
	case "cancelled":
		s.Logger.Info("payment cancelled at checkout",
			zap.String("clientId", clientID), zap.String("sessionId", sessionID))
		return &models.Notification{
			ID:        uuid.New().String(),
			UserID:    clientID,
			Type:      "payment_cancelled",
			Title:     "Payment cancelled",
			Body:      "Your consultation payment was cancelled. Your booking details are saved if you want to try again.",
			CreatedAt: time.Now(),
		}, nil
	default:
		return nil, newValidationError("payment", "unknown payment outcome")
	}
}

func (s *DefaultJourneyService) paymentSucceeded(ctx context.Context, clientID, sessionID string) (*models.Notification, error) {
	consultationID := ""
	var confirmed *models.BookingJourney
	if journey, err := s.Store.Load(ctx, clientID); err == nil && journey != nil {
		if journey.CheckoutSession == sessionID {
			consultationID = journey.ConsultationID
			confirmed = journey
		}
		if err := s.Store.Clear(ctx, clientID); err != nil {
			s.Logger.Warn("failed to clear journey after payment", zap.Error(err))
		}
	}

	notif := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    clientID,
		Type:      "payment_success",
		Title:     "Payment successful",
		Body:      "Your consultation is confirmed.",
		Data:      map[string]any{"sessionId": sessionID},
		CreatedAt: time.Now(),
	}

	if consultationID != "" && s.Consultations != nil {
		cons, err := s.Consultations.GetConsultation(ctx, consultationID)
		if err != nil {
			// A stale or unknown session id is not fatal: report success and
			// let the consultations page refresh on its own.
			s.Logger.Warn("failed to refresh consultation after payment",
				zap.String("consultationId", consultationID), zap.Error(err))
		} else {
			notif.Data["consultationId"] = cons.ID
			notif.Data["status"] = cons.Status
			if cons.RoomURL != "" {
				notif.Data["roomUrl"] = cons.RoomURL
			}
		}
	}

	if confirmed != nil {
		s.notifyConfirmed(ctx, confirmed, notif)
	}

	return notif, nil
}

// notifyConfirmed fires the confirmation push and enqueues the consultation
// reminders. Both are best-effort: the payment already succeeded, so a
// delivery problem is logged rather than surfaced to the client.
func (s *DefaultJourneyService) notifyConfirmed(ctx context.Context, journey *models.BookingJourney, notif *models.Notification) {
	lawyerName := ""
	if journey.SelectedLawyer != nil {
		lawyerName = journey.SelectedLawyer.Name
	}

	if s.Push != nil {
		data := map[string]string{"type": notif.Type}
		if journey.ConsultationID != "" {
			data["consultationId"] = journey.ConsultationID
		}
		if err := s.Push.SendPush(ctx, journey.ClientID, notif.Title, notif.Body, data); err != nil {
			s.Logger.Warn("failed to send confirmation push",
				zap.String("clientId", journey.ClientID), zap.Error(err))
		}
	}

	if s.Reminders == nil || journey.ConsultationID == "" {
		return
	}
	when, err := journey.Datetime()
	if err != nil {
		s.Logger.Warn("could not parse consultation datetime for reminder",
			zap.String("consultationId", journey.ConsultationID), zap.Error(err))
		return
	}
	err = s.Reminders.ScheduleConsultationReminder(models.ReminderPayload{
		ConsultationID: journey.ConsultationID,
		UserID:         journey.ClientID,
		LawyerName:     lawyerName,
		Datetime:       when,
		Method:         journey.BookingMethod,
	})
	if err != nil {
		s.Logger.Warn("failed to schedule consultation reminder",
			zap.String("consultationId", journey.ConsultationID), zap.Error(err))
	}
}
