package booking

import (
	"context"
	"time"

	"advoqat/models"

	"go.uber.org/zap"
)

// SubmitDetails validates the details step and, when everything checks out,
// advances the journey to review with a computed fee quote. No network call is
// made before validation passes.
func (s *DefaultJourneyService) SubmitDetails(ctx context.Context, clientID string, input DetailsInput) (*ReviewSummary, error) {
	if input.Lawyer == nil || input.Lawyer.ID == "" {
		return nil, newValidationError("selectedLawyer", "please select a lawyer")
	}
	if input.Date == "" {
		return nil, newValidationError("bookingDate", "please choose a date")
	}
	if input.Time == "" {
		return nil, newValidationError("bookingTime", "please choose a time")
	}
	if !models.ValidMethod(input.Method) {
		return nil, newValidationError("bookingMethod", "unsupported consultation method")
	}

	journey := &models.BookingJourney{
		ClientID:       clientID,
		Step:           models.StepDetails,
		SelectedLawyer: input.Lawyer,
		BookingDate:    input.Date,
		BookingTime:    input.Time,
		BookingMethod:  input.Method,
		BookingNotes:   input.Notes,
	}

	when, err := journey.Datetime()
	if err != nil {
		return nil, newValidationError("bookingDate", "date and time do not form a valid datetime")
	}
	if when.Before(time.Now().Truncate(time.Minute)) {
		return nil, newValidationError("bookingDate", "consultation time must not be in the past")
	}

	journey.Fees = QuoteFees(input.Method)
	journey.TotalFee = journey.Fees.TotalFee
	journey.Step = models.StepReview

	return s.reviewSummary(journey), nil
}

// SaveForLater persists the journey so it can be resumed within 24 hours.
// Called both on "continue later" and right before the payment redirect.
func (s *DefaultJourneyService) SaveForLater(ctx context.Context, journey *models.BookingJourney) error {
	return s.Store.Save(ctx, journey)
}

// ProceedToPayment runs the two gateway calls and hands back the checkout
// URL. On any failure the journey stays at review and remains retryable; no
// partial rollback is attempted (a booking created upstream before a failed
// payment-session step is reconciled by the backend, not the client).
func (s *DefaultJourneyService) ProceedToPayment(ctx context.Context, journey *models.BookingJourney) (*models.CheckoutSession, error) {
	if journey.SelectedLawyer == nil || journey.SelectedLawyer.ID == "" {
		return nil, ErrMissingLawyer
	}
	if journey.Step != models.StepReview {
		return nil, newValidationError("step", "journey is not at the review step")
	}

	token, err := s.guard.begin(journey.ClientID)
	if err != nil {
		return nil, err
	}
	defer s.guard.end(journey.ClientID, token)

	when, err := journey.Datetime()
	if err != nil {
		return nil, newValidationError("bookingDate", "date and time do not form a valid datetime")
	}

	// Persist before redirecting away so an interrupted payment can resume.
	if err := s.Store.Save(ctx, journey); err != nil {
		s.Logger.Warn("failed to persist journey before payment", zap.Error(err))
	}

	result, err := s.Gateway.CreateBooking(ctx, CreateBookingRequest{
		LawyerID: journey.SelectedLawyer.ID,
		ClientID: journey.ClientID,
		Datetime: when,
		Method:   journey.BookingMethod,
		Notes:    journey.BookingNotes,
		Status:   models.ConsultationScheduled,
	})
	if err != nil {
		s.Logger.Warn("create booking failed", zap.String("clientId", journey.ClientID), zap.Error(err))
		return nil, err
	}

	checkout, err := s.Gateway.CreatePaymentSession(ctx, models.PaymentSessionRequest{
		ConsultationID: result.ConsultationID,
		LawyerName:     journey.SelectedLawyer.Name,
		Datetime:       when,
		Method:         journey.BookingMethod,
		Fee:            result.Fee,
		UserID:         journey.ClientID,
	})
	if err != nil {
		s.Logger.Error("create payment session failed",
			zap.String("consultationId", result.ConsultationID), zap.Error(err))
		return nil, err
	}

	journey.ConsultationID = result.ConsultationID
	journey.CheckoutSession = checkout.ID
	journey.Step = models.StepPayment
	if err := s.Store.Save(ctx, journey); err != nil {
		s.Logger.Warn("failed to persist journey after payment session", zap.Error(err))
	}

	s.Logger.Info("booking proceeding to checkout",
		zap.String("clientId", journey.ClientID),
		zap.String("consultationId", result.ConsultationID),
		zap.String("checkoutSession", checkout.ID))
	return checkout, nil
}

// BackToDetails steps the journey back from review to details.
func (s *DefaultJourneyService) BackToDetails(journey *models.BookingJourney) error {
	if journey.Step != models.StepReview {
		return newValidationError("step", "can only go back from the review step")
	}
	journey.Step = models.StepDetails
	return nil
}

// Cancel discards the in-progress journey. The confirmation flag is required:
// the UI always routes cancel through a prompt before discarding state.
func (s *DefaultJourneyService) Cancel(ctx context.Context, clientID string, confirmed bool) error {
	if !confirmed {
		return ErrCancelNotConfirmed
	}
	return s.Store.Clear(ctx, clientID)
}

func (s *DefaultJourneyService) reviewSummary(journey *models.BookingJourney) *ReviewSummary {
	summary := &ReviewSummary{
		Journey:      journey,
		TotalDisplay: FormatAmount(journey.Fees.TotalFee),
	}
	if journey.Fees.AdditionalFee > 0 {
		summary.SurchargeDisplay = FormatAmount(journey.Fees.AdditionalFee)
	}
	return summary
}
