package booking

import (
	"context"

	"advoqat/models"

	"go.uber.org/zap"
)

// DetailsInput is what the details step collects before validation.
type DetailsInput struct {
	Lawyer *models.LawyerRef `json:"selectedLawyer"`
	Date   string            `json:"bookingDate"`
	Time   string            `json:"bookingTime"`
	Method string            `json:"bookingMethod"`
	Notes  string            `json:"bookingNotes,omitempty"`
}

// ReviewSummary is the review-step payload, including display strings for the
// fee breakdown.
type ReviewSummary struct {
	Journey          *models.BookingJourney `json:"journey"`
	TotalDisplay     string                 `json:"totalDisplay"`     // e.g. "$60.00"
	SurchargeDisplay string                 `json:"surchargeDisplay"` // e.g. "$10.00", empty when none
}

// ConsultationFetcher re-reads a consultation's backend state after the
// payment redirect returns.
type ConsultationFetcher interface {
	GetConsultation(ctx context.Context, id string) (*models.Consultation, error)
}

// PushSender delivers the booking-confirmation push once payment succeeds.
type PushSender interface {
	SendPush(ctx context.Context, userID, title, body string, data map[string]string) error
}

// ReminderScheduler enqueues reminder tasks for a confirmed consultation.
type ReminderScheduler interface {
	ScheduleConsultationReminder(p models.ReminderPayload) error
}

// JourneyService drives the linear booking workflow
// (details -> review -> payment -> confirmation) and its recovery semantics.
type JourneyService interface {
	SubmitDetails(ctx context.Context, clientID string, input DetailsInput) (*ReviewSummary, error)
	SaveForLater(ctx context.Context, journey *models.BookingJourney) error
	ProceedToPayment(ctx context.Context, journey *models.BookingJourney) (*models.CheckoutSession, error)
	BackToDetails(journey *models.BookingJourney) error
	Cancel(ctx context.Context, clientID string, confirmed bool) error
	Resume(ctx context.Context, clientID string) (*ReviewSummary, error)
	Dismiss(ctx context.Context, clientID string) error
	HasSavedJourney(ctx context.Context, clientID string) (bool, error)
	PaymentReturn(ctx context.Context, clientID, outcome, sessionID string) (*models.Notification, error)
}

// DefaultJourneyService implements JourneyService. Push and Reminders are
// optional; when set, a successful payment return also sends the confirmation
// push and enqueues the consultation reminders.
type DefaultJourneyService struct {
	Store         JourneyStore
	Gateway       BookingGateway
	Consultations ConsultationFetcher
	Push          PushSender
	Reminders     ReminderScheduler
	Logger        *zap.Logger

	guard *flightGuard
}

func NewDefaultJourneyService(store JourneyStore, gateway BookingGateway, consultations ConsultationFetcher, logger *zap.Logger) *DefaultJourneyService {
	return &DefaultJourneyService{
		Store:         store,
		Gateway:       gateway,
		Consultations: consultations,
		Logger:        logger,
		guard:         newFlightGuard(),
	}
}
