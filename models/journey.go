package models

import "time"

// JourneyStep identifies a stage of the consultation booking journey.
type JourneyStep int

const (
	StepDetails JourneyStep = iota
	StepReview
	StepPayment
	StepConfirmation
)

var stepNames = map[JourneyStep]string{
	StepDetails:      "details",
	StepReview:       "review",
	StepPayment:      "payment",
	StepConfirmation: "confirmation",
}

func (s JourneyStep) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// ConsultationFees is the fee quote shown on the review step.
type ConsultationFees struct {
	BaseFee       float64 `json:"base_fee"`
	AdditionalFee float64 `json:"additional_fee"`
	TotalFee      float64 `json:"total_fee"`
}

// BookingJourney holds the in-progress state of a consultation booking between
// the details step and payment confirmation. At most one journey is persisted
// per client; it is overwritten on save and discarded once expired.
type BookingJourney struct {
	ClientID        string           `json:"clientId"`
	Step            JourneyStep      `json:"step"`
	SelectedLawyer  *LawyerRef       `json:"selectedLawyer,omitempty"`
	BookingDate     string           `json:"bookingDate"` // "2006-01-02"
	BookingTime     string           `json:"bookingTime"` // "15:04"
	BookingMethod   string           `json:"bookingMethod"`
	BookingNotes    string           `json:"bookingNotes,omitempty"`
	Fees            ConsultationFees `json:"consultationFees"`
	TotalFee        float64          `json:"totalFee"`
	ConsultationID  string           `json:"consultationId,omitempty"`
	CheckoutSession string           `json:"checkoutSessionId,omitempty"`
	Timestamp       time.Time        `json:"timestamp"`
	ExpiresAt       time.Time        `json:"expiresAt"`
}

// Expired reports whether the journey is no longer usable at the given instant.
func (j *BookingJourney) Expired(now time.Time) bool {
	return !now.Before(j.ExpiresAt)
}

// Datetime combines BookingDate and BookingTime into a single local datetime.
func (j *BookingJourney) Datetime() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", j.BookingDate+" "+j.BookingTime, time.Local)
}
