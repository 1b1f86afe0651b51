package handlers

import (
	"errors"
	"net/http"

	"advoqat/middleware"
	"advoqat/models"
	"advoqat/services/booking"
	"advoqat/services/payments"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the consultation booking journey.
type BookingHandler struct {
	Svc      booking.JourneyService
	Payments payments.PaymentService
	Logger   *zap.Logger
}

func NewBookingHandler(svc booking.JourneyService, pay payments.PaymentService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Payments: pay, Logger: logger}
}

// bookingErrorStatus maps journey errors to HTTP statuses.
func bookingErrorStatus(err error) int {
	var vErr *booking.ValidationError
	var gErr *booking.GatewayError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.As(err, &gErr):
		return http.StatusBadGateway
	case errors.Is(err, booking.ErrMissingLawyer),
		errors.Is(err, booking.ErrCancelNotConfirmed):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrRequestInFlight):
		return http.StatusConflict
	case errors.Is(err, booking.ErrNoSavedJourney):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrMissingConsultationID),
		errors.Is(err, booking.ErrInvalidFee),
		errors.Is(err, booking.ErrMissingCheckoutURL):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// SubmitDetails validates the details step and advances to review.
func (h *BookingHandler) SubmitDetails(c *gin.Context) {
	clientID := middleware.AuthedUserID(c)

	var input booking.DetailsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	summary, err := h.Svc.SubmitDetails(c.Request.Context(), clientID, input)
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// SaveForLater persists the working journey for the continue-later banner.
func (h *BookingHandler) SaveForLater(c *gin.Context) {
	var journey models.BookingJourney
	if err := c.ShouldBindJSON(&journey); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	journey.ClientID = middleware.AuthedUserID(c)

	if err := h.Svc.SaveForLater(c.Request.Context(), &journey); err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true, "expiresAt": journey.ExpiresAt})
}

// ProceedToPayment runs the booking + checkout sequence and returns the
// checkout URL to redirect to.
func (h *BookingHandler) ProceedToPayment(c *gin.Context) {
	var journey models.BookingJourney
	if err := c.ShouldBindJSON(&journey); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	journey.ClientID = middleware.AuthedUserID(c)

	sess, err := h.Svc.ProceedToPayment(c.Request.Context(), &journey)
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	lawyerName := ""
	if journey.SelectedLawyer != nil {
		lawyerName = journey.SelectedLawyer.Name
	}
	datetime, _ := journey.Datetime()
	if err := h.Payments.RecordConsultationCheckout(models.PaymentSessionRequest{
		ConsultationID: journey.ConsultationID,
		LawyerName:     lawyerName,
		Datetime:       datetime,
		Method:         journey.BookingMethod,
		Fee:            journey.TotalFee,
		UserID:         journey.ClientID,
	}, sess); err != nil {
		h.Logger.Warn("failed to archive consultation checkout", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"journey": journey, "checkout": sess})
}

// BackToDetails steps from review back to the details form.
func (h *BookingHandler) BackToDetails(c *gin.Context) {
	var journey models.BookingJourney
	if err := c.ShouldBindJSON(&journey); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	journey.ClientID = middleware.AuthedUserID(c)

	if err := h.Svc.BackToDetails(&journey); err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"journey": journey})
}

// Cancel abandons the journey; requires explicit confirmation.
func (h *BookingHandler) Cancel(c *gin.Context) {
	var input struct {
		Confirmed bool `json:"confirmed"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.Cancel(c.Request.Context(), middleware.AuthedUserID(c), input.Confirmed); err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// SavedJourneyStatus reports whether a resumable journey exists.
func (h *BookingHandler) SavedJourneyStatus(c *gin.Context) {
	has, err := h.Svc.HasSavedJourney(c.Request.Context(), middleware.AuthedUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasSavedJourney": has})
}

// Resume restores the saved journey at the review step.
func (h *BookingHandler) Resume(c *gin.Context) {
	summary, err := h.Svc.Resume(c.Request.Context(), middleware.AuthedUserID(c))
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Dismiss throws away the saved journey without resuming it.
func (h *BookingHandler) Dismiss(c *gin.Context) {
	if err := h.Svc.Dismiss(c.Request.Context(), middleware.AuthedUserID(c)); err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dismissed": true})
}

// PaymentReturn handles the redirect back from checkout
// (?payment=success|cancelled&session_id=...).
func (h *BookingHandler) PaymentReturn(c *gin.Context) {
	outcome := c.Query("payment")
	sessionID := c.Query("session_id")
	if outcome == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing payment outcome"})
		return
	}

	notif, err := h.Svc.PaymentReturn(c.Request.Context(), middleware.AuthedUserID(c), outcome, sessionID)
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	if sessionID != "" {
		if _, err := h.Payments.ConfirmReturn(sessionID, outcome); err != nil && !errors.Is(err, payments.ErrUnknownSession) {
			h.Logger.Warn("failed to reconcile payment record", zap.String("sessionId", sessionID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, notif)
}
