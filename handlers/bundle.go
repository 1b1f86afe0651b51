package handlers

import (
	"net/http"

	"advoqat/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates every endpoint handler for route registration.
type HandlerBundle struct {
	// Booking journey endpoints.
	SubmitBookingDetails gin.HandlerFunc
	SaveBookingForLater  gin.HandlerFunc
	ProceedToPayment     gin.HandlerFunc
	BackToDetails        gin.HandlerFunc
	CancelBooking        gin.HandlerFunc
	SavedJourneyStatus   gin.HandlerFunc
	ResumeBooking        gin.HandlerFunc
	DismissBooking       gin.HandlerFunc
	BookingPaymentReturn gin.HandlerFunc

	// Consultation endpoints.
	ListConsultations  gin.HandlerFunc
	GetConsultation    gin.HandlerFunc
	UpdateConsultation gin.HandlerFunc

	// Lawyer directory endpoints.
	SearchLawyers gin.HandlerFunc
	GetLawyer     gin.HandlerFunc

	// Case endpoints.
	SubmitCase     gin.HandlerFunc
	ListCases      gin.HandlerFunc
	GetCase        gin.HandlerFunc
	UploadEvidence gin.HandlerFunc

	// Document endpoints.
	ListDocumentTemplates gin.HandlerFunc
	GenerateDocument      gin.HandlerFunc
	ListDocuments         gin.HandlerFunc
	GetDocument           gin.HandlerFunc
	SetSharePasscode      gin.HandlerFunc
	OpenSharedDocument    gin.HandlerFunc
	ExportDocument        gin.HandlerFunc
	DeleteDocument        gin.HandlerFunc

	// Payment endpoints.
	CreateDocumentCheckout gin.HandlerFunc
	PaymentHistory         gin.HandlerFunc
	DocumentPaymentReturn  gin.HandlerFunc
	StripeWebhook          gin.HandlerFunc

	// Assistant endpoints.
	AIChat         gin.HandlerFunc
	AIHistory      gin.HandlerFunc
	AIClearHistory gin.HandlerFunc
	AISTT          gin.HandlerFunc

	// User endpoints.
	GetProfile       gin.HandlerFunc
	UpdateProfile    gin.HandlerFunc
	RegisterDevice   gin.HandlerFunc
	UnregisterDevice gin.HandlerFunc
	GetDevices       gin.HandlerFunc
}

// HealthHandler reports the latest dependency health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"deps":   utils.GetHealthStatus(),
	})
}
