package handlers

import (
	"errors"
	"io"
	"net/http"

	"advoqat/middleware"
	"advoqat/services/payments"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes document checkout, payment history, and the Stripe
// webhook endpoint.
type PaymentHandler struct {
	Svc    payments.PaymentService
	Logger *zap.Logger
}

func NewPaymentHandler(svc payments.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Svc: svc, Logger: logger}
}

// CreateDocumentCheckout opens a checkout session for a locked document.
func (h *PaymentHandler) CreateDocumentCheckout(c *gin.Context) {
	var input struct {
		DocumentID string `json:"documentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sess, err := h.Svc.CreateDocumentCheckout(c.Request.Context(), middleware.AuthedUserID(c), input.DocumentID)
	if err != nil {
		if errors.Is(err, payments.ErrAlreadyPaid) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess)
}

// History returns the user's archived payments.
func (h *PaymentHandler) History(c *gin.Context) {
	records, err := h.Svc.History(middleware.AuthedUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// DocumentPaymentReturn resolves a document checkout outcome when the user
// lands back from Stripe.
func (h *PaymentHandler) DocumentPaymentReturn(c *gin.Context) {
	outcome := c.Query("payment")
	sessionID := c.Query("session_id")
	if outcome == "" || sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing payment outcome or session_id"})
		return
	}

	rec, err := h.Svc.ConfirmReturn(sessionID, outcome)
	if err != nil {
		if errors.Is(err, payments.ErrUnknownSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Webhook receives Stripe events. It must stay unauthenticated; the
// signature header is the credential.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	const maxBodyBytes = 65536
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
		return
	}

	if err := h.Svc.HandleWebhook(payload, c.GetHeader("Stripe-Signature")); err != nil {
		h.Logger.Warn("webhook rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
