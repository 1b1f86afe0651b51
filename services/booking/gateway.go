package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"advoqat/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// CreateBookingRequest is the payload posted to the core consultations endpoint.
type CreateBookingRequest struct {
	LawyerID string    `json:"lawyerId"`
	ClientID string    `json:"clientId"`
	Datetime time.Time `json:"datetime"`
	Method   string    `json:"method"`
	Notes    string    `json:"notes,omitempty"`
	Status   string    `json:"status"`
}

// BookingResult is the confirmed outcome of a create-booking call.
type BookingResult struct {
	ConsultationID string
	Fee            float64
}

// BookingGateway performs the two sequential remote calls of the journey:
// booking creation against the core platform API and checkout session
// creation against the payment provider. Neither call is retried
// automatically; call 2 is never attempted when call 1 failed.
type BookingGateway interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResult, error)
	CreatePaymentSession(ctx context.Context, req models.PaymentSessionRequest) (*models.CheckoutSession, error)
}

// RemoteBookingGateway is the production BookingGateway: plain HTTP to the
// core API plus Stripe Checkout.
type RemoteBookingGateway struct {
	BaseURL    string
	HTTPClient *http.Client
	SuccessURL string
	CancelURL  string
	Logger     *zap.Logger
}

func NewRemoteBookingGateway(baseURL, successURL, cancelURL string, logger *zap.Logger) *RemoteBookingGateway {
	return &RemoteBookingGateway{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Logger:     logger,
	}
}

// createBookingResponse covers both response shapes the core API produces
// ("status":"confirmed" and "success":true).
type createBookingResponse struct {
	Status         string `json:"status"`
	Success        bool   `json:"success"`
	ConsultationID string `json:"consultationId"`
	Fee            struct {
		Total float64 `json:"total"`
	} `json:"fee"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// CreateBooking submits the consultation booking to the core API. Any non-2xx
// status, a missing consultationId, or a non-positive fee is a hard failure.
func (g *RemoteBookingGateway) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResult, error) {
	if req.LawyerID == "" {
		return nil, ErrMissingLawyer
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal booking request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/consultations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build booking request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("booking request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read booking response: %w", err)
	}

	var parsed createBookingResponse
	// Body may not be JSON on errors; keep raw text as the diagnostic fallback.
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if decodeErr == nil {
			if parsed.Message != "" {
				msg = parsed.Message
			} else if parsed.Error != "" {
				msg = parsed.Error
			}
		}
		g.Logger.Warn("create booking rejected",
			zap.Int("status", resp.StatusCode), zap.String("message", msg))
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode booking response: %w", decodeErr)
	}
	if parsed.ConsultationID == "" {
		g.Logger.Error("booking response missing consultation id", zap.ByteString("body", raw))
		return nil, ErrMissingConsultationID
	}
	if parsed.Fee.Total <= 0 {
		g.Logger.Error("booking response carried invalid fee",
			zap.String("consultationId", parsed.ConsultationID), zap.Float64("fee", parsed.Fee.Total))
		return nil, ErrInvalidFee
	}

	return &BookingResult{ConsultationID: parsed.ConsultationID, Fee: parsed.Fee.Total}, nil
}

// CreatePaymentSession opens a Stripe Checkout session for the confirmed
// booking. A session with no URL must not silently proceed.
func (g *RemoteBookingGateway) CreatePaymentSession(ctx context.Context, req models.PaymentSessionRequest) (*models.CheckoutSession, error) {
	name := fmt.Sprintf("Legal consultation with %s (%s)", req.LawyerName, req.Method)

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(name),
					},
					UnitAmount: stripe.Int64(int64(req.Fee * 100)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.SuccessURL + "?payment=success&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.CancelURL + "?payment=cancelled&session_id={CHECKOUT_SESSION_ID}"),
		Params: stripe.Params{
			Context: ctx,
			Metadata: map[string]string{
				"consultationId": req.ConsultationID,
				"userId":         req.UserID,
				"method":         req.Method,
				"datetime":       req.Datetime.Format(time.RFC3339),
			},
		},
	}

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	if s.URL == "" {
		g.Logger.Error("checkout session missing URL", zap.String("sessionId", s.ID))
		return nil, ErrMissingCheckoutURL
	}

	return &models.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}
