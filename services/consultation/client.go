package consultation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"advoqat/models"

	"go.uber.org/zap"
)

// CoreAPIClient implements ConsultationService against the core platform's
// REST API.
type CoreAPIClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewCoreAPIClient(baseURL string, logger *zap.Logger) *CoreAPIClient {
	return &CoreAPIClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Logger:     logger,
	}
}

func (c *CoreAPIClient) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("core API request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read core API response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		var parsed struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(raw, &parsed) == nil {
			if parsed.Message != "" {
				msg = parsed.Message
			} else if parsed.Error != "" {
				msg = parsed.Error
			}
		}
		c.Logger.Warn("core API rejected request",
			zap.String("path", path), zap.Int("status", resp.StatusCode), zap.String("message", msg))
		return fmt.Errorf("core API error (status %d): %s", resp.StatusCode, msg)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode core API response: %w", err)
		}
	}
	return nil
}

// ListByUser fetches all consultations belonging to the given user.
func (c *CoreAPIClient) ListByUser(ctx context.Context, userID string) ([]models.Consultation, error) {
	var consultations []models.Consultation
	path := "/consultations?userId=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &consultations); err != nil {
		return nil, err
	}
	return consultations, nil
}

// GetConsultation fetches one consultation by id.
func (c *CoreAPIClient) GetConsultation(ctx context.Context, id string) (*models.Consultation, error) {
	var cons models.Consultation
	if err := c.do(ctx, http.MethodGet, "/consultations/"+url.PathEscape(id), nil, &cons); err != nil {
		return nil, err
	}
	return &cons, nil
}

// Reschedule moves a consultation to a new datetime via the PATCH action.
func (c *CoreAPIClient) Reschedule(ctx context.Context, id string, update models.ConsultationUpdate) (*models.Consultation, error) {
	if update.Action != "reschedule" {
		return nil, fmt.Errorf("reschedule requires action %q, got %q", "reschedule", update.Action)
	}
	if update.NewDatetime == nil {
		return nil, fmt.Errorf("reschedule requires a new datetime")
	}
	var cons models.Consultation
	if err := c.do(ctx, http.MethodPatch, "/consultations/"+url.PathEscape(id), update, &cons); err != nil {
		return nil, err
	}
	return &cons, nil
}

// Cancel cancels a consultation via the PATCH action.
func (c *CoreAPIClient) Cancel(ctx context.Context, id string) (*models.Consultation, error) {
	var cons models.Consultation
	update := models.ConsultationUpdate{Action: "cancel"}
	if err := c.do(ctx, http.MethodPatch, "/consultations/"+url.PathEscape(id), update, &cons); err != nil {
		return nil, err
	}
	return &cons, nil
}
