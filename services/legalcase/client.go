package legalcase

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
	"advoqat/services/storage"

	"go.uber.org/zap"
)

// CoreCaseClient is the production CaseService: case records live in the core
// platform API, evidence files are encrypted and parked in our own storage.
type CoreCaseClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Storage    storage.StorageService
	Logger     *zap.Logger
}

func NewCoreCaseClient(baseURL string, store storage.StorageService, logger *zap.Logger) *CoreCaseClient {
	return &CoreCaseClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Storage:    store,
		Logger:     logger,
	}
}

// Submit files a new case with the core platform.
func (c *CoreCaseClient) Submit(ctx context.Context, clientID string, sub models.CaseSubmission) (*models.LegalCase, error) {
	payload := map[string]any{
		"clientId":    clientID,
		"title":       sub.Title,
		"category":    sub.Category,
		"description": sub.Description,
		"evidence":    sub.Evidence,
		"status":      "pending",
	}

	var created models.LegalCase
	if err := c.do(ctx, http.MethodPost, "/cases", payload, &created); err != nil {
		return nil, err
	}
	c.Logger.Info("case submitted",
		zap.String("caseId", created.ID), zap.String("clientId", clientID), zap.String("category", sub.Category))
	return &created, nil
}

// ListByClient returns the client's cases.
func (c *CoreCaseClient) ListByClient(ctx context.Context, clientID string) ([]models.LegalCase, error) {
	var cases []models.LegalCase
	path := "/cases?clientId=" + url.QueryEscape(clientID)
	if err := c.do(ctx, http.MethodGet, path, nil, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// Get fetches a single case by ID.
func (c *CoreCaseClient) Get(ctx context.Context, caseID string) (*models.LegalCase, error) {
	var lc models.LegalCase
	if err := c.do(ctx, http.MethodGet, "/cases/"+url.PathEscape(caseID), nil, &lc); err != nil {
		return nil, err
	}
	return &lc, nil
}

// UploadEvidence encrypts and stores an evidence file, returning the asset ID
// to attach to a case submission.
func (c *CoreCaseClient) UploadEvidence(ctx context.Context, clientID, localFilePath string) (string, error) {
	assetID, err := c.Storage.UploadEncryptedEvidence(ctx, localFilePath, "evidence/"+clientID, clientID)
	if err != nil {
		return "", fmt.Errorf("failed to upload evidence: %w", err)
	}
	return assetID, nil
}

func (c *CoreCaseClient) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
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
		return fmt.Errorf("core API error (status %d): %s", resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode core API response: %w", err)
		}
	}
	return nil
}
