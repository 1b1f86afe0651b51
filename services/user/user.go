package user

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

	deviceRepo "advoqat/database/repository/device"
	"advoqat/models"

	"go.uber.org/zap"
)

func NewDefaultUserService(baseURL string, devices deviceRepo.DeviceRepository, logger *zap.Logger) *DefaultUserService {
	return &DefaultUserService{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Devices: devices,
		Logger:  logger,
	}
}

// GetProfile fetches the user's profile from the core platform.
func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile patches the editable fields and returns the updated profile.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(userID), upd, &profile); err != nil {
		return nil, err
	}
	s.Logger.Info("profile updated", zap.String("userId", userID))
	return &profile, nil
}

// RegisterDevice stores or refreshes a push-capable device.
func (s *DefaultUserService) RegisterDevice(dev models.Device) error {
	if dev.UserID == "" || dev.DeviceID == "" || dev.FCMToken == "" {
		return fmt.Errorf("device registration requires userId, deviceId and fcmToken")
	}
	dev.UpdatedAt = time.Now()
	return s.Devices.Upsert(&dev)
}

// UnregisterDevice removes a device so it stops receiving pushes.
func (s *DefaultUserService) UnregisterDevice(userID, deviceID string) error {
	return s.Devices.Delete(userID, deviceID)
}

// GetDevices lists the user's registered devices.
func (s *DefaultUserService) GetDevices(userID string) ([]models.Device, error) {
	return s.Devices.ListByUser(userID)
}

func (s *DefaultUserService) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
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
