package user

import (
	"context"

	deviceRepo "advoqat/database/repository/device"
	"advoqat/models"

	"go.uber.org/zap"
)

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// UserService exposes profile access and push-device registration.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*models.UserProfile, error)
	RegisterDevice(dev models.Device) error
	UnregisterDevice(userID, deviceID string) error
	GetDevices(userID string) ([]models.Device, error)
}

// DefaultUserService is the production implementation. Profiles live in the
// core platform API; devices are stored locally.
type DefaultUserService struct {
	BaseURL string
	Devices deviceRepo.DeviceRepository
	Logger  *zap.Logger
}
