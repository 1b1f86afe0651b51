package notification

import (
	"context"
	"fmt"

	deviceRepo "advoqat/database/repository/device"
	"advoqat/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Sender sends one FCM message. Satisfied by *messaging.Client.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NotificationService defines methods for sending FCM pushes to a user's
// registered devices.
type NotificationService interface {
	SendPush(ctx context.Context, userID, title, body string, data map[string]string) error
	NotifyConsultationReminder(ctx context.Context, userID, lawyerName, method string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Devices deviceRepo.DeviceRepository
	Client  Sender
	Logger  *zap.Logger
}

func NewDefaultNotificationService(devices deviceRepo.DeviceRepository, logger *zap.Logger) (*DefaultNotificationService, error) {
	if utils.FCMClient == nil {
		return nil, fmt.Errorf("notification service initialization error: FCM client not initialized")
	}
	return &DefaultNotificationService{
		Devices: devices,
		Client:  utils.FCMClient,
		Logger:  logger,
	}, nil
}
