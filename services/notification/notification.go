package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// SendPush delivers a notification to every registered device of the user.
// A user with no registered devices is not an error; a send failure on every
// device is.
func (s *DefaultNotificationService) SendPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	devices, err := s.Devices.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("SendPush: could not list devices for user %s: %w", userID, err)
	}
	if len(devices) == 0 {
		s.Logger.Debug("no push targets for user", zap.String("userId", userID))
		return nil
	}

	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "client"
	}

	var delivered int
	for _, dev := range devices {
		if dev.FCMToken == "" {
			continue
		}
		msg := &messaging.Message{
			Token: dev.FCMToken,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
		}
		if _, err := s.Client.Send(ctx, msg); err != nil {
			s.Logger.Warn("push delivery failed",
				zap.String("userId", userID), zap.String("deviceId", dev.DeviceID), zap.Error(err))
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return fmt.Errorf("SendPush: no device accepted the message for user %s", userID)
	}
	return nil
}

// NotifyConsultationReminder sends the high-priority reminder push used by
// the reminder worker.
func (s *DefaultNotificationService) NotifyConsultationReminder(ctx context.Context, userID, lawyerName, method string, data map[string]string) error {
	devices, err := s.Devices.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("NotifyConsultationReminder: could not list devices for user %s: %w", userID, err)
	}
	if len(devices) == 0 {
		return nil
	}

	title := "Upcoming consultation"
	body := fmt.Sprintf("Your %s consultation with %s starts soon.", method, lawyerName)

	if data == nil {
		data = map[string]string{}
	}
	data["type"] = "consultation_reminder"

	var delivered int
	for _, dev := range devices {
		if dev.FCMToken == "" {
			continue
		}
		msg := &messaging.Message{
			Token: dev.FCMToken,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					ChannelID: "high_priority",
					Sound:     "default",
				},
			},
			APNS: &messaging.APNSConfig{
				Headers: map[string]string{
					"apns-priority":  "10",
					"apns-push-type": "alert",
				},
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Sound: "default",
					},
				},
			},
		}
		if _, err := s.Client.Send(ctx, msg); err != nil {
			s.Logger.Warn("reminder delivery failed",
				zap.String("userId", userID), zap.String("deviceId", dev.DeviceID), zap.Error(err))
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return fmt.Errorf("NotifyConsultationReminder: no device accepted the message for user %s", userID)
	}
	return nil
}
