package deviceRepo

import "advoqat/models"

// DeviceRepository stores push-capable devices registered by users.
type DeviceRepository interface {
	Upsert(dev *models.Device) error
	ListByUser(userID string) ([]models.Device, error)
	Delete(userID, deviceID string) error
}
