package deviceRepo

import (
	"context"
	"fmt"
	"time"

	"advoqat/database"
	"advoqat/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDeviceRepo implements DeviceRepository using MongoDB.
type MongoDeviceRepo struct {
	coll *mongo.Collection
}

// NewMongoDeviceRepo creates a new DeviceRepository backed by MongoDB.
func NewMongoDeviceRepo() DeviceRepository {
	coll := database.MongoClient.Database("advoqat").Collection("devices")
	repo := &MongoDeviceRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoDeviceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "device_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Upsert inserts or refreshes a device registration.
func (r *MongoDeviceRepo) Upsert(dev *models.Device) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	dev.UpdatedAt = time.Now()
	filter := bson.M{"user_id": dev.UserID, "device_id": dev.DeviceID}
	update := bson.M{"$set": dev}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert device %s: %w", dev.DeviceID, err)
	}
	return nil
}

// ListByUser returns all devices registered by the given user.
func (r *MongoDeviceRepo) ListByUser(userID string) ([]models.Device, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list devices for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var devices []models.Device
	if err := cursor.All(ctx, &devices); err != nil {
		return nil, fmt.Errorf("failed to decode devices: %w", err)
	}
	return devices, nil
}

// Delete removes a device registration.
func (r *MongoDeviceRepo) Delete(userID, deviceID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID, "device_id": deviceID})
	if err != nil {
		return fmt.Errorf("failed to delete device %s: %w", deviceID, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("device %s not found for user %s", deviceID, userID)
	}
	return nil
}
