package paymentRepo

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

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo creates a new PaymentRepository backed by MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	coll := database.MongoClient.Database("advoqat").Collection("payments")
	repo := &MongoPaymentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "session_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new payment record.
func (r *MongoPaymentRepo) Create(rec *models.PaymentRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to create payment record: %w", err)
	}
	return nil
}

// GetBySessionID retrieves a payment record by checkout session id.
func (r *MongoPaymentRepo) GetBySessionID(sessionID string) (*models.PaymentRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rec models.PaymentRecord
	if err := r.coll.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to fetch payment for session %s: %w", sessionID, err)
	}
	return &rec, nil
}

// ListByUser returns a user's payment history, newest first.
func (r *MongoPaymentRepo) ListByUser(userID string) ([]models.PaymentRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var recs []models.PaymentRecord
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode payment records: %w", err)
	}
	return recs, nil
}

// UpdateStatus transitions a payment record to the given status.
func (r *MongoPaymentRepo) UpdateStatus(sessionID, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"session_id": sessionID}, update)
	if err != nil {
		return fmt.Errorf("failed to update payment for session %s: %w", sessionID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("payment for session %s not found", sessionID)
	}
	return nil
}
