package documentRepo

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

// MongoDocumentRepo implements DocumentRepository using MongoDB.
type MongoDocumentRepo struct {
	coll *mongo.Collection
}

// NewMongoDocumentRepo creates a new DocumentRepository backed by MongoDB.
func NewMongoDocumentRepo() DocumentRepository {
	coll := database.MongoClient.Database("advoqat").Collection("documents")
	repo := &MongoDocumentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoDocumentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "checkout_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new document record.
func (r *MongoDocumentRepo) Create(doc *models.GeneratedDocument) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// GetByID retrieves a document by its unique ID.
func (r *MongoDocumentRepo) GetByID(id string) (*models.GeneratedDocument, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc models.GeneratedDocument
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to fetch document with id %s: %w", id, err)
	}
	return &doc, nil
}

// GetByCheckoutID retrieves the document gated behind a checkout session.
func (r *MongoDocumentRepo) GetByCheckoutID(checkoutID string) (*models.GeneratedDocument, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc models.GeneratedDocument
	if err := r.coll.FindOne(ctx, bson.M{"checkout_id": checkoutID}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to fetch document for checkout %s: %w", checkoutID, err)
	}
	return &doc, nil
}

// ListByUser returns all documents generated by the given user, newest first.
func (r *MongoDocumentRepo) ListByUser(userID string) ([]models.GeneratedDocument, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var docs []models.GeneratedDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}

// Update modifies an existing document record.
func (r *MongoDocumentRepo) Update(doc *models.GeneratedDocument) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	doc.UpdatedAt = time.Now()
	filter := bson.M{"id": doc.ID}
	update := bson.M{"$set": doc}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update document with id %s: %w", doc.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("document with id %s not found", doc.ID)
	}
	return nil
}

// Delete removes a document record by its ID.
func (r *MongoDocumentRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete document with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("document with id %s not found", id)
	}
	return nil
}
