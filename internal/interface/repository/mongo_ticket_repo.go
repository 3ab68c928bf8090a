package repository

import (
	"context"
	"fmt"
	"time"

	"ticketflow-service/internal/domain/entity"
	"ticketflow-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTicketRepository implements the TicketRepository interface
type MongoTicketRepository struct {
	collection *mongo.Collection
}

// NewMongoTicketRepository creates a new MongoDB ticket repository
func NewMongoTicketRepository(db *mongo.Database) repository.TicketRepository {
	collection := db.Collection("tickets")

	// Create indexes for better performance
	ctx := context.Background()

	// Index on processStatus for finding tickets by status
	processStatusIndex := mongo.IndexModel{
		Keys: bson.M{"processStatus": 1},
	}

	// Index on receivedAt for sorting and filtering
	receivedAtIndex := mongo.IndexModel{
		Keys: bson.M{"receivedAt": -1},
	}

	// Compound index for finding unprocessed tickets efficiently
	unprocessedIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "processStatus", Value: 1},
			{Key: "receivedAt", Value: 1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		processStatusIndex,
		receivedAtIndex,
		unprocessedIndex,
	})

	return &MongoTicketRepository{
		collection: collection,
	}
}

// Save saves a ticket to MongoDB
func (r *MongoTicketRepository) Save(ctx context.Context, ticket *entity.Ticket) error {
	if ticket.ID == "" {
		ticket.ID = primitive.NewObjectID().Hex()
	}
	if ticket.ProcessStatus == "" {
		ticket.ProcessStatus = entity.StatusPending
	}
	if ticket.ReceivedAt.IsZero() {
		ticket.ReceivedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, ticket)
	return err
}

// FindByID finds a ticket by ID
func (r *MongoTicketRepository) FindByID(ctx context.Context, id string) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindUnprocessed finds unprocessed tickets (PENDING status or empty)
func (r *MongoTicketRepository) FindUnprocessed(ctx context.Context, limit int) ([]*entity.Ticket, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"processStatus": ""},
			{"processStatus": entity.StatusPending},
			{"processStatus": bson.M{"$exists": false}},
		},
	}

	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, filter, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "receivedAt", Value: 1}}, // Process oldest first
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tickets []*entity.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}

	return tickets, nil
}

// UpdateStatus updates just the status and started time
func (r *MongoTicketRepository) UpdateStatus(ctx context.Context, id string, status string, startedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"processStatus": status,
		},
	}

	// Only set processStartedAt when moving to PROCESSING
	if status == entity.StatusProcessing && !startedAt.IsZero() {
		update["$set"].(bson.M)["processStartedAt"] = startedAt
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		update,
	)

	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no document found with id: %s", id)
	}

	return nil
}

// MarkAsProcessed marks a ticket as processed with full details
func (r *MongoTicketRepository) MarkAsProcessed(ctx context.Context, id, status, errorDetail string, extractedData map[string]interface{}) error {
	update := bson.M{
		"$set": bson.M{
			"processedAt":   time.Now(),
			"processStatus": status,
		},
	}

	if len(extractedData) > 0 {
		update["$set"].(bson.M)["extractedData"] = extractedData
	}

	if errorDetail != "" {
		update["$set"].(bson.M)["errorDetail"] = errorDetail
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		update,
	)

	if err != nil {
		return fmt.Errorf("failed to mark as processed: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no document found with id: %s", id)
	}

	return nil
}
