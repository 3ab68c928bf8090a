package repository

import (
	"context"

	"ticketflow-service/internal/domain/entity"
	"ticketflow-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPassengerRepository implements the PassengerRepository interface
// over a MongoDB collection. The roster contract is whole-collection
// read and write; the resolver serializes writers, so the replace here
// does not need to be transactional.
type MongoPassengerRepository struct {
	collection *mongo.Collection
}

// NewMongoPassengerRepository creates a new MongoDB passenger repository
func NewMongoPassengerRepository(db *mongo.Database) repository.PassengerRepository {
	return &MongoPassengerRepository{
		collection: db.Collection("passengers"),
	}
}

// ReadPassengers loads the whole roster
func (r *MongoPassengerRepository) ReadPassengers(ctx context.Context) ([]*entity.Passenger, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var passengers []*entity.Passenger
	if err := cursor.All(ctx, &passengers); err != nil {
		return nil, err
	}
	return passengers, nil
}

// WritePassengers replaces the whole roster
func (r *MongoPassengerRepository) WritePassengers(ctx context.Context, passengers []*entity.Passenger) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(passengers) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(passengers))
	for _, p := range passengers {
		docs = append(docs, p)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}
