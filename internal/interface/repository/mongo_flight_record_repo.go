package repository

import (
	"context"
	"time"

	"ticketflow-service/internal/domain/entity"
	"ticketflow-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightRecordRepository implements FlightRecordRepository
type MongoFlightRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRecordRepository creates a new flight record repository
func NewMongoFlightRecordRepository(db *mongo.Database) repository.FlightRecordRepository {
	collection := db.Collection("flight_records")

	// Create unique index on bookingKey
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"bookingKey": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	// Create index on ticketId for queries
	ticketIndex := mongo.IndexModel{
		Keys: bson.M{"ticketId": 1},
	}
	collection.Indexes().CreateOne(ctx, ticketIndex)

	return &MongoFlightRecordRepository{
		collection: collection,
	}
}

// FindByBookingKey finds a flight record by booking key
func (r *MongoFlightRecordRepository) FindByBookingKey(ctx context.Context, bookingKey string) (*entity.FlightRecord, error) {
	var record entity.FlightRecord
	err := r.collection.FindOne(ctx, bson.M{"bookingKey": bookingKey}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByTicketID finds all flight records produced from one ticket
func (r *MongoFlightRecordRepository) FindByTicketID(ctx context.Context, ticketID string) ([]*entity.FlightRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"ticketId": ticketID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.FlightRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Upsert creates or updates a flight record keyed by bookingKey, so
// reprocessing the same booking never duplicates records.
func (r *MongoFlightRecordRepository) Upsert(ctx context.Context, record *entity.FlightRecord) error {
	record.UpdatedAt = time.Now()

	// For new records
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
		record.CreatedAt = time.Now()
	}

	// Create a copy without ID for the update
	updateDoc := bson.M{
		"bookingKey":       record.BookingKey,
		"ticketId":         record.TicketID,
		"flightNumber":     record.FlightNumber,
		"airline":          record.Airline,
		"departureAirport": record.DepartureAirport,
		"arrivalAirport":   record.ArrivalAirport,
		"flightDate":       record.FlightDate,
		"departureUtc":     record.DepartureUTC,
		"arrivalUtc":       record.ArrivalUTC,
		"passengerId":      record.PassengerID,
		"passengerName":    record.PassengerName,
		"seatNumbers":      record.SeatNumbers,
		"confirmationCode": record.ConfirmationCode,
		"confidence":       record.Confidence,
		"parseStrategy":    record.ParseStrategy,
		"createdAt":        record.CreatedAt,
		"updatedAt":        record.UpdatedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"bookingKey": record.BookingKey}

	result, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{"$set": updateDoc},
		opts,
	)
	if err != nil {
		return err
	}

	// If it was an insert, we need to get the new ID
	if result.UpsertedCount > 0 && result.UpsertedID != nil {
		if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
			record.ID = oid.Hex()
		}
	}

	return nil
}
