package repository

import (
	"context"

	"ticketflow-service/internal/domain/entity"
)

// PassengerRepository is the roster store. The contract is deliberately
// coarse: read the whole collection, write the whole collection. No
// per-record atomicity is assumed; callers serialize mutations.
type PassengerRepository interface {
	ReadPassengers(ctx context.Context) ([]*entity.Passenger, error)
	WritePassengers(ctx context.Context, passengers []*entity.Passenger) error
}
