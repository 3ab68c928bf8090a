package repository

import (
	"context"

	"ticketflow-service/internal/domain/entity"
)

// TimezoneRepository resolves an airport code to its timezone and
// location metadata.
type TimezoneRepository interface {
	GetByAirportCode(ctx context.Context, code string) (*entity.Timezone, error)
}
