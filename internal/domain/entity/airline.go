package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline maps an IATA flight-number prefix (AA, DL, ...) to a carrier
// display name.
type Airline struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
