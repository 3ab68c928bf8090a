package entity

import (
	"time"

	"gorm.io/gorm"
)

// Timezone holds the civil timezone and location metadata for one
// airport code. TzName is an IANA zone name loadable with
// time.LoadLocation.
type Timezone struct {
	ID          uint
	AirportCode string
	AirportName string
	CityCode    string
	CityName    string
	GmtTz       string
	TzName      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}
