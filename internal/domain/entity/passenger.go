package entity

import (
	"time"
)

// Passenger is one known identity in the roster. ExtractedNames is the
// history of raw ticket extractions that resolved to this identity,
// deduplicated case- and whitespace-insensitively.
type Passenger struct {
	ID             string    `bson:"_id,omitempty"`
	Name           string    `bson:"name"`
	LegalName      string    `bson:"legalName,omitempty"`
	ExtractedNames []string  `bson:"extractedNames"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}
