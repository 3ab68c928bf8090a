// internal/domain/entity/flight_record.go
package entity

import (
	"time"
)

// FlightRecord is one resolved itinerary leg for one passenger. The
// booking key {passenger}:{reference}:{route} is the unique index.
type FlightRecord struct {
	ID               string     `bson:"_id,omitempty"`
	BookingKey       string     `bson:"bookingKey"`
	TicketID         string     `bson:"ticketId"`
	FlightNumber     string     `bson:"flightNumber"`
	Airline          string     `bson:"airline,omitempty"`
	DepartureAirport string     `bson:"departureAirport,omitempty"`
	ArrivalAirport   string     `bson:"arrivalAirport,omitempty"`
	FlightDate       string     `bson:"flightDate,omitempty"`
	DepartureUTC     *time.Time `bson:"departureUtc,omitempty"`
	ArrivalUTC       *time.Time `bson:"arrivalUtc,omitempty"`
	PassengerID      string     `bson:"passengerId"`
	PassengerName    string     `bson:"passengerName"`
	SeatNumbers      []string   `bson:"seatNumbers,omitempty"`
	ConfirmationCode string     `bson:"confirmationCode,omitempty"`
	Confidence       float64    `bson:"confidence"`
	ParseStrategy    string     `bson:"parseStrategy"`
	CreatedAt        time.Time  `bson:"createdAt"`
	UpdatedAt        time.Time  `bson:"updatedAt"`
}
