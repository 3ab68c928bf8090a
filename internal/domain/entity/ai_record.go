package entity

// AIFlightRecord is the structured candidate record produced by the
// external AI vision extractor. The extractor marks unknown fields with
// the sentinel string "missing"; that sentinel never leaves the
// normalization boundary. A record may encode several itineraries through
// the Flights list, in which case the top-level fields are ignored.
type AIFlightRecord struct {
	FlightNumber     string           `json:"flightNumber,omitempty" bson:"flightNumber,omitempty"`
	Airline          string           `json:"airline,omitempty" bson:"airline,omitempty"`
	DepartureAirport string           `json:"departureAirport,omitempty" bson:"departureAirport,omitempty"`
	ArrivalAirport   string           `json:"arrivalAirport,omitempty" bson:"arrivalAirport,omitempty"`
	DepartureDate    string           `json:"departureDate,omitempty" bson:"departureDate,omitempty"`
	DepartureTime    string           `json:"departureTime,omitempty" bson:"departureTime,omitempty"`
	ArrivalDate      string           `json:"arrivalDate,omitempty" bson:"arrivalDate,omitempty"`
	ArrivalTime      string           `json:"arrivalTime,omitempty" bson:"arrivalTime,omitempty"`
	PassengerName    string           `json:"passengerName,omitempty" bson:"passengerName,omitempty"`
	PassengerNames   []string         `json:"passengerNames,omitempty" bson:"passengerNames,omitempty"`
	SeatNumbers      []string         `json:"seatNumbers,omitempty" bson:"seatNumbers,omitempty"`
	ConfirmationCode string           `json:"confirmationCode,omitempty" bson:"confirmationCode,omitempty"`
	Flights          []AIFlightRecord `json:"flights,omitempty" bson:"flights,omitempty"`
}
