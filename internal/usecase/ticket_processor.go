package usecase

import (
	"context"
	"fmt"
	"time"

	"ticketflow-service/internal/domain/entity"
	"ticketflow-service/internal/domain/repository"
	"ticketflow-service/pkg/extract"
	"ticketflow-service/pkg/logger"
	"ticketflow-service/pkg/metrics"
	"ticketflow-service/pkg/names"
)

// processBatchSize caps how many pending tickets one pass picks up.
const processBatchSize = 100

// TicketProcessor drains the ticket queue: extract flight attributes
// (regex parsing for OCR tickets, normalization for AI tickets), resolve
// every passenger name, and upsert one flight record per passenger per
// leg, keyed so reprocessing the same booking never duplicates records.
type TicketProcessor struct {
	ticketRepo       repository.TicketRepository
	flightRecordRepo repository.FlightRecordRepository
	airlineRepo      repository.AirlineRepository
	parser           *extract.TicketParser
	aiNormalizer     *extract.AINormalizer
	resolver         *PassengerResolver
	metrics          *metrics.Metrics
	logger           logger.Logger
}

// NewTicketProcessor creates a ticket processor with dependencies
func NewTicketProcessor(
	ticketRepo repository.TicketRepository,
	flightRecordRepo repository.FlightRecordRepository,
	airlineRepo repository.AirlineRepository,
	parser *extract.TicketParser,
	aiNormalizer *extract.AINormalizer,
	resolver *PassengerResolver,
	m *metrics.Metrics,
	log logger.Logger,
) *TicketProcessor {
	return &TicketProcessor{
		ticketRepo:       ticketRepo,
		flightRecordRepo: flightRecordRepo,
		airlineRepo:      airlineRepo,
		parser:           parser,
		aiNormalizer:     aiNormalizer,
		resolver:         resolver,
		metrics:          m,
		logger:           log,
	}
}

// ProcessPendingTickets picks up one batch of unprocessed tickets and
// processes them in order. A ticket that fails is marked and skipped; it
// never aborts the batch.
func (p *TicketProcessor) ProcessPendingTickets(ctx context.Context) error {
	tickets, err := p.ticketRepo.FindUnprocessed(ctx, processBatchSize)
	if err != nil {
		p.metrics.ErrorsCount.WithLabelValues("find_unprocessed").Inc()
		return fmt.Errorf("failed to fetch unprocessed tickets: %w", err)
	}
	if len(tickets) == 0 {
		return nil
	}

	p.logger.Info("Processing ticket batch", "count", len(tickets))
	for _, ticket := range tickets {
		if err := p.ProcessTicket(ctx, ticket); err != nil {
			p.metrics.ErrorsCount.WithLabelValues("process_ticket").Inc()
			p.logger.Error("Ticket processing failed", "ticketId", ticket.ID, "error", err)
		}
	}
	return nil
}

// ProcessTicket runs the full pipeline for one ticket. A ticket whose
// extraction yields neither a flight number nor a passenger name on any
// leg is marked SKIPPED, not FAILED: the document was readable, it just
// was not usable.
func (p *TicketProcessor) ProcessTicket(ctx context.Context, ticket *entity.Ticket) error {
	start := time.Now()
	defer func() {
		p.metrics.ProcessingTime.Observe(time.Since(start).Seconds())
	}()

	if err := p.ticketRepo.UpdateStatus(ctx, ticket.ID, entity.StatusProcessing, start.UTC()); err != nil {
		return fmt.Errorf("failed to mark ticket processing: %w", err)
	}

	flights, err := p.extractFlights(ctx, ticket)
	if err != nil {
		return p.fail(ctx, ticket, err)
	}

	var usable []*extract.ExtractedFlight
	for _, flight := range flights {
		if flight.FlightNumber != "" || len(flight.AllPassengerNames) > 0 {
			usable = append(usable, flight)
		}
	}
	if len(usable) == 0 {
		p.logger.Warn("Ticket has no usable flight data", "ticketId", ticket.ID, "source", ticket.Source)
		p.metrics.TicketsProcessed.Inc()
		return p.ticketRepo.MarkAsProcessed(ctx, ticket.ID, entity.StatusSkipped,
			"no flight number or passenger name extracted", extractionSummary(flights))
	}

	for _, flight := range usable {
		if err := p.processFlight(ctx, ticket, flight); err != nil {
			return p.fail(ctx, ticket, err)
		}
		p.metrics.FlightsExtracted.Inc()
	}

	p.metrics.TicketsProcessed.Inc()
	p.logger.Info("Ticket processed",
		"ticketId", ticket.ID,
		"source", ticket.Source,
		"flights", len(usable),
		"durationMs", time.Since(start).Milliseconds())
	return p.ticketRepo.MarkAsProcessed(ctx, ticket.ID, entity.StatusCompleted, "", extractionSummary(usable))
}

func (p *TicketProcessor) extractFlights(ctx context.Context, ticket *entity.Ticket) ([]*extract.ExtractedFlight, error) {
	switch ticket.Source {
	case entity.SourceAI:
		if ticket.AIRecord == nil {
			return nil, fmt.Errorf("ai ticket %s has no record", ticket.ID)
		}
		result := p.aiNormalizer.Normalize(ctx, ticket.AIRecord)
		if result.MultipleFlights {
			p.logger.Info("Multi-flight ticket", "ticketId", ticket.ID, "legs", len(result.Flights))
		}
		return result.Flights, nil
	default:
		return []*extract.ExtractedFlight{p.parser.Parse(ticket.RawText)}, nil
	}
}

func (p *TicketProcessor) processFlight(ctx context.Context, ticket *entity.Ticket, flight *extract.ExtractedFlight) error {
	airlineName := p.airlineName(ctx, flight)

	if len(flight.AllPassengerNames) == 0 {
		record := p.buildFlightRecord(ticket.ID, flight, airlineName, nil)
		return p.flightRecordRepo.Upsert(ctx, record)
	}

	resolutions, err := p.resolver.ResolveAll(ctx, flight.AllPassengerNames)
	if err != nil {
		return fmt.Errorf("failed to resolve passengers: %w", err)
	}

	for _, res := range resolutions {
		if res.Passenger == nil {
			continue
		}
		p.metrics.PassengersMatched.WithLabelValues(string(res.Match.Type)).Inc()
		if res.Created {
			p.metrics.PassengersCreated.Inc()
		}
		record := p.buildFlightRecord(ticket.ID, flight, airlineName, res)
		if err := p.flightRecordRepo.Upsert(ctx, record); err != nil {
			return fmt.Errorf("failed to upsert flight record: %w", err)
		}
	}
	return nil
}

// airlineName prefers the airline extracted from the document, falling
// back to looking up the flight number's carrier prefix. Lookup failure
// degrades to an empty name, never an error.
func (p *TicketProcessor) airlineName(ctx context.Context, flight *extract.ExtractedFlight) string {
	if flight.Airline != "" {
		return flight.Airline
	}
	if len(flight.FlightNumber) < 2 {
		return ""
	}
	code := flight.FlightNumber[:2]
	airline, err := p.airlineRepo.GetByCode(ctx, code)
	if err != nil {
		p.logger.Debug("Airline code not found", "code", code, "error", err)
		return ""
	}
	return airline.Name
}

func (p *TicketProcessor) buildFlightRecord(ticketID string, flight *extract.ExtractedFlight, airlineName string, res *Resolution) *entity.FlightRecord {
	now := time.Now().UTC()
	record := &entity.FlightRecord{
		TicketID:         ticketID,
		FlightNumber:     flight.FlightNumber,
		Airline:          airlineName,
		DepartureAirport: flight.From,
		ArrivalAirport:   flight.To,
		FlightDate:       flight.Date,
		DepartureUTC:     flight.DepartureDateTime,
		ArrivalUTC:       flight.ArrivalDateTime,
		SeatNumbers:      flight.SeatNumbers,
		ConfirmationCode: flight.ConfirmationCode,
		Confidence:       flight.Confidence,
		ParseStrategy:    flight.ParseStrategy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	passengerName := ""
	if res != nil {
		record.PassengerID = res.Passenger.ID
		record.PassengerName = res.Passenger.Name
		passengerName = res.Match.ExtractedName
	}
	record.BookingKey = bookingKey(passengerName, flight)
	return record
}

// bookingKey builds the dedup key for one passenger on one leg. The
// confirmation code identifies the booking when present; the flight
// number stands in when it is not.
func bookingKey(passengerName string, flight *extract.ExtractedFlight) string {
	reference := flight.ConfirmationCode
	if reference == "" {
		reference = flight.FlightNumber
	}
	return fmt.Sprintf("%s:%s:%s-%s", names.Normalize(passengerName), reference, flight.From, flight.To)
}

func extractionSummary(flights []*extract.ExtractedFlight) map[string]interface{} {
	summary := map[string]interface{}{
		"flightCount": len(flights),
	}
	legs := make([]map[string]interface{}, 0, len(flights))
	for _, f := range flights {
		legs = append(legs, map[string]interface{}{
			"flightNumber":     f.FlightNumber,
			"from":             f.From,
			"to":               f.To,
			"date":             f.Date,
			"passengerNames":   f.AllPassengerNames,
			"confidence":       f.Confidence,
			"fieldConfidences": f.FieldConfidences,
			"parseStrategy":    f.ParseStrategy,
		})
	}
	summary["flights"] = legs
	return summary
}

func (p *TicketProcessor) fail(ctx context.Context, ticket *entity.Ticket, cause error) error {
	if err := p.ticketRepo.MarkAsProcessed(ctx, ticket.ID, entity.StatusFailed, cause.Error(), nil); err != nil {
		p.logger.Error("Failed to mark ticket failed", "ticketId", ticket.ID, "error", err)
	}
	return cause
}
