package repository

import (
	"context"
	"time"

	"ticketflow-service/internal/domain/entity"
)

// TicketRepository defines the interface for ticket queue operations
type TicketRepository interface {
	Save(ctx context.Context, ticket *entity.Ticket) error
	FindByID(ctx context.Context, id string) (*entity.Ticket, error)
	FindUnprocessed(ctx context.Context, limit int) ([]*entity.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status string, startedAt time.Time) error
	MarkAsProcessed(ctx context.Context, id, status, errorDetail string, extractedData map[string]interface{}) error
}
