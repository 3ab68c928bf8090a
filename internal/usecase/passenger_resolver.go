package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ticketflow-service/internal/domain/entity"
	"ticketflow-service/internal/domain/repository"
	"ticketflow-service/pkg/logger"
	"ticketflow-service/pkg/names"
)

// Resolution is the outcome of resolving one extracted name: the
// passenger it now maps to (nil only for blank names), how the match was
// made, and whether the passenger was created by this resolution.
type Resolution struct {
	Passenger *entity.Passenger
	Match     entity.MatchResult
	Created   bool
}

// PassengerResolver turns extracted names into passenger identities:
// match against the roster, record the raw spelling on the matched
// passenger's history, or create a new passenger when nothing matches.
// All roster mutation funnels through a single read-match-write critical
// section so concurrent resolutions cannot lose updates.
type PassengerResolver struct {
	passengerRepo repository.PassengerRepository
	matcher       *PassengerMatcher
	logger        logger.Logger

	mu sync.Mutex
}

// NewPassengerResolver creates a passenger resolver
func NewPassengerResolver(passengerRepo repository.PassengerRepository, matcher *PassengerMatcher, log logger.Logger) *PassengerResolver {
	return &PassengerResolver{
		passengerRepo: passengerRepo,
		matcher:       matcher,
		logger:        log,
	}
}

// Resolve resolves a single extracted name.
func (r *PassengerResolver) Resolve(ctx context.Context, extractedName string) (*Resolution, error) {
	resolutions, err := r.ResolveAll(ctx, []string{extractedName})
	if err != nil {
		return nil, err
	}
	return resolutions[0], nil
}

// ResolveAll resolves a batch of extracted names against one roster
// snapshot: a single read up front, matching against the evolving
// in-memory roster so a passenger created for one name is visible to the
// next, and a single write at the end, skipped when nothing changed.
func (r *PassengerResolver) ResolveAll(ctx context.Context, extractedNames []string) ([]*Resolution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	roster, err := r.passengerRepo.ReadPassengers(ctx)
	if err != nil {
		return nil, err
	}

	resolutions := make([]*Resolution, 0, len(extractedNames))
	dirty := false

	for _, extractedName := range extractedNames {
		trimmed := strings.TrimSpace(extractedName)
		if trimmed == "" {
			resolutions = append(resolutions, &Resolution{
				Match: entity.MatchResult{Type: entity.MatchNone, ExtractedName: extractedName},
			})
			continue
		}

		match := r.matcher.Match(trimmed, roster)
		if match.Passenger != nil {
			// An extracted_existing hit means this spelling is already
			// recorded; only the other strategies learn a new one.
			if match.Type != entity.MatchExtractedExisting && appendExtractedName(match.Passenger, trimmed) {
				dirty = true
			}
			resolutions = append(resolutions, &Resolution{
				Passenger: match.Passenger,
				Match:     match,
			})
			continue
		}

		created := newPassenger(trimmed)
		roster = append(roster, created)
		dirty = true
		r.logger.Info("Passenger created", "passengerId", created.ID, "name", created.Name)
		resolutions = append(resolutions, &Resolution{
			Passenger: created,
			Match:     match,
			Created:   true,
		})
	}

	if dirty {
		if err := r.passengerRepo.WritePassengers(ctx, roster); err != nil {
			return nil, err
		}
	}
	return resolutions, nil
}

// appendExtractedName records a raw spelling on the passenger's history
// unless an equivalent spelling is already there. Equivalence is
// case-insensitive with collapsed whitespace; honorifics are kept so
// distinct raw spellings stay distinguishable.
func appendExtractedName(p *entity.Passenger, extractedName string) bool {
	key := names.Key(extractedName)
	for _, seen := range p.ExtractedNames {
		if names.Key(seen) == key {
			return false
		}
	}
	p.ExtractedNames = append(p.ExtractedNames, extractedName)
	p.UpdatedAt = time.Now().UTC()
	return true
}

func newPassenger(name string) *entity.Passenger {
	now := time.Now().UTC()
	return &entity.Passenger{
		ID:             uuid.NewString(),
		Name:           name,
		LegalName:      name,
		ExtractedNames: []string{name},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
