package usecase

import (
	"context"
	"testing"

	"ticketflow-service/internal/domain/entity"
	"ticketflow-service/pkg/logger"
)

type fakePassengerRepo struct {
	roster []*entity.Passenger
	reads  int
	writes int
}

func (f *fakePassengerRepo) ReadPassengers(_ context.Context) ([]*entity.Passenger, error) {
	f.reads++
	out := make([]*entity.Passenger, len(f.roster))
	copy(out, f.roster)
	return out, nil
}

func (f *fakePassengerRepo) WritePassengers(_ context.Context, passengers []*entity.Passenger) error {
	f.writes++
	f.roster = passengers
	return nil
}

func newTestResolver(repo *fakePassengerRepo) *PassengerResolver {
	return NewPassengerResolver(repo, newTestMatcher(nil), logger.NewNop())
}

func TestResolveCreatesPassengerOnNoMatch(t *testing.T) {
	repo := &fakePassengerRepo{roster: []*entity.Passenger{
		passenger("p1", "John Smith", "John Smith"),
	}}
	r := newTestResolver(repo)

	res, err := r.Resolve(context.Background(), "Jon Smyth")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Created {
		t.Fatal("Created = false, want true")
	}
	if res.Match.Type != entity.MatchNone {
		t.Errorf("Match.Type = %s, want %s", res.Match.Type, entity.MatchNone)
	}
	if res.Passenger == nil || res.Passenger.ID == "" {
		t.Fatalf("created passenger = %v, want non-nil with generated id", res.Passenger)
	}
	if res.Passenger.Name != "Jon Smyth" || res.Passenger.LegalName != "Jon Smyth" {
		t.Errorf("created names = %q/%q, want Jon Smyth for both", res.Passenger.Name, res.Passenger.LegalName)
	}
	if len(res.Passenger.ExtractedNames) != 1 || res.Passenger.ExtractedNames[0] != "Jon Smyth" {
		t.Errorf("ExtractedNames = %v, want [Jon Smyth]", res.Passenger.ExtractedNames)
	}
	if len(repo.roster) != 2 {
		t.Errorf("roster size = %d, want 2 after creation", len(repo.roster))
	}
	if repo.writes != 1 {
		t.Errorf("writes = %d, want 1", repo.writes)
	}
}

func TestResolveRecordsSpellingOnMatch(t *testing.T) {
	repo := &fakePassengerRepo{roster: []*entity.Passenger{
		passenger("p1", "John Smith", "John Smith", "John Smith"),
	}}
	r := newTestResolver(repo)

	res, err := r.Resolve(context.Background(), "MR JOHN SMITH")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Created {
		t.Error("Created = true, want false for a match")
	}
	if res.Match.Type != entity.MatchLegalExact {
		t.Errorf("Match.Type = %s, want %s", res.Match.Type, entity.MatchLegalExact)
	}
	want := []string{"John Smith", "MR JOHN SMITH"}
	got := res.Passenger.ExtractedNames
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ExtractedNames = %v, want %v", got, want)
	}
	if repo.writes != 1 {
		t.Errorf("writes = %d, want 1", repo.writes)
	}

	// The same spelling again changes nothing and skips the write.
	if _, err := r.Resolve(context.Background(), "mr john smith"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res.Passenger.ExtractedNames) != 2 {
		t.Errorf("ExtractedNames = %v, want no duplicate", res.Passenger.ExtractedNames)
	}
	if repo.writes != 1 {
		t.Errorf("writes = %d, want 1 (unchanged roster must not be rewritten)", repo.writes)
	}
}

func TestResolveAllSharesOneSnapshot(t *testing.T) {
	repo := &fakePassengerRepo{}
	r := newTestResolver(repo)

	resolutions, err := r.ResolveAll(context.Background(),
		[]string{"Alice Wong", "ALICE WONG", "Wong, Alice"})
	if err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}
	if len(resolutions) != 3 {
		t.Fatalf("got %d resolutions, want 3", len(resolutions))
	}
	if !resolutions[0].Created {
		t.Error("first name should create the passenger")
	}
	// Later names in the batch see the passenger created for the first.
	if resolutions[1].Created || resolutions[1].Match.Type != entity.MatchLegalExact {
		t.Errorf("second resolution = %+v, want legal exact against the new passenger", resolutions[1].Match)
	}
	if resolutions[2].Created || resolutions[2].Match.Type != entity.MatchNameOrderVariation {
		t.Errorf("third resolution = %+v, want order variation against the new passenger", resolutions[2].Match)
	}
	for _, res := range resolutions[1:] {
		if res.Passenger != resolutions[0].Passenger {
			t.Error("all resolutions should map to the same passenger")
		}
	}

	if repo.reads != 1 || repo.writes != 1 {
		t.Errorf("reads/writes = %d/%d, want 1/1 for the whole batch", repo.reads, repo.writes)
	}
	if len(repo.roster) != 1 {
		t.Errorf("roster size = %d, want 1", len(repo.roster))
	}
}

func TestResolveExtractedExistingSkipsWrite(t *testing.T) {
	repo := &fakePassengerRepo{roster: []*entity.Passenger{
		passenger("p1", "Robert Smith", "Robert Smith", "MR BOB SMITH"),
	}}
	r := newTestResolver(repo)

	res, err := r.Resolve(context.Background(), "Bob Smith")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Match.Type != entity.MatchExtractedExisting {
		t.Fatalf("Match.Type = %s, want %s", res.Match.Type, entity.MatchExtractedExisting)
	}
	if len(res.Passenger.ExtractedNames) != 1 {
		t.Errorf("ExtractedNames = %v, want untouched history", res.Passenger.ExtractedNames)
	}
	if repo.writes != 0 {
		t.Errorf("writes = %d, want 0 for an already-known spelling", repo.writes)
	}
}

func TestResolveBlankName(t *testing.T) {
	repo := &fakePassengerRepo{}
	r := newTestResolver(repo)

	res, err := r.Resolve(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Passenger != nil || res.Created {
		t.Errorf("resolution = %+v, want nil passenger and no creation", res)
	}
	if res.Match.Type != entity.MatchNone {
		t.Errorf("Match.Type = %s, want %s", res.Match.Type, entity.MatchNone)
	}
	if repo.writes != 0 {
		t.Errorf("writes = %d, want 0", repo.writes)
	}
}
