package memory

import (
	"context"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/ingestionrun"
	"github.com/picksleagues/picks-leagues/internal/domain/pick"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
)

type PickRepository struct {
	s *Store
}

func NewPickRepository(s *Store) *PickRepository {
	return &PickRepository{s: s}
}

func (r *PickRepository) ReplaceForWeek(_ context.Context, _ database.Handle, leagueID, userID, weekID string, picks []pick.Pick) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, p := range r.s.picks {
		if p.LeagueID == leagueID && p.UserID == userID && p.WeekID == weekID {
			delete(r.s.picks, id)
		}
	}
	now := time.Now()
	for _, p := range picks {
		p.LeagueID, p.UserID, p.WeekID = leagueID, userID, weekID
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		r.s.picks[p.ID] = p
	}
	return nil
}

func (r *PickRepository) ListByWeek(_ context.Context, _ database.Handle, leagueID, weekID string) ([]pick.Pick, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return sortedValues(r.s.picks,
		func(p pick.Pick) bool { return p.LeagueID == leagueID && p.WeekID == weekID },
		pickLess), nil
}

func (r *PickRepository) ListByLeague(_ context.Context, _ database.Handle, leagueID string, weekIDs []string) ([]pick.Pick, error) {
	wanted := make(map[string]struct{}, len(weekIDs))
	for _, id := range weekIDs {
		wanted[id] = struct{}{}
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return sortedValues(r.s.picks,
		func(p pick.Pick) bool {
			_, ok := wanted[p.WeekID]
			return p.LeagueID == leagueID && ok
		},
		pickLess), nil
}

func pickLess(a, b pick.Pick) bool {
	if a.UserID != b.UserID {
		return a.UserID < b.UserID
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.GameID < b.GameID
}

type IngestionRunRepository struct {
	s *Store
}

func NewIngestionRunRepository(s *Store) *IngestionRunRepository {
	return &IngestionRunRepository{s: s}
}

func (r *IngestionRunRepository) Create(_ context.Context, _ database.Handle, run ingestionrun.Run) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.runs = append(r.s.runs, run)
	return nil
}

func (r *IngestionRunRepository) Finish(_ context.Context, _ database.Handle, run ingestionrun.Run) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.runs {
		if r.s.runs[i].ID == run.ID {
			r.s.runs[i] = run
			return nil
		}
	}
	r.s.runs = append(r.s.runs, run)
	return nil
}

func (r *IngestionRunRepository) ListRecent(_ context.Context, _ database.Handle, limit int) ([]ingestionrun.Run, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	out := make([]ingestionrun.Run, 0, limit)
	for i := len(r.s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.s.runs[i])
	}
	return out, nil
}
