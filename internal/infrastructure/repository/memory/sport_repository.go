package memory

import (
	"context"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
)

// upsertByKey stores each item under its id, reusing the id of an existing
// item with the same natural key.
func upsertByKey[T any](items map[string]T, incoming []T, key func(T) string, id func(T) string, withID func(T, string) T) {
	existing := make(map[string]string, len(items))
	for itemID, item := range items {
		existing[key(item)] = itemID
	}
	for _, item := range incoming {
		if currentID, ok := existing[key(item)]; ok {
			item = withID(item, currentID)
		}
		items[id(item)] = item
		existing[key(item)] = id(item)
	}
}

type SportLeagueRepository struct {
	s *Store
}

func NewSportLeagueRepository(s *Store) *SportLeagueRepository {
	return &SportLeagueRepository{s: s}
}

func (r *SportLeagueRepository) Upsert(_ context.Context, _ database.Handle, leagues []sport.League) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	upsertByKey(r.s.sportLeagues, leagues,
		func(l sport.League) string { return l.ESPNID },
		func(l sport.League) string { return l.ID },
		func(l sport.League, id string) sport.League { l.ID = id; return l })
	return nil
}

func (r *SportLeagueRepository) List(_ context.Context, _ database.Handle) ([]sport.League, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return sortedValues(r.s.sportLeagues, nil, func(a, b sport.League) bool { return a.Name < b.Name }), nil
}

func (r *SportLeagueRepository) GetByID(_ context.Context, _ database.Handle, leagueID string) (sport.League, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.sportLeagues[leagueID]
	return l, ok, nil
}

type SportSeasonRepository struct {
	s *Store
}

func NewSportSeasonRepository(s *Store) *SportSeasonRepository {
	return &SportSeasonRepository{s: s}
}

func (r *SportSeasonRepository) Upsert(_ context.Context, _ database.Handle, seasons []sport.Season) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	upsertByKey(r.s.seasons, seasons,
		func(s sport.Season) string { return s.SportLeagueID + "/" + s.ESPNID },
		func(s sport.Season) string { return s.ID },
		func(s sport.Season, id string) sport.Season { s.ID = id; return s })
	return nil
}

func (r *SportSeasonRepository) GetByID(_ context.Context, _ database.Handle, seasonID string) (sport.Season, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	s, ok := r.s.seasons[seasonID]
	return s, ok, nil
}

func (r *SportSeasonRepository) ListByLeague(_ context.Context, _ database.Handle, sportLeagueID string) ([]sport.Season, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return sortedValues(r.s.seasons,
		func(s sport.Season) bool { return s.SportLeagueID == sportLeagueID },
		func(a, b sport.Season) bool { return a.StartTime.After(b.StartTime) }), nil
}

type SportTeamRepository struct {
	s *Store
}

func NewSportTeamRepository(s *Store) *SportTeamRepository {
	return &SportTeamRepository{s: s}
}

func (r *SportTeamRepository) Upsert(_ context.Context, _ database.Handle, teams []sport.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	upsertByKey(r.s.teams, teams,
		func(t sport.Team) string { return t.SportLeagueID + "/" + t.ESPNID },
		func(t sport.Team) string { return t.ID },
		func(t sport.Team, id string) sport.Team { t.ID = id; return t })
	return nil
}

func (r *SportTeamRepository) ListByLeague(_ context.Context, _ database.Handle, sportLeagueID string) ([]sport.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return sortedValues(r.s.teams,
		func(t sport.Team) bool { return t.SportLeagueID == sportLeagueID },
		func(a, b sport.Team) bool {
			if a.Location != b.Location {
				return a.Location < b.Location
			}
			return a.Name < b.Name
		}), nil
}

type SportWeekRepository struct {
	s *Store
}

func NewSportWeekRepository(s *Store) *SportWeekRepository {
	return &SportWeekRepository{s: s}
}

func (r *SportWeekRepository) Upsert(_ context.Context, _ database.Handle, weeks []sport.Week) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	upsertByKey(r.s.weeks, weeks,
		func(w sport.Week) string { return w.SeasonID + "/" + w.ESPNID },
		func(w sport.Week) string { return w.ID },
		func(w sport.Week, id string) sport.Week { w.ID = id; return w })
	return nil
}

func (r *SportWeekRepository) GetByID(_ context.Context, _ database.Handle, weekID string) (sport.Week, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w, ok := r.s.weeks[weekID]
	return w, ok, nil
}

func (r *SportWeekRepository) ListBySeason(_ context.Context, _ database.Handle, seasonID string) ([]sport.Week, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return sortedValues(r.s.weeks,
		func(w sport.Week) bool { return w.SeasonID == seasonID },
		func(a, b sport.Week) bool {
			if !a.StartTime.Equal(b.StartTime) {
				return a.StartTime.Before(b.StartTime)
			}
			return a.ID < b.ID
		}), nil
}

type SportGameRepository struct {
	s *Store
}

func NewSportGameRepository(s *Store) *SportGameRepository {
	return &SportGameRepository{s: s}
}

func (r *SportGameRepository) Upsert(_ context.Context, _ database.Handle, games []sport.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	upsertByKey(r.s.games, games,
		func(g sport.Game) string { return g.ESPNEventID },
		func(g sport.Game) string { return g.ID },
		func(g sport.Game, id string) sport.Game { g.ID = id; return g })
	return nil
}

func (r *SportGameRepository) GetByID(_ context.Context, _ database.Handle, gameID string) (sport.Game, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	g, ok := r.s.games[gameID]
	return g, ok, nil
}

func (r *SportGameRepository) ListByWeeks(_ context.Context, _ database.Handle, weekIDs []string) ([]sport.Game, error) {
	wanted := make(map[string]struct{}, len(weekIDs))
	for _, id := range weekIDs {
		wanted[id] = struct{}{}
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return sortedValues(r.s.games,
		func(g sport.Game) bool {
			_, ok := wanted[g.WeekID]
			return ok
		},
		gameLess), nil
}

func (r *SportGameRepository) ListStartingBetween(_ context.Context, _ database.Handle, from, to time.Time) ([]sport.Game, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return sortedValues(r.s.games,
		func(g sport.Game) bool { return !g.StartTime.Before(from) && !g.StartTime.After(to) },
		gameLess), nil
}

func gameLess(a, b sport.Game) bool {
	if !a.StartTime.Equal(b.StartTime) {
		return a.StartTime.Before(b.StartTime)
	}
	return a.ID < b.ID
}

type SportOddsRepository struct {
	s   *Store
	now func() time.Time
}

func NewSportOddsRepository(s *Store) *SportOddsRepository {
	return &SportOddsRepository{s: s, now: time.Now}
}

func (r *SportOddsRepository) Upsert(_ context.Context, _ database.Handle, odds []sport.Odds) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.now()
	stamped := make([]sport.Odds, 0, len(odds))
	for _, o := range odds {
		o.UpdatedAt = now
		stamped = append(stamped, o)
	}
	upsertByKey(r.s.odds, stamped,
		func(o sport.Odds) string { return o.GameID + "/" + o.ProviderESPNID },
		func(o sport.Odds) string { return o.ID },
		func(o sport.Odds, id string) sport.Odds { o.ID = id; return o })
	return nil
}

func (r *SportOddsRepository) ListByGames(_ context.Context, _ database.Handle, gameIDs []string) ([]sport.Odds, error) {
	wanted := make(map[string]struct{}, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = struct{}{}
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return sortedValues(r.s.odds,
		func(o sport.Odds) bool {
			_, ok := wanted[o.GameID]
			return ok
		},
		func(a, b sport.Odds) bool {
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.After(b.UpdatedAt)
			}
			return a.ProviderESPNID < b.ProviderESPNID
		}), nil
}
