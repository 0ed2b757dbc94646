// Package cache decorates read-heavy repositories with process-local TTL caches.
package cache

import (
	"context"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	basecache "github.com/picksleagues/picks-leagues/internal/platform/cache"
)

const sportLeagueListKey = "sport-league:list"

type cachedSportLeague struct {
	value  sport.League
	exists bool
}

// SportLeagueRepository caches sport league reads. Upserts go straight to the
// wrapped repository and evict everything, so readers see ingested rows no
// later than the next call.
type SportLeagueRepository struct {
	next sport.LeagueRepository
	list *basecache.Store[[]sport.League]
	byID *basecache.Store[cachedSportLeague]
}

func NewSportLeagueRepository(next sport.LeagueRepository, ttl time.Duration) *SportLeagueRepository {
	return &SportLeagueRepository{
		next: next,
		list: basecache.NewStore[[]sport.League](ttl),
		byID: basecache.NewStore[cachedSportLeague](ttl),
	}
}

func (r *SportLeagueRepository) Upsert(ctx context.Context, db database.Handle, leagues []sport.League) error {
	err := r.next.Upsert(ctx, db, leagues)
	r.list.Delete(sportLeagueListKey)
	r.byID.Clear()
	return err
}

func (r *SportLeagueRepository) List(ctx context.Context, db database.Handle) ([]sport.League, error) {
	items, err := r.list.GetOrLoad(ctx, sportLeagueListKey, func(ctx context.Context) ([]sport.League, error) {
		return r.next.List(ctx, db)
	})
	if err != nil {
		return nil, err
	}
	return append([]sport.League(nil), items...), nil
}

func (r *SportLeagueRepository) GetByID(ctx context.Context, db database.Handle, leagueID string) (sport.League, bool, error) {
	cached, err := r.byID.GetOrLoad(ctx, leagueID, func(ctx context.Context) (cachedSportLeague, error) {
		item, exists, err := r.next.GetByID(ctx, db, leagueID)
		if err != nil {
			return cachedSportLeague{}, err
		}
		return cachedSportLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return sport.League{}, false, err
	}
	return cached.value, cached.exists, nil
}
