package usecase

import (
	"context"
	"fmt"

	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
)

// SeasonWeeks is the newest mirrored season of a sport league with its weeks.
type SeasonWeeks struct {
	Season sport.Season
	Weeks  []sport.Week
}

// SportService serves the read-only catalogue leagues are created against.
type SportService struct {
	tx    database.Transactor
	repos Repositories
}

func NewSportService(tx database.Transactor, repos Repositories) *SportService {
	return &SportService{tx: tx, repos: repos}
}

func (s *SportService) ListLeagues(ctx context.Context) ([]sport.League, error) {
	leagues, err := s.repos.SportLeagues.List(ctx, s.tx.Conn())
	if err != nil {
		return nil, fmt.Errorf("list sport leagues: %w", err)
	}
	return leagues, nil
}

// LatestWeeks returns an empty result when no season has been mirrored yet.
func (s *SportService) LatestWeeks(ctx context.Context, sportLeagueID string) (SeasonWeeks, error) {
	db := s.tx.Conn()
	if _, ok, err := s.repos.SportLeagues.GetByID(ctx, db, sportLeagueID); err != nil {
		return SeasonWeeks{}, fmt.Errorf("get sport league: %w", err)
	} else if !ok {
		return SeasonWeeks{}, NotFound("sport league not found")
	}

	seasons, err := s.repos.Seasons.ListByLeague(ctx, db, sportLeagueID)
	if err != nil {
		return SeasonWeeks{}, fmt.Errorf("list seasons: %w", err)
	}
	if len(seasons) == 0 {
		return SeasonWeeks{Weeks: []sport.Week{}}, nil
	}

	weeks, err := s.repos.Weeks.ListBySeason(ctx, db, seasons[0].ID)
	if err != nil {
		return SeasonWeeks{}, fmt.Errorf("list weeks: %w", err)
	}
	return SeasonWeeks{Season: seasons[0], Weeks: weeks}, nil
}
