package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/leagueseason"
	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	idgen "github.com/picksleagues/picks-leagues/internal/platform/id"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
)

const rolloverLockKey = "rollover:picks-league-seasons"

// SeasonRolloverService moves leagues whose sport season has ended onto the
// newest season of the same sport league, spanning its regular-season weeks.
type SeasonRolloverService struct {
	tx     database.Transactor
	repos  Repositories
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewSeasonRolloverService(tx database.Transactor, repos Repositories, idGen idgen.Generator, logger *logging.Logger) *SeasonRolloverService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeasonRolloverService{
		tx:     tx,
		repos:  repos,
		idGen:  idGen,
		logger: logger.Named("rollover"),
		now:    time.Now,
	}
}

// Run returns how many leagues were rolled over.
func (s *SeasonRolloverService) Run(ctx context.Context) (int, error) {
	var counts syncCounts
	err := s.tx.InLockedTx(ctx, rolloverLockKey, func(ctx context.Context, db database.Handle) error {
		var err error
		counts, err = s.rollover(ctx, db)
		return err
	})
	if err != nil {
		return 0, err
	}
	return counts.upserted, nil
}

func (s *SeasonRolloverService) rollover(ctx context.Context, db database.Handle) (syncCounts, error) {
	var counts syncCounts
	active, err := s.repos.LeagueSeasons.ListActive(ctx, db)
	if err != nil {
		return counts, fmt.Errorf("list active league seasons: %w", err)
	}

	now := s.now()
	for _, current := range active {
		season, ok, err := s.repos.Seasons.GetByID(ctx, db, current.SportLeagueSeasonID)
		if err != nil {
			return counts, fmt.Errorf("get sport season: %w", err)
		}
		if !ok || !season.Ended(now) {
			continue
		}

		seasons, err := s.repos.Seasons.ListByLeague(ctx, db, season.SportLeagueID)
		if err != nil {
			return counts, fmt.Errorf("list sport seasons: %w", err)
		}
		if len(seasons) == 0 || seasons[0].ID == season.ID || !seasons[0].StartTime.After(season.StartTime) {
			continue
		}
		next := seasons[0]

		weeks, err := s.repos.Weeks.ListBySeason(ctx, db, next.ID)
		if err != nil {
			return counts, fmt.Errorf("list weeks: %w", err)
		}
		regular := make([]sport.Week, 0, len(weeks))
		for _, w := range weeks {
			if w.SeasonType == sport.SeasonTypeRegular {
				regular = append(regular, w)
			}
		}
		if len(regular) == 0 {
			counts.skipped++
			s.logger.WarnContext(ctx, "next season has no regular weeks yet", "league_id", current.LeagueID, "season_id", next.ID)
			continue
		}

		if err := s.repos.LeagueSeasons.Deactivate(ctx, db, current.ID); err != nil {
			return counts, fmt.Errorf("deactivate league season: %w", err)
		}
		id, err := s.idGen.NewID()
		if err != nil {
			return counts, fmt.Errorf("generate league season id: %w", err)
		}
		created := leagueseason.Season{
			ID:                  id,
			LeagueID:            current.LeagueID,
			SportLeagueSeasonID: next.ID,
			StartWeekID:         regular[0].ID,
			EndWeekID:           regular[len(regular)-1].ID,
			Active:              true,
			CreatedAt:           now.UTC(),
		}
		if err := s.repos.LeagueSeasons.Create(ctx, db, created); err != nil {
			return counts, fmt.Errorf("create league season: %w", err)
		}
		counts.upserted++
		s.logger.InfoContext(ctx, "league rolled over to new season",
			"league_id", current.LeagueID, "from_season", season.ID, "to_season", next.ID)
	}
	return counts, nil
}
