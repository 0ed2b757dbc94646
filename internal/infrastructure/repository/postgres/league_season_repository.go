package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/picksleagues/picks-leagues/internal/domain/leagueseason"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	qb "github.com/picksleagues/picks-leagues/internal/platform/querybuilder"
)

type LeagueSeasonRepository struct{}

func NewLeagueSeasonRepository() *LeagueSeasonRepository {
	return &LeagueSeasonRepository{}
}

func (r *LeagueSeasonRepository) Create(ctx context.Context, db database.Handle, season leagueseason.Season) error {
	query, args, err := qb.InsertModel("picks_league_seasons", leagueSeasonInsertModel{
		ID:                  season.ID,
		LeagueID:            season.LeagueID,
		SportLeagueSeasonID: season.SportLeagueSeasonID,
		StartWeekID:         season.StartWeekID,
		EndWeekID:           season.EndWeekID,
		Active:              season.Active,
	}, "")
	if err != nil {
		return fmt.Errorf("build create league season query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create league season: %w", err)
	}
	return nil
}

func (r *LeagueSeasonRepository) GetActive(ctx context.Context, db database.Handle, leagueID string) (leagueseason.Season, bool, error) {
	query, args, err := qb.Select("*").
		From("picks_league_seasons").
		Where(qb.Eq("league_id", leagueID), qb.Eq("active", true)).
		ToSQL()
	if err != nil {
		return leagueseason.Season{}, false, fmt.Errorf("build get active league season query: %w", err)
	}

	var row leagueSeasonTableModel
	if err := sqlx.GetContext(ctx, db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return leagueseason.Season{}, false, nil
		}
		return leagueseason.Season{}, false, fmt.Errorf("get active league season: %w", err)
	}
	return leagueSeasonFromRow(row), true, nil
}

func (r *LeagueSeasonRepository) ListActive(ctx context.Context, db database.Handle) ([]leagueseason.Season, error) {
	query, args, err := qb.Select("*").
		From("picks_league_seasons").
		Where(qb.Eq("active", true)).
		OrderBy("league_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active league seasons query: %w", err)
	}

	var rows []leagueSeasonTableModel
	if err := sqlx.SelectContext(ctx, db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active league seasons: %w", err)
	}

	out := make([]leagueseason.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueSeasonFromRow(row))
	}
	return out, nil
}

func (r *LeagueSeasonRepository) UpdateWeeks(ctx context.Context, db database.Handle, seasonID, startWeekID, endWeekID string) error {
	query, args, err := qb.Update("picks_league_seasons").
		Set("start_week_id", startWeekID).
		Set("end_week_id", endWeekID).
		Where(qb.Eq("id", seasonID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update league season weeks query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update league season weeks: %w", err)
	}
	return nil
}

func (r *LeagueSeasonRepository) Deactivate(ctx context.Context, db database.Handle, seasonID string) error {
	query, args, err := qb.Update("picks_league_seasons").
		Set("active", false).
		Where(qb.Eq("id", seasonID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate league season query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deactivate league season: %w", err)
	}
	return nil
}
