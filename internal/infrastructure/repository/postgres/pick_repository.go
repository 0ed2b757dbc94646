package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/pick"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	qb "github.com/picksleagues/picks-leagues/internal/platform/querybuilder"
)

type pickTableModel struct {
	ID        string          `db:"id"`
	LeagueID  string          `db:"league_id"`
	UserID    string          `db:"user_id"`
	WeekID    string          `db:"week_id"`
	GameID    string          `db:"game_id"`
	TeamID    string          `db:"team_id"`
	Spread    sql.NullFloat64 `db:"spread"`
	CreatedAt time.Time       `db:"created_at"`
}

type pickInsertModel struct {
	ID       string          `db:"id"`
	LeagueID string          `db:"league_id"`
	UserID   string          `db:"user_id"`
	WeekID   string          `db:"week_id"`
	GameID   string          `db:"game_id"`
	TeamID   string          `db:"team_id"`
	Spread   sql.NullFloat64 `db:"spread"`
}

func pickFromRow(row pickTableModel) pick.Pick {
	return pick.Pick{
		ID:        row.ID,
		LeagueID:  row.LeagueID,
		UserID:    row.UserID,
		WeekID:    row.WeekID,
		GameID:    row.GameID,
		TeamID:    row.TeamID,
		Spread:    floatPtr(row.Spread),
		CreatedAt: row.CreatedAt,
	}
}

type PickRepository struct{}

func NewPickRepository() *PickRepository {
	return &PickRepository{}
}

func (r *PickRepository) ReplaceForWeek(ctx context.Context, db database.Handle, leagueID, userID, weekID string, picks []pick.Pick) error {
	deleteQuery, deleteArgs, err := qb.DeleteFrom("picks_league_picks").
		Where(qb.Eq("league_id", leagueID), qb.Eq("user_id", userID), qb.Eq("week_id", weekID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete week picks query: %w", err)
	}
	if _, err := db.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete week picks: %w", err)
	}
	if len(picks) == 0 {
		return nil
	}

	rows := make([]pickInsertModel, 0, len(picks))
	for _, p := range picks {
		rows = append(rows, pickInsertModel{
			ID:       p.ID,
			LeagueID: leagueID,
			UserID:   userID,
			WeekID:   weekID,
			GameID:   p.GameID,
			TeamID:   p.TeamID,
			Spread:   nullFloat(p.Spread),
		})
	}
	query, args, err := qb.InsertModels("picks_league_picks", rows, "")
	if err != nil {
		return fmt.Errorf("build insert picks query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert picks: %w", err)
	}
	return nil
}

func (r *PickRepository) ListByWeek(ctx context.Context, db database.Handle, leagueID, weekID string) ([]pick.Pick, error) {
	return selectRows(ctx, db, "list week picks",
		qb.Select("*").
			From("picks_league_picks").
			Where(qb.Eq("league_id", leagueID), qb.Eq("week_id", weekID)).
			OrderBy("user_id ASC", "created_at ASC"),
		pickFromRow)
}

func (r *PickRepository) ListByLeague(ctx context.Context, db database.Handle, leagueID string, weekIDs []string) ([]pick.Pick, error) {
	return selectRows(ctx, db, "list league picks",
		qb.Select("*").
			From("picks_league_picks").
			Where(qb.Eq("league_id", leagueID), qb.In("week_id", weekIDs)).
			OrderBy("user_id ASC", "created_at ASC"),
		pickFromRow)
}
