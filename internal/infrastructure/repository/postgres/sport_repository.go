package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	qb "github.com/picksleagues/picks-leagues/internal/platform/querybuilder"
)

// upsertBatch inserts rows keyed on conflict, refreshing update columns and
// updated_at. The internal id of an existing row is never overwritten.
func upsertBatch[T any](ctx context.Context, db database.Handle, table string, rows []T, conflict []string, update ...string) error {
	if len(rows) == 0 {
		return nil
	}
	suffix := qb.OnConflictUpdate(conflict, update...) + ", updated_at = NOW()"
	query, args, err := qb.InsertModels(table, rows, suffix)
	if err != nil {
		return fmt.Errorf("build upsert %s query: %w", table, err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}
	return nil
}

func selectRows[M any, T any](ctx context.Context, db database.Handle, op string, builder *qb.SelectBuilder, convert func(M) T) ([]T, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []M
	if err := sqlx.SelectContext(ctx, db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, convert(row))
	}
	return out, nil
}

func getRow[M any, T any](ctx context.Context, db database.Handle, op string, builder *qb.SelectBuilder, convert func(M) T) (T, bool, error) {
	var zero T
	query, args, err := builder.ToSQL()
	if err != nil {
		return zero, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row M
	if err := sqlx.GetContext(ctx, db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("%s: %w", op, err)
	}
	return convert(row), true, nil
}

type SportLeagueRepository struct{}

func NewSportLeagueRepository() *SportLeagueRepository {
	return &SportLeagueRepository{}
}

func (r *SportLeagueRepository) Upsert(ctx context.Context, db database.Handle, leagues []sport.League) error {
	rows := make([]sportLeagueTableModel, 0, len(leagues))
	for _, l := range leagues {
		rows = append(rows, sportLeagueTableModel(l))
	}
	return upsertBatch(ctx, db, "sport_leagues", rows, []string{"espn_id"},
		"sport", "slug", "name", "abbreviation", "logo_url")
}

func (r *SportLeagueRepository) List(ctx context.Context, db database.Handle) ([]sport.League, error) {
	return selectRows(ctx, db, "list sport leagues",
		qb.Select("id", "espn_id", "sport", "slug", "name", "abbreviation", "logo_url").
			From("sport_leagues").
			OrderBy("name ASC"),
		sportLeagueFromRow)
}

func (r *SportLeagueRepository) GetByID(ctx context.Context, db database.Handle, leagueID string) (sport.League, bool, error) {
	return getRow(ctx, db, "get sport league",
		qb.Select("id", "espn_id", "sport", "slug", "name", "abbreviation", "logo_url").
			From("sport_leagues").
			Where(qb.Eq("id", leagueID)),
		sportLeagueFromRow)
}

type SportSeasonRepository struct{}

func NewSportSeasonRepository() *SportSeasonRepository {
	return &SportSeasonRepository{}
}

var sportSeasonColumns = []string{"id", "sport_league_id", "espn_id", "name", "start_time", "end_time"}

func (r *SportSeasonRepository) Upsert(ctx context.Context, db database.Handle, seasons []sport.Season) error {
	rows := make([]sportSeasonTableModel, 0, len(seasons))
	for _, s := range seasons {
		rows = append(rows, sportSeasonTableModel(s))
	}
	return upsertBatch(ctx, db, "sport_league_seasons", rows, []string{"sport_league_id", "espn_id"},
		"name", "start_time", "end_time")
}

func (r *SportSeasonRepository) GetByID(ctx context.Context, db database.Handle, seasonID string) (sport.Season, bool, error) {
	return getRow(ctx, db, "get sport season",
		qb.Select(sportSeasonColumns...).From("sport_league_seasons").Where(qb.Eq("id", seasonID)),
		sportSeasonFromRow)
}

func (r *SportSeasonRepository) ListByLeague(ctx context.Context, db database.Handle, sportLeagueID string) ([]sport.Season, error) {
	return selectRows(ctx, db, "list sport seasons",
		qb.Select(sportSeasonColumns...).
			From("sport_league_seasons").
			Where(qb.Eq("sport_league_id", sportLeagueID)).
			OrderBy("start_time DESC"),
		sportSeasonFromRow)
}

type SportTeamRepository struct{}

func NewSportTeamRepository() *SportTeamRepository {
	return &SportTeamRepository{}
}

func (r *SportTeamRepository) Upsert(ctx context.Context, db database.Handle, teams []sport.Team) error {
	rows := make([]sportTeamTableModel, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, sportTeamTableModel(t))
	}
	return upsertBatch(ctx, db, "sport_league_teams", rows, []string{"sport_league_id", "espn_id"},
		"name", "location", "abbreviation", "logo_url")
}

func (r *SportTeamRepository) ListByLeague(ctx context.Context, db database.Handle, sportLeagueID string) ([]sport.Team, error) {
	return selectRows(ctx, db, "list sport teams",
		qb.Select("id", "sport_league_id", "espn_id", "name", "location", "abbreviation", "logo_url").
			From("sport_league_teams").
			Where(qb.Eq("sport_league_id", sportLeagueID)).
			OrderBy("location ASC", "name ASC"),
		sportTeamFromRow)
}

type SportWeekRepository struct{}

func NewSportWeekRepository() *SportWeekRepository {
	return &SportWeekRepository{}
}

var sportWeekColumns = []string{"id", "season_id", "espn_id", "season_type", "number", "name", "start_time", "end_time"}

func (r *SportWeekRepository) Upsert(ctx context.Context, db database.Handle, weeks []sport.Week) error {
	rows := make([]sportWeekTableModel, 0, len(weeks))
	for _, w := range weeks {
		rows = append(rows, sportWeekTableModel(w))
	}
	return upsertBatch(ctx, db, "sport_league_weeks", rows, []string{"season_id", "espn_id"},
		"season_type", "number", "name", "start_time", "end_time")
}

func (r *SportWeekRepository) GetByID(ctx context.Context, db database.Handle, weekID string) (sport.Week, bool, error) {
	return getRow(ctx, db, "get sport week",
		qb.Select(sportWeekColumns...).From("sport_league_weeks").Where(qb.Eq("id", weekID)),
		sportWeekFromRow)
}

func (r *SportWeekRepository) ListBySeason(ctx context.Context, db database.Handle, seasonID string) ([]sport.Week, error) {
	return selectRows(ctx, db, "list sport weeks",
		qb.Select(sportWeekColumns...).
			From("sport_league_weeks").
			Where(qb.Eq("season_id", seasonID)).
			OrderBy("start_time ASC", "id ASC"),
		sportWeekFromRow)
}

type SportGameRepository struct{}

func NewSportGameRepository() *SportGameRepository {
	return &SportGameRepository{}
}

var sportGameColumns = []string{
	"id", "week_id", "espn_event_id", "home_team_id", "away_team_id",
	"home_score", "away_score", "status", "clock", "period", "start_time",
}

func (r *SportGameRepository) Upsert(ctx context.Context, db database.Handle, games []sport.Game) error {
	rows := make([]sportGameTableModel, 0, len(games))
	for _, g := range games {
		rows = append(rows, sportGameTableModel{
			ID:          g.ID,
			WeekID:      g.WeekID,
			ESPNEventID: g.ESPNEventID,
			HomeTeamID:  g.HomeTeamID,
			AwayTeamID:  g.AwayTeamID,
			HomeScore:   g.HomeScore,
			AwayScore:   g.AwayScore,
			Status:      string(g.Status),
			Clock:       g.Clock,
			Period:      g.Period,
			StartTime:   g.StartTime,
		})
	}
	return upsertBatch(ctx, db, "sport_league_games", rows, []string{"espn_event_id"},
		"week_id", "home_team_id", "away_team_id", "home_score", "away_score", "status", "clock", "period", "start_time")
}

func (r *SportGameRepository) GetByID(ctx context.Context, db database.Handle, gameID string) (sport.Game, bool, error) {
	return getRow(ctx, db, "get sport game",
		qb.Select(sportGameColumns...).From("sport_league_games").Where(qb.Eq("id", gameID)),
		sportGameFromRow)
}

func (r *SportGameRepository) ListByWeeks(ctx context.Context, db database.Handle, weekIDs []string) ([]sport.Game, error) {
	return selectRows(ctx, db, "list sport games by weeks",
		qb.Select(sportGameColumns...).
			From("sport_league_games").
			Where(qb.In("week_id", weekIDs)).
			OrderBy("start_time ASC", "id ASC"),
		sportGameFromRow)
}

func (r *SportGameRepository) ListStartingBetween(ctx context.Context, db database.Handle, from, to time.Time) ([]sport.Game, error) {
	return selectRows(ctx, db, "list sport games by start",
		qb.Select(sportGameColumns...).
			From("sport_league_games").
			Where(qb.Gte("start_time", from), qb.Lte("start_time", to)).
			OrderBy("start_time ASC", "id ASC"),
		sportGameFromRow)
}

type SportOddsRepository struct{}

func NewSportOddsRepository() *SportOddsRepository {
	return &SportOddsRepository{}
}

func (r *SportOddsRepository) Upsert(ctx context.Context, db database.Handle, odds []sport.Odds) error {
	rows := make([]sportOddsInsertModel, 0, len(odds))
	for _, o := range odds {
		rows = append(rows, sportOddsInsertModel{
			ID:             o.ID,
			GameID:         o.GameID,
			ProviderESPNID: o.ProviderESPNID,
			ProviderName:   o.ProviderName,
			Spread:         o.Spread,
			OverUnder:      o.OverUnder,
			FavoriteTeamID: nullString(o.FavoriteTeamID),
		})
	}
	return upsertBatch(ctx, db, "sport_league_game_odds", rows, []string{"game_id", "provider_espn_id"},
		"provider_name", "spread", "over_under", "favorite_team_id")
}

func (r *SportOddsRepository) ListByGames(ctx context.Context, db database.Handle, gameIDs []string) ([]sport.Odds, error) {
	return selectRows(ctx, db, "list sport odds",
		qb.Select("id", "game_id", "provider_espn_id", "provider_name", "spread", "over_under", "favorite_team_id", "updated_at").
			From("sport_league_game_odds").
			Where(qb.In("game_id", gameIDs)).
			OrderBy("updated_at DESC", "provider_espn_id ASC"),
		sportOddsFromRow)
}
