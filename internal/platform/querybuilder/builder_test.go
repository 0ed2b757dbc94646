package querybuilder

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSelectBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Select("g.id", "g.start_time").
		From("sport_league_games g").
		Join("JOIN sport_league_weeks w ON w.id = g.week_id").
		Where(Eq("w.season_id", "s1"), In("g.status", []string{"Scheduled", "InProgress"}), IsNull("g.deleted_at")).
		OrderBy("g.start_time ASC").
		Limit(10).
		Offset(20).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT g.id, g.start_time FROM sport_league_games g JOIN sport_league_weeks w ON w.id = g.week_id " +
		"WHERE w.season_id = $1 AND g.status IN ($2, $3) AND g.deleted_at IS NULL ORDER BY g.start_time ASC LIMIT 10 OFFSET 20"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if diff := cmp.Diff([]any{"s1", "Scheduled", "InProgress"}, args); diff != "" {
		t.Fatalf("unexpected args (-want +got):\n%s", diff)
	}
}

func TestSelectBuilder_ForUpdateAndOr(t *testing.T) {
	t.Parallel()

	query, args, err := Select("*").
		From("picks_leagues").
		Where(Eq("id", "l1"), Or(IsNull("logo_url"), Ne("logo_url", ""))).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM picks_leagues WHERE id = $1 AND (logo_url IS NULL OR logo_url <> $2) FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInCondition_Empty(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id").From("users").Where(In("id", []string{}), NotIn("id", []int{})).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM users WHERE 1=0 AND 1=1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("users").
		Columns("id", "name").
		Values("u1", "name-1").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO users (id, name) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "u1" || args[1] != "name-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	t.Parallel()

	if _, _, err := InsertInto("users").Columns("id", "name").Values("u1").ToSQL(); err == nil {
		t.Fatalf("expected error for short row")
	}
}

type gameRow struct {
	ID          string    `db:"id"`
	ESPNEventID string    `db:"espn_event_id"`
	HomeScore   int       `db:"home_score"`
	StartTime   time.Time `db:"start_time"`
	internal    string
	Ignored     string `db:"-"`
}

func TestInsertModels_BatchUpsert(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 9, 10, 0, 20, 0, 0, time.UTC)
	rows := []gameRow{
		{ID: "g1", ESPNEventID: "401", HomeScore: 0, StartTime: kickoff, internal: "x"},
		{ID: "g2", ESPNEventID: "402", HomeScore: 7, StartTime: kickoff},
	}

	query, args, err := InsertModels("sport_league_games", rows,
		OnConflictUpdate([]string{"espn_event_id"}, "home_score", "start_time"))
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}

	wantQuery := "INSERT INTO sport_league_games (id, espn_event_id, home_score, start_time) VALUES ($1, $2, $3, $4), ($5, $6, $7, $8) " +
		"ON CONFLICT (espn_event_id) DO UPDATE SET home_score = EXCLUDED.home_score, start_time = EXCLUDED.start_time"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if diff := cmp.Diff([]any{"g1", "401", 0, kickoff, "g2", "402", 7, kickoff}, args); diff != "" {
		t.Fatalf("unexpected args (-want +got):\n%s", diff)
	}
}

func TestInsertModels_Empty(t *testing.T) {
	t.Parallel()

	if _, _, err := InsertModels[gameRow]("sport_league_games", nil, ""); err == nil {
		t.Fatalf("expected error for empty batch")
	}
}

func TestOnConflictUpdate_DoNothing(t *testing.T) {
	t.Parallel()

	if got := OnConflictUpdate([]string{"league_id", "user_id"}); got != "ON CONFLICT (league_id, user_id) DO NOTHING" {
		t.Fatalf("unexpected clause: %s", got)
	}
}

func TestUpdateBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Update("users").
		Set("name", "new").
		SetExpr("updated_at", "NOW()").
		SetExpr("version", "version + ?", 1).
		Where(Eq("id", "u1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE users SET name = $1, updated_at = NOW(), version = version + $2 WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if diff := cmp.Diff([]any{"new", 1, "u1"}, args); diff != "" {
		t.Fatalf("unexpected args (-want +got):\n%s", diff)
	}
}

func TestDeleteBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := DeleteFrom("picks_league_invites").
		Where(Eq("league_id", "l1"), Lt("expires_at", "2026-01-01")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM picks_league_invites WHERE league_id = $1 AND expires_at < $2" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("users").ToSQL(); err == nil {
		t.Fatalf("expected error for unbounded delete")
	}
}
