package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
)

func TestPickService_SubmitValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.newUser(t, "owner")
	stranger := env.newUser(t, "stranger")
	league := env.newLeague(t, owner, 4, picksleague.PickTypeStraightUp)

	_, err := env.picks.Submit(ctx, stranger, league.ID, "seed-week-1", []PickInput{{GameID: "seed-game-1-1", TeamID: "seed-kc"}})
	requireKind(t, err, ErrNotAllowed)

	cases := []struct {
		name   string
		week   string
		inputs []PickInput
		field  string
	}{
		{name: "week outside season", week: "missing-week", inputs: []PickInput{{GameID: "seed-game-1-1", TeamID: "seed-kc"}}, field: "weekId"},
		{name: "too many picks", week: "seed-week-1", inputs: []PickInput{{GameID: "seed-game-1-1", TeamID: "seed-kc"}, {GameID: "seed-game-1-2", TeamID: "seed-phi"}}, field: "picks"},
		{name: "no picks", week: "seed-week-1", inputs: nil, field: "picks"},
		{name: "game from another week", week: "seed-week-1", inputs: []PickInput{{GameID: "seed-game-2-1", TeamID: "seed-kc"}}, field: "picks"},
		{name: "team not playing", week: "seed-week-1", inputs: []PickInput{{GameID: "seed-game-1-1", TeamID: "seed-phi"}}, field: "picks"},
	}
	for _, tc := range cases {
		_, err := env.picks.Submit(ctx, owner, league.ID, tc.week, tc.inputs)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		requireField(t, err, tc.field)
	}
}

func TestPickService_SubmitAgainstTheSpreadSnapshotsLine(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.newUser(t, "owner")
	league := env.newLeague(t, owner, 4, picksleague.PickTypeAgainstTheSpread)

	saved, err := env.picks.Submit(ctx, owner, league.ID, "seed-week-1", []PickInput{{GameID: "seed-game-1-1", TeamID: "seed-buf"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(saved) != 1 || saved[0].Spread == nil {
		t.Fatalf("expected a spread on the pick, got %+v", saved)
	}
	// The seeded line is home -2.5, so the away team gets +2.5.
	if *saved[0].Spread != 2.5 {
		t.Fatalf("unexpected spread %v", *saved[0].Spread)
	}
}

func TestPickService_StartedGamesAreLocked(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.newUser(t, "owner")
	player := env.newUser(t, "player")
	league := env.newLeague(t, owner, 4, picksleague.PickTypeStraightUp)
	env.join(t, owner, player, league.ID)

	if _, err := env.picks.Submit(ctx, owner, league.ID, "seed-week-1", []PickInput{{GameID: "seed-game-1-1", TeamID: "seed-kc"}}); err != nil {
		t.Fatalf("owner submit: %v", err)
	}
	if _, err := env.picks.Submit(ctx, player, league.ID, "seed-week-1", []PickInput{{GameID: "seed-game-1-2", TeamID: "seed-sf"}}); err != nil {
		t.Fatalf("player submit: %v", err)
	}

	visible, err := env.picks.ListForWeek(ctx, player, league.ID, "seed-week-1")
	if err != nil {
		t.Fatalf("list before kickoff: %v", err)
	}
	if len(visible) != 1 || visible[0].UserID != player.UserID {
		t.Fatalf("other members' picks must stay hidden before kickoff: %+v", visible)
	}

	// Between the two kickoffs of the week.
	env.setNow(time.Date(2026, time.September, 11, 18, 0, 0, 0, time.UTC))

	_, err = env.picks.Submit(ctx, owner, league.ID, "seed-week-1", []PickInput{{GameID: "seed-game-1-1", TeamID: "seed-buf"}})
	requireField(t, err, "picks")

	_, err = env.picks.Submit(ctx, owner, league.ID, "seed-week-1", []PickInput{{GameID: "seed-game-1-2", TeamID: "seed-phi"}})
	requireField(t, err, "picks")

	if _, err := env.picks.Submit(ctx, owner, league.ID, "seed-week-1", []PickInput{{GameID: "seed-game-1-1", TeamID: "seed-kc"}}); err != nil {
		t.Fatalf("resubmitting a locked pick unchanged must succeed: %v", err)
	}

	visible, err = env.picks.ListForWeek(ctx, player, league.ID, "seed-week-1")
	if err != nil {
		t.Fatalf("list after kickoff: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected own pick and the started game pick, got %+v", visible)
	}
}
