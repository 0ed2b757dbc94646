package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/picksleagues/picks-leagues/internal/domain/invite"
	"github.com/picksleagues/picks-leagues/internal/domain/pick"
	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
)

func TestSportGameRepository_UpsertKeepsInternalID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSportGameRepository(NewStore())
	kickoff := time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC)

	game := sport.Game{ID: "g1", WeekID: "w1", ESPNEventID: "401", HomeTeamID: "a", AwayTeamID: "b", Status: sport.GameStatusScheduled, StartTime: kickoff}
	if err := repo.Upsert(ctx, nil, []sport.Game{game}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	update := game
	update.ID = "fresh-id"
	update.HomeScore = 14
	update.Status = sport.GameStatusFinal
	if err := repo.Upsert(ctx, nil, []sport.Game{update}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	games, err := repo.ListByWeeks(ctx, nil, []string{"w1"})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	want := game
	want.HomeScore = 14
	want.Status = sport.GameStatusFinal
	if diff := cmp.Diff([]sport.Game{want}, games); diff != "" {
		t.Fatalf("unexpected games (-want +got):\n%s", diff)
	}
}

func TestPicksLeagueRepository_DeleteCascades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()
	leagues := NewPicksLeagueRepository(store)
	members := NewPicksLeagueMemberRepository(store)
	invites := NewInviteRepository(store)
	picks := NewPickRepository(store)

	league := picksleague.League{ID: "l1", Name: "Crew", Size: 4, PickType: picksleague.PickTypeStraightUp, PicksPerWeek: 2, SportLeagueID: "sl"}
	if err := leagues.Create(ctx, nil, league); err != nil {
		t.Fatalf("create league: %v", err)
	}
	if err := members.Create(ctx, nil, picksleague.Member{LeagueID: "l1", UserID: "u1", Role: picksleague.RoleCommissioner}); err != nil {
		t.Fatalf("create member: %v", err)
	}
	if err := invites.Create(ctx, nil, invite.Invite{ID: "i1", LeagueID: "l1", ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("create invite: %v", err)
	}
	if err := picks.ReplaceForWeek(ctx, nil, "l1", "u1", "w1", []pick.Pick{{ID: "p1", GameID: "g1", TeamID: "a"}}); err != nil {
		t.Fatalf("create picks: %v", err)
	}

	if err := leagues.Delete(ctx, nil, "l1"); err != nil {
		t.Fatalf("delete league: %v", err)
	}

	if n, _ := members.Count(ctx, nil, "l1"); n != 0 {
		t.Fatalf("expected members to be removed, got %d", n)
	}
	if _, found, _ := invites.GetByID(ctx, nil, "i1"); found {
		t.Fatalf("expected invite to be removed")
	}
	if got, _ := picks.ListByWeek(ctx, nil, "l1", "w1"); len(got) != 0 {
		t.Fatalf("expected picks to be removed, got %d", len(got))
	}
}

func TestUserRepository_UsernameIsCaseInsensitiveUnique(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserRepository(NewStore())

	if err := repo.Create(ctx, nil, user.User{ID: "u1", Username: "Alice"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := repo.Create(ctx, nil, user.User{ID: "u2", Username: "alice"}); err == nil {
		t.Fatalf("expected duplicate username error")
	}
	got, found, err := repo.GetByUsername(ctx, nil, "ALICE")
	if err != nil || !found || got.ID != "u1" {
		t.Fatalf("expected case-insensitive lookup, got %+v found=%t err=%v", got, found, err)
	}
}

func TestSeed(t *testing.T) {
	t.Parallel()

	store := NewStore()
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	Seed(store, now, 3)

	weeks, err := NewSportWeekRepository(store).ListBySeason(context.Background(), nil, SeedSeasonID)
	if err != nil {
		t.Fatalf("list weeks: %v", err)
	}
	if len(weeks) != 3 {
		t.Fatalf("expected 3 weeks, got %d", len(weeks))
	}
	if !weeks[0].StartTime.Before(now) || !weeks[1].StartTime.After(now) {
		t.Fatalf("expected the first week to be current, got %v / %v", weeks[0].StartTime, weeks[1].StartTime)
	}
}
