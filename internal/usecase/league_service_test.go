package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
)

func TestLeagueService_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.newUser(t, "owner")

	valid := CreateLeagueInput{
		Name:          "Office Pool",
		Size:          10,
		PickType:      picksleague.PickTypeAgainstTheSpread,
		PicksPerWeek:  2,
		SportLeagueID: "seed-nfl",
		StartWeekID:   "seed-week-1",
		EndWeekID:     "seed-week-4",
	}

	t.Run("requires profile", func(t *testing.T) {
		_, err := env.leagues.Create(ctx, user.Principal{UserID: owner.UserID}, valid)
		requireKind(t, err, ErrNotAllowed)
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		cases := map[string]func(in *CreateLeagueInput){
			"name":          func(in *CreateLeagueInput) { in.Name = "ab" },
			"size":          func(in *CreateLeagueInput) { in.Size = 1 },
			"pickType":      func(in *CreateLeagueInput) { in.PickType = "Parlay" },
			"picksPerWeek":  func(in *CreateLeagueInput) { in.PicksPerWeek = 0 },
			"sportLeagueId": func(in *CreateLeagueInput) { in.SportLeagueID = "nba" },
			"endWeekId":     func(in *CreateLeagueInput) { in.StartWeekID, in.EndWeekID = "seed-week-3", "seed-week-2" },
			"startWeekId":   func(in *CreateLeagueInput) { in.StartWeekID = "missing" },
		}
		for field, mutate := range cases {
			in := valid
			mutate(&in)
			_, err := env.leagues.Create(ctx, owner, in)
			requireField(t, err, field)
		}
	})

	t.Run("creates league with commissioner and active season", func(t *testing.T) {
		league, err := env.leagues.Create(ctx, owner, valid)
		if err != nil {
			t.Fatalf("create league: %v", err)
		}

		member, ok, err := env.repos.Members.Get(ctx, nil, league.ID, owner.UserID)
		if err != nil || !ok {
			t.Fatalf("creator membership missing: ok=%v err=%v", ok, err)
		}
		if !member.IsCommissioner() {
			t.Fatalf("creator must be commissioner, got %s", member.Role)
		}

		season, ok, err := env.repos.LeagueSeasons.GetActive(ctx, nil, league.ID)
		if err != nil || !ok {
			t.Fatalf("active season missing: ok=%v err=%v", ok, err)
		}
		if season.StartWeekID != "seed-week-1" || season.EndWeekID != "seed-week-4" || season.SportLeagueSeasonID != "seed-nfl-season" {
			t.Fatalf("unexpected season: %+v", season)
		}

		mine, err := env.leagues.ListMine(ctx, owner)
		if err != nil {
			t.Fatalf("list mine: %v", err)
		}
		if len(mine) != 1 || mine[0].ID != league.ID {
			t.Fatalf("unexpected leagues: %+v", mine)
		}
	})
}

func TestLeagueService_GetRequiresMembership(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.newUser(t, "owner")
	stranger := env.newUser(t, "stranger")
	league := env.newLeague(t, owner, 4, picksleague.PickTypeStraightUp)

	_, err := env.leagues.Get(ctx, stranger, league.ID)
	requireKind(t, err, ErrNotAllowed)

	_, err = env.leagues.Get(ctx, owner, "missing")
	requireKind(t, err, ErrNotFound)

	got, err := env.leagues.Get(ctx, owner, league.ID)
	if err != nil {
		t.Fatalf("get league: %v", err)
	}
	if got.Name != league.Name {
		t.Fatalf("unexpected league name %q", got.Name)
	}
}

func TestLeagueService_UpdateSettings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.newUser(t, "owner")
	player := env.newUser(t, "player")
	third := env.newUser(t, "third")
	league := env.newLeague(t, owner, 8, picksleague.PickTypeStraightUp)
	env.join(t, owner, player, league.ID)
	env.join(t, owner, third, league.ID)

	name := "Renamed League"
	_, err := env.leagues.UpdateSettings(ctx, player, league.ID, UpdateLeagueInput{Name: &name})
	requireKind(t, err, ErrNotAllowed)

	updated, err := env.leagues.UpdateSettings(ctx, owner, league.ID, UpdateLeagueInput{Name: &name})
	if err != nil {
		t.Fatalf("rename league: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("unexpected name %q", updated.Name)
	}

	tooSmall := 2
	_, err = env.leagues.UpdateSettings(ctx, owner, league.ID, UpdateLeagueInput{Size: &tooSmall})
	requireField(t, err, "size")

	ats := picksleague.PickTypeAgainstTheSpread
	_, err = env.leagues.UpdateSettings(ctx, owner, league.ID, UpdateLeagueInput{PickType: &ats})
	requireKind(t, err, ErrBadInput)

	// Between seasons the same change goes through.
	env.setNow(time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC))
	endWeek := "seed-week-2"
	updated, err = env.leagues.UpdateSettings(ctx, owner, league.ID, UpdateLeagueInput{PickType: &ats, EndWeekID: &endWeek})
	if err != nil {
		t.Fatalf("update season settings off season: %v", err)
	}
	if updated.PickType != ats {
		t.Fatalf("unexpected pick type %s", updated.PickType)
	}
	season, _, _ := env.repos.LeagueSeasons.GetActive(ctx, nil, league.ID)
	if season.StartWeekID != "seed-week-1" || season.EndWeekID != "seed-week-2" {
		t.Fatalf("unexpected week range: %s..%s", season.StartWeekID, season.EndWeekID)
	}
}

func TestLeagueService_UpdateSettingsRequiresNewestSeason(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.newUser(t, "owner")
	league := env.newLeague(t, owner, 8, picksleague.PickTypeStraightUp)

	nextStart := time.Date(2027, time.September, 6, 0, 0, 0, 0, time.UTC)
	if err := env.repos.Seasons.Upsert(ctx, nil, []sport.Season{{
		ID: "next-season", SportLeagueID: "seed-nfl", ESPNID: "2027",
		StartTime: nextStart, EndTime: nextStart.AddDate(0, 5, 0),
	}}); err != nil {
		t.Fatalf("upsert season: %v", err)
	}
	if err := env.repos.Weeks.Upsert(ctx, nil, []sport.Week{
		{ID: "next-week-1", SeasonID: "next-season", ESPNID: "2-1", SeasonType: sport.SeasonTypeRegular, Number: 1, StartTime: nextStart, EndTime: nextStart.AddDate(0, 0, 7)},
		{ID: "next-week-2", SeasonID: "next-season", ESPNID: "2-2", SeasonType: sport.SeasonTypeRegular, Number: 2, StartTime: nextStart.AddDate(0, 0, 7), EndTime: nextStart.AddDate(0, 0, 14)},
	}); err != nil {
		t.Fatalf("upsert weeks: %v", err)
	}

	env.setNow(time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC))
	oldEnd := "seed-week-3"
	_, err := env.leagues.UpdateSettings(ctx, owner, league.ID, UpdateLeagueInput{EndWeekID: &oldEnd})
	requireField(t, err, "startWeekId")

	start, end := "next-week-1", "next-week-2"
	if _, err := env.leagues.UpdateSettings(ctx, owner, league.ID, UpdateLeagueInput{StartWeekID: &start, EndWeekID: &end}); err != nil {
		t.Fatalf("move to next season: %v", err)
	}
	season, ok, _ := env.repos.LeagueSeasons.GetActive(ctx, nil, league.ID)
	if !ok || season.SportLeagueSeasonID != "next-season" {
		t.Fatalf("unexpected active season: ok=%v season=%+v", ok, season)
	}
}

func TestLeagueService_Standings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.newUser(t, "owner")
	player := env.newUser(t, "player")
	league := env.newLeague(t, owner, 4, picksleague.PickTypeStraightUp)
	env.join(t, owner, player, league.ID)

	if _, err := env.picks.Submit(ctx, owner, league.ID, "seed-week-1", []PickInput{{GameID: "seed-game-1-1", TeamID: "seed-kc"}}); err != nil {
		t.Fatalf("owner picks: %v", err)
	}
	if _, err := env.picks.Submit(ctx, player, league.ID, "seed-week-1", []PickInput{{GameID: "seed-game-1-1", TeamID: "seed-buf"}}); err != nil {
		t.Fatalf("player picks: %v", err)
	}

	game, _, _ := env.repos.Games.GetByID(ctx, nil, "seed-game-1-1")
	game.Status = sport.GameStatusFinal
	game.HomeScore, game.AwayScore = 17, 24
	if err := env.repos.Games.Upsert(ctx, nil, []sport.Game{game}); err != nil {
		t.Fatalf("finish game: %v", err)
	}

	got, err := env.leagues.Standings(ctx, owner, league.ID)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	type row struct {
		Username     string
		Wins, Losses int
	}
	rows := make([]row, 0, len(got))
	for _, st := range got {
		rows = append(rows, row{Username: st.Username, Wins: st.Wins, Losses: st.Losses})
	}
	want := []row{{Username: "player", Wins: 1}, {Username: "owner", Losses: 1}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("unexpected standings (-want +got):\n%s", diff)
	}

	status, err := env.leagues.Status(ctx, owner, league.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.InSeason || status.CanEditSeasonSettings {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestSportService_LatestWeeks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewSportService(env.tx, env.repos)

	leagues, err := svc.ListLeagues(ctx)
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	if len(leagues) != 1 || leagues[0].Slug != "nfl" {
		t.Fatalf("unexpected leagues: %+v", leagues)
	}

	got, err := svc.LatestWeeks(ctx, leagues[0].ID)
	if err != nil {
		t.Fatalf("latest weeks: %v", err)
	}
	if got.Season.ID != "seed-nfl-season" || len(got.Weeks) != 4 || got.Weeks[0].ID != "seed-week-1" {
		t.Fatalf("unexpected weeks: season=%s weeks=%d", got.Season.ID, len(got.Weeks))
	}

	_, err = svc.LatestWeeks(ctx, "nba")
	requireKind(t, err, ErrNotFound)
}
