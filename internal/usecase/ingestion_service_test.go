package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/picksleagues/picks-leagues/internal/domain/ingestionrun"
	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/infrastructure/repository/memory"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
)

var ingestSeasonStart = time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

// fakeProvider serves one NFL season with two regular weeks and one game a week.
type fakeProvider struct {
	mu        sync.Mutex
	scores    map[string][2]int
	leagueErr error
	calls     map[string]int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{scores: map[string][2]int{}, calls: map[string]int{}}
}

func (p *fakeProvider) track(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[name]++
}

func (p *fakeProvider) setScore(eventID string, home, away int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scores[eventID] = [2]int{home, away}
}

func (p *fakeProvider) FetchLeague(_ context.Context, target sport.SyncTarget) (ExternalLeague, error) {
	p.track("league")
	if p.leagueErr != nil {
		return ExternalLeague{}, p.leagueErr
	}
	return ExternalLeague{ESPNID: "28", Sport: target.Sport, Slug: target.League, Name: "National Football League", Abbreviation: "NFL"}, nil
}

func (p *fakeProvider) FetchSeasons(_ context.Context, _ sport.SyncTarget, minYear int) ([]ExternalSeason, error) {
	p.track("seasons")
	all := []ExternalSeason{
		{Year: "2026", Name: "2026 NFL", StartTime: ingestSeasonStart, EndTime: ingestSeasonStart.AddDate(0, 5, 0)},
		{Year: "2020", Name: "2020 NFL", StartTime: ingestSeasonStart.AddDate(-6, 0, 0), EndTime: ingestSeasonStart.AddDate(-6, 5, 0)},
	}
	out := all[:0]
	for _, s := range all {
		var year int
		fmt.Sscan(s.Year, &year)
		if year >= minYear {
			out = append(out, s)
		}
	}
	return out, nil
}

func (p *fakeProvider) FetchTeams(_ context.Context, _ sport.SyncTarget, seasonYear string) ([]ExternalTeam, error) {
	p.track("teams:" + seasonYear)
	return []ExternalTeam{
		{ESPNID: "12", Name: "Chiefs", Location: "Kansas City", Abbreviation: "KC"},
		{ESPNID: "2", Name: "Bills", Location: "Buffalo", Abbreviation: "BUF"},
	}, nil
}

func (p *fakeProvider) FetchWeeks(_ context.Context, _ sport.SyncTarget, _ string, seasonType int) ([]ExternalWeek, error) {
	p.track(fmt.Sprintf("weeks:%d", seasonType))
	if seasonType != sport.SeasonTypeRegular {
		return nil, nil
	}
	weeks := make([]ExternalWeek, 0, 2)
	for n := 1; n <= 2; n++ {
		start := ingestSeasonStart.AddDate(0, 0, 7*(n-1))
		weeks = append(weeks, ExternalWeek{
			SeasonType: seasonType, Number: n, Name: fmt.Sprintf("Week %d", n),
			StartTime: start, EndTime: start.AddDate(0, 0, 7),
		})
	}
	return weeks, nil
}

func (p *fakeProvider) FetchGames(_ context.Context, _ sport.SyncTarget, _ string, seasonType, week int) ([]ExternalGame, error) {
	p.track("games")
	p.mu.Lock()
	defer p.mu.Unlock()

	eventID := fmt.Sprintf("4017%d", week)
	score := p.scores[eventID]
	status := sport.GameStatusScheduled
	if score != [2]int{} {
		status = sport.GameStatusFinal
	}
	return []ExternalGame{
		{
			EventID: eventID, SeasonType: seasonType, WeekNumber: week,
			HomeTeamESPNID: "12", AwayTeamESPNID: "2",
			HomeScore: score[0], AwayScore: score[1], Status: status,
			StartTime: ingestSeasonStart.AddDate(0, 0, 7*(week-1)+4).Add(17 * time.Hour),
		},
		// Unknown teams are skipped, not failed.
		{EventID: fmt.Sprintf("9999%d", week), HomeTeamESPNID: "404", AwayTeamESPNID: "2"},
	}, nil
}

func (p *fakeProvider) FetchOdds(_ context.Context, _ sport.SyncTarget, eventID string) ([]ExternalOdds, error) {
	p.track("odds:" + eventID)
	return []ExternalOdds{{EventID: eventID, ProviderESPNID: "58", ProviderName: "ESPN BET", Spread: -3, OverUnder: 44.5, HomeFavorite: true}}, nil
}

type recordingObserver struct {
	mu       sync.Mutex
	finished []ingestionrun.Status
}

func (o *recordingObserver) RunFinished(_ ingestionrun.Entity, status ingestionrun.Status, _ time.Duration, _, _ int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished = append(o.finished, status)
}

type ingestionFixture struct {
	svc      *IngestionService
	provider *fakeProvider
	observer *recordingObserver
	repos    Repositories
}

func newIngestionFixture(t *testing.T) ingestionFixture {
	t.Helper()

	store := memory.NewStore()
	repos := newMemoryRepositories(store)
	tx := database.NewMemoryTransactor()
	ids := &seqIDs{prefix: "ing"}
	provider := newFakeProvider()
	observer := &recordingObserver{}
	rollover := NewSeasonRolloverService(tx, repos, ids, logging.NewNop())

	svc := NewIngestionService(tx, repos, provider, rollover, ids, IngestionConfig{
		Targets:        []sport.SyncTarget{{Sport: "football", League: "nfl", SeasonTypes: []int{2, 3}}},
		SeasonLookback: 1,
	}, observer, logging.NewNop())
	svc.now = func() time.Time { return testNow }
	rollover.now = svc.now
	return ingestionFixture{svc: svc, provider: provider, observer: observer, repos: repos}
}

type mirroredGame struct {
	ID, WeekID, EventID string
	HomeScore           int
	Status              sport.GameStatus
}

func (f ingestionFixture) snapshotGames(t *testing.T) []mirroredGame {
	t.Helper()

	ctx := context.Background()
	leagues, _ := f.repos.SportLeagues.List(ctx, nil)
	if len(leagues) != 1 {
		t.Fatalf("expected one sport league, got %d", len(leagues))
	}
	seasons, _ := f.repos.Seasons.ListByLeague(ctx, nil, leagues[0].ID)
	if len(seasons) != 1 {
		t.Fatalf("expected one season within the lookback, got %d", len(seasons))
	}
	weeks, _ := f.repos.Weeks.ListBySeason(ctx, nil, seasons[0].ID)
	weekIDs := make([]string, 0, len(weeks))
	for _, w := range weeks {
		weekIDs = append(weekIDs, w.ID)
	}
	games, _ := f.repos.Games.ListByWeeks(ctx, nil, weekIDs)

	out := make([]mirroredGame, 0, len(games))
	for _, g := range games {
		out = append(out, mirroredGame{ID: g.ID, WeekID: g.WeekID, EventID: g.ESPNEventID, HomeScore: g.HomeScore, Status: g.Status})
	}
	return out
}

func TestIngestionService_RunAllIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newIngestionFixture(t)

	runs, err := f.svc.RunAll(ctx, ingestionrun.TriggerCLI)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(runs) != len(ingestionrun.Entities) {
		t.Fatalf("unexpected run count %d", len(runs))
	}
	for _, run := range runs {
		if run.Status != ingestionrun.StatusCompleted {
			t.Fatalf("run %s not completed: %+v", run.Entity, run)
		}
	}
	if runs[4].Entity != ingestionrun.EntityGames || runs[4].Upserted != 2 || runs[4].Skipped != 2 {
		t.Fatalf("unexpected games run: %+v", runs[4])
	}

	first := f.snapshotGames(t)
	if len(first) != 2 {
		t.Fatalf("expected two mirrored games, got %+v", first)
	}

	if _, err := f.svc.RunAll(ctx, ingestionrun.TriggerCLI); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if diff := cmp.Diff(first, f.snapshotGames(t)); diff != "" {
		t.Fatalf("repeat ingestion changed rows (-first +second):\n%s", diff)
	}

	f.provider.setScore("40171", 27, 20)
	if _, err := f.svc.Run(ctx, ingestionrun.EntityGames, ingestionrun.TriggerCLI); err != nil {
		t.Fatalf("games rerun: %v", err)
	}
	want := append([]mirroredGame(nil), first...)
	want[0].HomeScore = 27
	want[0].Status = sport.GameStatusFinal
	if diff := cmp.Diff(want, f.snapshotGames(t)); diff != "" {
		t.Fatalf("score update must only touch the changed game (-want +got):\n%s", diff)
	}
}

func TestIngestionService_SeasonsRespectLookback(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newIngestionFixture(t)

	if _, err := f.svc.Run(ctx, ingestionrun.EntitySeasons, ingestionrun.TriggerWorker); err != nil {
		t.Fatalf("seasons before leagues: %v", err)
	}
	recent, err := f.svc.RecentRuns(ctx, 1)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(recent) != 1 || recent[0].Skipped != 1 || recent[0].Upserted != 0 {
		t.Fatalf("unmirrored target must be skipped: %+v", recent)
	}

	for _, entity := range []ingestionrun.Entity{ingestionrun.EntitySportLeagues, ingestionrun.EntitySeasons} {
		if _, err := f.svc.Run(ctx, entity, ingestionrun.TriggerWorker); err != nil {
			t.Fatalf("run %s: %v", entity, err)
		}
	}
	leagues, _ := f.repos.SportLeagues.List(ctx, nil)
	seasons, _ := f.repos.Seasons.ListByLeague(ctx, nil, leagues[0].ID)
	if len(seasons) != 1 || seasons[0].ESPNID != "2026" {
		t.Fatalf("only seasons inside the lookback are mirrored: %+v", seasons)
	}
}

func TestIngestionService_OddsWithinWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newIngestionFixture(t)

	if _, err := f.svc.RunAll(ctx, ingestionrun.TriggerCron); err != nil {
		t.Fatalf("run all: %v", err)
	}

	// Only the week 1 game kicks off within seven days of testNow.
	if got := f.provider.calls["odds:40171"]; got != 1 {
		t.Fatalf("expected one odds fetch for week 1, got %d", got)
	}
	if got := f.provider.calls["odds:40172"]; got != 0 {
		t.Fatalf("week 2 odds are outside the window, got %d fetches", got)
	}

	games := f.snapshotGames(t)
	odds, _ := f.repos.Odds.ListByGames(ctx, nil, []string{games[0].ID})
	if len(odds) != 1 {
		t.Fatalf("expected one line, got %+v", odds)
	}
	game, _, _ := f.repos.Games.GetByID(ctx, nil, games[0].ID)
	if odds[0].FavoriteTeamID != game.HomeTeamID || odds[0].Spread != -3 {
		t.Fatalf("unexpected odds: %+v", odds[0])
	}
}

func TestIngestionService_FailedRunIsRecorded(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newIngestionFixture(t)
	f.provider.leagueErr = errors.New("upstream down")

	runs, err := f.svc.RunAll(ctx, ingestionrun.TriggerCron)
	if err == nil {
		t.Fatalf("expected failure")
	}
	if len(runs) != 1 || runs[0].Status != ingestionrun.StatusFailed || runs[0].Error == "" {
		t.Fatalf("expected a single failed run, got %+v", runs)
	}

	recent, err := f.svc.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(recent) != 1 || recent[0].Status != ingestionrun.StatusFailed || recent[0].FinishedAt == nil {
		t.Fatalf("failed run must be persisted: %+v", recent)
	}
	if diff := cmp.Diff([]ingestionrun.Status{ingestionrun.StatusFailed}, f.observer.finished); diff != "" {
		t.Fatalf("unexpected observed runs (-want +got):\n%s", diff)
	}

	_, err = f.svc.Run(ctx, ingestionrun.Entity("players"), ingestionrun.TriggerCLI)
	requireKind(t, err, ErrBadInput)
}
