package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/infrastructure/repository/memory"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
)

// testNow is a Thursday noon inside the first seeded week; the seeded games of
// that week kick off the next day.
var testNow = time.Date(2026, time.September, 10, 12, 0, 0, 0, time.UTC)

type seqIDs struct {
	mu     sync.Mutex
	n      int
	prefix string
}

func (g *seqIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n), nil
}

type testEnv struct {
	store *memory.Store
	tx    *database.MemoryTransactor
	repos Repositories
	ids   *seqIDs

	rules    *LeagueRulesService
	leagues  *LeagueService
	members  *MemberService
	invites  *InviteService
	picks    *PickService
	users    *UserService
	rollover *SeasonRolloverService
}

func newMemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Users:         memory.NewUserRepository(store),
		Accounts:      memory.NewAccountRepository(store),
		Sessions:      memory.NewSessionRepository(store),
		Leagues:       memory.NewPicksLeagueRepository(store),
		Members:       memory.NewPicksLeagueMemberRepository(store),
		Invites:       memory.NewInviteRepository(store),
		LeagueSeasons: memory.NewLeagueSeasonRepository(store),
		Picks:         memory.NewPickRepository(store),
		SportLeagues:  memory.NewSportLeagueRepository(store),
		Seasons:       memory.NewSportSeasonRepository(store),
		Teams:         memory.NewSportTeamRepository(store),
		Weeks:         memory.NewSportWeekRepository(store),
		Games:         memory.NewSportGameRepository(store),
		Odds:          memory.NewSportOddsRepository(store),
		Runs:          memory.NewIngestionRunRepository(store),
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	memory.Seed(store, testNow, 4)

	env := &testEnv{
		store: store,
		tx:    database.NewMemoryTransactor(),
		repos: newMemoryRepositories(store),
		ids:   &seqIDs{prefix: "id"},
	}
	logger := logging.NewNop()
	env.rules = NewLeagueRulesService(env.tx, env.repos)
	env.leagues = NewLeagueService(env.tx, env.repos, env.rules, env.ids)
	env.members = NewMemberService(env.tx, env.repos, env.rules, logger)
	env.invites = NewInviteService(env.tx, env.repos, env.ids, 0)
	env.picks = NewPickService(env.tx, env.repos, env.rules, env.ids)
	env.users = NewUserService(env.tx, env.repos, logger)
	env.rollover = NewSeasonRolloverService(env.tx, env.repos, env.ids, logger)
	env.setNow(testNow)
	return env
}

func (e *testEnv) setNow(now time.Time) {
	clock := func() time.Time { return now }
	e.rules.now = clock
	e.leagues.now = clock
	e.invites.now = clock
	e.picks.now = clock
	e.users.now = clock
	e.rollover.now = clock
}

func (e *testEnv) newUser(t *testing.T, username string) user.Principal {
	t.Helper()

	id, _ := e.ids.NewID()
	u := user.User{ID: "user-" + id, Username: username, Timezone: user.DefaultTimezone}
	if err := e.repos.Users.Create(context.Background(), nil, u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user.Principal{UserID: u.ID, Username: username}
}

func (e *testEnv) newLeague(t *testing.T, owner user.Principal, size int, pickType picksleague.PickType) picksleague.League {
	t.Helper()

	league, err := e.leagues.Create(context.Background(), owner, CreateLeagueInput{
		Name:          "Sunday Sweats",
		Size:          size,
		PickType:      pickType,
		PicksPerWeek:  1,
		SportLeagueID: memory.SeedSportLeagueID,
		StartWeekID:   "seed-week-1",
		EndWeekID:     "seed-week-4",
	})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	return league
}

// join adds p to the league through a fresh link invite.
func (e *testEnv) join(t *testing.T, commissioner, p user.Principal, leagueID string) {
	t.Helper()

	ctx := context.Background()
	inv, err := e.invites.Create(ctx, commissioner, leagueID, CreateInviteInput{})
	if err != nil {
		t.Fatalf("create invite: %v", err)
	}
	if _, err := e.invites.Accept(ctx, p, inv.ID); err != nil {
		t.Fatalf("accept invite: %v", err)
	}
}

func requireKind(t *testing.T, err, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
}

func requireField(t *testing.T, err error, field string) {
	t.Helper()
	appErr, ok := AsApplicationError(err)
	if !ok {
		t.Fatalf("expected application error for field %s, got %v", field, err)
	}
	if appErr.Fields[field] == "" {
		t.Fatalf("expected field error on %s, got fields=%v message=%q", field, appErr.Fields, appErr.Message)
	}
}
