package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/picksleagues/picks-leagues/internal/config"
	"github.com/picksleagues/picks-leagues/internal/domain/ingestionrun"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

type recordingIngester struct {
	mu      sync.Mutex
	calls   []ingestionrun.Entity
	failOn  ingestionrun.Entity
	trigger ingestionrun.Trigger
}

func (r *recordingIngester) Run(_ context.Context, entity ingestionrun.Entity, trigger ingestionrun.Trigger) (ingestionrun.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, entity)
	r.trigger = trigger
	if entity == r.failOn {
		return ingestionrun.Run{Entity: entity, Status: ingestionrun.StatusFailed}, errors.New("espn unavailable")
	}
	return ingestionrun.Run{Entity: entity, Status: ingestionrun.StatusCompleted}, nil
}

type countingPurger struct{ calls int }

func (c *countingPurger) PurgeExpiredSessions(context.Context) (int64, error) {
	c.calls++
	return 3, nil
}

func workerConfig() config.Config {
	return config.Config{
		WorkerIngestSchedule:   "0 6 * * *",
		WorkerGamesSchedule:    "*/5 * * * *",
		WorkerOddsSchedule:     "*/30 * * * *",
		WorkerRolloverSchedule: "0 7 * * *",
		WorkerSessionsSchedule: "@hourly",
	}
}

func TestDefaultJobs(t *testing.T) {
	t.Parallel()

	ingester := &recordingIngester{}
	purger := &countingPurger{}
	jobs := DefaultJobs(workerConfig(), ingester, purger, logging.NewNop())

	byName := make(map[string]Job, len(jobs))
	for _, job := range jobs {
		byName[job.Name] = job
	}

	ctx := context.Background()
	require.NoError(t, byName["catalogue"].Run(ctx))
	require.NoError(t, byName["rollover"].Run(ctx))
	require.NoError(t, byName["sessions"].Run(ctx))

	want := []ingestionrun.Entity{
		ingestionrun.EntitySportLeagues,
		ingestionrun.EntitySeasons,
		ingestionrun.EntityTeams,
		ingestionrun.EntityWeeks,
		ingestionrun.EntityPicksLeagueSeasons,
	}
	if diff := cmp.Diff(want, ingester.calls); diff != "" {
		t.Fatalf("unexpected ingestion calls (-want +got):\n%s", diff)
	}
	if ingester.trigger != ingestionrun.TriggerWorker {
		t.Fatalf("unexpected trigger %s", ingester.trigger)
	}
	if purger.calls != 1 {
		t.Fatalf("expected one purge, got %d", purger.calls)
	}
}

func TestRunOnStart_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	ingester := &recordingIngester{failOn: ingestionrun.EntitySeasons}
	s, err := New(DefaultJobs(workerConfig(), ingester, &countingPurger{}, logging.NewNop()), 2, logging.NewNop())
	require.NoError(t, err)
	s.Start(context.Background())
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	require.Error(t, RunOnStart(s))
	want := []ingestionrun.Entity{ingestionrun.EntitySportLeagues, ingestionrun.EntitySeasons}
	if diff := cmp.Diff(want, ingester.calls); diff != "" {
		t.Fatalf("unexpected ingestion calls (-want +got):\n%s", diff)
	}
}
