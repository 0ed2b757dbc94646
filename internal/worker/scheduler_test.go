package worker

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsBadSchedule(t *testing.T) {
	t.Parallel()

	_, err := New([]Job{{Name: "games", Schedule: "every now and then", Run: func(context.Context) error { return nil }}}, 1, logging.NewNop())
	require.Error(t, err)
}

func TestNew_RejectsDuplicateJob(t *testing.T) {
	t.Parallel()

	noop := func(context.Context) error { return nil }
	_, err := New([]Job{
		{Name: "games", Schedule: "@hourly", Run: noop},
		{Name: "games", Schedule: "@daily", Run: noop},
	}, 1, logging.NewNop())
	require.Error(t, err)
}

func TestNew_SkipsDisabledJobs(t *testing.T) {
	t.Parallel()

	noop := func(context.Context) error { return nil }
	s, err := New([]Job{
		{Name: "games", Schedule: "*/5 * * * *", Run: noop},
		{Name: "odds", Schedule: "-", Run: noop},
		{Name: "teams", Schedule: "", Run: noop},
	}, 2, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	got := s.Jobs()
	sort.Strings(got)
	if diff := cmp.Diff([]string{"games"}, got); diff != "" {
		t.Fatalf("unexpected jobs (-want +got):\n%s", diff)
	}
}

func TestScheduler_RunNow(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	boom := errors.New("espn unavailable")
	s, err := New([]Job{
		{Name: "ok", Schedule: "@daily", Run: func(context.Context) error { calls.Add(1); return nil }},
		{Name: "fails", Schedule: "@daily", Run: func(context.Context) error { return boom }},
		{Name: "panics", Schedule: "@daily", Run: func(context.Context) error { panic("bad week") }},
	}, 2, logging.NewNop())
	require.NoError(t, err)
	s.Start(context.Background())
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	require.NoError(t, s.RunNow("ok"))
	assert.Equal(t, int32(1), calls.Load())
	assert.ErrorIs(t, s.RunNow("fails"), boom)
	assert.ErrorContains(t, s.RunNow("panics"), "panicked")
	assert.Error(t, s.RunNow("missing"))
}

func TestScheduler_StopCancelsRunningJobs(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	s, err := New([]Job{{Name: "slow", Schedule: "@daily", Run: func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}}}, 1, logging.NewNop())
	require.NoError(t, err)
	s.Start(context.Background())

	result := make(chan error, 1)
	go func() { result <- s.RunNow("slow") }()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.ErrorIs(t, <-result, context.Canceled)
}
