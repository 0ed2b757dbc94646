package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonRolloverService_Run(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.newUser(t, "owner")
	league := env.newLeague(t, owner, 4, picksleague.PickTypeStraightUp)

	// Season still running: nothing moves.
	moved, err := env.rollover.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, moved)

	// Season over but no newer season mirrored yet.
	env.setNow(time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC))
	moved, err = env.rollover.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, moved)

	nextStart := time.Date(2027, time.September, 6, 0, 0, 0, 0, time.UTC)
	require.NoError(t, env.repos.Seasons.Upsert(ctx, nil, []sport.Season{{
		ID: "season-2027", SportLeagueID: "seed-nfl", ESPNID: "2027",
		StartTime: nextStart, EndTime: nextStart.AddDate(0, 5, 0),
	}}))
	require.NoError(t, env.repos.Weeks.Upsert(ctx, nil, []sport.Week{
		{ID: "pre-1", SeasonID: "season-2027", ESPNID: "1-1", SeasonType: sport.SeasonTypePreseason, Number: 1, StartTime: nextStart.AddDate(0, 0, -14)},
		{ID: "reg-1", SeasonID: "season-2027", ESPNID: "2-1", SeasonType: sport.SeasonTypeRegular, Number: 1, StartTime: nextStart},
		{ID: "reg-2", SeasonID: "season-2027", ESPNID: "2-2", SeasonType: sport.SeasonTypeRegular, Number: 2, StartTime: nextStart.AddDate(0, 0, 7)},
		{ID: "post-1", SeasonID: "season-2027", ESPNID: "3-1", SeasonType: sport.SeasonTypePostseason, Number: 1, StartTime: nextStart.AddDate(0, 0, 14)},
	}))

	moved, err = env.rollover.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	active, ok, err := env.repos.LeagueSeasons.GetActive(ctx, nil, league.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "season-2027", active.SportLeagueSeasonID)
	assert.Equal(t, "reg-1", active.StartWeekID)
	assert.Equal(t, "reg-2", active.EndWeekID)

	moved, err = env.rollover.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, moved, "a rolled over league must not move twice")
}
