package pick

import (
	"context"

	"github.com/picksleagues/picks-leagues/internal/platform/database"
)

type Repository interface {
	// ReplaceForWeek swaps the user's picks for a week with picks.
	ReplaceForWeek(ctx context.Context, db database.Handle, leagueID, userID, weekID string, picks []Pick) error
	ListByWeek(ctx context.Context, db database.Handle, leagueID, weekID string) ([]Pick, error)
	ListByLeague(ctx context.Context, db database.Handle, leagueID string, weekIDs []string) ([]Pick, error)
}
