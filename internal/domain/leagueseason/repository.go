package leagueseason

import (
	"context"

	"github.com/picksleagues/picks-leagues/internal/platform/database"
)

type Repository interface {
	Create(ctx context.Context, db database.Handle, season Season) error
	GetActive(ctx context.Context, db database.Handle, leagueID string) (Season, bool, error)
	ListActive(ctx context.Context, db database.Handle) ([]Season, error)
	UpdateWeeks(ctx context.Context, db database.Handle, seasonID, startWeekID, endWeekID string) error
	Deactivate(ctx context.Context, db database.Handle, seasonID string) error
}
