package ingestionrun

import (
	"context"

	"github.com/picksleagues/picks-leagues/internal/platform/database"
)

type Repository interface {
	Create(ctx context.Context, db database.Handle, run Run) error
	Finish(ctx context.Context, db database.Handle, run Run) error
	ListRecent(ctx context.Context, db database.Handle, limit int) ([]Run, error)
}
