package invite

import (
	"context"
	"time"

	"github.com/picksleagues/picks-leagues/internal/platform/database"
)

type Repository interface {
	Create(ctx context.Context, db database.Handle, inv Invite) error
	GetByID(ctx context.Context, db database.Handle, inviteID string) (Invite, bool, error)
	ListByLeague(ctx context.Context, db database.Handle, leagueID string) ([]Invite, error)
	// ListPendingForUser returns unexpired direct invites addressed to userID.
	ListPendingForUser(ctx context.Context, db database.Handle, userID string, now time.Time) ([]Invite, error)
	Delete(ctx context.Context, db database.Handle, inviteID string) error
	DeleteDirect(ctx context.Context, db database.Handle, leagueID, userID string) error
}
