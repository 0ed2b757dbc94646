package picksleague

import (
	"context"

	"github.com/picksleagues/picks-leagues/internal/platform/database"
)

type Repository interface {
	Create(ctx context.Context, db database.Handle, league League) error
	GetByID(ctx context.Context, db database.Handle, leagueID string) (League, bool, error)
	// GetByIDForUpdate locks the league row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, db database.Handle, leagueID string) (League, bool, error)
	ListByUser(ctx context.Context, db database.Handle, userID string) ([]League, error)
	Update(ctx context.Context, db database.Handle, league League) error
	// Delete removes the league; members, seasons, invites and picks go with it.
	Delete(ctx context.Context, db database.Handle, leagueID string) error
}

type MemberRepository interface {
	Create(ctx context.Context, db database.Handle, member Member) error
	Get(ctx context.Context, db database.Handle, leagueID, userID string) (Member, bool, error)
	List(ctx context.Context, db database.Handle, leagueID string) ([]MemberProfile, error)
	ListByUser(ctx context.Context, db database.Handle, userID string) ([]Member, error)
	Count(ctx context.Context, db database.Handle, leagueID string) (int, error)
	CountByRole(ctx context.Context, db database.Handle, leagueID string, role Role) (int, error)
	UpdateRole(ctx context.Context, db database.Handle, leagueID, userID string, role Role) error
	Delete(ctx context.Context, db database.Handle, leagueID, userID string) error
}
