package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/picksleagues/picks-leagues/internal/domain/invite"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	qb "github.com/picksleagues/picks-leagues/internal/platform/querybuilder"
)

type InviteRepository struct{}

func NewInviteRepository() *InviteRepository {
	return &InviteRepository{}
}

func (r *InviteRepository) Create(ctx context.Context, db database.Handle, inv invite.Invite) error {
	query, args, err := qb.InsertModel("picks_league_invites", inviteInsertModel{
		ID:        inv.ID,
		LeagueID:  inv.LeagueID,
		ExpiresAt: inv.ExpiresAt,
		Role:      string(inv.RoleOrDefault()),
		UserID:    nullString(inv.UserID),
	}, "")
	if err != nil {
		return fmt.Errorf("build create invite query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create invite: %w", err)
	}
	return nil
}

func (r *InviteRepository) GetByID(ctx context.Context, db database.Handle, inviteID string) (invite.Invite, bool, error) {
	query, args, err := qb.Select("*").From("picks_league_invites").Where(qb.Eq("id", inviteID)).ToSQL()
	if err != nil {
		return invite.Invite{}, false, fmt.Errorf("build get invite query: %w", err)
	}

	var row inviteTableModel
	if err := sqlx.GetContext(ctx, db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return invite.Invite{}, false, nil
		}
		return invite.Invite{}, false, fmt.Errorf("get invite: %w", err)
	}
	return inviteFromRow(row), true, nil
}

func (r *InviteRepository) ListByLeague(ctx context.Context, db database.Handle, leagueID string) ([]invite.Invite, error) {
	return r.list(ctx, db, "list league invites", qb.Eq("league_id", leagueID))
}

func (r *InviteRepository) ListPendingForUser(ctx context.Context, db database.Handle, userID string, now time.Time) ([]invite.Invite, error) {
	return r.list(ctx, db, "list user invites", qb.Eq("user_id", userID), qb.Gte("expires_at", now))
}

func (r *InviteRepository) list(ctx context.Context, db database.Handle, op string, conds ...qb.Condition) ([]invite.Invite, error) {
	query, args, err := qb.Select("*").
		From("picks_league_invites").
		Where(conds...).
		OrderBy("created_at DESC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []inviteTableModel
	if err := sqlx.SelectContext(ctx, db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]invite.Invite, 0, len(rows))
	for _, row := range rows {
		out = append(out, inviteFromRow(row))
	}
	return out, nil
}

func (r *InviteRepository) Delete(ctx context.Context, db database.Handle, inviteID string) error {
	query, args, err := qb.DeleteFrom("picks_league_invites").Where(qb.Eq("id", inviteID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete invite query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete invite: %w", err)
	}
	return nil
}

func (r *InviteRepository) DeleteDirect(ctx context.Context, db database.Handle, leagueID, userID string) error {
	query, args, err := qb.DeleteFrom("picks_league_invites").
		Where(qb.Eq("league_id", leagueID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete direct invites query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete direct invites: %w", err)
	}
	return nil
}
