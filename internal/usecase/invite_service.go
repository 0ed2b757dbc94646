package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/invite"
	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	idgen "github.com/picksleagues/picks-leagues/internal/platform/id"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultInviteTTL = 7 * 24 * time.Hour

type CreateInviteInput struct {
	Role   picksleague.Role
	UserID string
}

// InviteDetails is what the join page needs to render an invite.
type InviteDetails struct {
	invite.Invite
	LeagueName string
	Status     invite.Status
}

type InviteService struct {
	tx    database.Transactor
	repos Repositories
	idGen idgen.Generator
	ttl   time.Duration
	now   func() time.Time
}

func NewInviteService(tx database.Transactor, repos Repositories, idGen idgen.Generator, ttl time.Duration) *InviteService {
	if ttl <= 0 {
		ttl = DefaultInviteTTL
	}
	return &InviteService{
		tx:    tx,
		repos: repos,
		idGen: idGen,
		ttl:   ttl,
		now:   time.Now,
	}
}

func ensureCapacity(ctx context.Context, repos Repositories, db database.Handle, league picksleague.League) error {
	count, err := repos.Members.Count(ctx, db, league.ID)
	if err != nil {
		return fmt.Errorf("count members: %w", err)
	}
	if count >= league.Size {
		return fieldError("size", "league is full")
	}
	return nil
}

func (s *InviteService) Create(ctx context.Context, principal user.Principal, leagueID string, in CreateInviteInput) (invite.Invite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.Create", attribute.String("league.id", leagueID))
	var err error
	defer func() { endSpan(span, err) }()

	role := in.Role
	if role == "" {
		role = picksleague.RoleMember
	}
	if !role.Valid() {
		err = fieldError("role", "role must be Commissioner or Member")
		return invite.Invite{}, err
	}
	in.UserID = strings.TrimSpace(in.UserID)

	var created invite.Invite
	err = s.tx.InLockedTx(ctx, membershipLockKey(leagueID), func(ctx context.Context, db database.Handle) error {
		if _, err := requireCommissioner(ctx, s.repos, db, leagueID, principal.UserID); err != nil {
			return err
		}
		league, err := requireLeague(ctx, s.repos, db, leagueID)
		if err != nil {
			return err
		}
		if err := ensureCapacity(ctx, s.repos, db, league); err != nil {
			return err
		}

		if in.UserID != "" {
			if _, ok, err := s.repos.Users.GetByID(ctx, db, in.UserID); err != nil {
				return fmt.Errorf("get invitee: %w", err)
			} else if !ok {
				return fieldError("userId", "user not found")
			}
			if _, ok, err := getMember(ctx, s.repos, db, leagueID, in.UserID); err != nil {
				return err
			} else if ok {
				return fieldError("userId", "user is already a member")
			}
		}

		id, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate invite id: %w", err)
		}
		now := s.now().UTC()
		created = invite.Invite{
			ID:        id,
			LeagueID:  leagueID,
			ExpiresAt: now.Add(s.ttl),
			Role:      role,
			UserID:    in.UserID,
			CreatedAt: now,
		}
		if err := s.repos.Invites.Create(ctx, db, created); err != nil {
			return fmt.Errorf("create invite: %w", err)
		}
		return nil
	})
	if err != nil {
		return invite.Invite{}, err
	}
	return created, nil
}

// Accept re-checks the invite, membership and capacity while holding the
// league row, so concurrent accepts cannot overfill the league.
func (s *InviteService) Accept(ctx context.Context, principal user.Principal, inviteID string) (picksleague.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.Accept", attribute.String("invite.id", inviteID))
	var err error
	defer func() { endSpan(span, err) }()

	inv, ok, err := s.repos.Invites.GetByID(ctx, s.tx.Conn(), inviteID)
	if err != nil {
		err = fmt.Errorf("get invite: %w", err)
		return picksleague.Member{}, err
	}
	if !ok {
		err = NotFound("invite not found")
		return picksleague.Member{}, err
	}

	var member picksleague.Member
	err = s.tx.InLockedTx(ctx, membershipLockKey(inv.LeagueID), func(ctx context.Context, db database.Handle) error {
		league, ok, err := s.repos.Leagues.GetByIDForUpdate(ctx, db, inv.LeagueID)
		if err != nil {
			return fmt.Errorf("lock league: %w", err)
		}
		if !ok {
			return NotFound("league not found")
		}

		inv, ok, err := s.repos.Invites.GetByID(ctx, db, inviteID)
		if err != nil {
			return fmt.Errorf("get invite: %w", err)
		}
		if !ok {
			return NotFound("invite not found")
		}
		if inv.IsDirect() && inv.UserID != principal.UserID {
			return NotAllowed("this invite is for another user")
		}
		if inv.Expired(s.now()) {
			return fieldError("expiresAt", "invite has expired")
		}
		if _, ok, err := getMember(ctx, s.repos, db, league.ID, principal.UserID); err != nil {
			return err
		} else if ok {
			return fieldError("userId", "you are already a member of this league")
		}
		if err := ensureCapacity(ctx, s.repos, db, league); err != nil {
			return err
		}

		member = picksleague.Member{
			LeagueID: league.ID,
			UserID:   principal.UserID,
			Role:     inv.RoleOrDefault(),
			JoinedAt: s.now().UTC(),
		}
		if err := s.repos.Members.Create(ctx, db, member); err != nil {
			return fmt.Errorf("create member: %w", err)
		}
		if err := s.repos.Invites.DeleteDirect(ctx, db, league.ID, principal.UserID); err != nil {
			return fmt.Errorf("delete direct invites: %w", err)
		}
		return nil
	})
	if err != nil {
		return picksleague.Member{}, err
	}
	return member, nil
}

// Decline drops a direct invite. Link invites are shared and stay in place.
func (s *InviteService) Decline(ctx context.Context, principal user.Principal, inviteID string) error {
	db := s.tx.Conn()
	inv, ok, err := s.repos.Invites.GetByID(ctx, db, inviteID)
	if err != nil {
		return fmt.Errorf("get invite: %w", err)
	}
	if !ok {
		return NotFound("invite not found")
	}
	if inv.IsDirect() && inv.UserID != principal.UserID {
		return NotAllowed("this invite is for another user")
	}
	if !inv.IsDirect() {
		return nil
	}
	if err := s.repos.Invites.Delete(ctx, db, inv.ID); err != nil {
		return fmt.Errorf("delete invite: %w", err)
	}
	return nil
}

func (s *InviteService) ListForLeague(ctx context.Context, principal user.Principal, leagueID string) ([]invite.Invite, error) {
	db := s.tx.Conn()
	if _, err := requireCommissioner(ctx, s.repos, db, leagueID, principal.UserID); err != nil {
		return nil, err
	}
	invites, err := s.repos.Invites.ListByLeague(ctx, db, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	return invites, nil
}

func (s *InviteService) ListMine(ctx context.Context, principal user.Principal) ([]invite.Invite, error) {
	invites, err := s.repos.Invites.ListPendingForUser(ctx, s.tx.Conn(), principal.UserID, s.now())
	if err != nil {
		return nil, fmt.Errorf("list pending invites: %w", err)
	}
	return invites, nil
}

func (s *InviteService) Revoke(ctx context.Context, principal user.Principal, leagueID, inviteID string) error {
	db := s.tx.Conn()
	if _, err := requireCommissioner(ctx, s.repos, db, leagueID, principal.UserID); err != nil {
		return err
	}
	inv, ok, err := s.repos.Invites.GetByID(ctx, db, inviteID)
	if err != nil {
		return fmt.Errorf("get invite: %w", err)
	}
	if !ok || inv.LeagueID != leagueID {
		return NotFound("invite not found")
	}
	if err := s.repos.Invites.Delete(ctx, db, inviteID); err != nil {
		return fmt.Errorf("delete invite: %w", err)
	}
	return nil
}

func (s *InviteService) Get(ctx context.Context, principal user.Principal, inviteID string) (InviteDetails, error) {
	db := s.tx.Conn()
	inv, ok, err := s.repos.Invites.GetByID(ctx, db, inviteID)
	if err != nil {
		return InviteDetails{}, fmt.Errorf("get invite: %w", err)
	}
	if !ok {
		return InviteDetails{}, NotFound("invite not found")
	}
	if inv.IsDirect() && inv.UserID != principal.UserID {
		return InviteDetails{}, NotAllowed("this invite is for another user")
	}
	league, err := requireLeague(ctx, s.repos, db, inv.LeagueID)
	if err != nil {
		return InviteDetails{}, err
	}
	return InviteDetails{
		Invite:     inv,
		LeagueName: league.Name,
		Status:     inv.Status(s.now()),
	}, nil
}
