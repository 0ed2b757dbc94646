package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type MemberService struct {
	tx     database.Transactor
	repos  Repositories
	rules  *LeagueRulesService
	logger *logging.Logger
}

func NewMemberService(tx database.Transactor, repos Repositories, rules *LeagueRulesService, logger *logging.Logger) *MemberService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MemberService{
		tx:     tx,
		repos:  repos,
		rules:  rules,
		logger: logger,
	}
}

func (s *MemberService) List(ctx context.Context, principal user.Principal, leagueID string) ([]picksleague.MemberProfile, error) {
	db := s.tx.Conn()
	if _, err := requireMember(ctx, s.repos, db, leagueID, principal.UserID); err != nil {
		return nil, err
	}
	members, err := s.repos.Members.List(ctx, db, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (s *MemberService) UpdateRole(ctx context.Context, principal user.Principal, leagueID, userID string, role picksleague.Role) (picksleague.Member, error) {
	return s.rules.UpdateMemberRole(ctx, principal, leagueID, userID, role)
}

// Leave removes the caller. The last member leaving deletes the league; the
// last commissioner must hand over the role first.
func (s *MemberService) Leave(ctx context.Context, principal user.Principal, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MemberService.Leave", attribute.String("league.id", leagueID))
	var err error
	defer func() { endSpan(span, err) }()

	err = s.tx.InLockedTx(ctx, membershipLockKey(leagueID), func(ctx context.Context, db database.Handle) error {
		member, ok, err := getMember(ctx, s.repos, db, leagueID, principal.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return NotFound("you are not a member of this league")
		}

		count, err := s.repos.Members.Count(ctx, db, leagueID)
		if err != nil {
			return fmt.Errorf("count members: %w", err)
		}
		if count <= 1 {
			if err := s.repos.Leagues.Delete(ctx, db, leagueID); err != nil {
				return fmt.Errorf("delete empty league: %w", err)
			}
			s.logger.InfoContext(ctx, "last member left, league deleted", "league_id", leagueID, "user_id", principal.UserID)
			return nil
		}

		if member.IsCommissioner() {
			commissioners, err := s.repos.Members.CountByRole(ctx, db, leagueID, picksleague.RoleCommissioner)
			if err != nil {
				return fmt.Errorf("count commissioners: %w", err)
			}
			if commissioners <= 1 {
				return fieldError("role", "make another member commissioner before leaving")
			}
		}

		if err := s.repos.Members.Delete(ctx, db, leagueID, principal.UserID); err != nil {
			return fmt.Errorf("delete member: %w", err)
		}
		return nil
	})
	return err
}

func (s *MemberService) Remove(ctx context.Context, principal user.Principal, leagueID, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MemberService.Remove", attribute.String("league.id", leagueID))
	var err error
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	err = s.tx.InLockedTx(ctx, membershipLockKey(leagueID), func(ctx context.Context, db database.Handle) error {
		if _, err := requireCommissioner(ctx, s.repos, db, leagueID, principal.UserID); err != nil {
			return err
		}
		if userID == principal.UserID {
			return fieldError("userId", "use leave to remove yourself")
		}
		if _, ok, err := getMember(ctx, s.repos, db, leagueID, userID); err != nil {
			return err
		} else if !ok {
			return NotFound("member not found")
		}
		if err := s.repos.Members.Delete(ctx, db, leagueID, userID); err != nil {
			return fmt.Errorf("delete member: %w", err)
		}
		return nil
	})
	return err
}
