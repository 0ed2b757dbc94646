package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/leagueseason"
	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	"go.opentelemetry.io/otel/attribute"
)

// WeekNavigation points at the neighbours of a week inside a league's season.
type WeekNavigation struct {
	Previous *sport.Week
	Next     *sport.Week
}

// seasonWindow is a league's active season resolved to its first and last week.
type seasonWindow struct {
	Season leagueseason.Season
	Start  sport.Week
	End    sport.Week
}

type LeagueRulesService struct {
	tx    database.Transactor
	repos Repositories
	now   func() time.Time
}

func NewLeagueRulesService(tx database.Transactor, repos Repositories) *LeagueRulesService {
	return &LeagueRulesService{
		tx:    tx,
		repos: repos,
		now:   time.Now,
	}
}

// activeWindow reports false when the league has no active season or either
// boundary week no longer exists.
func (s *LeagueRulesService) activeWindow(ctx context.Context, db database.Handle, leagueID string) (seasonWindow, bool, error) {
	season, ok, err := s.repos.LeagueSeasons.GetActive(ctx, db, leagueID)
	if err != nil {
		return seasonWindow{}, false, fmt.Errorf("get active season: %w", err)
	}
	if !ok {
		return seasonWindow{}, false, nil
	}

	start, ok, err := s.repos.Weeks.GetByID(ctx, db, season.StartWeekID)
	if err != nil {
		return seasonWindow{}, false, fmt.Errorf("get start week: %w", err)
	}
	if !ok {
		return seasonWindow{}, false, nil
	}
	end, ok, err := s.repos.Weeks.GetByID(ctx, db, season.EndWeekID)
	if err != nil {
		return seasonWindow{}, false, fmt.Errorf("get end week: %w", err)
	}
	if !ok {
		return seasonWindow{}, false, nil
	}

	return seasonWindow{Season: season, Start: start, End: end}, true, nil
}

// windowWeeks lists the weeks between the window's boundaries, ascending.
func (s *LeagueRulesService) windowWeeks(ctx context.Context, db database.Handle, window seasonWindow) ([]sport.Week, error) {
	weeks, err := s.repos.Weeks.ListBySeason(ctx, db, window.Start.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("list season weeks: %w", err)
	}

	out := make([]sport.Week, 0, len(weeks))
	for _, w := range weeks {
		if w.StartTime.Before(window.Start.StartTime) || w.StartTime.After(window.End.StartTime) {
			continue
		}
		out = append(out, w)
	}
	slices.SortStableFunc(out, func(a, b sport.Week) int {
		return a.StartTime.Compare(b.StartTime)
	})
	return out, nil
}

func (s *LeagueRulesService) LeagueIsInSeason(ctx context.Context, leagueID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueRulesService.LeagueIsInSeason", attribute.String("league.id", leagueID))
	defer span.End()

	window, ok, err := s.activeWindow(ctx, s.tx.Conn(), leagueID)
	if err != nil || !ok {
		return false, err
	}
	now := s.now()
	return !now.Before(window.Start.StartTime) && !now.After(window.End.EndTime), nil
}

// CanEditSeasonSettings is true outside the active season's span, or when
// there is no active season at all.
func (s *LeagueRulesService) CanEditSeasonSettings(ctx context.Context, leagueID string) (bool, error) {
	return s.canEditSeasonSettings(ctx, s.tx.Conn(), leagueID)
}

func (s *LeagueRulesService) canEditSeasonSettings(ctx context.Context, db database.Handle, leagueID string) (bool, error) {
	window, ok, err := s.activeWindow(ctx, db, leagueID)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	now := s.now()
	return now.Before(window.Start.StartTime) || now.After(window.End.EndTime), nil
}

// ComputePrevNextWeek returns empty navigation for a week outside the window.
func (s *LeagueRulesService) ComputePrevNextWeek(ctx context.Context, leagueID, selectedWeekID string) (WeekNavigation, error) {
	db := s.tx.Conn()
	window, ok, err := s.activeWindow(ctx, db, leagueID)
	if err != nil || !ok {
		return WeekNavigation{}, err
	}
	weeks, err := s.windowWeeks(ctx, db, window)
	if err != nil {
		return WeekNavigation{}, err
	}

	idx := slices.IndexFunc(weeks, func(w sport.Week) bool { return w.ID == selectedWeekID })
	if idx < 0 {
		return WeekNavigation{}, nil
	}

	var nav WeekNavigation
	if idx > 0 {
		prev := weeks[idx-1]
		nav.Previous = &prev
	}
	if idx < len(weeks)-1 {
		next := weeks[idx+1]
		nav.Next = &next
	}
	return nav, nil
}

func (s *LeagueRulesService) UpdateMemberRole(ctx context.Context, principal user.Principal, leagueID, targetUserID string, role picksleague.Role) (picksleague.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueRulesService.UpdateMemberRole", attribute.String("league.id", leagueID))
	var err error
	defer func() { endSpan(span, err) }()

	targetUserID = strings.TrimSpace(targetUserID)
	if !role.Valid() {
		err = fieldError("role", "role must be Commissioner or Member")
		return picksleague.Member{}, err
	}

	var updated picksleague.Member
	err = s.tx.InLockedTx(ctx, membershipLockKey(leagueID), func(ctx context.Context, db database.Handle) error {
		if _, err := requireCommissioner(ctx, s.repos, db, leagueID, principal.UserID); err != nil {
			return err
		}

		target, ok, err := getMember(ctx, s.repos, db, leagueID, targetUserID)
		if err != nil {
			return err
		}
		if !ok {
			return NotFound("member not found")
		}

		if target.IsCommissioner() && role != picksleague.RoleCommissioner {
			commissioners, err := s.repos.Members.CountByRole(ctx, db, leagueID, picksleague.RoleCommissioner)
			if err != nil {
				return fmt.Errorf("count commissioners: %w", err)
			}
			if commissioners <= 1 {
				return fieldError("role", "a league must keep at least one commissioner")
			}
		}

		if target.Role != role {
			if err := s.repos.Members.UpdateRole(ctx, db, leagueID, targetUserID, role); err != nil {
				return fmt.Errorf("update member role: %w", err)
			}
		}

		updated, ok, err = getMember(ctx, s.repos, db, leagueID, targetUserID)
		if err != nil {
			return err
		}
		if !ok {
			return NotFound("member not found")
		}
		return nil
	})
	if err != nil {
		return picksleague.Member{}, err
	}
	return updated, nil
}

// DeleteLeague removes the league; members, seasons, invites and picks cascade.
func (s *LeagueRulesService) DeleteLeague(ctx context.Context, principal user.Principal, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueRulesService.DeleteLeague", attribute.String("league.id", leagueID))
	var err error
	defer func() { endSpan(span, err) }()

	err = s.tx.InLockedTx(ctx, membershipLockKey(leagueID), func(ctx context.Context, db database.Handle) error {
		if _, err := requireCommissioner(ctx, s.repos, db, leagueID, principal.UserID); err != nil {
			return err
		}
		if err := s.repos.Leagues.Delete(ctx, db, leagueID); err != nil {
			return fmt.Errorf("delete league: %w", err)
		}
		return nil
	})
	return err
}
