package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/pick"
	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	idgen "github.com/picksleagues/picks-leagues/internal/platform/id"
	"go.opentelemetry.io/otel/attribute"
)

type PickInput struct {
	GameID string
	TeamID string
}

type PickService struct {
	tx    database.Transactor
	repos Repositories
	rules *LeagueRulesService
	idGen idgen.Generator
	now   func() time.Time
}

func NewPickService(tx database.Transactor, repos Repositories, rules *LeagueRulesService, idGen idgen.Generator) *PickService {
	return &PickService{
		tx:    tx,
		repos: repos,
		rules: rules,
		idGen: idGen,
		now:   time.Now,
	}
}

// weekInWindow loads weekID and checks it lies within the league's active season.
func (s *PickService) weekInWindow(ctx context.Context, db database.Handle, leagueID, weekID string) (sport.Week, error) {
	window, ok, err := s.rules.activeWindow(ctx, db, leagueID)
	if err != nil {
		return sport.Week{}, err
	}
	if !ok {
		return sport.Week{}, fieldError("weekId", "league has no active season")
	}
	weeks, err := s.rules.windowWeeks(ctx, db, window)
	if err != nil {
		return sport.Week{}, err
	}
	idx := slices.IndexFunc(weeks, func(w sport.Week) bool { return w.ID == weekID })
	if idx < 0 {
		return sport.Week{}, fieldError("weekId", "week is not part of the league's season")
	}
	return weeks[idx], nil
}

// Submit replaces the caller's picks for a week. Picks on games that already
// started are locked: they must be resubmitted unchanged.
func (s *PickService) Submit(ctx context.Context, principal user.Principal, leagueID, weekID string, inputs []PickInput) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Submit",
		attribute.String("league.id", leagueID), attribute.String("week.id", weekID))
	var err error
	defer func() { endSpan(span, err) }()

	var saved []pick.Pick
	err = s.tx.InTx(ctx, func(ctx context.Context, db database.Handle) error {
		if _, err := requireMember(ctx, s.repos, db, leagueID, principal.UserID); err != nil {
			return err
		}
		league, err := requireLeague(ctx, s.repos, db, leagueID)
		if err != nil {
			return err
		}
		week, err := s.weekInWindow(ctx, db, leagueID, weekID)
		if err != nil {
			return err
		}
		if len(inputs) != league.PicksPerWeek {
			return fieldError("picks", fmt.Sprintf("exactly %d picks are required", league.PicksPerWeek))
		}

		games, err := s.repos.Games.ListByWeeks(ctx, db, []string{week.ID})
		if err != nil {
			return fmt.Errorf("list week games: %w", err)
		}
		gamesByID := make(map[string]sport.Game, len(games))
		for _, g := range games {
			gamesByID[g.ID] = g
		}

		existing, err := s.repos.Picks.ListByWeek(ctx, db, leagueID, week.ID)
		if err != nil {
			return fmt.Errorf("list existing picks: %w", err)
		}
		locked := make(map[string]pick.Pick)
		now := s.now()
		for _, p := range existing {
			if p.UserID != principal.UserID {
				continue
			}
			if g, ok := gamesByID[p.GameID]; ok && g.Started(now) {
				locked[p.GameID] = p
			}
		}

		spreads, err := s.latestSpreads(ctx, db, league, games)
		if err != nil {
			return err
		}

		seen := make(map[string]bool, len(inputs))
		picks := make([]pick.Pick, 0, len(inputs))
		for _, in := range inputs {
			gameID := strings.TrimSpace(in.GameID)
			teamID := strings.TrimSpace(in.TeamID)

			g, ok := gamesByID[gameID]
			if !ok {
				return fieldError("picks", fmt.Sprintf("game %s is not in this week", gameID))
			}
			if seen[gameID] {
				return fieldError("picks", "only one pick per game is allowed")
			}
			seen[gameID] = true
			if !g.HasTeam(teamID) {
				return fieldError("picks", fmt.Sprintf("team %s is not playing in game %s", teamID, gameID))
			}

			if prev, ok := locked[gameID]; ok {
				if prev.TeamID != teamID {
					return fieldError("picks", fmt.Sprintf("game %s has already started", gameID))
				}
				picks = append(picks, prev)
				continue
			}
			if g.Started(now) {
				return fieldError("picks", fmt.Sprintf("game %s has already started", gameID))
			}

			p := pick.Pick{
				LeagueID:  leagueID,
				UserID:    principal.UserID,
				WeekID:    week.ID,
				GameID:    gameID,
				TeamID:    teamID,
				CreatedAt: now.UTC(),
			}
			if league.PickType == picksleague.PickTypeAgainstTheSpread {
				odds, ok := spreads[gameID]
				if !ok {
					return fieldError("picks", fmt.Sprintf("no odds are available for game %s", gameID))
				}
				line := odds.SpreadFor(g, teamID)
				p.Spread = &line
			}
			if p.ID, err = s.idGen.NewID(); err != nil {
				return fmt.Errorf("generate pick id: %w", err)
			}
			picks = append(picks, p)
		}
		for gameID := range locked {
			if !seen[gameID] {
				return fieldError("picks", fmt.Sprintf("game %s has already started", gameID))
			}
		}

		if err := s.repos.Picks.ReplaceForWeek(ctx, db, leagueID, principal.UserID, week.ID, picks); err != nil {
			return fmt.Errorf("replace picks: %w", err)
		}
		saved = picks
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// latestSpreads picks the most recently updated line per game.
func (s *PickService) latestSpreads(ctx context.Context, db database.Handle, league picksleague.League, games []sport.Game) (map[string]sport.Odds, error) {
	out := make(map[string]sport.Odds)
	if league.PickType != picksleague.PickTypeAgainstTheSpread || len(games) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
	}
	odds, err := s.repos.Odds.ListByGames(ctx, db, ids)
	if err != nil {
		return nil, fmt.Errorf("list odds: %w", err)
	}
	for _, o := range odds {
		if cur, ok := out[o.GameID]; !ok || o.UpdatedAt.After(cur.UpdatedAt) {
			out[o.GameID] = o
		}
	}
	return out, nil
}

// ListForWeek returns the caller's picks, plus other members' picks on games
// that have started.
func (s *PickService) ListForWeek(ctx context.Context, principal user.Principal, leagueID, weekID string) ([]pick.Pick, error) {
	db := s.tx.Conn()
	if _, err := requireMember(ctx, s.repos, db, leagueID, principal.UserID); err != nil {
		return nil, err
	}
	picks, err := s.repos.Picks.ListByWeek(ctx, db, leagueID, weekID)
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}
	games, err := s.repos.Games.ListByWeeks(ctx, db, []string{weekID})
	if err != nil {
		return nil, fmt.Errorf("list week games: %w", err)
	}
	started := make(map[string]bool, len(games))
	now := s.now()
	for _, g := range games {
		started[g.ID] = g.Started(now)
	}

	visible := make([]pick.Pick, 0, len(picks))
	for _, p := range picks {
		if p.UserID == principal.UserID || started[p.GameID] {
			visible = append(visible, p)
		}
	}
	return visible, nil
}
