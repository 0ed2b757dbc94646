package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/leagueseason"
	"github.com/picksleagues/picks-leagues/internal/domain/pick"
	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	idgen "github.com/picksleagues/picks-leagues/internal/platform/id"
	"go.opentelemetry.io/otel/attribute"
)

const (
	minLeagueNameLength = 3
	maxLeagueNameLength = 50
)

type CreateLeagueInput struct {
	Name          string
	Size          int
	PickType      picksleague.PickType
	PicksPerWeek  int
	LogoURL       string
	SportLeagueID string
	StartWeekID   string
	EndWeekID     string
}

// UpdateLeagueInput changes only the fields that are set.
type UpdateLeagueInput struct {
	Name         *string
	Size         *int
	PickType     *picksleague.PickType
	PicksPerWeek *int
	LogoURL      *string
	StartWeekID  *string
	EndWeekID    *string
}

func (in UpdateLeagueInput) changesSeasonSettings() bool {
	return in.PickType != nil || in.PicksPerWeek != nil || in.StartWeekID != nil || in.EndWeekID != nil
}

type LeagueStatus struct {
	InSeason              bool
	CanEditSeasonSettings bool
}

// Standing is one member's graded record over the active season.
type Standing struct {
	pick.Record
	Username  string
	FirstName string
	LastName  string
	ImageURL  string
}

type LeagueService struct {
	tx    database.Transactor
	repos Repositories
	rules *LeagueRulesService
	idGen idgen.Generator
	now   func() time.Time
}

func NewLeagueService(tx database.Transactor, repos Repositories, rules *LeagueRulesService, idGen idgen.Generator) *LeagueService {
	return &LeagueService{
		tx:    tx,
		repos: repos,
		rules: rules,
		idGen: idGen,
		now:   time.Now,
	}
}

func validateLeagueFields(l picksleague.League) error {
	nameLen := len([]rune(l.Name))
	if nameLen < minLeagueNameLength || nameLen > maxLeagueNameLength {
		return fieldError("name", fmt.Sprintf("name must be between %d and %d characters", minLeagueNameLength, maxLeagueNameLength))
	}
	if l.Size < picksleague.MinSize || l.Size > picksleague.MaxSize {
		return fieldError("size", fmt.Sprintf("size must be between %d and %d", picksleague.MinSize, picksleague.MaxSize))
	}
	if !l.PickType.Valid() {
		return fieldError("pickType", "pick type must be StraightUp or AgainstTheSpread")
	}
	if l.PicksPerWeek < picksleague.MinPicksPerWeek || l.PicksPerWeek > picksleague.MaxPicksPerWeek {
		return fieldError("picksPerWeek", fmt.Sprintf("picks per week must be between %d and %d",
			picksleague.MinPicksPerWeek, picksleague.MaxPicksPerWeek))
	}
	return nil
}

// resolveWeekRange checks that both weeks exist, belong to the same season of
// sportLeagueID, and are in order.
func (s *LeagueService) resolveWeekRange(ctx context.Context, db database.Handle, sportLeagueID, startWeekID, endWeekID string) (sport.Week, sport.Week, error) {
	start, ok, err := s.repos.Weeks.GetByID(ctx, db, strings.TrimSpace(startWeekID))
	if err != nil {
		return sport.Week{}, sport.Week{}, fmt.Errorf("get start week: %w", err)
	}
	if !ok {
		return sport.Week{}, sport.Week{}, fieldError("startWeekId", "start week not found")
	}
	end, ok, err := s.repos.Weeks.GetByID(ctx, db, strings.TrimSpace(endWeekID))
	if err != nil {
		return sport.Week{}, sport.Week{}, fmt.Errorf("get end week: %w", err)
	}
	if !ok {
		return sport.Week{}, sport.Week{}, fieldError("endWeekId", "end week not found")
	}
	if start.SeasonID != end.SeasonID {
		return sport.Week{}, sport.Week{}, fieldError("endWeekId", "start and end week must be in the same season")
	}
	if end.StartTime.Before(start.StartTime) {
		return sport.Week{}, sport.Week{}, fieldError("endWeekId", "end week must not be before the start week")
	}

	season, ok, err := s.repos.Seasons.GetByID(ctx, db, start.SeasonID)
	if err != nil {
		return sport.Week{}, sport.Week{}, fmt.Errorf("get sport season: %w", err)
	}
	if !ok || season.SportLeagueID != sportLeagueID {
		return sport.Week{}, sport.Week{}, fieldError("startWeekId", "weeks must belong to the league's sport league")
	}
	return start, end, nil
}

func (s *LeagueService) Create(ctx context.Context, principal user.Principal, in CreateLeagueInput) (picksleague.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Create")
	var err error
	defer func() { endSpan(span, err) }()

	if !principal.HasProfile() {
		err = NotAllowed("profile setup required")
		return picksleague.League{}, err
	}

	now := s.now().UTC()
	league := picksleague.League{
		Name:          strings.TrimSpace(in.Name),
		Size:          in.Size,
		PickType:      in.PickType,
		PicksPerWeek:  in.PicksPerWeek,
		LogoURL:       strings.TrimSpace(in.LogoURL),
		SportLeagueID: strings.TrimSpace(in.SportLeagueID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err = validateLeagueFields(league); err != nil {
		return picksleague.League{}, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context, db database.Handle) error {
		if _, ok, err := s.repos.SportLeagues.GetByID(ctx, db, league.SportLeagueID); err != nil {
			return fmt.Errorf("get sport league: %w", err)
		} else if !ok {
			return fieldError("sportLeagueId", "sport league not found")
		}

		start, end, err := s.resolveWeekRange(ctx, db, league.SportLeagueID, in.StartWeekID, in.EndWeekID)
		if err != nil {
			return err
		}

		if league.ID, err = s.idGen.NewID(); err != nil {
			return fmt.Errorf("generate league id: %w", err)
		}
		if err := league.Validate(); err != nil {
			return fmt.Errorf("validate league: %w", err)
		}
		if err := s.repos.Leagues.Create(ctx, db, league); err != nil {
			return fmt.Errorf("create league: %w", err)
		}

		member := picksleague.Member{
			LeagueID: league.ID,
			UserID:   principal.UserID,
			Role:     picksleague.RoleCommissioner,
			JoinedAt: now,
		}
		if err := s.repos.Members.Create(ctx, db, member); err != nil {
			return fmt.Errorf("create commissioner: %w", err)
		}

		seasonID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate season id: %w", err)
		}
		season := leagueseason.Season{
			ID:                  seasonID,
			LeagueID:            league.ID,
			SportLeagueSeasonID: start.SeasonID,
			StartWeekID:         start.ID,
			EndWeekID:           end.ID,
			Active:              true,
			CreatedAt:           now,
		}
		if err := s.repos.LeagueSeasons.Create(ctx, db, season); err != nil {
			return fmt.Errorf("create league season: %w", err)
		}
		return nil
	})
	if err != nil {
		return picksleague.League{}, err
	}
	return league, nil
}

func (s *LeagueService) Get(ctx context.Context, principal user.Principal, leagueID string) (picksleague.League, error) {
	db := s.tx.Conn()
	league, err := requireLeague(ctx, s.repos, db, leagueID)
	if err != nil {
		return picksleague.League{}, err
	}
	if _, err := requireMember(ctx, s.repos, db, leagueID, principal.UserID); err != nil {
		return picksleague.League{}, err
	}
	return league, nil
}

func (s *LeagueService) ListMine(ctx context.Context, principal user.Principal) ([]picksleague.League, error) {
	leagues, err := s.repos.Leagues.ListByUser(ctx, s.tx.Conn(), principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("list leagues by user: %w", err)
	}
	return leagues, nil
}

// UpdateSettings applies in. Pick type, picks per week and the week range are
// season settings: they only change between seasons, and the week range must
// come from the sport league's most recent season.
func (s *LeagueService) UpdateSettings(ctx context.Context, principal user.Principal, leagueID string, in UpdateLeagueInput) (picksleague.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.UpdateSettings", attribute.String("league.id", leagueID))
	var err error
	defer func() { endSpan(span, err) }()

	var league picksleague.League
	err = s.tx.InLockedTx(ctx, membershipLockKey(leagueID), func(ctx context.Context, db database.Handle) error {
		var err error
		if league, err = requireLeague(ctx, s.repos, db, leagueID); err != nil {
			return err
		}
		if _, err := requireCommissioner(ctx, s.repos, db, leagueID, principal.UserID); err != nil {
			return err
		}

		if in.Name != nil {
			league.Name = strings.TrimSpace(*in.Name)
		}
		if in.LogoURL != nil {
			league.LogoURL = strings.TrimSpace(*in.LogoURL)
		}
		if in.Size != nil {
			count, err := s.repos.Members.Count(ctx, db, leagueID)
			if err != nil {
				return fmt.Errorf("count members: %w", err)
			}
			if *in.Size < count {
				return fieldError("size", "size cannot be smaller than the current member count")
			}
			league.Size = *in.Size
		}

		if in.changesSeasonSettings() {
			canEdit, err := s.rules.canEditSeasonSettings(ctx, db, leagueID)
			if err != nil {
				return err
			}
			if !canEdit {
				return BadInput("season settings cannot change while the season is in progress", map[string]string{
					"pickType": "locked during the season",
				})
			}
			if in.PickType != nil {
				league.PickType = *in.PickType
			}
			if in.PicksPerWeek != nil {
				league.PicksPerWeek = *in.PicksPerWeek
			}
		}

		if err := validateLeagueFields(league); err != nil {
			return err
		}

		if in.StartWeekID != nil || in.EndWeekID != nil {
			if err := s.updateWeekRange(ctx, db, league, in); err != nil {
				return err
			}
		}

		league.UpdatedAt = s.now().UTC()
		if err := s.repos.Leagues.Update(ctx, db, league); err != nil {
			return fmt.Errorf("update league: %w", err)
		}
		return nil
	})
	if err != nil {
		return picksleague.League{}, err
	}
	return league, nil
}

func (s *LeagueService) updateWeekRange(ctx context.Context, db database.Handle, league picksleague.League, in UpdateLeagueInput) error {
	current, hasActive, err := s.repos.LeagueSeasons.GetActive(ctx, db, league.ID)
	if err != nil {
		return fmt.Errorf("get active season: %w", err)
	}

	startID, endID := current.StartWeekID, current.EndWeekID
	if in.StartWeekID != nil {
		startID = *in.StartWeekID
	}
	if in.EndWeekID != nil {
		endID = *in.EndWeekID
	}
	start, end, err := s.resolveWeekRange(ctx, db, league.SportLeagueID, startID, endID)
	if err != nil {
		return err
	}

	seasons, err := s.repos.Seasons.ListByLeague(ctx, db, league.SportLeagueID)
	if err != nil {
		return fmt.Errorf("list sport seasons: %w", err)
	}
	if len(seasons) == 0 || seasons[0].ID != start.SeasonID {
		return fieldError("startWeekId", "weeks must come from the upcoming or most recent season")
	}

	if hasActive && current.SportLeagueSeasonID == start.SeasonID {
		if err := s.repos.LeagueSeasons.UpdateWeeks(ctx, db, current.ID, start.ID, end.ID); err != nil {
			return fmt.Errorf("update season weeks: %w", err)
		}
		return nil
	}

	if hasActive {
		if err := s.repos.LeagueSeasons.Deactivate(ctx, db, current.ID); err != nil {
			return fmt.Errorf("deactivate season: %w", err)
		}
	}
	seasonID, err := s.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate season id: %w", err)
	}
	season := leagueseason.Season{
		ID:                  seasonID,
		LeagueID:            league.ID,
		SportLeagueSeasonID: start.SeasonID,
		StartWeekID:         start.ID,
		EndWeekID:           end.ID,
		Active:              true,
		CreatedAt:           s.now().UTC(),
	}
	if err := s.repos.LeagueSeasons.Create(ctx, db, season); err != nil {
		return fmt.Errorf("create league season: %w", err)
	}
	return nil
}

func (s *LeagueService) Delete(ctx context.Context, principal user.Principal, leagueID string) error {
	return s.rules.DeleteLeague(ctx, principal, leagueID)
}

func (s *LeagueService) Status(ctx context.Context, principal user.Principal, leagueID string) (LeagueStatus, error) {
	if _, err := requireMember(ctx, s.repos, s.tx.Conn(), leagueID, principal.UserID); err != nil {
		return LeagueStatus{}, err
	}
	inSeason, err := s.rules.LeagueIsInSeason(ctx, leagueID)
	if err != nil {
		return LeagueStatus{}, err
	}
	canEdit, err := s.rules.CanEditSeasonSettings(ctx, leagueID)
	if err != nil {
		return LeagueStatus{}, err
	}
	return LeagueStatus{InSeason: inSeason, CanEditSeasonSettings: canEdit}, nil
}

func (s *LeagueService) WeekNavigation(ctx context.Context, principal user.Principal, leagueID, weekID string) (WeekNavigation, error) {
	if _, err := requireMember(ctx, s.repos, s.tx.Conn(), leagueID, principal.UserID); err != nil {
		return WeekNavigation{}, err
	}
	return s.rules.ComputePrevNextWeek(ctx, leagueID, weekID)
}

// Standings grades every member's picks over final games of the active season,
// best record first.
func (s *LeagueService) Standings(ctx context.Context, principal user.Principal, leagueID string) ([]Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Standings", attribute.String("league.id", leagueID))
	var err error
	defer func() { endSpan(span, err) }()

	db := s.tx.Conn()
	if _, err = requireMember(ctx, s.repos, db, leagueID, principal.UserID); err != nil {
		return nil, err
	}

	members, err := s.repos.Members.List(ctx, db, leagueID)
	if err != nil {
		err = fmt.Errorf("list members: %w", err)
		return nil, err
	}
	standings := make(map[string]*Standing, len(members))
	for _, m := range members {
		standings[m.UserID] = &Standing{
			Record:    pick.Record{UserID: m.UserID},
			Username:  m.Username,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			ImageURL:  m.ImageURL,
		}
	}

	window, ok, err := s.rules.activeWindow(ctx, db, leagueID)
	if err != nil {
		return nil, err
	}
	if ok {
		if err = s.gradeWindow(ctx, db, leagueID, window, standings); err != nil {
			return nil, err
		}
	}

	out := make([]Standing, 0, len(standings))
	for _, st := range standings {
		out = append(out, *st)
	}
	slices.SortFunc(out, func(a, b Standing) int {
		if a.Wins != b.Wins {
			return b.Wins - a.Wins
		}
		if a.Losses != b.Losses {
			return a.Losses - b.Losses
		}
		return strings.Compare(strings.ToLower(a.Username), strings.ToLower(b.Username))
	})
	return out, nil
}

func (s *LeagueService) gradeWindow(ctx context.Context, db database.Handle, leagueID string, window seasonWindow, standings map[string]*Standing) error {
	weeks, err := s.rules.windowWeeks(ctx, db, window)
	if err != nil {
		return err
	}
	weekIDs := make([]string, 0, len(weeks))
	for _, w := range weeks {
		weekIDs = append(weekIDs, w.ID)
	}
	if len(weekIDs) == 0 {
		return nil
	}

	games, err := s.repos.Games.ListByWeeks(ctx, db, weekIDs)
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}
	gamesByID := make(map[string]sport.Game, len(games))
	for _, g := range games {
		gamesByID[g.ID] = g
	}

	picks, err := s.repos.Picks.ListByLeague(ctx, db, leagueID, weekIDs)
	if err != nil {
		return fmt.Errorf("list picks: %w", err)
	}
	for _, p := range picks {
		st, ok := standings[p.UserID]
		if !ok {
			continue
		}
		g, ok := gamesByID[p.GameID]
		if !ok {
			continue
		}
		st.Add(pick.Grade(p, g))
	}
	return nil
}
