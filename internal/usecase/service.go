package usecase

import (
	"context"
	"fmt"

	"github.com/picksleagues/picks-leagues/internal/domain/ingestionrun"
	"github.com/picksleagues/picks-leagues/internal/domain/invite"
	"github.com/picksleagues/picks-leagues/internal/domain/leagueseason"
	"github.com/picksleagues/picks-leagues/internal/domain/pick"
	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
)

// Repositories bundles the data access layer handed to every service.
type Repositories struct {
	Users    user.Repository
	Accounts user.AccountRepository
	Sessions user.SessionRepository

	Leagues       picksleague.Repository
	Members       picksleague.MemberRepository
	Invites       invite.Repository
	LeagueSeasons leagueseason.Repository
	Picks         pick.Repository

	SportLeagues sport.LeagueRepository
	Seasons      sport.SeasonRepository
	Teams        sport.TeamRepository
	Weeks        sport.WeekRepository
	Games        sport.GameRepository
	Odds         sport.OddsRepository

	Runs ingestionrun.Repository
}

// membershipLockKey serializes every change to one league's member list.
func membershipLockKey(leagueID string) string {
	return "league-membership:" + leagueID
}

func getMember(ctx context.Context, repos Repositories, db database.Handle, leagueID, userID string) (picksleague.Member, bool, error) {
	member, ok, err := repos.Members.Get(ctx, db, leagueID, userID)
	if err != nil {
		return picksleague.Member{}, false, fmt.Errorf("get member: %w", err)
	}
	return member, ok, nil
}

func requireMember(ctx context.Context, repos Repositories, db database.Handle, leagueID, userID string) (picksleague.Member, error) {
	member, ok, err := getMember(ctx, repos, db, leagueID, userID)
	if err != nil {
		return picksleague.Member{}, err
	}
	if !ok {
		return picksleague.Member{}, NotAllowed("you are not a member of this league")
	}
	return member, nil
}

func requireCommissioner(ctx context.Context, repos Repositories, db database.Handle, leagueID, userID string) (picksleague.Member, error) {
	member, err := requireMember(ctx, repos, db, leagueID, userID)
	if err != nil {
		return picksleague.Member{}, err
	}
	if !member.IsCommissioner() {
		return picksleague.Member{}, NotAllowed("only a commissioner can do this")
	}
	return member, nil
}

func requireLeague(ctx context.Context, repos Repositories, db database.Handle, leagueID string) (picksleague.League, error) {
	league, ok, err := repos.Leagues.GetByID(ctx, db, leagueID)
	if err != nil {
		return picksleague.League{}, fmt.Errorf("get league: %w", err)
	}
	if !ok {
		return picksleague.League{}, NotFound("league not found")
	}
	return league, nil
}
