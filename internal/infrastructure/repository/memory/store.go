// Package memory keeps every table in process memory. It backs local
// development (STORAGE=memory) and the usecase tests. Handles passed in are
// ignored; the Store's mutex gives each call a consistent view.
package memory

import (
	"sort"
	"sync"

	"github.com/picksleagues/picks-leagues/internal/domain/ingestionrun"
	"github.com/picksleagues/picks-leagues/internal/domain/invite"
	"github.com/picksleagues/picks-leagues/internal/domain/leagueseason"
	"github.com/picksleagues/picks-leagues/internal/domain/pick"
	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
)

type memberKey struct {
	leagueID string
	userID   string
}

type Store struct {
	mu sync.RWMutex

	users    map[string]user.User
	accounts map[string]user.Account
	sessions map[string]user.Session

	leagues       map[string]picksleague.League
	members       map[memberKey]picksleague.Member
	invites       map[string]invite.Invite
	leagueSeasons map[string]leagueseason.Season
	picks         map[string]pick.Pick

	sportLeagues map[string]sport.League
	seasons      map[string]sport.Season
	teams        map[string]sport.Team
	weeks        map[string]sport.Week
	games        map[string]sport.Game
	odds         map[string]sport.Odds

	runs []ingestionrun.Run
}

func NewStore() *Store {
	return &Store{
		users:         make(map[string]user.User),
		accounts:      make(map[string]user.Account),
		sessions:      make(map[string]user.Session),
		leagues:       make(map[string]picksleague.League),
		members:       make(map[memberKey]picksleague.Member),
		invites:       make(map[string]invite.Invite),
		leagueSeasons: make(map[string]leagueseason.Season),
		picks:         make(map[string]pick.Pick),
		sportLeagues:  make(map[string]sport.League),
		seasons:       make(map[string]sport.Season),
		teams:         make(map[string]sport.Team),
		weeks:         make(map[string]sport.Week),
		games:         make(map[string]sport.Game),
		odds:          make(map[string]sport.Odds),
	}
}

// deleteLeagueLocked mirrors the ON DELETE CASCADE rules of the schema.
func (s *Store) deleteLeagueLocked(leagueID string) {
	delete(s.leagues, leagueID)
	for key := range s.members {
		if key.leagueID == leagueID {
			delete(s.members, key)
		}
	}
	for id, inv := range s.invites {
		if inv.LeagueID == leagueID {
			delete(s.invites, id)
		}
	}
	for id, season := range s.leagueSeasons {
		if season.LeagueID == leagueID {
			delete(s.leagueSeasons, id)
		}
	}
	for id, p := range s.picks {
		if p.LeagueID == leagueID {
			delete(s.picks, id)
		}
	}
}

func (s *Store) deleteUserLocked(userID string) {
	delete(s.users, userID)
	for id, account := range s.accounts {
		if account.UserID == userID {
			delete(s.accounts, id)
		}
	}
	for token, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, token)
		}
	}
	for key := range s.members {
		if key.userID == userID {
			delete(s.members, key)
		}
	}
	for id, inv := range s.invites {
		if inv.UserID == userID {
			delete(s.invites, id)
		}
	}
	for id, p := range s.picks {
		if p.UserID == userID {
			delete(s.picks, id)
		}
	}
}

func sortedValues[K comparable, V any](items map[K]V, keep func(V) bool, less func(a, b V) bool) []V {
	out := make([]V, 0, len(items))
	for _, v := range items {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
