package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/invite"
	"github.com/picksleagues/picks-leagues/internal/domain/leagueseason"
	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
)

type PicksLeagueRepository struct {
	s *Store
}

func NewPicksLeagueRepository(s *Store) *PicksLeagueRepository {
	return &PicksLeagueRepository{s: s}
}

func (r *PicksLeagueRepository) Create(_ context.Context, _ database.Handle, league picksleague.League) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.leagues[league.ID]; exists {
		return fmt.Errorf("create picks league: duplicate id %s", league.ID)
	}
	now := time.Now()
	league.CreatedAt, league.UpdatedAt = now, now
	r.s.leagues[league.ID] = league
	return nil
}

func (r *PicksLeagueRepository) GetByID(_ context.Context, _ database.Handle, leagueID string) (picksleague.League, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.leagues[leagueID]
	return l, ok, nil
}

// GetByIDForUpdate relies on the memory transactor's lock for exclusion.
func (r *PicksLeagueRepository) GetByIDForUpdate(ctx context.Context, db database.Handle, leagueID string) (picksleague.League, bool, error) {
	return r.GetByID(ctx, db, leagueID)
}

func (r *PicksLeagueRepository) ListByUser(_ context.Context, _ database.Handle, userID string) ([]picksleague.League, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return sortedValues(r.s.leagues,
		func(l picksleague.League) bool {
			_, ok := r.s.members[memberKey{leagueID: l.ID, userID: userID}]
			return ok
		},
		func(a, b picksleague.League) bool {
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		}), nil
}

func (r *PicksLeagueRepository) Update(_ context.Context, _ database.Handle, league picksleague.League) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.leagues[league.ID]
	if !ok {
		return fmt.Errorf("update picks league: not found")
	}
	current.Name = league.Name
	current.Size = league.Size
	current.PickType = league.PickType
	current.PicksPerWeek = league.PicksPerWeek
	current.LogoURL = league.LogoURL
	current.UpdatedAt = time.Now()
	r.s.leagues[league.ID] = current
	return nil
}

func (r *PicksLeagueRepository) Delete(_ context.Context, _ database.Handle, leagueID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.deleteLeagueLocked(leagueID)
	return nil
}

type PicksLeagueMemberRepository struct {
	s *Store
}

func NewPicksLeagueMemberRepository(s *Store) *PicksLeagueMemberRepository {
	return &PicksLeagueMemberRepository{s: s}
}

func (r *PicksLeagueMemberRepository) Create(_ context.Context, _ database.Handle, member picksleague.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := memberKey{leagueID: member.LeagueID, userID: member.UserID}
	if _, exists := r.s.members[key]; exists {
		return fmt.Errorf("create member: duplicate member %s/%s", member.LeagueID, member.UserID)
	}
	if _, ok := r.s.leagues[member.LeagueID]; !ok {
		return fmt.Errorf("create member: league %s not found", member.LeagueID)
	}
	r.s.members[key] = member
	return nil
}

func (r *PicksLeagueMemberRepository) Get(_ context.Context, _ database.Handle, leagueID, userID string) (picksleague.Member, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.members[memberKey{leagueID: leagueID, userID: userID}]
	return m, ok, nil
}

func (r *PicksLeagueMemberRepository) List(_ context.Context, _ database.Handle, leagueID string) ([]picksleague.MemberProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	members := sortedValues(r.s.members,
		func(m picksleague.Member) bool { return m.LeagueID == leagueID },
		memberLess)
	out := make([]picksleague.MemberProfile, 0, len(members))
	for _, m := range members {
		u := r.s.users[m.UserID]
		out = append(out, picksleague.MemberProfile{
			Member:    m,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			ImageURL:  u.ImageURL,
		})
	}
	return out, nil
}

func (r *PicksLeagueMemberRepository) ListByUser(_ context.Context, _ database.Handle, userID string) ([]picksleague.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return sortedValues(r.s.members,
		func(m picksleague.Member) bool { return m.UserID == userID },
		memberLess), nil
}

func (r *PicksLeagueMemberRepository) Count(_ context.Context, _ database.Handle, leagueID string) (int, error) {
	return r.count(leagueID, ""), nil
}

func (r *PicksLeagueMemberRepository) CountByRole(_ context.Context, _ database.Handle, leagueID string, role picksleague.Role) (int, error) {
	return r.count(leagueID, role), nil
}

func (r *PicksLeagueMemberRepository) count(leagueID string, role picksleague.Role) int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for key, m := range r.s.members {
		if key.leagueID == leagueID && (role == "" || m.Role == role) {
			n++
		}
	}
	return n
}

func (r *PicksLeagueMemberRepository) UpdateRole(_ context.Context, _ database.Handle, leagueID, userID string, role picksleague.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := memberKey{leagueID: leagueID, userID: userID}
	m, ok := r.s.members[key]
	if !ok {
		return fmt.Errorf("update member role: not found")
	}
	m.Role = role
	r.s.members[key] = m
	return nil
}

func (r *PicksLeagueMemberRepository) Delete(_ context.Context, _ database.Handle, leagueID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.members, memberKey{leagueID: leagueID, userID: userID})
	return nil
}

func memberLess(a, b picksleague.Member) bool {
	if !a.JoinedAt.Equal(b.JoinedAt) {
		return a.JoinedAt.Before(b.JoinedAt)
	}
	return a.UserID < b.UserID
}

type InviteRepository struct {
	s *Store
}

func NewInviteRepository(s *Store) *InviteRepository {
	return &InviteRepository{s: s}
}

func (r *InviteRepository) Create(_ context.Context, _ database.Handle, inv invite.Invite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.leagues[inv.LeagueID]; !ok {
		return fmt.Errorf("create invite: league %s not found", inv.LeagueID)
	}
	inv.Role = inv.RoleOrDefault()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now()
	}
	r.s.invites[inv.ID] = inv
	return nil
}

func (r *InviteRepository) GetByID(_ context.Context, _ database.Handle, inviteID string) (invite.Invite, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	inv, ok := r.s.invites[inviteID]
	return inv, ok, nil
}

func (r *InviteRepository) ListByLeague(_ context.Context, _ database.Handle, leagueID string) ([]invite.Invite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return sortedValues(r.s.invites,
		func(inv invite.Invite) bool { return inv.LeagueID == leagueID },
		inviteLess), nil
}

func (r *InviteRepository) ListPendingForUser(_ context.Context, _ database.Handle, userID string, now time.Time) ([]invite.Invite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return sortedValues(r.s.invites,
		func(inv invite.Invite) bool { return inv.UserID == userID && !inv.Expired(now) },
		inviteLess), nil
}

func (r *InviteRepository) Delete(_ context.Context, _ database.Handle, inviteID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.invites, inviteID)
	return nil
}

func (r *InviteRepository) DeleteDirect(_ context.Context, _ database.Handle, leagueID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, inv := range r.s.invites {
		if inv.LeagueID == leagueID && inv.UserID == userID {
			delete(r.s.invites, id)
		}
	}
	return nil
}

func inviteLess(a, b invite.Invite) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}

type LeagueSeasonRepository struct {
	s *Store
}

func NewLeagueSeasonRepository(s *Store) *LeagueSeasonRepository {
	return &LeagueSeasonRepository{s: s}
}

func (r *LeagueSeasonRepository) Create(_ context.Context, _ database.Handle, season leagueseason.Season) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if season.Active {
		for _, existing := range r.s.leagueSeasons {
			if existing.LeagueID == season.LeagueID && existing.Active {
				return fmt.Errorf("create league season: league %s already has an active season", season.LeagueID)
			}
		}
	}
	if season.CreatedAt.IsZero() {
		season.CreatedAt = time.Now()
	}
	r.s.leagueSeasons[season.ID] = season
	return nil
}

func (r *LeagueSeasonRepository) GetActive(_ context.Context, _ database.Handle, leagueID string) (leagueseason.Season, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, season := range r.s.leagueSeasons {
		if season.LeagueID == leagueID && season.Active {
			return season, true, nil
		}
	}
	return leagueseason.Season{}, false, nil
}

func (r *LeagueSeasonRepository) ListActive(_ context.Context, _ database.Handle) ([]leagueseason.Season, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return sortedValues(r.s.leagueSeasons,
		func(s leagueseason.Season) bool { return s.Active },
		func(a, b leagueseason.Season) bool { return a.LeagueID < b.LeagueID }), nil
}

func (r *LeagueSeasonRepository) UpdateWeeks(_ context.Context, _ database.Handle, seasonID, startWeekID, endWeekID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	season, ok := r.s.leagueSeasons[seasonID]
	if !ok {
		return fmt.Errorf("update league season weeks: not found")
	}
	season.StartWeekID = startWeekID
	season.EndWeekID = endWeekID
	r.s.leagueSeasons[seasonID] = season
	return nil
}

func (r *LeagueSeasonRepository) Deactivate(_ context.Context, _ database.Handle, seasonID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	season, ok := r.s.leagueSeasons[seasonID]
	if !ok {
		return fmt.Errorf("deactivate league season: not found")
	}
	season.Active = false
	r.s.leagueSeasons[seasonID] = season
	return nil
}
