package picksleague

import (
	"fmt"
	"time"
)

const (
	MinSize         = 2
	MaxSize         = 32
	MinPicksPerWeek = 1
	MaxPicksPerWeek = 16
)

type PickType string

const (
	PickTypeStraightUp       PickType = "StraightUp"
	PickTypeAgainstTheSpread PickType = "AgainstTheSpread"
)

func (t PickType) Valid() bool {
	return t == PickTypeStraightUp || t == PickTypeAgainstTheSpread
}

type Role string

const (
	RoleCommissioner Role = "Commissioner"
	RoleMember       Role = "Member"
)

func (r Role) Valid() bool {
	return r == RoleCommissioner || r == RoleMember
}

// League is a group of users making weekly picks against one sport league.
type League struct {
	ID            string
	Name          string
	Size          int
	PickType      PickType
	PicksPerWeek  int
	LogoURL       string
	SportLeagueID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Size < MinSize || l.Size > MaxSize {
		return fmt.Errorf("league size must be between %d and %d", MinSize, MaxSize)
	}
	if !l.PickType.Valid() {
		return fmt.Errorf("unknown pick type %q", l.PickType)
	}
	if l.PicksPerWeek < MinPicksPerWeek || l.PicksPerWeek > MaxPicksPerWeek {
		return fmt.Errorf("picks per week must be between %d and %d", MinPicksPerWeek, MaxPicksPerWeek)
	}
	if l.SportLeagueID == "" {
		return fmt.Errorf("sport league id is required")
	}
	return nil
}

type Member struct {
	LeagueID string
	UserID   string
	Role     Role
	JoinedAt time.Time
}

func (m Member) IsCommissioner() bool {
	return m.Role == RoleCommissioner
}

// MemberProfile is a member joined with the public part of the user profile.
type MemberProfile struct {
	Member
	Username  string
	FirstName string
	LastName  string
	ImageURL  string
}
