package invite

import (
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
)

type Status string

const (
	StatusPending Status = "Pending"
	StatusExpired Status = "Expired"
)

// Invite grants a seat in a league. A link invite has no UserID and may be
// used by anyone holding it; a direct invite names its recipient.
type Invite struct {
	ID        string
	LeagueID  string
	ExpiresAt time.Time
	Role      picksleague.Role
	UserID    string
	CreatedAt time.Time
}

func (i Invite) IsDirect() bool {
	return i.UserID != ""
}

func (i Invite) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Status is derived; accepted and declined invites are not kept.
func (i Invite) Status(now time.Time) Status {
	if i.Expired(now) {
		return StatusExpired
	}
	return StatusPending
}

func (i Invite) RoleOrDefault() picksleague.Role {
	if i.Role == "" {
		return picksleague.RoleMember
	}
	return i.Role
}
