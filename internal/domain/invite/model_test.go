package invite

import (
	"testing"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
)

func TestInviteStatus(t *testing.T) {
	t.Parallel()

	expiresAt := time.Date(2026, 9, 8, 12, 0, 0, 0, time.UTC)
	inv := Invite{ID: "i1", LeagueID: "l1", ExpiresAt: expiresAt}

	if got := inv.Status(expiresAt); got != StatusPending {
		t.Fatalf("invite is usable up to its expiry instant, got %s", got)
	}
	if got := inv.Status(expiresAt.Add(time.Second)); got != StatusExpired {
		t.Fatalf("expected expired, got %s", got)
	}
	if inv.IsDirect() {
		t.Fatalf("invite without user must be a link invite")
	}
	if inv.RoleOrDefault() != picksleague.RoleMember {
		t.Fatalf("expected default role Member, got %s", inv.RoleOrDefault())
	}
}
