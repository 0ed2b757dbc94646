package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(fmt.Errorf("get league: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("pq: relation picks_leagues does not exist")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestNullHelpers(t *testing.T) {
	t.Parallel()

	if nullString("").Valid {
		t.Fatalf("empty string must map to NULL")
	}
	if got := nullString("alice"); !got.Valid || got.String != "alice" {
		t.Fatalf("unexpected null string %+v", got)
	}

	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if got := timePtr(nullTime(&now)); got == nil || !got.Equal(now) {
		t.Fatalf("unexpected time round trip %v", got)
	}
	if timePtr(nullTime(nil)) != nil {
		t.Fatalf("nil time must stay nil")
	}

	spread := -3.5
	if got := floatPtr(nullFloat(&spread)); got == nil || *got != spread {
		t.Fatalf("unexpected float round trip %v", got)
	}
}
