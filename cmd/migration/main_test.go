package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSteps(t *testing.T) {
	t.Parallel()

	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("expected default of 1 step, got %d (%v)", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("expected 3 steps, got %d (%v)", got, err)
	}
	for _, bad := range []string{"0", "-1", "two"} {
		if _, err := parseSteps([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseVersion(t *testing.T) {
	t.Parallel()

	if got, err := parseVersion("4"); err != nil || got != 4 {
		t.Fatalf("expected version 4, got %d (%v)", got, err)
	}
	if _, err := parseVersion("-2"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if _, err := parseTarget("x"); err == nil {
		t.Fatalf("expected error for non numeric target")
	}
}

func TestCreateMigration(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"000001_users.up.sql", "000004_ingestion_runs.up.sql", "README.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	up, down, err := createMigration(dir, "Add Pick Notes")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if filepath.Base(up) != "000005_add_pick_notes.up.sql" || filepath.Base(down) != "000005_add_pick_notes.down.sql" {
		t.Fatalf("unexpected files: %s %s", up, down)
	}
	if _, err := createMigration(dir, "  "); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestResolveMigrationsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got, err := resolveMigrationsDir(dir)
	if err != nil || got != dir {
		t.Fatalf("expected %s, got %s (%v)", dir, got, err)
	}
	if _, err := resolveMigrationsDir(filepath.Join(dir, "missing")); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}
