package picksleague

import "testing"

func TestLeagueValidate(t *testing.T) {
	t.Parallel()

	valid := League{
		ID:            "l1",
		Name:          "Sunday Crew",
		Size:          10,
		PickType:      PickTypeAgainstTheSpread,
		PicksPerWeek:  5,
		SportLeagueID: "nfl",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid league, got %v", err)
	}

	cases := map[string]func(l *League){
		"missing name":    func(l *League) { l.Name = "" },
		"size too small":  func(l *League) { l.Size = 1 },
		"size too large":  func(l *League) { l.Size = MaxSize + 1 },
		"bad pick type":   func(l *League) { l.PickType = "Parlay" },
		"no picks":        func(l *League) { l.PicksPerWeek = 0 },
		"no sport league": func(l *League) { l.SportLeagueID = "" },
	}
	for name, mutate := range cases {
		l := valid
		mutate(&l)
		if err := l.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestRoleValid(t *testing.T) {
	t.Parallel()

	if !RoleCommissioner.Valid() || !RoleMember.Valid() {
		t.Fatalf("expected known roles to be valid")
	}
	if Role("Owner").Valid() {
		t.Fatalf("expected unknown role to be invalid")
	}
}
