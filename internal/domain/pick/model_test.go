package pick

import (
	"testing"

	"github.com/picksleagues/picks-leagues/internal/domain/sport"
)

func TestGrade(t *testing.T) {
	t.Parallel()

	spread := func(v float64) *float64 { return &v }
	final := sport.Game{HomeTeamID: "kc", AwayTeamID: "buf", HomeScore: 24, AwayScore: 20, Status: sport.GameStatusFinal}

	cases := []struct {
		name string
		pick Pick
		game sport.Game
		want Result
	}{
		{name: "straight up home win", pick: Pick{TeamID: "kc"}, game: final, want: ResultWin},
		{name: "straight up away loss", pick: Pick{TeamID: "buf"}, game: final, want: ResultLoss},
		{name: "favorite fails to cover", pick: Pick{TeamID: "kc", Spread: spread(-6.5)}, game: final, want: ResultLoss},
		{name: "underdog covers", pick: Pick{TeamID: "buf", Spread: spread(6.5)}, game: final, want: ResultWin},
		{name: "push on the number", pick: Pick{TeamID: "kc", Spread: spread(-4)}, game: final, want: ResultPush},
		{name: "not final", pick: Pick{TeamID: "kc"}, game: sport.Game{Status: sport.GameStatusInProgress}, want: ResultPending},
	}
	for _, tc := range cases {
		if got := Grade(tc.pick, tc.game); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
}

func TestRecordAdd(t *testing.T) {
	t.Parallel()

	var r Record
	for _, result := range []Result{ResultWin, ResultWin, ResultLoss, ResultPush, ResultPending} {
		r.Add(result)
	}
	if r.Wins != 2 || r.Losses != 1 || r.Pushes != 1 {
		t.Fatalf("unexpected record %+v", r)
	}
}
