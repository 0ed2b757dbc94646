package pick

import (
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/sport"
)

// Pick is one member's team selection for one game. Spread is the picked
// team's line at submission and is only set for against-the-spread leagues.
type Pick struct {
	ID        string
	LeagueID  string
	UserID    string
	WeekID    string
	GameID    string
	TeamID    string
	Spread    *float64
	CreatedAt time.Time
}

type Result string

const (
	ResultPending Result = "Pending"
	ResultWin     Result = "Win"
	ResultLoss    Result = "Loss"
	ResultPush    Result = "Push"
)

// Grade scores p against its game. Picks on games that are not final stay
// pending; a nil spread grades straight up.
func Grade(p Pick, g sport.Game) Result {
	if !g.Final() {
		return ResultPending
	}

	margin := float64(g.HomeScore - g.AwayScore)
	if p.TeamID == g.AwayTeamID {
		margin = -margin
	}
	if p.Spread != nil {
		margin += *p.Spread
	}

	switch {
	case margin > 0:
		return ResultWin
	case margin < 0:
		return ResultLoss
	default:
		return ResultPush
	}
}

// Record is a member's graded tally.
type Record struct {
	UserID string
	Wins   int
	Losses int
	Pushes int
}

func (r *Record) Add(result Result) {
	switch result {
	case ResultWin:
		r.Wins++
	case ResultLoss:
		r.Losses++
	case ResultPush:
		r.Pushes++
	}
}
