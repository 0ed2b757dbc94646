package sport

import (
	"context"
	"time"

	"github.com/picksleagues/picks-leagues/internal/platform/database"
)

// Upsert methods are keyed on the ESPN natural key; an existing row keeps its
// internal id and only its mutable fields change.

type LeagueRepository interface {
	Upsert(ctx context.Context, db database.Handle, leagues []League) error
	List(ctx context.Context, db database.Handle) ([]League, error)
	GetByID(ctx context.Context, db database.Handle, leagueID string) (League, bool, error)
}

type SeasonRepository interface {
	Upsert(ctx context.Context, db database.Handle, seasons []Season) error
	GetByID(ctx context.Context, db database.Handle, seasonID string) (Season, bool, error)
	// ListByLeague returns seasons newest first.
	ListByLeague(ctx context.Context, db database.Handle, sportLeagueID string) ([]Season, error)
}

type TeamRepository interface {
	Upsert(ctx context.Context, db database.Handle, teams []Team) error
	ListByLeague(ctx context.Context, db database.Handle, sportLeagueID string) ([]Team, error)
}

type WeekRepository interface {
	Upsert(ctx context.Context, db database.Handle, weeks []Week) error
	GetByID(ctx context.Context, db database.Handle, weekID string) (Week, bool, error)
	// ListBySeason returns weeks ordered by start time.
	ListBySeason(ctx context.Context, db database.Handle, seasonID string) ([]Week, error)
}

type GameRepository interface {
	Upsert(ctx context.Context, db database.Handle, games []Game) error
	GetByID(ctx context.Context, db database.Handle, gameID string) (Game, bool, error)
	ListByWeeks(ctx context.Context, db database.Handle, weekIDs []string) ([]Game, error)
	ListStartingBetween(ctx context.Context, db database.Handle, from, to time.Time) ([]Game, error)
}

type OddsRepository interface {
	Upsert(ctx context.Context, db database.Handle, odds []Odds) error
	ListByGames(ctx context.Context, db database.Handle, gameIDs []string) ([]Odds, error)
}
