package ingestionrun

import "time"

type Entity string

const (
	EntitySportLeagues       Entity = "sport-leagues"
	EntitySeasons            Entity = "seasons"
	EntityTeams              Entity = "teams"
	EntityWeeks              Entity = "weeks"
	EntityGames              Entity = "games"
	EntityOdds               Entity = "odds"
	EntityPicksLeagueSeasons Entity = "picks-league-seasons"
)

// Entities lists the mirrored ESPN entities in dependency order.
var Entities = []Entity{
	EntitySportLeagues,
	EntitySeasons,
	EntityTeams,
	EntityWeeks,
	EntityGames,
	EntityOdds,
}

func ParseEntity(v string) (Entity, bool) {
	for _, e := range Entities {
		if string(e) == v {
			return e, true
		}
	}
	if v == string(EntityPicksLeagueSeasons) {
		return EntityPicksLeagueSeasons, true
	}
	return "", false
}

type Trigger string

const (
	TriggerCron   Trigger = "cron"
	TriggerWorker Trigger = "worker"
	TriggerCLI    Trigger = "cli"
)

type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run records one ingestion attempt for one entity.
type Run struct {
	ID         string
	Entity     Entity
	Trigger    Trigger
	Status     Status
	Upserted   int
	Skipped    int
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}
