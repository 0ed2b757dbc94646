package leagueseason

import "time"

// Season ties a picks league to a window of weeks in one sport league season.
// At most one season per league is active.
type Season struct {
	ID                  string
	LeagueID            string
	SportLeagueSeasonID string
	StartWeekID         string
	EndWeekID           string
	Active              bool
	CreatedAt           time.Time
}
