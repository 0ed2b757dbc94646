package sport

import "time"

// League mirrors an ESPN league such as football/nfl.
type League struct {
	ID           string
	ESPNID       string
	Sport        string
	Slug         string
	Name         string
	Abbreviation string
	LogoURL      string
}

type Season struct {
	ID            string
	SportLeagueID string
	ESPNID        string
	Name          string
	StartTime     time.Time
	EndTime       time.Time
}

func (s Season) Ended(now time.Time) bool {
	return now.After(s.EndTime)
}

const (
	SeasonTypePreseason  = 1
	SeasonTypeRegular    = 2
	SeasonTypePostseason = 3
)

// Week is keyed within its season by "<seasonType>-<weekNumber>".
type Week struct {
	ID         string
	SeasonID   string
	ESPNID     string
	SeasonType int
	Number     int
	Name       string
	StartTime  time.Time
	EndTime    time.Time
}

type Team struct {
	ID            string
	SportLeagueID string
	ESPNID        string
	Name          string
	Location      string
	Abbreviation  string
	LogoURL       string
}

type GameStatus string

const (
	GameStatusScheduled  GameStatus = "Scheduled"
	GameStatusInProgress GameStatus = "InProgress"
	GameStatusFinal      GameStatus = "Final"
	GameStatusPostponed  GameStatus = "Postponed"
	GameStatusCanceled   GameStatus = "Canceled"
)

type Game struct {
	ID          string
	WeekID      string
	ESPNEventID string
	HomeTeamID  string
	AwayTeamID  string
	HomeScore   int
	AwayScore   int
	Status      GameStatus
	Clock       string
	Period      int
	StartTime   time.Time
}

func (g Game) Started(now time.Time) bool {
	return !now.Before(g.StartTime) || g.Status == GameStatusInProgress || g.Status == GameStatusFinal
}

func (g Game) Final() bool {
	return g.Status == GameStatusFinal
}

func (g Game) HasTeam(teamID string) bool {
	return teamID != "" && (g.HomeTeamID == teamID || g.AwayTeamID == teamID)
}

// Odds is one provider's line for a game. Spread is the home team's line.
type Odds struct {
	ID             string
	GameID         string
	ProviderESPNID string
	ProviderName   string
	Spread         float64
	OverUnder      float64
	FavoriteTeamID string
	UpdatedAt      time.Time
}

// SpreadFor returns the line of teamID, which must be one of the game's teams.
func (o Odds) SpreadFor(g Game, teamID string) float64 {
	if teamID == g.AwayTeamID {
		return -o.Spread
	}
	return o.Spread
}
