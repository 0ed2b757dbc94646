package postgres

import (
	"database/sql"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/sport"
)

type sportLeagueTableModel struct {
	ID           string `db:"id"`
	ESPNID       string `db:"espn_id"`
	Sport        string `db:"sport"`
	Slug         string `db:"slug"`
	Name         string `db:"name"`
	Abbreviation string `db:"abbreviation"`
	LogoURL      string `db:"logo_url"`
}

type sportSeasonTableModel struct {
	ID            string    `db:"id"`
	SportLeagueID string    `db:"sport_league_id"`
	ESPNID        string    `db:"espn_id"`
	Name          string    `db:"name"`
	StartTime     time.Time `db:"start_time"`
	EndTime       time.Time `db:"end_time"`
}

type sportTeamTableModel struct {
	ID            string `db:"id"`
	SportLeagueID string `db:"sport_league_id"`
	ESPNID        string `db:"espn_id"`
	Name          string `db:"name"`
	Location      string `db:"location"`
	Abbreviation  string `db:"abbreviation"`
	LogoURL       string `db:"logo_url"`
}

type sportWeekTableModel struct {
	ID         string    `db:"id"`
	SeasonID   string    `db:"season_id"`
	ESPNID     string    `db:"espn_id"`
	SeasonType int       `db:"season_type"`
	Number     int       `db:"number"`
	Name       string    `db:"name"`
	StartTime  time.Time `db:"start_time"`
	EndTime    time.Time `db:"end_time"`
}

type sportGameTableModel struct {
	ID          string    `db:"id"`
	WeekID      string    `db:"week_id"`
	ESPNEventID string    `db:"espn_event_id"`
	HomeTeamID  string    `db:"home_team_id"`
	AwayTeamID  string    `db:"away_team_id"`
	HomeScore   int       `db:"home_score"`
	AwayScore   int       `db:"away_score"`
	Status      string    `db:"status"`
	Clock       string    `db:"clock"`
	Period      int       `db:"period"`
	StartTime   time.Time `db:"start_time"`
}

type sportOddsTableModel struct {
	ID             string         `db:"id"`
	GameID         string         `db:"game_id"`
	ProviderESPNID string         `db:"provider_espn_id"`
	ProviderName   string         `db:"provider_name"`
	Spread         float64        `db:"spread"`
	OverUnder      float64        `db:"over_under"`
	FavoriteTeamID sql.NullString `db:"favorite_team_id"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type sportOddsInsertModel struct {
	ID             string         `db:"id"`
	GameID         string         `db:"game_id"`
	ProviderESPNID string         `db:"provider_espn_id"`
	ProviderName   string         `db:"provider_name"`
	Spread         float64        `db:"spread"`
	OverUnder      float64        `db:"over_under"`
	FavoriteTeamID sql.NullString `db:"favorite_team_id"`
}

func sportLeagueFromRow(row sportLeagueTableModel) sport.League {
	return sport.League(row)
}

func sportSeasonFromRow(row sportSeasonTableModel) sport.Season {
	return sport.Season(row)
}

func sportTeamFromRow(row sportTeamTableModel) sport.Team {
	return sport.Team(row)
}

func sportWeekFromRow(row sportWeekTableModel) sport.Week {
	return sport.Week(row)
}

func sportGameFromRow(row sportGameTableModel) sport.Game {
	return sport.Game{
		ID:          row.ID,
		WeekID:      row.WeekID,
		ESPNEventID: row.ESPNEventID,
		HomeTeamID:  row.HomeTeamID,
		AwayTeamID:  row.AwayTeamID,
		HomeScore:   row.HomeScore,
		AwayScore:   row.AwayScore,
		Status:      sport.GameStatus(row.Status),
		Clock:       row.Clock,
		Period:      row.Period,
		StartTime:   row.StartTime,
	}
}

func sportOddsFromRow(row sportOddsTableModel) sport.Odds {
	return sport.Odds{
		ID:             row.ID,
		GameID:         row.GameID,
		ProviderESPNID: row.ProviderESPNID,
		ProviderName:   row.ProviderName,
		Spread:         row.Spread,
		OverUnder:      row.OverUnder,
		FavoriteTeamID: row.FavoriteTeamID.String,
		UpdatedAt:      row.UpdatedAt,
	}
}
