package postgres

import (
	"database/sql"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/invite"
	"github.com/picksleagues/picks-leagues/internal/domain/leagueseason"
	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
)

type picksLeagueTableModel struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Size          int       `db:"size"`
	PickType      string    `db:"pick_type"`
	PicksPerWeek  int       `db:"picks_per_week"`
	LogoURL       string    `db:"logo_url"`
	SportLeagueID string    `db:"sport_league_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type picksLeagueInsertModel struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Size          int    `db:"size"`
	PickType      string `db:"pick_type"`
	PicksPerWeek  int    `db:"picks_per_week"`
	LogoURL       string `db:"logo_url"`
	SportLeagueID string `db:"sport_league_id"`
}

type memberTableModel struct {
	LeagueID string    `db:"league_id"`
	UserID   string    `db:"user_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}

type memberProfileModel struct {
	memberTableModel
	Username  sql.NullString `db:"username"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	ImageURL  string         `db:"image_url"`
}

type memberInsertModel struct {
	LeagueID string    `db:"league_id"`
	UserID   string    `db:"user_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}

type inviteTableModel struct {
	ID        string         `db:"id"`
	LeagueID  string         `db:"league_id"`
	ExpiresAt time.Time      `db:"expires_at"`
	Role      string         `db:"role"`
	UserID    sql.NullString `db:"user_id"`
	CreatedAt time.Time      `db:"created_at"`
}

type inviteInsertModel struct {
	ID        string         `db:"id"`
	LeagueID  string         `db:"league_id"`
	ExpiresAt time.Time      `db:"expires_at"`
	Role      string         `db:"role"`
	UserID    sql.NullString `db:"user_id"`
}

type leagueSeasonTableModel struct {
	ID                  string    `db:"id"`
	LeagueID            string    `db:"league_id"`
	SportLeagueSeasonID string    `db:"sport_league_season_id"`
	StartWeekID         string    `db:"start_week_id"`
	EndWeekID           string    `db:"end_week_id"`
	Active              bool      `db:"active"`
	CreatedAt           time.Time `db:"created_at"`
}

type leagueSeasonInsertModel struct {
	ID                  string `db:"id"`
	LeagueID            string `db:"league_id"`
	SportLeagueSeasonID string `db:"sport_league_season_id"`
	StartWeekID         string `db:"start_week_id"`
	EndWeekID           string `db:"end_week_id"`
	Active              bool   `db:"active"`
}

func picksLeagueFromRow(row picksLeagueTableModel) picksleague.League {
	return picksleague.League{
		ID:            row.ID,
		Name:          row.Name,
		Size:          row.Size,
		PickType:      picksleague.PickType(row.PickType),
		PicksPerWeek:  row.PicksPerWeek,
		LogoURL:       row.LogoURL,
		SportLeagueID: row.SportLeagueID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func memberFromRow(row memberTableModel) picksleague.Member {
	return picksleague.Member{
		LeagueID: row.LeagueID,
		UserID:   row.UserID,
		Role:     picksleague.Role(row.Role),
		JoinedAt: row.JoinedAt,
	}
}

func inviteFromRow(row inviteTableModel) invite.Invite {
	return invite.Invite{
		ID:        row.ID,
		LeagueID:  row.LeagueID,
		ExpiresAt: row.ExpiresAt,
		Role:      picksleague.Role(row.Role),
		UserID:    row.UserID.String,
		CreatedAt: row.CreatedAt,
	}
}

func leagueSeasonFromRow(row leagueSeasonTableModel) leagueseason.Season {
	return leagueseason.Season{
		ID:                  row.ID,
		LeagueID:            row.LeagueID,
		SportLeagueSeasonID: row.SportLeagueSeasonID,
		StartWeekID:         row.StartWeekID,
		EndWeekID:           row.EndWeekID,
		Active:              row.Active,
		CreatedAt:           row.CreatedAt,
	}
}
