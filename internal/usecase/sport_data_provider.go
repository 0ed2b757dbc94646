package usecase

import (
	"context"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/sport"
)

// SportDataProvider reads the upstream sport data mirrored by ingestion.
type SportDataProvider interface {
	FetchLeague(ctx context.Context, target sport.SyncTarget) (ExternalLeague, error)
	// FetchSeasons skips seasons older than minYear without resolving them.
	FetchSeasons(ctx context.Context, target sport.SyncTarget, minYear int) ([]ExternalSeason, error)
	FetchTeams(ctx context.Context, target sport.SyncTarget, seasonYear string) ([]ExternalTeam, error)
	FetchWeeks(ctx context.Context, target sport.SyncTarget, seasonYear string, seasonType int) ([]ExternalWeek, error)
	FetchGames(ctx context.Context, target sport.SyncTarget, seasonYear string, seasonType, week int) ([]ExternalGame, error)
	FetchOdds(ctx context.Context, target sport.SyncTarget, eventID string) ([]ExternalOdds, error)
}

type ExternalLeague struct {
	ESPNID       string
	Sport        string
	Slug         string
	Name         string
	Abbreviation string
	LogoURL      string
}

type ExternalSeason struct {
	Year      string
	Name      string
	StartTime time.Time
	EndTime   time.Time
}

type ExternalTeam struct {
	ESPNID       string
	Name         string
	Location     string
	Abbreviation string
	LogoURL      string
}

type ExternalWeek struct {
	SeasonType int
	Number     int
	Name       string
	StartTime  time.Time
	EndTime    time.Time
}

type ExternalGame struct {
	EventID        string
	SeasonType     int
	WeekNumber     int
	HomeTeamESPNID string
	AwayTeamESPNID string
	HomeScore      int
	AwayScore      int
	Status         sport.GameStatus
	Clock          string
	Period         int
	StartTime      time.Time
}

// ExternalOdds carries the home team's spread.
type ExternalOdds struct {
	EventID        string
	ProviderESPNID string
	ProviderName   string
	Spread         float64
	OverUnder      float64
	HomeFavorite   bool
	AwayFavorite   bool
}
