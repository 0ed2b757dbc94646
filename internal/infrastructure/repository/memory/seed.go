package memory

import (
	"fmt"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/sport"
)

const (
	SeedSportLeagueID = "seed-nfl"
	SeedSeasonID      = "seed-nfl-season"
)

// Seed fills an empty store with one sport league, a season of weeks whose
// first week contains now, and two games a week so the API is usable
// without an ESPN sync.
func Seed(s *Store, now time.Time, weeks int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sportLeagues[SeedSportLeagueID] = sport.League{
		ID: SeedSportLeagueID, ESPNID: "28", Sport: "football", Slug: "nfl",
		Name: "National Football League", Abbreviation: "NFL",
	}

	teams := []sport.Team{
		{ID: "seed-kc", ESPNID: "12", Name: "Chiefs", Location: "Kansas City", Abbreviation: "KC"},
		{ID: "seed-buf", ESPNID: "2", Name: "Bills", Location: "Buffalo", Abbreviation: "BUF"},
		{ID: "seed-phi", ESPNID: "21", Name: "Eagles", Location: "Philadelphia", Abbreviation: "PHI"},
		{ID: "seed-sf", ESPNID: "25", Name: "49ers", Location: "San Francisco", Abbreviation: "SF"},
	}
	for _, t := range teams {
		t.SportLeagueID = SeedSportLeagueID
		s.teams[t.ID] = t
	}

	start := now.Truncate(24*time.Hour).AddDate(0, 0, -3)
	s.seasons[SeedSeasonID] = sport.Season{
		ID: SeedSeasonID, SportLeagueID: SeedSportLeagueID, ESPNID: fmt.Sprint(start.Year()),
		Name: fmt.Sprintf("%d Season", start.Year()), StartTime: start, EndTime: start.AddDate(0, 0, 7*weeks),
	}

	for i := 0; i < weeks; i++ {
		weekStart := start.AddDate(0, 0, 7*i)
		week := sport.Week{
			ID:         fmt.Sprintf("seed-week-%d", i+1),
			SeasonID:   SeedSeasonID,
			ESPNID:     sport.WeekESPNID(sport.SeasonTypeRegular, i+1),
			SeasonType: sport.SeasonTypeRegular,
			Number:     i + 1,
			Name:       fmt.Sprintf("Week %d", i+1),
			StartTime:  weekStart,
			EndTime:    weekStart.AddDate(0, 0, 7).Add(-time.Second),
		}
		s.weeks[week.ID] = week

		kickoff := weekStart.AddDate(0, 0, 4).Add(17 * time.Hour)
		for j, pair := range [][2]string{{"seed-kc", "seed-buf"}, {"seed-phi", "seed-sf"}} {
			game := sport.Game{
				ID:          fmt.Sprintf("seed-game-%d-%d", i+1, j+1),
				WeekID:      week.ID,
				ESPNEventID: fmt.Sprintf("seed-%d-%d", i+1, j+1),
				HomeTeamID:  pair[0],
				AwayTeamID:  pair[1],
				Status:      sport.GameStatusScheduled,
				StartTime:   kickoff.Add(time.Duration(j) * 3 * time.Hour),
			}
			s.games[game.ID] = game
			s.odds[game.ID+"-odds"] = sport.Odds{
				ID: game.ID + "-odds", GameID: game.ID, ProviderESPNID: "58", ProviderName: "ESPN BET",
				Spread: -2.5, OverUnder: 47.5, FavoriteTeamID: pair[0], UpdatedAt: now,
			}
		}
	}
}
