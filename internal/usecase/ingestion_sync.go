package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
)

// targetLeague pairs a sync target with its mirrored sport league row.
type targetLeague struct {
	target sport.SyncTarget
	league sport.League
}

func (s *IngestionService) newID() (string, error) {
	id, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id, nil
}

func (s *IngestionService) minSeasonYear() int {
	return s.now().Year() - s.cfg.SeasonLookback
}

// targetLeagues resolves every target to its sport league. Targets whose
// league has not been mirrored yet are skipped.
func (s *IngestionService) targetLeagues(ctx context.Context, db database.Handle, counts *syncCounts) ([]targetLeague, error) {
	leagues, err := s.repos.SportLeagues.List(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("list sport leagues: %w", err)
	}

	out := make([]targetLeague, 0, len(s.cfg.Targets))
	for _, target := range s.cfg.Targets {
		found := false
		for _, l := range leagues {
			if target.Matches(l) {
				out = append(out, targetLeague{target: target, league: l})
				found = true
				break
			}
		}
		if !found {
			counts.skipped++
			s.logger.WarnContext(ctx, "sport league not mirrored yet, skipping target", "target", target.Key())
		}
	}
	return out, nil
}

// latestSeason returns the newest mirrored season of a league.
func (s *IngestionService) latestSeason(ctx context.Context, db database.Handle, tl targetLeague, counts *syncCounts) (sport.Season, bool, error) {
	seasons, err := s.repos.Seasons.ListByLeague(ctx, db, tl.league.ID)
	if err != nil {
		return sport.Season{}, false, fmt.Errorf("list seasons: %w", err)
	}
	if len(seasons) == 0 {
		counts.skipped++
		s.logger.WarnContext(ctx, "no mirrored season, skipping target", "target", tl.target.Key())
		return sport.Season{}, false, nil
	}
	return seasons[0], true, nil
}

func (s *IngestionService) syncSportLeagues(ctx context.Context, db database.Handle) (syncCounts, error) {
	var counts syncCounts
	byESPNID := make(map[string]sport.League, len(s.cfg.Targets))
	order := make([]string, 0, len(s.cfg.Targets))

	for _, target := range s.cfg.Targets {
		ext, err := s.provider.FetchLeague(ctx, target)
		if err != nil {
			return counts, err
		}
		if _, dup := byESPNID[ext.ESPNID]; dup {
			continue
		}
		id, err := s.newID()
		if err != nil {
			return counts, err
		}
		byESPNID[ext.ESPNID] = sport.League{
			ID:           id,
			ESPNID:       ext.ESPNID,
			Sport:        ext.Sport,
			Slug:         ext.Slug,
			Name:         ext.Name,
			Abbreviation: ext.Abbreviation,
			LogoURL:      ext.LogoURL,
		}
		order = append(order, ext.ESPNID)
	}

	leagues := make([]sport.League, 0, len(order))
	for _, key := range order {
		leagues = append(leagues, byESPNID[key])
	}
	if len(leagues) > 0 {
		if err := s.repos.SportLeagues.Upsert(ctx, db, leagues); err != nil {
			return counts, fmt.Errorf("upsert sport leagues: %w", err)
		}
	}
	counts.upserted = len(leagues)
	return counts, nil
}

func (s *IngestionService) syncSeasons(ctx context.Context, db database.Handle) (syncCounts, error) {
	var counts syncCounts
	targets, err := s.targetLeagues(ctx, db, &counts)
	if err != nil {
		return counts, err
	}

	var seasons []sport.Season
	for _, tl := range targets {
		external, err := s.provider.FetchSeasons(ctx, tl.target, s.minSeasonYear())
		if err != nil {
			return counts, err
		}
		seen := make(map[string]bool, len(external))
		for _, ext := range external {
			if seen[ext.Year] {
				continue
			}
			seen[ext.Year] = true
			id, err := s.newID()
			if err != nil {
				return counts, err
			}
			seasons = append(seasons, sport.Season{
				ID:            id,
				SportLeagueID: tl.league.ID,
				ESPNID:        ext.Year,
				Name:          ext.Name,
				StartTime:     ext.StartTime,
				EndTime:       ext.EndTime,
			})
		}
	}

	if len(seasons) > 0 {
		if err := s.repos.Seasons.Upsert(ctx, db, seasons); err != nil {
			return counts, fmt.Errorf("upsert seasons: %w", err)
		}
	}
	counts.upserted = len(seasons)
	return counts, nil
}

func (s *IngestionService) syncTeams(ctx context.Context, db database.Handle) (syncCounts, error) {
	var counts syncCounts
	targets, err := s.targetLeagues(ctx, db, &counts)
	if err != nil {
		return counts, err
	}

	var teams []sport.Team
	for _, tl := range targets {
		season, ok, err := s.latestSeason(ctx, db, tl, &counts)
		if err != nil {
			return counts, err
		}
		if !ok {
			continue
		}
		external, err := s.provider.FetchTeams(ctx, tl.target, season.ESPNID)
		if err != nil {
			return counts, err
		}
		seen := make(map[string]bool, len(external))
		for _, ext := range external {
			if seen[ext.ESPNID] {
				continue
			}
			seen[ext.ESPNID] = true
			id, err := s.newID()
			if err != nil {
				return counts, err
			}
			teams = append(teams, sport.Team{
				ID:            id,
				SportLeagueID: tl.league.ID,
				ESPNID:        ext.ESPNID,
				Name:          ext.Name,
				Location:      ext.Location,
				Abbreviation:  ext.Abbreviation,
				LogoURL:       ext.LogoURL,
			})
		}
	}

	if len(teams) > 0 {
		if err := s.repos.Teams.Upsert(ctx, db, teams); err != nil {
			return counts, fmt.Errorf("upsert teams: %w", err)
		}
	}
	counts.upserted = len(teams)
	return counts, nil
}

func (s *IngestionService) syncWeeks(ctx context.Context, db database.Handle) (syncCounts, error) {
	var counts syncCounts
	targets, err := s.targetLeagues(ctx, db, &counts)
	if err != nil {
		return counts, err
	}

	minYear := s.minSeasonYear()
	var weeks []sport.Week
	for _, tl := range targets {
		seasons, err := s.repos.Seasons.ListByLeague(ctx, db, tl.league.ID)
		if err != nil {
			return counts, fmt.Errorf("list seasons: %w", err)
		}
		for _, season := range seasons {
			if year, err := strconv.Atoi(season.ESPNID); err == nil && year < minYear {
				continue
			}
			seen := make(map[string]bool)
			for _, seasonType := range tl.target.SeasonTypes {
				external, err := s.provider.FetchWeeks(ctx, tl.target, season.ESPNID, seasonType)
				if err != nil {
					return counts, err
				}
				for _, ext := range external {
					key := sport.WeekESPNID(ext.SeasonType, ext.Number)
					if seen[key] {
						continue
					}
					seen[key] = true
					id, err := s.newID()
					if err != nil {
						return counts, err
					}
					weeks = append(weeks, sport.Week{
						ID:         id,
						SeasonID:   season.ID,
						ESPNID:     key,
						SeasonType: ext.SeasonType,
						Number:     ext.Number,
						Name:       ext.Name,
						StartTime:  ext.StartTime,
						EndTime:    ext.EndTime,
					})
				}
			}
		}
	}

	if len(weeks) > 0 {
		if err := s.repos.Weeks.Upsert(ctx, db, weeks); err != nil {
			return counts, fmt.Errorf("upsert weeks: %w", err)
		}
	}
	counts.upserted = len(weeks)
	return counts, nil
}

func (s *IngestionService) syncGames(ctx context.Context, db database.Handle) (syncCounts, error) {
	var counts syncCounts
	targets, err := s.targetLeagues(ctx, db, &counts)
	if err != nil {
		return counts, err
	}

	var games []sport.Game
	seen := make(map[string]bool)
	for _, tl := range targets {
		season, ok, err := s.latestSeason(ctx, db, tl, &counts)
		if err != nil {
			return counts, err
		}
		if !ok {
			continue
		}

		teams, err := s.repos.Teams.ListByLeague(ctx, db, tl.league.ID)
		if err != nil {
			return counts, fmt.Errorf("list teams: %w", err)
		}
		teamIDs := make(map[string]string, len(teams))
		for _, t := range teams {
			teamIDs[t.ESPNID] = t.ID
		}

		weeks, err := s.repos.Weeks.ListBySeason(ctx, db, season.ID)
		if err != nil {
			return counts, fmt.Errorf("list weeks: %w", err)
		}
		for _, week := range weeks {
			external, err := s.provider.FetchGames(ctx, tl.target, season.ESPNID, week.SeasonType, week.Number)
			if err != nil {
				return counts, err
			}
			for _, ext := range external {
				if seen[ext.EventID] {
					continue
				}
				homeID, okHome := teamIDs[ext.HomeTeamESPNID]
				awayID, okAway := teamIDs[ext.AwayTeamESPNID]
				if !okHome || !okAway {
					counts.skipped++
					s.logger.WarnContext(ctx, "game references an unknown team, skipping",
						"event_id", ext.EventID, "home", ext.HomeTeamESPNID, "away", ext.AwayTeamESPNID)
					continue
				}
				seen[ext.EventID] = true
				id, err := s.newID()
				if err != nil {
					return counts, err
				}
				games = append(games, sport.Game{
					ID:          id,
					WeekID:      week.ID,
					ESPNEventID: ext.EventID,
					HomeTeamID:  homeID,
					AwayTeamID:  awayID,
					HomeScore:   ext.HomeScore,
					AwayScore:   ext.AwayScore,
					Status:      ext.Status,
					Clock:       ext.Clock,
					Period:      ext.Period,
					StartTime:   ext.StartTime,
				})
			}
		}
	}

	if len(games) > 0 {
		if err := s.repos.Games.Upsert(ctx, db, games); err != nil {
			return counts, fmt.Errorf("upsert games: %w", err)
		}
	}
	counts.upserted = len(games)
	return counts, nil
}

// syncOdds refreshes lines for non-final games of the targets' latest seasons
// that start within the odds window.
func (s *IngestionService) syncOdds(ctx context.Context, db database.Handle) (syncCounts, error) {
	var counts syncCounts
	targets, err := s.targetLeagues(ctx, db, &counts)
	if err != nil {
		return counts, err
	}

	targetByWeek := make(map[string]sport.SyncTarget)
	for _, tl := range targets {
		season, ok, err := s.latestSeason(ctx, db, tl, &counts)
		if err != nil {
			return counts, err
		}
		if !ok {
			continue
		}
		weeks, err := s.repos.Weeks.ListBySeason(ctx, db, season.ID)
		if err != nil {
			return counts, fmt.Errorf("list weeks: %w", err)
		}
		for _, w := range weeks {
			targetByWeek[w.ID] = tl.target
		}
	}

	now := s.now()
	games, err := s.repos.Games.ListStartingBetween(ctx, db, now, now.Add(s.cfg.OddsWindow))
	if err != nil {
		return counts, fmt.Errorf("list upcoming games: %w", err)
	}

	var odds []sport.Odds
	for _, g := range games {
		if g.Final() {
			continue
		}
		target, ok := targetByWeek[g.WeekID]
		if !ok {
			continue
		}
		external, err := s.provider.FetchOdds(ctx, target, g.ESPNEventID)
		if err != nil {
			return counts, err
		}
		seen := make(map[string]bool, len(external))
		for _, ext := range external {
			if seen[ext.ProviderESPNID] {
				continue
			}
			seen[ext.ProviderESPNID] = true
			id, err := s.newID()
			if err != nil {
				return counts, err
			}
			o := sport.Odds{
				ID:             id,
				GameID:         g.ID,
				ProviderESPNID: ext.ProviderESPNID,
				ProviderName:   ext.ProviderName,
				Spread:         ext.Spread,
				OverUnder:      ext.OverUnder,
				UpdatedAt:      now.UTC(),
			}
			switch {
			case ext.HomeFavorite:
				o.FavoriteTeamID = g.HomeTeamID
			case ext.AwayFavorite:
				o.FavoriteTeamID = g.AwayTeamID
			}
			odds = append(odds, o)
		}
	}

	if len(odds) > 0 {
		if err := s.repos.Odds.Upsert(ctx, db, odds); err != nil {
			return counts, fmt.Errorf("upsert odds: %w", err)
		}
	}
	counts.upserted = len(odds)
	return counts, nil
}
