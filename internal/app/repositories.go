package app

import (
	"github.com/picksleagues/picks-leagues/internal/config"
	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/infrastructure/repository/cache"
	"github.com/picksleagues/picks-leagues/internal/infrastructure/repository/memory"
	"github.com/picksleagues/picks-leagues/internal/infrastructure/repository/postgres"
	"github.com/picksleagues/picks-leagues/internal/usecase"
)

func newPostgresRepositories(cfg config.Config) usecase.Repositories {
	var sportLeagues sport.LeagueRepository = postgres.NewSportLeagueRepository()
	if cfg.CacheEnabled {
		sportLeagues = cache.NewSportLeagueRepository(sportLeagues, cfg.CacheTTL)
	}

	return usecase.Repositories{
		Users:         postgres.NewUserRepository(),
		Accounts:      postgres.NewAccountRepository(),
		Sessions:      postgres.NewSessionRepository(),
		Leagues:       postgres.NewPicksLeagueRepository(),
		Members:       postgres.NewPicksLeagueMemberRepository(),
		Invites:       postgres.NewInviteRepository(),
		LeagueSeasons: postgres.NewLeagueSeasonRepository(),
		Picks:         postgres.NewPickRepository(),
		SportLeagues:  sportLeagues,
		Seasons:       postgres.NewSportSeasonRepository(),
		Teams:         postgres.NewSportTeamRepository(),
		Weeks:         postgres.NewSportWeekRepository(),
		Games:         postgres.NewSportGameRepository(),
		Odds:          postgres.NewSportOddsRepository(),
		Runs:          postgres.NewIngestionRunRepository(),
	}
}

func newMemoryRepositories(store *memory.Store) usecase.Repositories {
	return usecase.Repositories{
		Users:         memory.NewUserRepository(store),
		Accounts:      memory.NewAccountRepository(store),
		Sessions:      memory.NewSessionRepository(store),
		Leagues:       memory.NewPicksLeagueRepository(store),
		Members:       memory.NewPicksLeagueMemberRepository(store),
		Invites:       memory.NewInviteRepository(store),
		LeagueSeasons: memory.NewLeagueSeasonRepository(store),
		Picks:         memory.NewPickRepository(store),
		SportLeagues:  memory.NewSportLeagueRepository(store),
		Seasons:       memory.NewSportSeasonRepository(store),
		Teams:         memory.NewSportTeamRepository(store),
		Weeks:         memory.NewSportWeekRepository(store),
		Games:         memory.NewSportGameRepository(store),
		Odds:          memory.NewSportOddsRepository(store),
		Runs:          memory.NewIngestionRunRepository(store),
	}
}
