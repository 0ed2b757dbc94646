package worker

import (
	"context"
	"fmt"

	"github.com/picksleagues/picks-leagues/internal/config"
	"github.com/picksleagues/picks-leagues/internal/domain/ingestionrun"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
)

// Ingester runs ESPN mirror jobs.
type Ingester interface {
	Run(ctx context.Context, entity ingestionrun.Entity, trigger ingestionrun.Trigger) (ingestionrun.Run, error)
}

// SessionPurger deletes expired sign-in sessions.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// catalogueEntities change rarely and are refreshed together, in order.
var catalogueEntities = []ingestionrun.Entity{
	ingestionrun.EntitySportLeagues,
	ingestionrun.EntitySeasons,
	ingestionrun.EntityTeams,
	ingestionrun.EntityWeeks,
}

// DefaultJobs builds the worker's job table from the configured schedules.
func DefaultJobs(cfg config.Config, ingester Ingester, sessions SessionPurger, logger *logging.Logger) []Job {
	if logger == nil {
		logger = logging.Default()
	}

	return []Job{
		{
			Name:     "catalogue",
			Schedule: cfg.WorkerIngestSchedule,
			Run: func(ctx context.Context) error {
				for _, entity := range catalogueEntities {
					if _, err := ingester.Run(ctx, entity, ingestionrun.TriggerWorker); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			Name:     "games",
			Schedule: cfg.WorkerGamesSchedule,
			Run:      ingest(ingester, ingestionrun.EntityGames),
		},
		{
			Name:     "odds",
			Schedule: cfg.WorkerOddsSchedule,
			Run:      ingest(ingester, ingestionrun.EntityOdds),
		},
		{
			Name:     "rollover",
			Schedule: cfg.WorkerRolloverSchedule,
			Run:      ingest(ingester, ingestionrun.EntityPicksLeagueSeasons),
		},
		{
			Name:     "sessions",
			Schedule: cfg.WorkerSessionsSchedule,
			Run: func(ctx context.Context) error {
				n, err := sessions.PurgeExpiredSessions(ctx)
				if err != nil {
					return err
				}
				if n > 0 {
					logger.InfoContext(ctx, "expired sessions purged", "count", n)
				}
				return nil
			},
		},
	}
}

func ingest(ingester Ingester, entity ingestionrun.Entity) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := ingester.Run(ctx, entity, ingestionrun.TriggerWorker)
		return err
	}
}

// RunOnStart executes the catalogue refresh followed by the games sync, the
// minimum a fresh database needs before leagues can be created.
func RunOnStart(s *Scheduler) error {
	for _, name := range []string{"catalogue", "games"} {
		if _, ok := s.jobs[name]; !ok {
			continue
		}
		if err := s.RunNow(name); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
