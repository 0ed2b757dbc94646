package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/ingestionrun"
	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	idgen "github.com/picksleagues/picks-leagues/internal/platform/id"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultSeasonLookback = 1
	DefaultOddsWindow     = 7 * 24 * time.Hour
)

type IngestionConfig struct {
	Targets []sport.SyncTarget
	// SeasonLookback is how many past years of seasons are mirrored.
	SeasonLookback int
	OddsWindow     time.Duration
}

// IngestionObserver receives the outcome of every run.
type IngestionObserver interface {
	RunFinished(entity ingestionrun.Entity, status ingestionrun.Status, elapsed time.Duration, upserted, skipped int)
}

type nopIngestionObserver struct{}

func (nopIngestionObserver) RunFinished(ingestionrun.Entity, ingestionrun.Status, time.Duration, int, int) {}

type syncCounts struct {
	upserted int
	skipped  int
}

type IngestionService struct {
	tx       database.Transactor
	repos    Repositories
	provider SportDataProvider
	rollover *SeasonRolloverService
	idGen    idgen.Generator
	cfg      IngestionConfig
	observer IngestionObserver
	logger   *logging.Logger
	now      func() time.Time
}

func NewIngestionService(
	tx database.Transactor,
	repos Repositories,
	provider SportDataProvider,
	rollover *SeasonRolloverService,
	idGen idgen.Generator,
	cfg IngestionConfig,
	observer IngestionObserver,
	logger *logging.Logger,
) *IngestionService {
	if len(cfg.Targets) == 0 {
		cfg.Targets = sport.DefaultSyncTargets()
	}
	if cfg.SeasonLookback < 0 {
		cfg.SeasonLookback = DefaultSeasonLookback
	}
	if cfg.OddsWindow <= 0 {
		cfg.OddsWindow = DefaultOddsWindow
	}
	if observer == nil {
		observer = nopIngestionObserver{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		tx:       tx,
		repos:    repos,
		provider: provider,
		rollover: rollover,
		idGen:    idGen,
		cfg:      cfg,
		observer: observer,
		logger:   logger.Named("ingestion"),
		now:      time.Now,
	}
}

func ingestionLockKey(entity ingestionrun.Entity) string {
	if entity == ingestionrun.EntityPicksLeagueSeasons {
		return rolloverLockKey
	}
	return "ingest:" + string(entity)
}

func (s *IngestionService) syncFunc(entity ingestionrun.Entity) (func(context.Context, database.Handle) (syncCounts, error), error) {
	switch entity {
	case ingestionrun.EntitySportLeagues:
		return s.syncSportLeagues, nil
	case ingestionrun.EntitySeasons:
		return s.syncSeasons, nil
	case ingestionrun.EntityTeams:
		return s.syncTeams, nil
	case ingestionrun.EntityWeeks:
		return s.syncWeeks, nil
	case ingestionrun.EntityGames:
		return s.syncGames, nil
	case ingestionrun.EntityOdds:
		return s.syncOdds, nil
	case ingestionrun.EntityPicksLeagueSeasons:
		if s.rollover == nil {
			return nil, fmt.Errorf("season rollover is not configured")
		}
		return s.rollover.rollover, nil
	default:
		return nil, fmt.Errorf("%w: unknown ingestion entity %q", ErrBadInput, entity)
	}
}

// Run mirrors one entity inside a single transaction holding the entity's
// advisory lock. The run row is written outside that transaction so failed
// runs are still recorded.
func (s *IngestionService) Run(ctx context.Context, entity ingestionrun.Entity, trigger ingestionrun.Trigger) (ingestionrun.Run, error) {
	syncEntity, err := s.syncFunc(entity)
	if err != nil {
		return ingestionrun.Run{}, err
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Run",
		attribute.String("ingestion.entity", string(entity)), attribute.String("ingestion.trigger", string(trigger)))
	defer func() { endSpan(span, err) }()

	run := ingestionrun.Run{
		Entity:    entity,
		Trigger:   trigger,
		Status:    ingestionrun.StatusRunning,
		StartedAt: s.now().UTC(),
	}
	if run.ID, err = s.idGen.NewID(); err != nil {
		err = fmt.Errorf("generate run id: %w", err)
		return ingestionrun.Run{}, err
	}
	if err = s.repos.Runs.Create(ctx, s.tx.Conn(), run); err != nil {
		err = fmt.Errorf("record run start: %w", err)
		return ingestionrun.Run{}, err
	}

	logger := s.logger.With("entity", string(entity), "trigger", string(trigger), "run_id", run.ID)
	logger.InfoContext(ctx, "ingestion run started")

	started := time.Now()
	var counts syncCounts
	err = s.tx.InLockedTx(ctx, ingestionLockKey(entity), func(ctx context.Context, db database.Handle) error {
		var syncErr error
		counts, syncErr = syncEntity(ctx, db)
		return syncErr
	})
	elapsed := time.Since(started)

	finished := s.now().UTC()
	run.FinishedAt = &finished
	run.Upserted = counts.upserted
	run.Skipped = counts.skipped
	run.Status = ingestionrun.StatusCompleted
	if err != nil {
		run.Status = ingestionrun.StatusFailed
		run.Upserted = 0
		run.Error = err.Error()
	}

	if finishErr := s.repos.Runs.Finish(context.WithoutCancel(ctx), s.tx.Conn(), run); finishErr != nil {
		logger.ErrorContext(ctx, "record run finish failed", "error", finishErr)
	}
	s.observer.RunFinished(entity, run.Status, elapsed, run.Upserted, run.Skipped)

	if err != nil {
		logger.ErrorContext(ctx, "ingestion run failed", "duration", elapsed.String(), "error", err)
		err = fmt.Errorf("ingest %s: %w", entity, err)
		return run, err
	}
	logger.InfoContext(ctx, "ingestion run completed",
		"duration", elapsed.String(), "upserted", run.Upserted, "skipped", run.Skipped)
	return run, nil
}

// RunAll mirrors every entity in dependency order and stops at the first failure.
func (s *IngestionService) RunAll(ctx context.Context, trigger ingestionrun.Trigger) ([]ingestionrun.Run, error) {
	runs := make([]ingestionrun.Run, 0, len(ingestionrun.Entities))
	for _, entity := range ingestionrun.Entities {
		run, err := s.Run(ctx, entity, trigger)
		if run.ID != "" {
			runs = append(runs, run)
		}
		if err != nil {
			return runs, err
		}
	}
	return runs, nil
}

func (s *IngestionService) RecentRuns(ctx context.Context, limit int) ([]ingestionrun.Run, error) {
	runs, err := s.repos.Runs.ListRecent(ctx, s.tx.Conn(), limit)
	if err != nil {
		return nil, fmt.Errorf("list recent runs: %w", err)
	}
	return runs, nil
}
