// Package worker runs the scheduled background jobs: ESPN ingestion, season
// rollover and session cleanup.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
	"github.com/robfig/cron/v3"
)

// Job is one scheduled unit of work. Schedule uses the standard five field
// cron syntax or descriptors such as @hourly.
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error
}

// Scheduler fires jobs from cron and executes them on a bounded pool. A job
// whose previous execution is still running is skipped.
type Scheduler struct {
	cron    *cron.Cron
	pool    *ants.Pool
	logger  *logging.Logger
	jobs    map[string]Job
	running sync.WaitGroup

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

func New(jobs []Job, poolSize int, logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if poolSize <= 0 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	cronLogger := cronLogAdapter{logger: logger}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		pool:   pool,
		logger: logger,
		jobs:   make(map[string]Job, len(jobs)),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	for _, job := range jobs {
		if job.Schedule == "" || job.Schedule == "-" {
			logger.Info("job disabled", "job", job.Name)
			continue
		}
		if _, dup := s.jobs[job.Name]; dup {
			pool.Release()
			return nil, fmt.Errorf("duplicate job %q", job.Name)
		}
		if _, err := s.cron.AddJob(job.Schedule, s.cronJob(job)); err != nil {
			pool.Release()
			return nil, fmt.Errorf("schedule job %s (%q): %w", job.Name, job.Schedule, err)
		}
		s.jobs[job.Name] = job
	}

	return s, nil
}

// Start begins firing jobs. ctx bounds every execution.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.jobs))
}

// RunNow executes a job immediately and waits for it.
func (s *Scheduler) RunNow(name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	return s.submit(job)
}

// Jobs returns the names of the scheduled jobs.
func (s *Scheduler) Jobs() []string {
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	return names
}

// Stop stops firing new jobs, cancels running ones and waits for them up to
// the deadline of ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	cronDone := s.cron.Stop()

	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.running.Wait()
		close(done)
	}()

	defer s.pool.Release()
	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for running jobs: %w", ctx.Err())
	}
}

func (s *Scheduler) cronJob(job Job) cron.Job {
	return cron.FuncJob(func() {
		if err := s.submit(job); err != nil {
			s.logger.Error("job failed", "job", job.Name, "error", err)
		}
	})
}

// submit runs job on the pool and blocks until it finishes, so cron's
// SkipIfStillRunning sees the real execution time.
func (s *Scheduler) submit(job Job) error {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	var jobErr error
	done := make(chan struct{})
	s.running.Add(1)
	if err := s.pool.Submit(func() {
		defer s.running.Done()
		defer close(done)
		jobErr = s.execute(ctx, job)
	}); err != nil {
		s.running.Done()
		return fmt.Errorf("submit job %s: %w", job.Name, err)
	}
	<-done
	return jobErr
}

func (s *Scheduler) execute(ctx context.Context, job Job) (err error) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", job.Name, r)
		}
		elapsed := time.Since(started)
		if err != nil {
			s.logger.ErrorContext(ctx, "job finished with error", "job", job.Name, "duration", elapsed.String(), "error", err)
			return
		}
		s.logger.InfoContext(ctx, "job finished", "job", job.Name, "duration", elapsed.String())
	}()

	return job.Run(ctx)
}

// cronLogAdapter satisfies cron.Logger with the service logger.
type cronLogAdapter struct {
	logger *logging.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Debug("cron: "+msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...any) {
	a.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
