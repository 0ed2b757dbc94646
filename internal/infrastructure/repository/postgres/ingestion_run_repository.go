package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/ingestionrun"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	qb "github.com/picksleagues/picks-leagues/internal/platform/querybuilder"
)

type ingestionRunTableModel struct {
	ID         string       `db:"id"`
	Entity     string       `db:"entity"`
	Trigger    string       `db:"trigger"`
	Status     string       `db:"status"`
	Upserted   int          `db:"upserted"`
	Skipped    int          `db:"skipped"`
	Error      string       `db:"error"`
	StartedAt  time.Time    `db:"started_at"`
	FinishedAt sql.NullTime `db:"finished_at"`
}

func ingestionRunFromRow(row ingestionRunTableModel) ingestionrun.Run {
	return ingestionrun.Run{
		ID:         row.ID,
		Entity:     ingestionrun.Entity(row.Entity),
		Trigger:    ingestionrun.Trigger(row.Trigger),
		Status:     ingestionrun.Status(row.Status),
		Upserted:   row.Upserted,
		Skipped:    row.Skipped,
		Error:      row.Error,
		StartedAt:  row.StartedAt,
		FinishedAt: timePtr(row.FinishedAt),
	}
}

type IngestionRunRepository struct{}

func NewIngestionRunRepository() *IngestionRunRepository {
	return &IngestionRunRepository{}
}

func (r *IngestionRunRepository) Create(ctx context.Context, db database.Handle, run ingestionrun.Run) error {
	query, args, err := qb.InsertModel("ingestion_runs", ingestionRunTableModel{
		ID:         run.ID,
		Entity:     string(run.Entity),
		Trigger:    string(run.Trigger),
		Status:     string(run.Status),
		Upserted:   run.Upserted,
		Skipped:    run.Skipped,
		Error:      run.Error,
		StartedAt:  run.StartedAt,
		FinishedAt: nullTime(run.FinishedAt),
	}, "")
	if err != nil {
		return fmt.Errorf("build create ingestion run query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create ingestion run: %w", err)
	}
	return nil
}

func (r *IngestionRunRepository) Finish(ctx context.Context, db database.Handle, run ingestionrun.Run) error {
	query, args, err := qb.Update("ingestion_runs").
		Set("status", string(run.Status)).
		Set("upserted", run.Upserted).
		Set("skipped", run.Skipped).
		Set("error", run.Error).
		Set("finished_at", nullTime(run.FinishedAt)).
		Where(qb.Eq("id", run.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build finish ingestion run query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("finish ingestion run: %w", err)
	}
	return nil
}

func (r *IngestionRunRepository) ListRecent(ctx context.Context, db database.Handle, limit int) ([]ingestionrun.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	return selectRows(ctx, db, "list ingestion runs",
		qb.Select("*").
			From("ingestion_runs").
			OrderBy("started_at DESC", "id DESC").
			Limit(limit),
		ingestionRunFromRow)
}
