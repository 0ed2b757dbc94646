package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/picksleagues/picks-leagues/internal/domain/ingestionrun"
	"github.com/picksleagues/picks-leagues/internal/usecase"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
	cronEntityAll    = "all"
)

type cronRunsDTO struct {
	Runs []ingestionRunDTO `json:"runs"`
}

// RunCron runs one scheduled ingestion job. Every failure, including an open
// ESPN breaker, answers 500 so the scheduler retries.
func (h *Handler) RunCron(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunCron")
	defer span.End()

	name := r.PathValue("entity")
	var (
		runs []ingestionrun.Run
		err  error
	)
	if name == cronEntityAll {
		runs, err = h.services.Ingestion.RunAll(ctx, ingestionrun.TriggerCron)
	} else {
		entity, ok := ingestionrun.ParseEntity(name)
		if !ok {
			writeError(ctx, w, usecase.NotFound("unknown cron job"))
			return
		}
		var run ingestionrun.Run
		run, err = h.services.Ingestion.Run(ctx, entity, ingestionrun.TriggerCron)
		if run.ID != "" {
			runs = append(runs, run)
		}
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "cron job failed", "job", name, "error", err)
		writeInternalError(ctx, w)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, cronRunsDTO{Runs: mapSlice(runs, runToDTO)})
}

func (h *Handler) ListCronRuns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCronRuns")
	defer span.End()

	limit := defaultRunsLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeError(ctx, w, usecase.BadInput("limit must be a positive integer", map[string]string{"limit": "must be a positive integer"}))
			return
		}
		limit = min(v, maxRunsLimit)
	}

	runs, err := h.services.Ingestion.RecentRuns(ctx, limit)
	if err != nil {
		h.fail(ctx, w, "list cron runs failed", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, cronRunsDTO{Runs: mapSlice(runs, runToDTO)})
}
