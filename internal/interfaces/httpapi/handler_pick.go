package httpapi

import (
	"net/http"

	"github.com/picksleagues/picks-leagues/internal/usecase"
)

func (h *Handler) ListPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPicks")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagueID, weekID := r.PathValue("leagueID"), r.PathValue("weekID")
	picks, err := h.services.Picks.ListForWeek(ctx, principal, leagueID, weekID)
	if err != nil {
		h.fail(ctx, w, "list picks failed", err, "league_id", leagueID, "week_id", weekID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(picks, pickToDTO))
}

func (h *Handler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPicks")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagueID, weekID := r.PathValue("leagueID"), r.PathValue("weekID")
	var req submitPicksRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.PickInput, 0, len(req.Picks))
	for _, p := range req.Picks {
		inputs = append(inputs, usecase.PickInput{GameID: p.GameID, TeamID: p.TeamID})
	}
	picks, err := h.services.Picks.Submit(ctx, principal, leagueID, weekID, inputs)
	if err != nil {
		h.fail(ctx, w, "submit picks failed", err, "league_id", leagueID, "week_id", weekID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(picks, pickToDTO))
}
