package httpapi

import "net/http"

func (h *Handler) ListSportLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSportLeagues")
	defer span.End()

	leagues, err := h.services.Sports.ListLeagues(ctx)
	if err != nil {
		h.fail(ctx, w, "list sport leagues failed", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(leagues, sportLeagueToDTO))
}

func (h *Handler) ListSportLeagueWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSportLeagueWeeks")
	defer span.End()

	sportLeagueID := r.PathValue("sportLeagueID")
	weeks, err := h.services.Sports.LatestWeeks(ctx, sportLeagueID)
	if err != nil {
		h.fail(ctx, w, "list sport league weeks failed", err, "sport_league_id", sportLeagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, seasonWeeksToDTO(weeks))
}
