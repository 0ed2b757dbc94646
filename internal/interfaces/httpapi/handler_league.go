package httpapi

import (
	"net/http"

	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/usecase"
)

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	var req createLeagueRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	league, err := h.services.Leagues.Create(ctx, principal, usecase.CreateLeagueInput{
		Name:          req.Name,
		Size:          req.Size,
		PickType:      picksleague.PickType(req.PickType),
		PicksPerWeek:  req.PicksPerWeek,
		LogoURL:       req.LogoURL,
		SportLeagueID: req.SportLeagueID,
		StartWeekID:   req.StartWeekID,
		EndWeekID:     req.EndWeekID,
	})
	if err != nil {
		h.fail(ctx, w, "create league failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(league))
}

func (h *Handler) ListMyLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyLeagues")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagues, err := h.services.Leagues.ListMine(ctx, principal)
	if err != nil {
		h.fail(ctx, w, "list leagues failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(leagues, leagueToDTO))
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagueID := r.PathValue("leagueID")
	league, err := h.services.Leagues.Get(ctx, principal, leagueID)
	if err != nil {
		h.fail(ctx, w, "get league failed", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(league))
}

func (h *Handler) UpdateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLeague")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagueID := r.PathValue("leagueID")
	var req updateLeagueRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	in := usecase.UpdateLeagueInput{
		Name:         req.Name,
		Size:         req.Size,
		PicksPerWeek: req.PicksPerWeek,
		LogoURL:      req.LogoURL,
		StartWeekID:  req.StartWeekID,
		EndWeekID:    req.EndWeekID,
	}
	if req.PickType != nil {
		pt := picksleague.PickType(*req.PickType)
		in.PickType = &pt
	}

	league, err := h.services.Leagues.UpdateSettings(ctx, principal, leagueID, in)
	if err != nil {
		h.fail(ctx, w, "update league failed", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(league))
}

func (h *Handler) DeleteLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteLeague")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagueID := r.PathValue("leagueID")
	if err := h.services.Leagues.Delete(ctx, principal, leagueID); err != nil {
		h.fail(ctx, w, "delete league failed", err, "league_id", leagueID)
		return
	}
	writeMessage(ctx, w)
}

func (h *Handler) GetLeagueStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueStatus")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagueID := r.PathValue("leagueID")
	status, err := h.services.Leagues.Status(ctx, principal, leagueID)
	if err != nil {
		h.fail(ctx, w, "get league status failed", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leagueStatusDTO{
		InSeason:              status.InSeason,
		CanEditSeasonSettings: status.CanEditSeasonSettings,
	})
}

func (h *Handler) GetWeekNavigation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekNavigation")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagueID, weekID := r.PathValue("leagueID"), r.PathValue("weekID")
	nav, err := h.services.Leagues.WeekNavigation(ctx, principal, leagueID, weekID)
	if err != nil {
		h.fail(ctx, w, "week navigation failed", err, "league_id", leagueID, "week_id", weekID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, weekNavigationDTO{
		Previous: optionalWeekToDTO(nav.Previous),
		Next:     optionalWeekToDTO(nav.Next),
	})
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagueID := r.PathValue("leagueID")
	standings, err := h.services.Leagues.Standings(ctx, principal, leagueID)
	if err != nil {
		h.fail(ctx, w, "standings failed", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(standings, standingToDTO))
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMembers")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagueID := r.PathValue("leagueID")
	members, err := h.services.Members.List(ctx, principal, leagueID)
	if err != nil {
		h.fail(ctx, w, "list members failed", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(members, memberProfileToDTO))
}

func (h *Handler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMemberRole")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagueID, userID := r.PathValue("leagueID"), r.PathValue("userID")
	var req updateRoleRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	member, err := h.services.Members.UpdateRole(ctx, principal, leagueID, userID, picksleague.Role(req.Role))
	if err != nil {
		h.fail(ctx, w, "update member role failed", err, "league_id", leagueID, "target_user_id", userID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, memberToDTO(member))
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveMember")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagueID, userID := r.PathValue("leagueID"), r.PathValue("userID")
	if err := h.services.Members.Remove(ctx, principal, leagueID, userID); err != nil {
		h.fail(ctx, w, "remove member failed", err, "league_id", leagueID, "target_user_id", userID)
		return
	}
	writeMessage(ctx, w)
}

func (h *Handler) LeaveLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveLeague")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagueID := r.PathValue("leagueID")
	if err := h.services.Members.Leave(ctx, principal, leagueID); err != nil {
		h.fail(ctx, w, "leave league failed", err, "league_id", leagueID)
		return
	}
	writeMessage(ctx, w)
}
