package httpapi

import (
	"net/http"

	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/usecase"
)

func (h *Handler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateInvite")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagueID := r.PathValue("leagueID")
	var req createInviteRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inv, err := h.services.Invites.Create(ctx, principal, leagueID, usecase.CreateInviteInput{
		Role:   picksleague.Role(req.Role),
		UserID: req.UserID,
	})
	if err != nil {
		h.fail(ctx, w, "create invite failed", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, inviteToDTO(inv))
}

func (h *Handler) ListLeagueInvites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueInvites")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagueID := r.PathValue("leagueID")
	invites, err := h.services.Invites.ListForLeague(ctx, principal, leagueID)
	if err != nil {
		h.fail(ctx, w, "list league invites failed", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(invites, inviteToDTO))
}

func (h *Handler) RevokeInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RevokeInvite")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	leagueID, inviteID := r.PathValue("leagueID"), r.PathValue("inviteID")
	if err := h.services.Invites.Revoke(ctx, principal, leagueID, inviteID); err != nil {
		h.fail(ctx, w, "revoke invite failed", err, "league_id", leagueID, "invite_id", inviteID)
		return
	}
	writeMessage(ctx, w)
}

func (h *Handler) ListMyInvites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyInvites")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	invites, err := h.services.Invites.ListMine(ctx, principal)
	if err != nil {
		h.fail(ctx, w, "list my invites failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(invites, inviteToDTO))
}

func (h *Handler) GetInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetInvite")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	inviteID := r.PathValue("inviteID")
	details, err := h.services.Invites.Get(ctx, principal, inviteID)
	if err != nil {
		h.fail(ctx, w, "get invite failed", err, "invite_id", inviteID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, inviteDetailsToDTO(details))
}

func (h *Handler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptInvite")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	inviteID := r.PathValue("inviteID")
	member, err := h.services.Invites.Accept(ctx, principal, inviteID)
	if err != nil {
		h.fail(ctx, w, "accept invite failed", err, "invite_id", inviteID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, memberToDTO(member))
}

func (h *Handler) DeclineInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeclineInvite")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	inviteID := r.PathValue("inviteID")
	if err := h.services.Invites.Decline(ctx, principal, inviteID); err != nil {
		h.fail(ctx, w, "decline invite failed", err, "invite_id", inviteID)
		return
	}
	writeMessage(ctx, w)
}
