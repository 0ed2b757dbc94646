package httpapi

import (
	"net/http"

	"github.com/picksleagues/picks-leagues/internal/usecase"
)

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	u, err := h.services.Users.Get(ctx, principal.UserID)
	if err != nil {
		h.fail(ctx, w, "get user failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, userToDTO(u))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMe")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	u, err := h.services.Users.UpdateProfile(ctx, principal, usecase.UpdateProfileInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Timezone:  req.Timezone,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		h.fail(ctx, w, "update profile failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, userToDTO(u))
}

func (h *Handler) GenerateUsername(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateUsername")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	u, err := h.services.Users.GenerateUsername(ctx, principal)
	if err != nil {
		h.fail(ctx, w, "generate username failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, userToDTO(u))
}

func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMe")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	if err := h.services.Users.Delete(ctx, principal); err != nil {
		h.fail(ctx, w, "delete account failed", err, "user_id", principal.UserID)
		return
	}
	h.clearSessionCookie(w)
	writeMessage(ctx, w)
}
