package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/picksleagues/picks-leagues/internal/usecase"
)

const (
	oauthStateCookieName = "oauth_state"
	oauthStateTTL        = 10 * time.Minute
)

func (h *Handler) setCookie(w http.ResponseWriter, name, value, path string, expires time.Time) {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   h.cfg.CookieDomain,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		c.MaxAge = -1
	} else {
		c.Expires = expires
	}
	http.SetCookie(w, c)
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	h.setCookie(w, sessionCookieName, "", "/", time.Time{})
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignIn")
	defer span.End()

	provider := r.PathValue("provider")
	redirectURL, state, err := h.services.Auth.BeginSignIn(provider)
	if err != nil {
		h.fail(ctx, w, "begin sign-in failed", err, "provider", provider)
		return
	}

	h.setCookie(w, oauthStateCookieName, state, "/v1/auth", h.now().Add(oauthStateTTL))
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

func (h *Handler) SignInCallback(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignInCallback")
	defer span.End()

	provider := r.PathValue("provider")
	query := r.URL.Query()
	if providerErr := strings.TrimSpace(query.Get("error")); providerErr != "" {
		h.fail(ctx, w, "provider rejected sign-in", usecase.BadInput("sign-in was cancelled", nil),
			"provider", provider, "provider_error", providerErr)
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != query.Get("state") {
		h.fail(ctx, w, "oauth state mismatch", usecase.BadInput("invalid sign-in state", nil), "provider", provider)
		return
	}
	h.setCookie(w, oauthStateCookieName, "", "/v1/auth", time.Time{})

	code := strings.TrimSpace(query.Get("code"))
	if code == "" {
		h.fail(ctx, w, "missing oauth code", usecase.BadInput("missing authorization code", nil), "provider", provider)
		return
	}

	session, err := h.services.Auth.CompleteSignIn(ctx, provider, code)
	if err != nil {
		h.fail(ctx, w, "complete sign-in failed", err, "provider", provider)
		return
	}
	h.setCookie(w, sessionCookieName, session.Token, "/", session.ExpiresAt)

	if h.cfg.SignInRedirectURL != "" {
		http.Redirect(w, r, h.cfg.SignInRedirectURL, http.StatusFound)
		return
	}
	writeMessage(ctx, w)
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignOut")
	defer span.End()

	if err := h.services.Auth.SignOut(ctx, sessionToken(r)); err != nil {
		h.fail(ctx, w, "sign out failed", err)
		return
	}
	h.clearSessionCookie(w)
	writeMessage(ctx, w)
}

func (h *Handler) IssueMobileToken(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IssueMobileToken")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}
	token, expiresAt, err := h.services.Auth.IssueMobileToken(ctx, principal)
	if err != nil {
		h.fail(ctx, w, "issue mobile token failed", err, "user_id", principal.UserID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mobileTokenDTO{Token: token, ExpiresAt: expiresAt})
}
