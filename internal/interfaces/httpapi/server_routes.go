package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
}

// session wraps h with session authentication.
func session(handler *Handler, h http.HandlerFunc) http.Handler {
	return RequireSession(handler.services.Auth, h)
}

// member wraps h with session authentication and a completed profile.
func member(handler *Handler, h http.HandlerFunc) http.Handler {
	return RequireSession(handler.services.Auth, RequireProfile(h))
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/auth/{provider}/login", handler.SignIn)
	mux.HandleFunc("GET /v1/auth/{provider}/callback", handler.SignInCallback)
	mux.HandleFunc("POST /v1/auth/signout", handler.SignOut)
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/users/me", session(handler, handler.GetMe))
	mux.Handle("PUT /v1/users/me", session(handler, handler.UpdateMe))
	mux.Handle("DELETE /v1/users/me", session(handler, handler.DeleteMe))
	mux.Handle("POST /v1/users/me/username", session(handler, handler.GenerateUsername))
	mux.Handle("POST /v1/users/me/mobile-token", session(handler, handler.IssueMobileToken))
}

func registerSportRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/sport-leagues", session(handler, handler.ListSportLeagues))
	mux.Handle("GET /v1/sport-leagues/{sportLeagueID}/weeks", session(handler, handler.ListSportLeagueWeeks))
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/picks-leagues", member(handler, handler.CreateLeague))
	mux.Handle("GET /v1/picks-leagues", member(handler, handler.ListMyLeagues))
	mux.Handle("GET /v1/picks-leagues/{leagueID}", member(handler, handler.GetLeague))
	mux.Handle("PUT /v1/picks-leagues/{leagueID}", member(handler, handler.UpdateLeague))
	mux.Handle("DELETE /v1/picks-leagues/{leagueID}", member(handler, handler.DeleteLeague))
	mux.Handle("GET /v1/picks-leagues/{leagueID}/status", member(handler, handler.GetLeagueStatus))
	mux.Handle("GET /v1/picks-leagues/{leagueID}/standings", member(handler, handler.GetStandings))
	mux.Handle("GET /v1/picks-leagues/{leagueID}/weeks/{weekID}/navigation", member(handler, handler.GetWeekNavigation))
	mux.Handle("GET /v1/picks-leagues/{leagueID}/weeks/{weekID}/picks", member(handler, handler.ListPicks))
	mux.Handle("POST /v1/picks-leagues/{leagueID}/weeks/{weekID}/picks", member(handler, handler.SubmitPicks))

	mux.Handle("GET /v1/picks-leagues/{leagueID}/members", member(handler, handler.ListMembers))
	mux.Handle("PUT /v1/picks-leagues/{leagueID}/members/{userID}/role", member(handler, handler.UpdateMemberRole))
	mux.Handle("DELETE /v1/picks-leagues/{leagueID}/members/{userID}", member(handler, handler.RemoveMember))
	mux.Handle("POST /v1/picks-leagues/{leagueID}/leave", member(handler, handler.LeaveLeague))

	mux.Handle("POST /v1/picks-leagues/{leagueID}/invites", member(handler, handler.CreateInvite))
	mux.Handle("GET /v1/picks-leagues/{leagueID}/invites", member(handler, handler.ListLeagueInvites))
	mux.Handle("DELETE /v1/picks-leagues/{leagueID}/invites/{inviteID}", member(handler, handler.RevokeInvite))
}

func registerInviteRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/invites", member(handler, handler.ListMyInvites))
	mux.Handle("GET /v1/invites/{inviteID}", member(handler, handler.GetInvite))
	mux.Handle("POST /v1/invites/{inviteID}/accept", member(handler, handler.AcceptInvite))
	mux.Handle("POST /v1/invites/{inviteID}/decline", member(handler, handler.DeclineInvite))
}

func registerCronRoutes(mux *http.ServeMux, handler *Handler, secret string) {
	mux.Handle("GET /v1/cron/runs", RequireCronSecret(secret, http.HandlerFunc(handler.ListCronRuns)))
	mux.Handle("GET /v1/cron/{entity}", RequireCronSecret(secret, http.HandlerFunc(handler.RunCron)))
}

func registerMobileRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/mobile/users/me", RequireMobileToken(handler.services.Auth, http.HandlerFunc(handler.GetMe)))
	mux.Handle("PUT /v1/mobile/users/me", RequireMobileToken(handler.services.Auth, http.HandlerFunc(handler.UpdateMe)))
}
