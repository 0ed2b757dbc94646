package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
	"github.com/picksleagues/picks-leagues/internal/usecase"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fixedSessions struct{}

func (fixedSessions) Authenticate(_ context.Context, token string) (user.Principal, error) {
	if token != "valid" {
		return user.Principal{}, usecase.ErrUnauthorized
	}
	return user.Principal{UserID: "user-7", Username: "sam"}, nil
}

type recordedRequest struct {
	method, route string
	code          int
}

type recordingObserver struct {
	requests []recordedRequest
}

func (o *recordingObserver) ObserveHTTPRequest(method, route string, code int, _ time.Duration) {
	o.requests = append(o.requests, recordedRequest{method: method, route: route, code: code})
}

func TestRequestLogging_RecordsRouteAndPrincipal(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	logger := logging.FromZap(zap.New(core))
	obs := &recordingObserver{}

	mux := http.NewServeMux()
	mux.Handle("GET /v1/leagues/{leagueId}", RequireSession(fixedSessions{}, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))
	h := RequestLogging(logger, obs, CORS(nil, mux))

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues/abc", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "valid"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	want := []recordedRequest{
		{method: http.MethodGet, route: "GET /v1/leagues/{leagueId}", code: http.StatusNoContent},
		{method: http.MethodGet, route: "", code: http.StatusNotFound},
	}
	if len(obs.requests) != len(want) {
		t.Fatalf("expected %d observed requests, got %d", len(want), len(obs.requests))
	}
	for i := range want {
		if obs.requests[i] != want[i] {
			t.Fatalf("request %d: want %+v, got %+v", i, want[i], obs.requests[i])
		}
	}

	entries := logs.FilterMessage("http request").All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 request logs, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["user_id"] != "user-7" || fields["auth"] != "session" {
		t.Fatalf("unexpected principal fields: %v", fields)
	}
	if fields["route"] != "GET /v1/leagues/{leagueId}" {
		t.Fatalf("unexpected route field: %v", fields["route"])
	}
	if anon := entries[1].ContextMap(); anon["user_id"] != "" {
		t.Fatalf("anonymous request must not carry a user: %v", anon)
	}
}
