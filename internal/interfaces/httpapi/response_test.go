package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/google/go-cmp/cmp"
	"github.com/picksleagues/picks-leagues/internal/usecase"
)

func TestWriteError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
		body errorBody
	}{
		{
			name: "bad input with fields",
			err:  usecase.BadInput("invalid league", map[string]string{"name": "too short"}),
			code: http.StatusBadRequest,
			body: errorBody{Error: "invalid league", FieldErrors: map[string]string{"name": "too short"}},
		},
		{
			name: "not allowed",
			err:  fmt.Errorf("update: %w", usecase.NotAllowed("commissioner only")),
			code: http.StatusForbidden,
			body: errorBody{Error: "commissioner only"},
		},
		{
			name: "not found",
			err:  usecase.NotFound("league not found"),
			code: http.StatusNotFound,
			body: errorBody{Error: "league not found"},
		},
		{
			name: "unauthorized",
			err:  fmt.Errorf("%w: session expired", usecase.ErrUnauthorized),
			code: http.StatusUnauthorized,
			body: errorBody{Error: "Unauthorized"},
		},
		{
			name: "dependency unavailable",
			err:  fmt.Errorf("%w: espn breaker open", usecase.ErrDependencyUnavailable),
			code: http.StatusServiceUnavailable,
			body: errorBody{Error: "Service Unavailable"},
		},
		{
			name: "internal details hidden",
			err:  errors.New("pq: relation \"users\" does not exist"),
			code: http.StatusInternalServerError,
			body: errorBody{Error: "Internal Server Error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tt.err)

			if rec.Code != tt.code {
				t.Fatalf("expected status %d, got %d", tt.code, rec.Code)
			}
			var got errorBody
			if err := sonic.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("unmarshal response body: %v", err)
			}
			if diff := cmp.Diff(tt.body, got); diff != "" {
				t.Fatalf("unexpected body (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteMessage(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeMessage(context.Background(), rec)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"message":"Success"}` {
		t.Fatalf("unexpected body %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}
}
