package espn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	jsoniter "github.com/json-iterator/go"
	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/platform/resilience"
	"github.com/picksleagues/picks-leagues/internal/usecase"
)

var nfl = sport.SyncTarget{Sport: "football", League: "nfl", SeasonTypes: []int{2}}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = jsoniter.NewEncoder(w).Encode(v)
}

func ref(u string) map[string]string {
	return map[string]string{"$ref": u}
}

func newTestClient(baseURL string, mutate func(*ClientConfig)) *Client {
	cfg := ClientConfig{
		BaseURL:            baseURL,
		MaxRetries:         0,
		RetryBackoff:       time.Millisecond,
		ResolveConcurrency: 2,
		CircuitBreaker:     resilience.CircuitBreakerConfig{Enabled: false},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func TestFetchSeasons_PaginatesUntilLastPageAndSkipsOldSeasons(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		pages []string
	)
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("GET /football/leagues/nfl/seasons", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		mu.Lock()
		pages = append(pages, page)
		mu.Unlock()

		switch page {
		case "1":
			writeJSON(w, map[string]any{
				"count": 3, "pageIndex": 1, "pageSize": 2, "pageCount": 2,
				"items": []any{
					ref(srv.URL + "/football/leagues/nfl/seasons/2025?lang=en"),
					ref(srv.URL + "/football/leagues/nfl/seasons/2024?lang=en"),
				},
			})
		case "2":
			writeJSON(w, map[string]any{
				"count": 3, "pageIndex": 2, "pageSize": 2, "pageCount": 2,
				"items": []any{ref(srv.URL + "/football/leagues/nfl/seasons/2023?lang=en")},
			})
		default:
			t.Errorf("unexpected page requested: %s", page)
			w.WriteHeader(http.StatusBadRequest)
		}
	})
	mux.HandleFunc("GET /football/leagues/nfl/seasons/2025", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"year": 2025, "displayName": "2025", "startDate": "2025-07-31T07:00Z", "endDate": "2026-02-12T07:59Z"})
	})
	mux.HandleFunc("GET /football/leagues/nfl/seasons/2024", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"year": 2024, "displayName": "2024", "startDate": "2024-08-01T07:00Z", "endDate": "2025-02-13T07:59Z"})
	})
	mux.HandleFunc("GET /football/leagues/nfl/seasons/2023", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("season older than the lookback must not be resolved")
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(srv.URL, nil)
	got, err := client.FetchSeasons(context.Background(), nfl, 2024)
	if err != nil {
		t.Fatalf("fetch seasons: %v", err)
	}

	want := []usecase.ExternalSeason{
		{
			Year: "2025", Name: "2025",
			StartTime: time.Date(2025, 7, 31, 7, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 2, 12, 7, 59, 0, 0, time.UTC),
		},
		{
			Year: "2024", Name: "2024",
			StartTime: time.Date(2024, 8, 1, 7, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2025, 2, 13, 7, 59, 0, 0, time.UTC),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected seasons (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "2"}, pages); diff != "" {
		t.Fatalf("unexpected pages requested (-want +got):\n%s", diff)
	}
}

func TestFetchGames_ResolvesScoresAndStatus(t *testing.T) {
	t.Parallel()

	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("GET /football/leagues/nfl/seasons/2025/types/2/weeks/1/events", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"count": 1, "pageIndex": 1, "pageSize": 25, "pageCount": 1,
			"items": []any{ref(srv.URL + "/football/leagues/nfl/events/401772510")},
		})
	})
	mux.HandleFunc("GET /football/leagues/nfl/events/401772510", func(w http.ResponseWriter, r *http.Request) {
		base := srv.URL + "/football/leagues/nfl/events/401772510/competitions/401772510"
		writeJSON(w, map[string]any{
			"id":   "401772510",
			"date": "2025-09-05T00:20Z",
			"competitions": []any{map[string]any{
				"id":   "401772510",
				"date": "2025-09-05T00:20Z",
				"competitors": []any{
					map[string]any{"id": "21", "homeAway": "home", "score": ref(base + "/competitors/21/score")},
					map[string]any{"id": "6", "homeAway": "away", "score": ref(base + "/competitors/6/score")},
				},
				"status": ref(base + "/status"),
			}},
		})
	})
	mux.HandleFunc("GET /football/leagues/nfl/events/401772510/competitions/401772510/competitors/21/score", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"value": 24.0, "displayValue": "24"})
	})
	mux.HandleFunc("GET /football/leagues/nfl/events/401772510/competitions/401772510/competitors/6/score", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"value": 20.0, "displayValue": "20"})
	})
	mux.HandleFunc("GET /football/leagues/nfl/events/401772510/competitions/401772510/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"clock": 0, "displayClock": "0:00", "period": 4,
			"type": map[string]any{"name": "STATUS_FINAL", "state": "post", "completed": true},
		})
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(srv.URL, nil)
	got, err := client.FetchGames(context.Background(), nfl, "2025", 2, 1)
	if err != nil {
		t.Fatalf("fetch games: %v", err)
	}

	want := []usecase.ExternalGame{{
		EventID:        "401772510",
		SeasonType:     2,
		WeekNumber:     1,
		HomeTeamESPNID: "21",
		AwayTeamESPNID: "6",
		HomeScore:      24,
		AwayScore:      20,
		Status:         sport.GameStatusFinal,
		Clock:          "0:00",
		Period:         4,
		StartTime:      time.Date(2025, 9, 5, 0, 20, 0, 0, time.UTC),
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected games (-want +got):\n%s", diff)
	}
}

func TestFetchOdds_ReadsInlineItems(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/football/leagues/nfl/events/401/competitions/401/odds" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		writeJSON(w, map[string]any{
			"count": 2, "pageIndex": 1, "pageSize": 25, "pageCount": 1,
			"items": []any{
				map[string]any{
					"provider":     map[string]any{"id": "58", "name": "ESPN BET"},
					"spread":       -8.5,
					"overUnder":    47.5,
					"homeTeamOdds": map[string]any{"favorite": true},
					"awayTeamOdds": map[string]any{"favorite": false},
				},
				map[string]any{"provider": map[string]any{}},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil)
	got, err := client.FetchOdds(context.Background(), nfl, "401")
	if err != nil {
		t.Fatalf("fetch odds: %v", err)
	}
	want := []usecase.ExternalOdds{{
		EventID: "401", ProviderESPNID: "58", ProviderName: "ESPN BET",
		Spread: -8.5, OverUnder: 47.5, HomeFavorite: true,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected odds (-want +got):\n%s", diff)
	}
}

func TestFetchLeague_RetriesServerErrorsAndCaches(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, map[string]any{
			"id": "28", "name": "National Football League", "abbreviation": "NFL", "slug": "nfl",
			"logos": []any{
				map[string]any{"href": "https://a.espncdn.com/dark.png", "rel": []string{"full", "dark"}},
				map[string]any{"href": "https://a.espncdn.com/nfl.png", "rel": []string{"full", "default"}},
			},
		})
	}))
	defer srv.Close()

	var (
		mu       sync.Mutex
		statuses []string
	)
	client := newTestClient(srv.URL, func(cfg *ClientConfig) {
		cfg.MaxRetries = 2
		cfg.ObserveRequest = func(status string, _ time.Duration) {
			mu.Lock()
			statuses = append(statuses, status)
			mu.Unlock()
		}
	})

	for i := 0; i < 2; i++ {
		got, err := client.FetchLeague(context.Background(), nfl)
		if err != nil {
			t.Fatalf("fetch league: %v", err)
		}
		want := usecase.ExternalLeague{
			ESPNID: "28", Sport: "football", Slug: "nfl", Name: "National Football League",
			Abbreviation: "NFL", LogoURL: "https://a.espncdn.com/nfl.png",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("unexpected league (-want +got):\n%s", diff)
		}
	}

	if got := hits.Load(); got != 2 {
		t.Fatalf("expected one retry and a cached second call, got %d upstream hits", got)
	}
	if diff := cmp.Diff([]string{"503", "200"}, statuses); diff != "" {
		t.Fatalf("unexpected observed statuses (-want +got):\n%s", diff)
	}
}

func TestGetJSON_ClientErrorsFailFast(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, func(cfg *ClientConfig) { cfg.MaxRetries = 3 })
	_, err := client.FetchTeams(context.Background(), nfl, "2025")
	if err == nil {
		t.Fatalf("expected error for 404")
	}
	if isTransient(err) {
		t.Fatalf("404 must not be transient: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected a single attempt, got %d", got)
	}
}

func TestGetJSON_OpenBreakerRejectsWithoutCallingUpstream(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var opened atomic.Bool
	client := newTestClient(srv.URL, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1,
		}
		cfg.OnBreakerStateChange = func(name string, from, to resilience.CircuitState) {
			if to == resilience.CircuitStateOpen {
				opened.Store(true)
			}
		}
	})

	_, err := client.FetchTeams(context.Background(), nfl, "2025")
	if err == nil || errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected upstream failure on first call, got %v", err)
	}
	if !opened.Load() {
		t.Fatalf("expected breaker to open after the failure")
	}

	_, err = client.FetchTeams(context.Background(), nfl, "2025")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected open breaker to skip upstream, got %d hits", got)
	}
}

func TestMapStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		state string
		want  sport.GameStatus
	}{
		{"STATUS_SCHEDULED", "pre", sport.GameStatusScheduled},
		{"STATUS_IN_PROGRESS", "in", sport.GameStatusInProgress},
		{"STATUS_HALFTIME", "in", sport.GameStatusInProgress},
		{"STATUS_FINAL_OVERTIME", "post", sport.GameStatusFinal},
		{"STATUS_POSTPONED", "post", sport.GameStatusPostponed},
		{"STATUS_CANCELED", "post", sport.GameStatusCanceled},
	}
	for _, tc := range cases {
		var s statusResource
		s.Type.Name = tc.name
		s.Type.State = tc.state
		if got := mapStatus(s); got != tc.want {
			t.Fatalf("mapStatus(%s) = %s, want %s", tc.name, got, tc.want)
		}
	}
}
