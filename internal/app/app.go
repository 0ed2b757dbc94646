package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/picksleagues/picks-leagues/external/espn"
	"github.com/picksleagues/picks-leagues/internal/config"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/infrastructure/auth/mobiletoken"
	"github.com/picksleagues/picks-leagues/internal/infrastructure/auth/oauth"
	"github.com/picksleagues/picks-leagues/internal/infrastructure/repository/memory"
	"github.com/picksleagues/picks-leagues/internal/interfaces/httpapi"
	"github.com/picksleagues/picks-leagues/internal/metrics"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	"github.com/picksleagues/picks-leagues/internal/platform/id"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
	"github.com/picksleagues/picks-leagues/internal/platform/resilience"
	"github.com/picksleagues/picks-leagues/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Runtime holds the wired services shared by every binary.
type Runtime struct {
	Config  config.Config
	Logger  *logging.Logger
	Metrics *metrics.Metrics

	db    *sqlx.DB
	tx    database.Transactor
	repos usecase.Repositories

	Auth      *usecase.AuthService
	Users     *usecase.UserService
	Sports    *usecase.SportService
	Leagues   *usecase.LeagueService
	Members   *usecase.MemberService
	Invites   *usecase.InviteService
	Picks     *usecase.PickService
	Rollover  *usecase.SeasonRolloverService
	Ingestion *usecase.IngestionService
}

// NewLogger builds the process logger: console output in dev, JSON elsewhere.
func NewLogger(cfg config.Config) *logging.Logger {
	format := logging.FormatJSON
	if cfg.AppEnv == config.EnvDev {
		format = logging.FormatConsole
	}
	return logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Format:  format,
		Service: cfg.ServiceName,
		Version: cfg.ServiceVersion,
		Env:     cfg.AppEnv,
	})
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}

	rt := &Runtime{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
	}

	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		if cfg.MemorySeedWeeks > 0 {
			memory.Seed(store, time.Now(), cfg.MemorySeedWeeks)
		}
		rt.tx = database.NewMemoryTransactor()
		rt.repos = newMemoryRepositories(store)
		logger.Warn("using in-memory storage", "seed_weeks", cfg.MemorySeedWeeks)
	default:
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		rt.db = db
		rt.tx = database.NewSQLTransactor(db)
		rt.repos = newPostgresRepositories(cfg)
	}

	ids := id.NewUUIDGenerator()
	outbound := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	mobile, err := newMobileTokens(cfg, logger)
	if err != nil {
		rt.Close()
		return nil, err
	}

	espnClient := espn.NewClient(espn.ClientConfig{
		HTTPClient:         &http.Client{Transport: outbound.Transport, Timeout: cfg.ESPNTimeout},
		BaseURL:            cfg.ESPNBaseURL,
		Timeout:            cfg.ESPNTimeout,
		MaxRetries:         cfg.ESPNMaxRetries,
		RetryBackoff:       cfg.ESPNRetryBackoff,
		ResolveConcurrency: cfg.ESPNResolveConcurrency,
		RequestsPerSecond:  cfg.ESPNRequestsPerSecond,
		Burst:              cfg.ESPNBurst,
		LeagueCacheTTL:     cfg.ESPNLeagueCacheTTL,
		Logger:             logger.Named("espn"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
		},
		OnBreakerStateChange: rt.Metrics.BreakerStateChanged,
		ObserveRequest:       rt.Metrics.ObserveESPNRequest,
	})

	rules := usecase.NewLeagueRulesService(rt.tx, rt.repos)
	rt.Rollover = usecase.NewSeasonRolloverService(rt.tx, rt.repos, ids, logger.Named("rollover"))
	rt.Auth = usecase.NewAuthService(rt.tx, rt.repos, identityProviders(cfg, outbound), mobile, ids, cfg.SessionTTL, logger.Named("auth"))
	rt.Users = usecase.NewUserService(rt.tx, rt.repos, logger.Named("users"))
	rt.Sports = usecase.NewSportService(rt.tx, rt.repos)
	rt.Leagues = usecase.NewLeagueService(rt.tx, rt.repos, rules, ids)
	rt.Members = usecase.NewMemberService(rt.tx, rt.repos, rules, logger.Named("members"))
	rt.Invites = usecase.NewInviteService(rt.tx, rt.repos, ids, cfg.InviteTTL)
	rt.Picks = usecase.NewPickService(rt.tx, rt.repos, rules, ids)
	rt.Ingestion = usecase.NewIngestionService(rt.tx, rt.repos, espnClient, rt.Rollover, ids,
		usecase.IngestionConfig{
			Targets:        cfg.SyncTargets,
			SeasonLookback: cfg.IngestSeasonLookback,
			OddsWindow:     cfg.IngestOddsWindow,
		},
		rt.Metrics, logger.Named("ingestion"))

	return rt, nil
}

// NewHTTPServer wires the public API on top of the runtime services.
func (rt *Runtime) NewHTTPServer() (*http.Server, error) {
	cfg := rt.Config
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(httpapi.Services{
		Auth:      rt.Auth,
		Users:     rt.Users,
		Sports:    rt.Sports,
		Leagues:   rt.Leagues,
		Members:   rt.Members,
		Invites:   rt.Invites,
		Picks:     rt.Picks,
		Ingestion: rt.Ingestion,
	}, httpapi.HandlerConfig{
		SignInRedirectURL: cfg.SignInRedirectURL,
		CookieSecure:      cfg.CookieSecure,
		CookieDomain:      cfg.CookieDomain,
	}, rt.Logger.Named("http"))

	routerCfg := httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		CronSecret:         cfg.CronSecret,
		Observer:           rt.Metrics,
	}
	if cfg.MetricsEnabled {
		routerCfg.MetricsHandler = rt.Metrics.Handler()
	}

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, routerCfg, rt.Logger.Named("http")),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}, nil
}

// Close releases the database pool, if any.
func (rt *Runtime) Close() error {
	if rt.db == nil {
		return nil
	}
	return rt.db.Close()
}

func identityProviders(cfg config.Config, httpClient *http.Client) []usecase.IdentityProvider {
	providers := make([]usecase.IdentityProvider, 0, 2)
	if cfg.GoogleClientID != "" {
		providers = append(providers, oauth.NewGoogle(oauth.ProviderConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.OAuthCallbackURL(string(user.ProviderGoogle)),
			HTTPClient:   httpClient,
		}))
	}
	if cfg.DiscordClientID != "" {
		providers = append(providers, oauth.NewDiscord(oauth.ProviderConfig{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.OAuthCallbackURL(string(user.ProviderDiscord)),
			HTTPClient:   httpClient,
		}))
	}
	return providers
}

// newMobileTokens returns a nil interface, not a nil *Issuer, when the mobile
// API is not configured.
func newMobileTokens(cfg config.Config, logger *logging.Logger) (usecase.MobileTokens, error) {
	if cfg.MobileTokenSecret == "" {
		logger.Info("mobile tokens disabled", "reason", "MOBILE_TOKEN_SECRET empty")
		return nil, nil
	}
	issuer, err := mobiletoken.NewIssuer(cfg.MobileTokenSecret, cfg.MobileTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("build mobile token issuer: %w", err)
	}
	return issuer, nil
}
