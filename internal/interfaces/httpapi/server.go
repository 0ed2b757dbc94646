package httpapi

import (
	"net/http"

	"github.com/picksleagues/picks-leagues/internal/platform/logging"
)

type RouterConfig struct {
	CORSAllowedOrigins []string
	CronSecret         string
	// MetricsHandler is served on /metrics when set.
	MetricsHandler http.Handler
	Observer       RequestObserver
}

func NewRouter(handler *Handler, cfg RouterConfig, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.MetricsHandler)
	registerAuthRoutes(mux, handler)
	registerUserRoutes(mux, handler)
	registerSportRoutes(mux, handler)
	registerLeagueRoutes(mux, handler)
	registerInviteRoutes(mux, handler)
	registerCronRoutes(mux, handler, cfg.CronSecret)
	registerMobileRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, cfg.Observer, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
