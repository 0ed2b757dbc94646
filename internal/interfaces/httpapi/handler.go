package httpapi

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
	"github.com/picksleagues/picks-leagues/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// Services are the usecases the API is a thin shell over.
type Services struct {
	Auth      *usecase.AuthService
	Users     *usecase.UserService
	Sports    *usecase.SportService
	Leagues   *usecase.LeagueService
	Members   *usecase.MemberService
	Invites   *usecase.InviteService
	Picks     *usecase.PickService
	Ingestion *usecase.IngestionService
}

type HandlerConfig struct {
	// SignInRedirectURL receives the browser after a successful sign-in.
	// Empty answers the callback with JSON instead.
	SignInRedirectURL string
	CookieSecure      bool
	CookieDomain      string
}

type Handler struct {
	services  Services
	cfg       HandlerConfig
	logger    *logging.Logger
	validator *validator.Validate
	now       func() time.Time
}

func NewHandler(services Services, cfg HandlerConfig, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		services:  services,
		cfg:       cfg,
		logger:    logger.Named("httpapi"),
		validator: validate,
		now:       time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail logs err and writes its mapped response. Internal errors are logged at
// error level since their details never reach the client.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	mapped := mapError(err)
	args = append(args, "status", mapped.HTTPStatus, "error", err)
	if mapped.Internal {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeJSON(ctx, w, mapped.HTTPStatus, mapped.Body)
}

func (h *Handler) principal(ctx context.Context, w http.ResponseWriter) (user.Principal, bool) {
	p, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
	}
	return p, ok
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return usecase.BadInput("invalid JSON payload", nil)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	err := h.validator.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return usecase.BadInput("invalid request", nil)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = validationMessage(fe)
	}
	return usecase.BadInput("invalid request", fields)
}

// fieldPath drops the root struct name from the namespace: picks[0].gameId.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
