package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/picksleagues/picks-leagues/internal/usecase"
)

const (
	internalErrorMessage = "Internal Server Error"
	successMessage       = "Success"
)

type errorBody struct {
	Error       string            `json:"error"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

type messageBody struct {
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Body       errorBody
	// Internal errors are logged at error level; their text never reaches the client.
	Internal bool
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, data)
}

func writeMessage(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusOK, messageBody{Message: successMessage})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	writeJSON(ctx, w, mapped.HTTPStatus, mapped.Body)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, errorBody{Error: internalErrorMessage})
}

func mapError(err error) mappedError {
	if appErr, ok := usecase.AsApplicationError(err); ok {
		return mappedError{
			HTTPStatus: appErr.Status,
			Body:       errorBody{Error: appErr.Message, FieldErrors: appErr.Fields},
		}
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Body:       errorBody{Error: "Unauthorized"},
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Body:       errorBody{Error: "Service Unavailable"},
			Internal:   true,
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Body:       errorBody{Error: internalErrorMessage},
			Internal:   true,
		}
	}
}
