package httpapi

import (
	"context"

	"github.com/picksleagues/picks-leagues/internal/domain/user"
)

type contextKey string

const (
	principalContextKey   contextKey = "auth_principal"
	requestInfoContextKey contextKey = "request_info"
)

type authMethod string

const (
	authSession authMethod = "session"
	authMobile  authMethod = "mobile"
)

// requestInfo is filled in by inner middleware and read back by
// RequestLogging once the handler returns.
type requestInfo struct {
	userID string
	auth   authMethod
}

func withRequestInfo(ctx context.Context) (context.Context, *requestInfo) {
	info := &requestInfo{}
	return context.WithValue(ctx, requestInfoContextKey, info), info
}

func withPrincipal(ctx context.Context, p user.Principal, method authMethod) context.Context {
	if info, ok := ctx.Value(requestInfoContextKey).(*requestInfo); ok {
		info.userID = p.UserID
		info.auth = method
	}
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}
