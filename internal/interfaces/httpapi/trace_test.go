package httpapi

import (
	"context"
	"testing"

	"github.com/picksleagues/picks-leagues/internal/domain/user"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "handler span", in: "httpapi.Handler.SubmitPicks", want: true},
		{name: "middleware span", in: "httpapi.RequireSession", want: false},
		{name: "helper span", in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldCreateHTTPAPISpan(tt.in)
			if got != tt.want {
				t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSpanAttributes(t *testing.T) {
	t.Parallel()

	if attrs := spanAttributes(context.Background()); len(attrs) != 0 {
		t.Fatalf("expected no attributes without a principal, got %v", attrs)
	}

	ctx := withPrincipal(context.Background(), user.Principal{UserID: "user-1"}, authSession)
	attrs := spanAttributes(ctx)
	if len(attrs) != 1 || string(attrs[0].Key) != "enduser.id" || attrs[0].Value.AsString() != "user-1" {
		t.Fatalf("unexpected attributes: %v", attrs)
	}
}
