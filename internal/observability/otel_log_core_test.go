package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestShouldSkipOTelLog(t *testing.T) {
	t.Parallel()

	if !shouldSkipOTelLog("http request", map[string]any{"path": "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if shouldSkipOTelLog("http request", map[string]any{"path": "/v1/leagues"}) {
		t.Fatalf("did not expect league request log to be skipped")
	}
	if shouldSkipOTelLog("ingestion run finished", map[string]any{"path": "/healthz"}) {
		t.Fatalf("did not expect non request log to be skipped")
	}
}

func TestBuildOTelLogAttributes_ZapFields(t *testing.T) {
	t.Parallel()

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range []zap.Field{
		zap.String("league_id", "league-1"),
		zap.Int("attempt", 2),
		zap.Error(errors.New("espn unavailable")),
		zap.Duration("elapsed", 1500*time.Millisecond),
	} {
		f.AddTo(enc)
	}

	attrs := buildOTelLogAttributes(enc.Fields)
	got := make(map[string]otellog.Value, len(attrs))
	for _, kv := range attrs {
		got[kv.Key] = kv.Value
	}
	if got["league_id"].AsString() != "league-1" {
		t.Fatalf("unexpected league_id attribute: %v", got["league_id"])
	}
	if got["attempt"].AsInt64() != 2 {
		t.Fatalf("unexpected attempt attribute: %v", got["attempt"])
	}
	if got["error"].AsString() != "espn unavailable" {
		t.Fatalf("unexpected error attribute: %v", got["error"])
	}
	if attrs[0].Key != "attempt" {
		t.Fatalf("expected sorted attributes, first key %q", attrs[0].Key)
	}
}

func TestToOTelLogValue_Map(t *testing.T) {
	t.Parallel()

	v := toOTelLogValue(map[string]any{
		"wins":   11,
		"pushed": true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	if items := v.AsMap(); len(items) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(items))
	}
}

func TestOTelLogCore_RespectsLevel(t *testing.T) {
	t.Parallel()

	core := newOTelLogCore("test", zapcore.WarnLevel)
	entry := zapcore.Entry{Level: zapcore.InfoLevel, Message: "quiet"}
	if ce := core.Check(entry, nil); ce != nil {
		t.Fatalf("info entry must not pass a warn level core")
	}
	withFields := core.With([]zapcore.Field{zap.String("service", "api")})
	if err := withFields.Write(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "loud", Time: time.Now()}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
}
