package observability

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/picksleagues/picks-leagues/internal/config"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
)

func TestInitPyroscope_Disabled(t *testing.T) {
	t.Parallel()

	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestProfileTags(t *testing.T) {
	t.Parallel()

	got := profileTags(config.Config{AppEnv: config.EnvStage, ServiceName: "picks-leagues-worker", ServiceVersion: "1.4.0"})
	want := map[string]string{"env": "stage", "service": "picks-leagues-worker", "version": "1.4.0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected tags (-want +got):\n%s", diff)
	}
	if _, ok := profileTags(config.Config{})["version"]; ok {
		t.Fatalf("version tag must be omitted when unknown")
	}
}
