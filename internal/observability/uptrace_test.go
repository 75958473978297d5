package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/prediction-league/internal/config"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	tests := map[string]config.Config{
		"flag off":  {UptraceEnabled: false, ServiceName: "prediction-league-api", AppEnv: config.EnvDev},
		"empty dsn": {UptraceEnabled: true, UptraceDSN: "  ", ServiceName: "prediction-league-api", AppEnv: config.EnvDev},
	}

	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			shutdown, err := InitUptrace(cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("init uptrace: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown uptrace: %v", err)
			}
		})
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, nil)
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	if err != nil || srv != nil {
		t.Fatalf("expected no pprof server, got srv=%v err=%v", srv, err)
	}
	if err := StopPprofServer(nil, nil, 0); err != nil {
		t.Fatalf("stop nil server: %v", err)
	}
}
