//go:build !gcloud

package observability

import (
	"context"
	"testing"

	"github.com/KasumiMercury/primind-intake-ledger/internal/observability/logging"
)

func TestInitWithoutExporter(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	ctx := context.Background()
	res, err := Init(ctx, Config{
		ServiceInfo:   logging.ServiceInfo{Name: "intake-ledger", Version: "test"},
		Environment:   logging.EnvDev,
		DefaultModule: logging.Module("intake-ledger"),
	})
	if err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}

	if res.Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
	if err := res.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() unexpected error: %v", err)
	}
}
