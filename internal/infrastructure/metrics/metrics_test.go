package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.EntriesProcessed == nil || m.AccountsCreated == nil || m.ReplayDuration == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.EntriesProcessed.WithLabelValues("deposit", OutcomeApplied).Inc()
	m.AccountsCreated.Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.EntriesProcessed.WithLabelValues("deposit", OutcomeApplied)); got != 1 {
		t.Fatalf("expected counter value 1, got %v", got)
	}
}

func TestNewIsolatedPerRegistry(t *testing.T) {
	// Registering twice on distinct registries must not panic.
	New(prometheus.NewRegistry())
	New(prometheus.NewRegistry())
}

func TestWriteTextfile(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)
	m.AccountsLocked.Add(2)

	path := filepath.Join(t.TempDir(), "ledgerreplay.prom")
	if err := WriteTextfile(path, registry); err != nil {
		t.Fatalf("failed to write textfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read textfile: %v", err)
	}

	if !strings.Contains(string(data), "ledgerreplay_accounts_locked_total 2") {
		t.Fatalf("expected locked counter in textfile, got:\n%s", data)
	}
}
