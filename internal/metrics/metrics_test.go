package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/timmy/dailyreel/internal/domain"
)

func TestMetrics_ObserveRun(t *testing.T) {
	m := New()

	m.ObserveRun(&domain.Uploaded{MetadataSource: domain.MetadataSourceAI}, 2*time.Second)
	m.ObserveRun(&domain.Uploaded{MetadataSource: domain.MetadataSourceTemplate}, time.Second)
	m.ObserveRun(&domain.Skipped{Reason: "none"}, 100*time.Millisecond)

	if got := testutil.ToFloat64(m.runs.WithLabelValues("uploaded")); got != 2 {
		t.Errorf("uploaded runs = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.runs.WithLabelValues("skipped")); got != 1 {
		t.Errorf("skipped runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.metadataSource.WithLabelValues("ai")); got != 1 {
		t.Errorf("ai metadata = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.duration); got != 1 {
		t.Errorf("duration collectors = %d, want 1", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRun(&domain.Skipped{}, time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `dailyreel_runs_total{status="skipped"} 1`) {
		t.Errorf("metrics output missing run counter:\n%s", rec.Body.String())
	}
}
