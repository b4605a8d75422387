package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mj1618/tilewm/internal/model"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.Notification(model.Created)
	m.Arranged(model.Dwindle, time.Millisecond)
	m.Managed(3)
	m.QueryFailed("cloaked")
	if m.Registry() != nil {
		t.Error("nil metrics should have nil registry")
	}
}

func TestMetrics_Counts(t *testing.T) {
	m := NewMetrics()
	m.Notification(model.Created)
	m.Notification(model.Created)
	m.Notification(model.Cloaked)
	m.Managed(4)

	if got := testutil.ToFloat64(m.notifications.WithLabelValues("created")); got != 2 {
		t.Errorf("created count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.managedWindows); got != 4 {
		t.Errorf("managed gauge = %v, want 4", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.Arranged(model.Columns, 2*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `tilewm_arrangements_total{layout="columns"} 1`) {
		t.Errorf("arrangement counter missing from output:\n%s", rec.Body.String())
	}
}
