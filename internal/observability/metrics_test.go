package observability

import (
	"context"
	"net/http/httptest"
	"testing"

	"jobmanager/internal/store"
)

type countingJobStore struct {
	store.JobStore
	running int64
	stopped int64
}

func (c *countingJobStore) CountJobs(ctx context.Context, status store.Status) (int64, error) {
	if status == store.StatusRunning {
		return c.running, nil
	}
	return c.stopped, nil
}

func TestInitMetricsServesPrometheus(t *testing.T) {
	handler, shutdown, err := InitMetrics()
	if err != nil {
		t.Fatalf("InitMetrics failed: %v", err)
	}
	defer shutdown(context.Background())

	if err := RegisterJobGauges(&countingJobStore{running: 3, stopped: 7}); err != nil {
		t.Fatalf("RegisterJobGauges failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("got status %d, want 200", rr.Code)
	}
	if rr.Body.Len() == 0 {
		t.Error("expected a non-empty metrics payload")
	}
}
