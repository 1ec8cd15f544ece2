package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCronJobMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)
	const job = "outbox-publisher"
	m.ObserveDuration(job, 250*time.Millisecond)
	m.IncSuccess(job)
	m.IncFailure(job)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	success, err := jobMetric(mfs, "job_success", job)
	if err != nil {
		t.Fatalf("fetch success: %v", err)
	}
	if got := success.GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected success=1, got %f", got)
	}

	failure, err := jobMetric(mfs, "job_failure", job)
	if err != nil {
		t.Fatalf("fetch failure: %v", err)
	}
	if got := failure.GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected failure=1, got %f", got)
	}

	duration, err := jobMetric(mfs, "job_duration_seconds", job)
	if err != nil {
		t.Fatalf("fetch duration: %v", err)
	}
	if got := duration.GetHistogram().GetSampleSum(); got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestCronJobMetricsNilSafe(t *testing.T) {
	var m *CronJobMetrics
	m.ObserveDuration("noop", time.Second)
	m.IncSuccess("noop")
	m.IncFailure("noop")

	unregistered := NewCronJobMetrics(nil)
	unregistered.IncSuccess("noop")
}

func jobMetric(mfs []*dto.MetricFamily, name, job string) (*dto.Metric, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "job" && label.GetValue() == job {
					return metric, nil
				}
			}
		}
		return nil, fmt.Errorf("metric %q missing job label %q", name, job)
	}
	return nil, fmt.Errorf("metric %q not found", name)
}
