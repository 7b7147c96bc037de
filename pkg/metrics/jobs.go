package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AnalysisJobMetrics records metadata for analysis worker jobs, labeled
// by job kind (photo_analysis, transcription).
type AnalysisJobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewAnalysisJobMetrics registers the worker metrics on the provided registerer.
func NewAnalysisJobMetrics(reg prometheus.Registerer) *AnalysisJobMetrics {
	if reg == nil {
		return &AnalysisJobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analysis_job_duration_seconds",
		Help:    "Duration of analysis jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analysis_job_success",
		Help: "Successful analysis job executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analysis_job_failure",
		Help: "Failed analysis job executions.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure)
	return &AnalysisJobMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named job.
func (a *AnalysisJobMetrics) ObserveDuration(job string, duration time.Duration) {
	if a == nil || a.duration == nil {
		return
	}
	a.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (a *AnalysisJobMetrics) IncSuccess(job string) {
	if a == nil || a.success == nil {
		return
	}
	a.success.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (a *AnalysisJobMetrics) IncFailure(job string) {
	if a == nil || a.failure == nil {
		return
	}
	a.failure.WithLabelValues(normalizeLabel(job)).Inc()
}
