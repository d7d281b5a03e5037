// Package observability holds the Prometheus collectors for workout computations.
package observability

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"example.com/ftracker/internal/training"
)

var (
	summariesComputed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Subsystem: "training",
		Name:      "summaries_computed_total",
		Help:      "Number of workout summaries computed, by workout type.",
	}, []string{"workout_type"})

	computeErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Subsystem: "training",
		Name:      "compute_errors_total",
		Help:      "Number of rejected workout packages, by reason.",
	}, []string{"reason"})

	lastSummaryGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ftracker",
		Subsystem: "training",
		Name:      "last_summary_timestamp_seconds",
		Help:      "Unix timestamp of the most recent computed summary.",
	})
)

func init() {
	prometheus.MustRegister(summariesComputed, computeErrors, lastSummaryGauge)
}

// RecordSummary counts a computed summary and moves the watermark.
func RecordSummary(workoutType string, ts time.Time) {
	summariesComputed.WithLabelValues(workoutType).Inc()
	if ts.IsZero() {
		return
	}
	lastSummaryGauge.Set(float64(ts.Unix()))
}

// RecordComputeError counts a rejected package under the reason derived from err.
func RecordComputeError(err error) {
	computeErrors.WithLabelValues(ErrorReason(err)).Inc()
}

// ErrorReason maps a training error to its metric label.
func ErrorReason(err error) string {
	switch {
	case errors.Is(err, training.ErrUnknownWorkoutType):
		return "unknown_type"
	case errors.Is(err, training.ErrZeroDuration):
		return "zero_duration"
	case errors.Is(err, training.ErrInvalidArguments):
		return "invalid_arguments"
	default:
		return "other"
	}
}
