package publish

import "github.com/prometheus/client_golang/prometheus"

var (
	publishedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Subsystem: "publish",
		Name:      "events_total",
		Help:      "Number of workout events written to Kafka.",
	}, []string{"topic"})

	publishErrorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Subsystem: "publish",
		Name:      "errors_total",
		Help:      "Number of workout events that failed to reach Kafka.",
	}, []string{"topic"})
)

func init() {
	prometheus.MustRegister(publishedCounter, publishErrorCounter)
}
