package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "dailyshorts"

// Recorder collects the metrics of one run in a private registry
type Recorder struct {
	registry      *prometheus.Registry
	videosTotal   *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	lastSuccess   prometheus.Gauge
}

// NewRecorder creates a recorder with its own registry
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.videosTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "videos_total",
			Help:      "Videos processed, by final status",
		},
		[]string{"status"},
	)

	r.stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"stage"},
	)

	r.lastSuccess = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success_timestamp_seconds",
			Help:      "Unix time of the last run with at least one uploaded video",
		},
	)

	r.registry.MustRegister(r.videosTotal, r.stageDuration, r.lastSuccess)
	return r
}

// Registry exposes the registry for tests and pushing
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveStage records how long a stage took
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// VideoFinished counts a video by its final status
func (r *Recorder) VideoFinished(status string) {
	r.videosTotal.WithLabelValues(status).Inc()
}

// RunSucceeded stamps the time of a successful run
func (r *Recorder) RunSucceeded(at time.Time) {
	r.lastSuccess.Set(float64(at.Unix()))
}

// Push sends the registry to a Pushgateway. An empty URL is a no-op.
func (r *Recorder) Push(url, job string) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(r.registry).Push(); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}
