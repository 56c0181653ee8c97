package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "gdbackend"
)

var (
	ArtifactSaveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "artifact", "save_duration_seconds"),
		Help:    "Duration of a single artifact store write in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"category"})
	ArtifactOrphans = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "artifact", "orphans_total"),
		Help: "Artifacts left in the store without a referencing row",
	}, []string{"op"})
	ArtifactDeleteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "artifact", "delete_failures_total"),
		Help: "Best-effort artifact deletions that failed and were skipped",
	}, []string{})
)
