package internal

import "github.com/prometheus/client_golang/prometheus"

var (
	conversationsLoaded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_explorer_conversations_loaded_total",
			Help: "Conversations normalized successfully.",
		},
	)

	conversationsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_explorer_conversations_skipped_total",
			Help: "Export records dropped for lacking a conversation_id.",
		},
	)

	walksTruncated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_explorer_walks_truncated_total",
			Help: "Active-path walks stopped at the iteration ceiling.",
		},
	)

	pointerResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_explorer_pointer_resolutions_total",
			Help: "Asset pointer lookups by the tier that answered them.",
		},
		[]string{"tier"},
	)

	loadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_explorer_load_duration_seconds",
			Help:    "Dataset load time by source (memory, session, disk).",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(conversationsLoaded)
	prometheus.MustRegister(conversationsSkipped)
	prometheus.MustRegister(walksTruncated)
	prometheus.MustRegister(pointerResolutions)
	prometheus.MustRegister(loadDuration)
}
