package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reactionCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inklet_reaction_cache_hits_total",
		Help: "Reaction count reads served from the cache.",
	})
	reactionCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inklet_reaction_cache_misses_total",
		Help: "Reaction count reads recomputed from the reaction store.",
	})
	toggleConflictRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inklet_reaction_toggle_conflict_retries_total",
		Help: "Toggle attempts retried after losing a concurrent update race.",
	})
	cacheReadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "inklet_reaction_cache_read_seconds",
		Help:    "Latency of reaction cache lookups.",
		Buckets: prometheus.DefBuckets,
	})
	postCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inklet_post_cache_hits_total",
		Help: "Post reads served from the cache.",
	})
	postCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inklet_post_cache_misses_total",
		Help: "Post reads recomputed from the database.",
	})
)

func IncReactionCacheHit()  { reactionCacheHits.Inc() }
func IncReactionCacheMiss() { reactionCacheMisses.Inc() }

func IncToggleConflictRetry() { toggleConflictRetries.Inc() }

func AddCacheReadDuration(seconds float64) { cacheReadDuration.Observe(seconds) }

func IncPostCacheHit()  { postCacheHits.Inc() }
func IncPostCacheMiss() { postCacheMisses.Inc() }
