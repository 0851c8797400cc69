package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(cacheRequestsTotal, cacheEvictionsTotal) }

var cacheRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "context_cache_requests_total",
		Help: "Tracks context cache hits and misses by miss reason.",
	},
	[]string{"result"}, // hit | miss_absent | miss_expired | miss_decrypt | miss_no_consent
)

var cacheEvictionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "context_cache_evictions_total",
		Help: "Entries removed from the context cache, by cause.",
	},
	[]string{"cause"}, // sweep | clear_user | decrypt_error | expired_read
)

func IncCacheRequest(result string) {
	cacheRequestsTotal.WithLabelValues(norm(result)).Inc()
}

func AddCacheEvictions(cause string, n int) {
	if n > 0 {
		cacheEvictionsTotal.WithLabelValues(norm(cause)).Add(float64(n))
	}
}
