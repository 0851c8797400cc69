package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(updatesTotal, contextFetchesTotal) }

var updatesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bot_updates_total",
		Help: "Inbound updates handled, by outcome.",
	},
	[]string{"kind"}, // command | chatter | error
)

var contextFetchesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "context_fetches_total",
		Help: "Live platform context fetches, by outcome.",
	},
	[]string{"result"}, // ok | empty | error
)

func IncUpdate(kind string)         { updatesTotal.WithLabelValues(norm(kind)).Inc() }
func IncContextFetch(result string) { contextFetchesTotal.WithLabelValues(norm(result)).Inc() }
