package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewShipmentStatusUpdatesTotal returns a counter of committed shipment status updates by target status
func NewShipmentStatusUpdatesTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shipment_status_updates_total",
		Help: "Total number of committed shipment status updates",
	}, []string{"status"})
}

// NewIngestEventsTotal returns a counter of consumed shipment-created events by outcome
func NewIngestEventsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shipment_ingest_events_total",
		Help: "Total number of consumed shipment-created events",
	}, []string{"result"})
}

// NewCacheLookupsTotal returns a counter of directory cache lookups by result (hit, miss, error)
func NewCacheLookupsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_cache_lookups_total",
		Help: "Total number of directory cache lookups",
	}, []string{"result"})
}
