package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "desa_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "desa_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
	GeometryRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "desa_geometry_rejected_total",
		Help: "Locations rejected by geometry validation or the village boundary check",
	}, []string{"reason"})
	MapCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "desa_map_cache_hits_total",
		Help: "Map layer cache hits",
	})
	MapCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "desa_map_cache_misses_total",
		Help: "Map layer cache misses",
	})
	SpatialIndexItems = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "desa_spatial_index_items",
		Help: "Items currently held by the spatial index",
	})
	SpatialIndexRebuildsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "desa_spatial_index_rebuilds_total",
		Help: "Spatial index rebuilds by result",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(GeometryRejectedTotal)
	prometheus.MustRegister(MapCacheHitsTotal)
	prometheus.MustRegister(MapCacheMissesTotal)
	prometheus.MustRegister(SpatialIndexItems)
	prometheus.MustRegister(SpatialIndexRebuildsTotal)
}
