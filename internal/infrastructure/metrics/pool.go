package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PoolStats is a snapshot of database connection pool usage.
type PoolStats struct {
	AcquiredConns int32
	IdleConns     int32
	TotalConns    int32
	MaxConns      int32
}

// RegisterPoolStats exports pool gauges read from stats at scrape time.
func RegisterPoolStats(reg prometheus.Registerer, stats func() PoolStats) {
	factory := promauto.With(reg)
	gauge := func(name, help string, pick func(PoolStats) int32) {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db_pool",
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(pick(stats())) })
	}

	gauge("acquired_conns", "Connections currently in use", func(s PoolStats) int32 { return s.AcquiredConns })
	gauge("idle_conns", "Idle connections", func(s PoolStats) int32 { return s.IdleConns })
	gauge("total_conns", "Open connections", func(s PoolStats) int32 { return s.TotalConns })
	gauge("max_conns", "Maximum pool size", func(s PoolStats) int32 { return s.MaxConns })
}
