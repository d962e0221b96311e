package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

// Metrics collects ledger-level counters exposed on /metrics.
type Metrics struct {
	PostingsWritten  *prometheus.CounterVec
	Recalculations   prometheus.Counter
	TrashRestores    *prometheus.CounterVec
	PermanentDeletes *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		PostingsWritten: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yemtakip",
			Subsystem: "ledger",
			Name:      "postings_written_total",
			Help:      "Account transactions appended, by reference type.",
		}, []string{"reference_type"}),
		Recalculations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "yemtakip",
			Subsystem: "ledger",
			Name:      "recalculations_total",
			Help:      "Account balance recalculations performed.",
		}),
		TrashRestores: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yemtakip",
			Subsystem: "trash",
			Name:      "restores_total",
			Help:      "Soft-deleted records restored, by table.",
		}, []string{"table"}),
		PermanentDeletes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yemtakip",
			Subsystem: "trash",
			Name:      "permanent_deletes_total",
			Help:      "Records hard-deleted from trash, by table.",
		}, []string{"table"}),
	}
}

// Module provides the shared metrics recorder.
var Module = fx.Module("metrics",
	fx.Provide(New),
)
