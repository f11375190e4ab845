package sortedlist

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for sorted lists. Series are labeled with the list
// name, so lists created with the same WithName share them.

var (
	// insertsTotal counts insert calls by outcome: inserted, duplicate or failed.
	insertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "sortedlist_inserts_total",
		Help: "The total number of insert calls, by result",
	}, []string{"list", "result"})

	// nodesLinked tracks the number of nodes currently linked.
	nodesLinked = promauto.NewGaugeVec(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "sortedlist_nodes",
		Help: "The number of nodes currently linked",
	}, []string{"list"})

	// scanLength measures how many nodes an insert compared against.
	scanLength = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name:    "sortedlist_insert_scan_length",
		Help:    "The number of comparisons made by an insert",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10), //nolint:mnd
	}, []string{"list"})

	// lockWaitTime measures the time spent waiting for the insertion lock.
	lockWaitTime = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name: "sortedlist_lock_wait_seconds",
		Help: "The time spent waiting for the insertion lock",
		Buckets: []float64{
			0.00001, // 10us
			0.0001,  // 100us
			0.001,   // 1ms
			0.01,    // 10ms
			0.1,     // 100ms
			1,       // 1s
			10,      // 10s
		},
	}, []string{"list"})

	// listsAlive tracks the number of lists created and not yet destroyed.
	listsAlive = promauto.NewGauge(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "sortedlist_lists_alive",
		Help: "The number of lists created and not yet destroyed",
	})
)

// listMetrics holds the series of one list, resolved once at creation.
type listMetrics struct {
	inserted  prometheus.Counter
	duplicate prometheus.Counter
	failed    prometheus.Counter
	nodes     prometheus.Gauge
	scan      prometheus.Observer
	lockWait  prometheus.Observer
}

func newListMetrics(name string) listMetrics {
	return listMetrics{
		inserted:  insertsTotal.WithLabelValues(name, "inserted"),
		duplicate: insertsTotal.WithLabelValues(name, "duplicate"),
		failed:    insertsTotal.WithLabelValues(name, "failed"),
		nodes:     nodesLinked.WithLabelValues(name),
		scan:      scanLength.WithLabelValues(name),
		lockWait:  lockWaitTime.WithLabelValues(name),
	}
}

func (m listMetrics) observe(inserted bool, scanned int) {
	m.scan.Observe(float64(scanned))

	if inserted {
		m.inserted.Inc()
		m.nodes.Inc()
	} else {
		m.duplicate.Inc()
	}
}

func (m listMetrics) released(count int) {
	m.nodes.Sub(float64(count))
}
