package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentsCommitted counts committed documents by kind.
	DocumentsCommitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_documents_committed_total",
		Help: "Committed inventory documents by kind",
	}, []string{"kind"})

	// InsufficientStockRejections counts checkouts rejected on stock.
	InsufficientStockRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_insufficient_stock_rejections_total",
		Help: "Checkout attempts rejected because stock was insufficient",
	})
)
