// Package metrics registers the Prometheus instruments for the calculator
// service. All metrics live on the default registry and are served by the
// promhttp handler mounted in the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CalculationsTotal counts completed coverage calculations by surface.
	CalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tilebill_calculations_total",
		Help: "Completed coverage calculations, labeled by surface.",
	}, []string{"surface"})

	// CalculationErrorsTotal counts calculations rejected with a typed error.
	CalculationErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tilebill_calculation_errors_total",
		Help: "Coverage calculations that failed validation.",
	})

	// BillsSavedTotal counts bills persisted to the durable store.
	BillsSavedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tilebill_bills_saved_total",
		Help: "Working bills saved as durable bills.",
	})

	// BillsPurgedTotal counts bills removed by the retention sweep.
	BillsPurgedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tilebill_bills_purged_total",
		Help: "Durable bills deleted by retention purges.",
	})
)
