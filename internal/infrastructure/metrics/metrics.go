package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the budget engine.
type Metrics struct {
	// Budget metrics
	BudgetsCreated prometheus.Counter
	BudgetsUpdated prometheus.Counter
	BudgetsDeleted prometheus.Counter

	// Progress metrics
	ProgressRequests prometheus.Counter
	ProgressDuration prometheus.Histogram
	HealthScore      prometheus.Histogram

	// Recurring instance metrics
	InstancesGenerated prometheus.Counter
	GenerationRuns     *prometheus.CounterVec
	BillsPaid          prometheus.Counter

	// Change log metrics
	ChangeLogWrites *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		BudgetsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "budgetd_budgets_created_total",
			Help: "Total number of budgets created",
		}),
		BudgetsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "budgetd_budgets_updated_total",
			Help: "Total number of budgets updated",
		}),
		BudgetsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "budgetd_budgets_deleted_total",
			Help: "Total number of budgets deleted",
		}),

		ProgressRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "budgetd_progress_requests_total",
			Help: "Total number of budget progress computations",
		}),
		ProgressDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "budgetd_progress_duration_seconds",
			Help:    "Duration of budget progress computations",
			Buckets: prometheus.DefBuckets,
		}),
		HealthScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "budgetd_health_score",
			Help:    "Distribution of computed budget health scores",
			Buckets: []float64{0, 20, 40, 60, 75, 90, 100},
		}),

		InstancesGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "budgetd_recurring_instances_generated_total",
			Help: "Total number of recurring instances materialized",
		}),
		GenerationRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetd_recurring_generation_runs_total",
				Help: "Total recurring generation runs by outcome",
			},
			[]string{"outcome"},
		),
		BillsPaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "budgetd_bills_paid_total",
			Help: "Total number of bills marked paid",
		}),

		ChangeLogWrites: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetd_changelog_writes_total",
				Help: "Total change log writes by status",
			},
			[]string{"action", "status"},
		),
	}
}
