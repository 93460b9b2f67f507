package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var tableReads = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "jobtracker_table_reads_total",
		Help: "Number of full table reads issued to the row store, split by table.",
	},
	[]string{"table"},
)

var membershipCacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "jobtracker_membership_cache_lookups_total",
		Help: "Membership cache lookups split by table and result (hit or miss).",
	},
	[]string{"table", "result"},
)

var resolverOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "jobtracker_resolver_outcomes_total",
		Help: "Application lookups split by outcome (found, not_found, ambiguous, too_many, error).",
	},
	[]string{"outcome"},
)

var rowsAppended = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "jobtracker_rows_appended_total",
		Help: "Rows appended by the logger workflows, split by table.",
	},
	[]string{"table"},
)
