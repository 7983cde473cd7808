package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// historyMigratedIDs counts legacy ids seen on read, by outcome
	historyMigratedIDs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fast_note",
		Subsystem: "history",
		Name:      "migrated_ids_total",
		Help:      "Legacy compressed note ids processed by the history migration pass.",
	}, []string{"result"})

	// historyMutations counts persisted history writes, by operation
	historyMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fast_note",
		Subsystem: "history",
		Name:      "mutations_total",
		Help:      "Persisted history mutations.",
	}, []string{"op"})
)

const (
	migrateResultMigrated  = "migrated"
	migrateResultMalformed = "malformed"
	migrateResultInvalid   = "invalid"
	migrateResultError     = "error"
)
