// Package tracker implements the pattern-analysis and sprint-health core:
// task registry, daily journal, energy log, sprint tracker, sessions, and
// the derived pattern analyzer. All state lives in the document store;
// every derived result is recomputed on demand.
package tracker

import (
	"github.com/sadopc/cardfile/internal/config"
	"github.com/sadopc/cardfile/internal/store"
)

// Tracker bundles the core components over one store and configuration.
type Tracker struct {
	DB       *store.Store
	Registry *Registry
	Journal  *Journal
	Energy   *EnergyLog
	Sprint   *Sprint
	Sessions *Sessions
	Analyzer *Analyzer
}

func New(db *store.Store, cfg *config.Config) *Tracker {
	registry := NewRegistry(db)
	sprint := NewSprint(db, cfg)
	journal := NewJournal(db, sprint)
	energy := NewEnergyLog(journal)
	return &Tracker{
		DB:       db,
		Registry: registry,
		Journal:  journal,
		Energy:   energy,
		Sprint:   sprint,
		Sessions: NewSessions(db),
		Analyzer: NewAnalyzer(registry, journal, energy, sprint, cfg),
	}
}
