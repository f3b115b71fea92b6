package tracker

import (
	"testing"
	"time"

	"github.com/sadopc/cardfile/internal/config"
	"github.com/sadopc/cardfile/internal/store"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	db, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db, config.Default())
}

// setClock pins every component's clock to a fixed instant so date math is
// deterministic.
func setClock(tr *Tracker, now time.Time) {
	clock := func() time.Time { return now }
	tr.Registry.now = clock
	tr.Sprint.now = clock
	tr.Journal.now = clock
	tr.Energy.now = clock
	tr.Sessions.now = clock
	tr.Analyzer.now = clock
}

func TestNewWiresComponents(t *testing.T) {
	tr := newTestTracker(t)
	if tr.Registry == nil || tr.Journal == nil || tr.Energy == nil ||
		tr.Sprint == nil || tr.Sessions == nil || tr.Analyzer == nil || tr.DB == nil {
		t.Fatalf("incomplete tracker: %+v", tr)
	}
}
