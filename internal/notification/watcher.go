package notification

import (
	"context"
	"log"
	"time"

	"balboa-parking-backend/internal/engine"
	"balboa-parking-backend/internal/model"
	"balboa-parking-backend/internal/store"
)

// Watcher polls the enforcement state and, when paid enforcement ends for
// the day, dispatches a notification job for every lot that was paid at
// that moment.
type Watcher struct {
	store    store.Store
	engine   *engine.Engine
	pool     *WorkerPool
	interval time.Duration

	lastActive *bool
}

// NewWatcher creates a watcher that checks enforcement once per interval.
func NewWatcher(s store.Store, eng *engine.Engine, pool *WorkerPool, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Watcher{store: s, engine: eng, pool: pool, interval: interval}
}

// Run starts the polling loop. It blocks until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	log.Println("Starting enforcement watcher...")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Tick(ctx, time.Now())
	for {
		select {
		case <-ctx.Done():
			log.Println("Enforcement watcher shutting down.")
			return
		case now := <-ticker.C:
			w.Tick(ctx, now)
		}
	}
}

// Tick evaluates enforcement once and dispatches on an active-to-inactive
// transition. Exported so tests can drive the clock explicitly.
func (w *Watcher) Tick(ctx context.Context, now time.Time) {
	cat, err := w.store.Catalog(ctx, "")
	if err != nil {
		log.Printf("Enforcement watcher: failed to load catalog: %v", err)
		return
	}

	active := w.engine.IsEnforcementActive(now, cat.EnforcementPeriods, cat.Holidays)
	ended := w.lastActive != nil && *w.lastActive && !active
	w.lastActive = &active

	if !ended {
		return
	}

	log.Println("Paid enforcement has ended; notifying lot subscribers.")
	for _, lot := range cat.Lots {
		// Free-tier lots were free all along; no news to deliver.
		if w.engine.ResolveTier(lot.ID, cat.TierAssignments, now) == model.TierFree {
			continue
		}
		w.pool.Dispatch(lot.ID)
	}
}
