// internal/app/system/workers/reconcile.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/rosterhub/internal/app/cascade"
	listuserstore "github.com/dalemusser/rosterhub/internal/app/store/listusers"
	"github.com/dalemusser/rosterhub/internal/domain/models"
)

// Reconcile is a background worker that finishes interrupted cascades: it
// finds live list_users rows whose list is already soft-deleted and runs the
// per-row cleanup on them. A cascade cut short by a crash or per-row failure
// converges on the next sweep.
type Reconcile struct {
	db          *mongo.Database
	rows        *listuserstore.Store
	deactivator *cascade.Deactivator
	log         *zap.Logger
	interval    time.Duration
	stopCh      chan struct{}
	wg          sync.WaitGroup
}

// NewReconcile creates a new reconciliation worker.
func NewReconcile(db *mongo.Database, rows *listuserstore.Store, deactivator *cascade.Deactivator, logger *zap.Logger, interval time.Duration) *Reconcile {
	return &Reconcile{
		db:          db,
		rows:        rows,
		deactivator: deactivator,
		log:         logger,
		interval:    interval,
		stopCh:      make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *Reconcile) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("reconcile worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *Reconcile) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("reconcile worker stopped")
}

func (w *Reconcile) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep runs one reconciliation pass. Exported so tests and operational
// tooling can trigger it directly.
func (w *Reconcile) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cur, err := w.db.Collection("lists").Find(ctx, bson.M{"deleted": true})
	if err != nil {
		w.log.Error("reconcile: loading deleted lists failed", zap.Error(err))
		return
	}
	var deletedLists []models.List
	if err := cur.All(ctx, &deletedLists); err != nil {
		w.log.Error("reconcile: decoding deleted lists failed", zap.Error(err))
		return
	}

	var cleaned int
	for _, l := range deletedLists {
		rows, err := w.rows.FindLiveByList(ctx, l.ID)
		if err != nil {
			w.log.Error("reconcile: loading stray rows failed",
				zap.String("list_id", l.ID.Hex()),
				zap.Error(err))
			continue
		}
		for _, row := range rows {
			if err := w.deactivator.CleanupRow(ctx, row); err != nil {
				w.log.Error("reconcile: row cleanup failed",
					zap.String("row_id", row.ID.Hex()),
					zap.Error(err))
				continue
			}
			cleaned++
		}
	}

	if cleaned > 0 {
		w.log.Info("reconcile: cleaned stray membership rows", zap.Int("count", cleaned))
	}
}
