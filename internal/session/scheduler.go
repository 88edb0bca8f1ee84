package session

import (
	"context"
	"sync"
	"time"

	"github.com/10543610-ai/WealthFlow-AI/internal/common"
	"github.com/10543610-ai/WealthFlow-AI/internal/interfaces"
	"github.com/10543610-ai/WealthFlow-AI/internal/models"
)

// writeScheduler coalesces mutations into debounced merge writes. Each
// mutation restarts the timer; only the state at expiry is flushed, so
// a burst of edits costs one storage round trip.
//
// A scheduler belongs to exactly one session. Stopping it (sign-out)
// abandons any pending write.
type writeScheduler struct {
	store    interfaces.AggregateStore
	logger   *common.Logger
	userID   string
	debounce time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	pending  *interfaces.AggregateWrite
	inflight context.CancelFunc
	stopped  bool
}

func newWriteScheduler(store interfaces.AggregateStore, logger *common.Logger, userID string, debounce time.Duration) *writeScheduler {
	return &writeScheduler{
		store:    store,
		logger:   logger,
		userID:   userID,
		debounce: debounce,
	}
}

// schedule records the latest aggregate state and (re)arms the timer.
// seq orders flushes should two ever race past the debounce window.
func (w *writeScheduler) schedule(agg *models.Aggregate, seq uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}

	snapshot := agg.Clone()
	w.pending = &interfaces.AggregateWrite{
		Accounts:     snapshot.Accounts,
		Transactions: snapshot.Transactions,
		Stocks:       snapshot.Stocks,
		Seq:          seq,
		UpdatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *writeScheduler) fire() {
	w.mu.Lock()
	write := w.pending
	w.pending = nil
	stopped := w.stopped
	w.mu.Unlock()

	if stopped || write == nil {
		return
	}
	w.flush(write)
}

// Flush writes any pending state immediately, without waiting for the
// timer. Used by graceful shutdown.
func (w *writeScheduler) Flush() {
	w.mu.Lock()
	write := w.pending
	w.pending = nil
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	if write == nil {
		return
	}
	w.flush(write)
}

// Stop abandons any pending write and cancels an in-flight flush, so a
// signed-out session can never land a write after its identity signs
// back in. Edits inside the debounce window at sign-out are lost; that
// window is bounded by the debounce duration.
func (w *writeScheduler) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	w.pending = nil
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.inflight != nil {
		w.inflight()
		w.inflight = nil
	}
}

func (w *writeScheduler) flush(write *interfaces.AggregateWrite) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.inflight = cancel
	w.mu.Unlock()

	err := w.store.Merge(ctx, w.userID, write)

	w.mu.Lock()
	w.inflight = nil
	w.mu.Unlock()

	if err != nil {
		// No retry: the failure is logged and the state stays live in
		// the session, riding out with the next flush.
		w.logger.Error().Err(err).Str("user_id", w.userID).Uint64("seq", write.Seq).Msg("Aggregate flush failed")
		return
	}
	w.logger.Debug().Str("user_id", w.userID).Uint64("seq", write.Seq).Msg("Aggregate flushed")
}
