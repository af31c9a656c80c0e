package orchestration

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/xl2pdf/internal/errors"
)

// Worker runs batches on a single background goroutine slot. A batch
// requested while another is in flight is rejected with
// apperrors.ErrBatchRunning, never queued.
type Worker struct {
	g       errgroup.Group
	mu      sync.Mutex
	running bool
}

// NewWorker creates a Worker with one slot.
func NewWorker() *Worker {
	w := &Worker{}
	w.g.SetLimit(1)
	return w
}

// Start launches runner.Run(ctx, req, obs) in the background and returns
// immediately. It returns apperrors.ErrBatchRunning when the slot is taken.
func (w *Worker) Start(ctx context.Context, runner BatchRunner, req Request, obs Observer) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return apperrors.ErrBatchRunning
	}
	ok := w.g.TryGo(func() error {
		defer w.setIdle()
		runner.Run(ctx, req, obs)
		return nil
	})
	if !ok {
		return apperrors.ErrBatchRunning
	}
	w.running = true
	return nil
}

func (w *Worker) setIdle() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}

// Busy reports whether a batch is running.
func (w *Worker) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Wait blocks until the running batch, if any, has finished its teardown
// and delivered OnDone.
func (w *Worker) Wait() {
	_ = w.g.Wait()
}
