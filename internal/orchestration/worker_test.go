package orchestration

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/agbru/xl2pdf/internal/errors"
)

// blockingRunner runs until release is closed.
type blockingRunner struct {
	started chan struct{}
	release chan struct{}
	runs    atomic.Int32
}

func newBlockingRunner() *blockingRunner {
	return &blockingRunner{started: make(chan struct{}, 4), release: make(chan struct{})}
}

func (b *blockingRunner) Run(_ context.Context, _ Request, obs Observer) Summary {
	b.runs.Add(1)
	b.started <- struct{}{}
	<-b.release
	sum := Summary{SuccessCount: 1}
	obs.OnDone(sum)
	return sum
}

func TestWorker_RejectsWhileBusy(t *testing.T) {
	t.Parallel()
	w := NewWorker()
	r := newBlockingRunner()

	done := make(chan Summary, 2)
	obs := ObserverFuncs{Done: func(s Summary) { done <- s }}

	if err := w.Start(context.Background(), r, Request{}, obs); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	<-r.started
	if !w.Busy() {
		t.Error("worker should be busy")
	}
	if err := w.Start(context.Background(), r, Request{}, obs); !errors.Is(err, apperrors.ErrBatchRunning) {
		t.Errorf("second Start = %v, want ErrBatchRunning", err)
	}

	close(r.release)
	w.Wait()
	if w.Busy() {
		t.Error("worker should be idle after Wait")
	}
	if got := r.runs.Load(); got != 1 {
		t.Errorf("runner ran %d times, want 1 (rejected batches are not queued)", got)
	}
	select {
	case <-done:
	default:
		t.Error("OnDone should have fired before Wait returned")
	}

	// The slot is free again.
	if err := w.Start(context.Background(), r, Request{}, obs); err != nil {
		t.Fatalf("Start after Wait: %v", err)
	}
	w.Wait()
}

// TestWorker_NoDeadlockOnWait verifies Wait returns when nothing is running
// and after a batch whose observer blocks briefly.
func TestWorker_NoDeadlockOnWait(t *testing.T) {
	t.Parallel()
	w := NewWorker()

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		w.Wait()
		r := newBlockingRunner()
		close(r.release)
		slow := ObserverFuncs{Done: func(Summary) { time.Sleep(10 * time.Millisecond) }}
		if err := w.Start(context.Background(), r, Request{}, slow); err != nil {
			t.Error(err)
		}
		w.Wait()
	}()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK: Worker.Wait did not return")
	}
}
