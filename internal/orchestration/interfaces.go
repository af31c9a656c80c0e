package orchestration

import (
	"context"
	"path/filepath"
	"time"

	apperrors "github.com/agbru/xl2pdf/internal/errors"
)

// Request describes one batch. It is immutable for the duration of a run.
type Request struct {
	// TargetPath is a workbook in file mode or a directory in folder mode.
	TargetPath string
	// IsFolder selects folder mode.
	IsFolder bool
}

// FileResult is the outcome of converting a single workbook.
type FileResult struct {
	// Path is the input workbook.
	Path string
	// Output is the PDF path derived from Path.
	Output string
	// Success is true when the PDF was written and the workbook closed cleanly.
	Success bool
	// Err is the failure cause; nil on success.
	Err error
	// Duration covers open, export and close.
	Duration time.Duration
	// InputBytes and OutputBytes are the file sizes, 0 when unknown.
	InputBytes  int64
	OutputBytes int64
}

// Name returns the base name of the input workbook.
func (r FileResult) Name() string { return filepath.Base(r.Path) }

// Message returns the human-readable error, or "" on success.
func (r FileResult) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Batch outcomes, used as metric labels and in the batch report.
const (
	OutcomeSuccess           = "success"
	OutcomePartial           = "partial"
	OutcomeFailed            = "failed"
	OutcomeInvalid           = "invalid"
	OutcomeEngineUnavailable = "engine_unavailable"
	OutcomeAborted           = "aborted"
)

// Summary is the final report of a batch, delivered once through OnDone.
type Summary struct {
	SuccessCount int
	FailCount    int
	// Digest is empty when every file succeeded. Otherwise it holds the first
	// DigestLimit failures as "name: message" joined by "; ", or the reason a
	// batch could not run at all.
	Digest string
	// Err classifies batch-fatal outcomes: nil, apperrors.ValidationError,
	// apperrors.EngineUnavailableError or apperrors.BatchAbortedError.
	Err error
	// Results holds one entry per attempted file, in conversion order.
	Results []FileResult
	// RunID identifies the batch in logs, metrics and reports.
	RunID string
	// Engine is the backend name.
	Engine   string
	Started  time.Time
	Duration time.Duration
}

// Total returns the number of files attempted.
func (s Summary) Total() int { return s.SuccessCount + s.FailCount }

// Outcome classifies the batch for metrics and reports.
func (s Summary) Outcome() string {
	switch s.Err.(type) {
	case apperrors.ValidationError:
		return OutcomeInvalid
	case apperrors.EngineUnavailableError:
		return OutcomeEngineUnavailable
	case apperrors.BatchAbortedError:
		return OutcomeAborted
	}
	switch {
	case s.FailCount == 0:
		return OutcomeSuccess
	case s.SuccessCount == 0:
		return OutcomeFailed
	}
	return OutcomePartial
}

// Observer receives batch events. Calls arrive on the worker goroutine;
// implementations marshal them onto their own execution context.
//
// OnProgress is called with (i, total, name) before and (i+1, total, name)
// after each file. OnDone is called exactly once per batch, after the engine
// has been shut down. A panic in any callback is recovered and logged.
type Observer interface {
	OnProgress(current, total int, label string)
	OnLog(line string)
	OnDone(summary Summary)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Progress func(current, total int, label string)
	Log      func(line string)
	Done     func(summary Summary)
}

// OnProgress calls Progress if set.
func (f ObserverFuncs) OnProgress(current, total int, label string) {
	if f.Progress != nil {
		f.Progress(current, total, label)
	}
}

// OnLog calls Log if set.
func (f ObserverFuncs) OnLog(line string) {
	if f.Log != nil {
		f.Log(line)
	}
}

// OnDone calls Done if set.
func (f ObserverFuncs) OnDone(summary Summary) {
	if f.Done != nil {
		f.Done(summary)
	}
}

// NullObserver discards every event. Useful for quiet mode or testing.
type NullObserver struct{}

func (NullObserver) OnProgress(int, int, string) {}
func (NullObserver) OnLog(string)                {}
func (NullObserver) OnDone(Summary)              {}

// Recorder receives batch telemetry. internal/metrics provides the
// Prometheus implementation.
type Recorder interface {
	ObserveFile(success bool, d time.Duration, inputBytes int64)
	ObserveBatch(outcome string, successCount, failCount int, d time.Duration)
}

// BatchRunner runs one batch to completion. *Runner implements it.
type BatchRunner interface {
	Run(ctx context.Context, req Request, obs Observer) Summary
}
