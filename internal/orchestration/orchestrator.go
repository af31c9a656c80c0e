package orchestration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/xl2pdf/internal/engine"
	apperrors "github.com/agbru/xl2pdf/internal/errors"
	"github.com/agbru/xl2pdf/internal/logging"
	"github.com/agbru/xl2pdf/internal/workbook"
)

// DigestLimit is the number of failures spelled out in Summary.Digest.
const DigestLimit = 3

// Digests reported when a batch cannot run.
const (
	DigestFolderNotFound     = "folder not found"
	DigestNoWorkbooks        = "no Excel files found"
	DigestFileNotFound       = "file not found"
	DigestInvalidFileType    = "invalid file type"
	DigestEngineNotInstalled = "Excel not found or COM access error"
)

// Digest joins the first DigestLimit failure lines with "; " and appends
// " (+N more)" when lines were left out. It returns "" for no failures.
func Digest(failures []string) string {
	if len(failures) <= DigestLimit {
		return strings.Join(failures, "; ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(failures[:DigestLimit], "; "), len(failures)-DigestLimit)
}

// Runner executes batches. A Runner holds no per-batch state and may be
// reused; the Worker ensures only one batch runs at a time.
type Runner struct {
	starter engine.Starter
	opts    ConvertOptions
	logger  logging.Logger
	metrics Recorder
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithConvertOptions overrides DefaultConvertOptions.
func WithConvertOptions(opts ConvertOptions) Option {
	return func(r *Runner) { r.opts = opts }
}

// WithRecorder attaches a telemetry recorder.
func WithRecorder(m Recorder) Option {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner creates a Runner that starts engines with starter.
func NewRunner(starter engine.Starter, opts ...Option) *Runner {
	r := &Runner{
		starter: starter,
		opts:    DefaultConvertOptions(),
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one batch and returns its Summary, which is also delivered
// through obs.OnDone exactly once.
//
// The batch is not cancellable once started: ctx values are kept but its
// cancellation is ignored. Per-file export time is bounded by
// ConvertOptions.FileTimeout. The engine, once started, is always shut down
// before OnDone fires.
func (r *Runner) Run(ctx context.Context, req Request, obs Observer) (sum Summary) {
	ctx = context.WithoutCancel(ctx)
	o := guard(obs, r.logger)

	sum = Summary{RunID: uuid.NewString(), Engine: r.starter.Name(), Started: time.Now()}
	runField := logging.String("run_id", sum.RunID)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "batch")
	span.SetAttributes(
		attribute.String("xl2pdf.run_id", sum.RunID),
		attribute.String("xl2pdf.target", req.TargetPath),
		attribute.Bool("xl2pdf.folder", req.IsFolder),
	)

	var (
		eng      engine.Engine
		failures []string
	)
	defer func() {
		if rec := recover(); rec != nil {
			reason := fmt.Sprint(rec)
			o.log("Critical error: " + reason)
			r.logger.Error("batch aborted", errors.New(reason), runField)
			sum.Err = apperrors.BatchAbortedError{Reason: reason}
			sum.Digest = reason
		}
		if eng != nil {
			r.quit(eng, runField)
			o.log("Engine closed.")
		}
		sum.Duration = time.Since(sum.Started)
		r.finish(span, sum)
		o.finish(sum)
	}()

	files, verr := r.validate(req)
	if verr != nil {
		o.log(validationLogLine(verr.Message))
		r.logger.Warn("batch rejected", runField,
			logging.String("target", req.TargetPath), logging.String("reason", verr.Message))
		sum.Err = *verr
		sum.Digest = verr.Message
		return sum
	}

	total := len(files)
	o.log(fmt.Sprintf("Total %d files will be processed. Starting engine...", total))
	r.logger.Info("starting engine", runField,
		logging.String("engine", sum.Engine), logging.Int("files", total))

	started, err := r.starter.Start(ctx)
	if err != nil {
		notRegistered := engine.IsNotRegistered(err)
		sum.Err = apperrors.EngineUnavailableError{Engine: sum.Engine, NotRegistered: notRegistered, Cause: err}
		if notRegistered {
			o.log("ERROR: The conversion engine is not installed or not registered. Check the Office/Excel installation.")
			sum.Digest = DigestEngineNotInstalled
		} else {
			o.log("ERROR: Could not start the engine: " + err.Error())
			sum.Digest = err.Error()
		}
		r.logger.Error("engine start failed", err, runField, logging.Bool("not_registered", notRegistered))
		return sum
	}
	eng = started

	for i, path := range files {
		name := filepath.Base(path)
		o.progress(i, total, name)

		res := ConvertFile(ctx, eng, path, r.opts, o.log)
		sum.Results = append(sum.Results, res)
		if res.Success {
			sum.SuccessCount++
			r.logger.Debug("file converted", runField,
				logging.String("file", path), logging.Duration("duration", res.Duration))
		} else {
			sum.FailCount++
			failures = append(failures, name+": "+res.Message())
			r.logger.Warn("file failed", runField,
				logging.String("file", path), logging.Err(res.Err))
		}
		if r.metrics != nil {
			r.metrics.ObserveFile(res.Success, res.Duration, res.InputBytes)
		}

		o.progress(i+1, total, name)
	}

	sum.Digest = Digest(failures)
	r.logger.Info("batch finished", runField,
		logging.Int("success", sum.SuccessCount), logging.Int("failed", sum.FailCount))
	return sum
}

// quit shuts the engine down. Errors and panics are logged and swallowed so
// that teardown always reaches OnDone.
func (r *Runner) quit(eng engine.Engine, runField logging.Field) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("engine quit panicked", runField, logging.String("panic", fmt.Sprint(rec)))
		}
	}()
	if err := eng.Quit(); err != nil {
		r.logger.Warn("engine quit failed", runField, logging.Err(err))
	}
}

// validate resolves the request into the ordered list of workbooks to
// convert. It never starts an engine.
func (r *Runner) validate(req Request) ([]string, *apperrors.ValidationError) {
	info, err := os.Stat(req.TargetPath)
	if req.IsFolder {
		if err != nil || !info.IsDir() {
			return nil, &apperrors.ValidationError{Field: "folder", Message: DigestFolderNotFound}
		}
		files := workbook.List(req.TargetPath)
		if len(files) == 0 {
			return nil, &apperrors.ValidationError{Field: "folder", Message: DigestNoWorkbooks}
		}
		return files, nil
	}
	if err != nil || info.IsDir() {
		return nil, &apperrors.ValidationError{Field: "file", Message: DigestFileNotFound}
	}
	if !workbook.IsWorkbook(req.TargetPath) {
		return nil, &apperrors.ValidationError{Field: "file", Message: DigestInvalidFileType}
	}
	return []string{req.TargetPath}, nil
}

func validationLogLine(digest string) string {
	switch digest {
	case DigestFolderNotFound:
		return "ERROR: Folder not found."
	case DigestNoWorkbooks:
		return "This folder contains no .xls or .xlsx files."
	case DigestFileNotFound:
		return "ERROR: File not found."
	case DigestInvalidFileType:
		return "ERROR: Select a valid Excel file (.xls or .xlsx)."
	}
	return "ERROR: " + digest
}

// finish records telemetry for a completed batch. Failures here never
// affect the Summary.
func (r *Runner) finish(span trace.Span, sum Summary) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("recording batch telemetry panicked", logging.String("panic", fmt.Sprint(rec)))
		}
		span.End()
	}()
	span.SetAttributes(
		attribute.Int("xl2pdf.success", sum.SuccessCount),
		attribute.Int("xl2pdf.failed", sum.FailCount),
		attribute.String("xl2pdf.outcome", sum.Outcome()),
	)
	if sum.Err != nil {
		span.SetStatus(codes.Error, sum.Digest)
	}
	if r.metrics != nil {
		r.metrics.ObserveBatch(sum.Outcome(), sum.SuccessCount, sum.FailCount, sum.Duration)
	}
}
