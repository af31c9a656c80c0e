package orchestration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/xl2pdf/internal/engine"
	apperrors "github.com/agbru/xl2pdf/internal/errors"
	"github.com/agbru/xl2pdf/internal/format"
	"github.com/agbru/xl2pdf/internal/workbook"
)

const tracerName = "github.com/agbru/xl2pdf/internal/orchestration"

// ConvertOptions configures how each workbook is opened and exported.
type ConvertOptions struct {
	Open   engine.OpenOptions
	Export engine.ExportOptions
	// FileTimeout bounds the export of a single workbook. Zero means no limit.
	FileTimeout time.Duration
}

// DefaultConvertOptions opens read-only without prompts and exports at
// standard quality.
func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{
		Open:   engine.DefaultOpenOptions(),
		Export: engine.DefaultExportOptions(),
	}
}

// ConvertFile converts one workbook to a PDF next to it using an already
// started engine. It never panics and never returns an error: every failure,
// including a panic inside the engine, is reported in the FileResult.
// The workbook is closed without saving on every path once it was opened.
func ConvertFile(ctx context.Context, eng engine.Engine, path string, opts ConvertOptions, logf func(string)) (res FileResult) {
	if logf == nil {
		logf = func(string) {}
	}
	start := time.Now()
	res = FileResult{Path: path, Output: workbook.PDFPath(path)}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "convert_file")
	span.SetAttributes(attribute.String("xl2pdf.file", res.Name()))

	defer func() {
		res.Duration = time.Since(start)
		if res.Success {
			span.SetStatus(codes.Ok, "")
		} else {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Message())
		}
		span.End()
	}()
	defer func() {
		if r := recover(); r != nil {
			res.Success = false
			res.Err = apperrors.FileConversionError{Path: path, Op: "convert", Cause: fmt.Errorf("%v", r)}
			logf("  ✗ Error: " + res.Message())
		}
	}()

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		res.Err = apperrors.FileNotFoundError{Path: path}
		logf("  ✗ Error: " + res.Message())
		return res
	}
	res.InputBytes = info.Size()
	logf(fmt.Sprintf("  Opening: %s (%s)", res.Name(), format.FormatMB(res.InputBytes)))

	if err := exportWorkbook(ctx, eng, path, res.Output, opts); err != nil {
		res.Err = err
		logf("  ✗ Error: " + res.Message())
		return res
	}

	if out, err := os.Stat(res.Output); err == nil {
		res.OutputBytes = out.Size()
	}
	res.Success = true
	logf(fmt.Sprintf("  ✓ PDF created: %s (%s) - %s",
		filepath.Base(res.Output), format.FormatMB(res.OutputBytes), format.FormatSeconds(time.Since(start))))
	return res
}

// exportWorkbook runs open, export and close. A close failure after a
// successful export is reported as the file's error.
func exportWorkbook(ctx context.Context, eng engine.Engine, path, output string, opts ConvertOptions) (err error) {
	wb, err := eng.OpenWorkbook(path, opts.Open)
	if err != nil {
		return apperrors.FileConversionError{Path: path, Op: "open", Cause: err}
	}
	defer func() {
		if cerr := eng.CloseWorkbook(wb, false); cerr != nil && err == nil {
			err = apperrors.FileConversionError{Path: path, Op: "close", Cause: cerr}
		}
	}()

	if opts.FileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.FileTimeout)
		defer cancel()
	}
	if err := eng.ExportFixedFormat(ctx, wb, output, opts.Export); err != nil {
		return apperrors.FileConversionError{Path: path, Op: "export", Cause: err}
	}
	return nil
}
