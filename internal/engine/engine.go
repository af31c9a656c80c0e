//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks

// Package engine defines the office-automation engine contract used by the
// batch orchestrator, and the backends that implement it: Excel over COM,
// LibreOffice in headless mode, and a converter container image.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Backend names accepted by NewStarter.
const (
	NameAuto      = "auto"
	NameExcel     = "excel"
	NameSoffice   = "soffice"
	NameContainer = "container"
)

// Names lists every selectable backend.
var Names = []string{NameAuto, NameExcel, NameSoffice, NameContainer}

// ErrNotRegistered marks a start failure caused by the engine not being
// installed or its automation class not being registered.
var ErrNotRegistered = errors.New("automation engine not registered")

// Quality is the fixed-format export quality. Values match Excel's
// XlFixedFormatQuality enumeration.
type Quality int

const (
	// QualityStandard is xlQualityStandard.
	QualityStandard Quality = 0
	// QualityMinimum is xlQualityMinimum.
	QualityMinimum Quality = 1
)

// String returns the configuration name of the quality.
func (q Quality) String() string {
	if q == QualityMinimum {
		return "minimum"
	}
	return "standard"
}

// ParseQuality parses "standard" or "minimum" (case-insensitive).
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return QualityStandard, nil
	case "minimum":
		return QualityMinimum, nil
	}
	return QualityStandard, fmt.Errorf("unknown quality %q (want standard or minimum)", s)
}

// OpenOptions controls how a workbook is opened.
type OpenOptions struct {
	ReadOnly                  bool
	IgnoreLinkUpdates         bool
	IgnoreReadOnlyRecommended bool
}

// DefaultOpenOptions opens read-only and suppresses every interactive prompt.
func DefaultOpenOptions() OpenOptions {
	return OpenOptions{ReadOnly: true, IgnoreLinkUpdates: true, IgnoreReadOnlyRecommended: true}
}

// ExportOptions controls the fixed-format export.
type ExportOptions struct {
	Quality              Quality
	IncludeDocProperties bool
	IgnorePrintAreas     bool
}

// DefaultExportOptions exports at standard quality with document properties,
// honouring defined print areas.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{Quality: QualityStandard, IncludeDocProperties: true}
}

// Workbook is a handle to a workbook opened by an Engine.
type Workbook interface {
	// Path returns the absolute path the workbook was opened from.
	Path() string
}

// Engine is one running automation engine instance. It is owned by a single
// batch and is not safe for concurrent use.
type Engine interface {
	// Name returns the backend name.
	Name() string
	// OpenWorkbook opens the workbook at path.
	OpenWorkbook(path string, opts OpenOptions) (Workbook, error)
	// ExportFixedFormat renders an open workbook to a PDF at outputPath.
	ExportFixedFormat(ctx context.Context, wb Workbook, outputPath string, opts ExportOptions) error
	// CloseWorkbook closes the workbook, saving only if saveChanges is set.
	CloseWorkbook(wb Workbook, saveChanges bool) error
	// Quit terminates the engine and releases its resources.
	Quit() error
}

// Starter launches engine instances.
type Starter interface {
	// Name returns the backend name.
	Name() string
	// Start launches a headless engine: invisible, without alerts and
	// without screen updating.
	Start(ctx context.Context) (Engine, error)
}

// Options configures the backends built by NewStarter.
type Options struct {
	// SofficePath overrides the LibreOffice binary ("soffice" on PATH by default).
	SofficePath string
	// ContainerImage is the converter image used by the container backend.
	ContainerImage string
}

// NewStarter returns the Starter for the named backend. "auto" selects Excel
// on Windows and LibreOffice elsewhere.
func NewStarter(name string, opts Options) (Starter, error) {
	switch strings.ToLower(name) {
	case "", NameAuto:
		if runtime.GOOS == "windows" {
			return newExcelStarter(), nil
		}
		return NewSofficeStarter(opts.SofficePath), nil
	case NameExcel:
		return newExcelStarter(), nil
	case NameSoffice:
		return NewSofficeStarter(opts.SofficePath), nil
	case NameContainer:
		return NewContainerStarter(opts.ContainerImage), nil
	}
	return nil, fmt.Errorf("unknown engine %q (want one of %s)", name, strings.Join(Names, ", "))
}

// notRegisteredSignatures are the error texts and HRESULTs produced when the
// automation class is missing: CO_E_CLASSSTRING, REGDB_E_CLASSNOTREG and
// COM initialisation failures.
var notRegisteredSignatures = []string{
	"invalid class string",
	"0x800401f3",
	"class not registered",
	"0x80040154",
	"coinitialize",
}

// IsNotRegistered reports whether a Start error means the engine is not
// installed or not registered, as opposed to any other start failure.
func IsNotRegistered(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotRegistered) || errors.Is(err, exec.ErrNotFound) {
		return true
	}
	text := strings.ToLower(err.Error())
	for _, sig := range notRegisteredSignatures {
		if strings.Contains(text, sig) {
			return true
		}
	}
	return false
}

// fileWorkbook is the handle used by backends that convert from the file
// on disk rather than from an in-process document.
type fileWorkbook struct {
	path string
}

func (w *fileWorkbook) Path() string { return w.path }

// asFileWorkbook unwraps a handle created by a file-based backend.
func asFileWorkbook(wb Workbook) (*fileWorkbook, error) {
	fw, ok := wb.(*fileWorkbook)
	if !ok || fw == nil {
		return nil, fmt.Errorf("workbook handle %T was not opened by this engine", wb)
	}
	return fw, nil
}
