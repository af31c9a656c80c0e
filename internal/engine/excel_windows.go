//go:build windows

package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

const (
	excelProgID = "Excel.Application"

	xlTypePDF          = 0
	xlUpdateLinksNever = 0
	xlUpdateLinksAsk   = 3
	xlFormatNothing    = 5

	hresultSFalse      = 0x00000001
	hresultClassString = 0x800401F3
	hresultClassNotReg = 0x80040154
)

type excelStarter struct{}

func newExcelStarter() Starter { return excelStarter{} }

func (excelStarter) Name() string { return NameExcel }

// Start launches a dedicated Excel instance. COM objects are bound to the
// apartment of the calling OS thread, so the goroutine stays locked to its
// thread until Quit.
func (excelStarter) Start(ctx context.Context) (Engine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	runtime.LockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil && !hasHRESULT(err, hresultSFalse) {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("CoInitialize failed: %w", err)
	}

	app, err := createExcel()
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, err
	}

	e := &excelEngine{app: app}
	for _, p := range []struct {
		name  string
		value bool
	}{
		{"Visible", false},
		{"DisplayAlerts", false},
		{"ScreenUpdating", false},
	} {
		if _, err := oleutil.PutProperty(app, p.name, p.value); err != nil {
			_ = e.Quit()
			return nil, fmt.Errorf("setting Excel.%s: %w", p.name, err)
		}
	}

	wbs, err := oleutil.GetProperty(app, "Workbooks")
	if err != nil {
		_ = e.Quit()
		return nil, fmt.Errorf("reading Excel.Workbooks: %w", err)
	}
	e.workbooks = wbs.ToIDispatch()
	return e, nil
}

func createExcel() (*ole.IDispatch, error) {
	unknown, err := oleutil.CreateObject(excelProgID)
	if err != nil {
		if hasHRESULT(err, hresultClassString) || hasHRESULT(err, hresultClassNotReg) {
			return nil, fmt.Errorf("%w: %s: %v", ErrNotRegistered, excelProgID, err)
		}
		return nil, fmt.Errorf("creating %s: %w", excelProgID, err)
	}
	defer unknown.Release()

	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, fmt.Errorf("querying IDispatch on %s: %w", excelProgID, err)
	}
	return app, nil
}

func hasHRESULT(err error, code uintptr) bool {
	var oleErr *ole.OleError
	return errors.As(err, &oleErr) && oleErr.Code() == code
}

type excelWorkbook struct {
	disp *ole.IDispatch
	path string
}

func (w *excelWorkbook) Path() string { return w.path }

type excelEngine struct {
	app       *ole.IDispatch
	workbooks *ole.IDispatch
}

func (e *excelEngine) Name() string { return NameExcel }

func (e *excelEngine) OpenWorkbook(path string, opts OpenOptions) (Workbook, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	updateLinks := xlUpdateLinksAsk
	if opts.IgnoreLinkUpdates {
		updateLinks = xlUpdateLinksNever
	}
	// Workbooks.Open(FileName, UpdateLinks, ReadOnly, Format, Password,
	// WriteResPassword, IgnoreReadOnlyRecommended)
	v, err := oleutil.CallMethod(e.workbooks, "Open",
		abs, updateLinks, opts.ReadOnly, xlFormatNothing, "", "", opts.IgnoreReadOnlyRecommended)
	if err != nil {
		return nil, fmt.Errorf("Workbooks.Open: %w", err)
	}
	return &excelWorkbook{disp: v.ToIDispatch(), path: abs}, nil
}

func (e *excelEngine) ExportFixedFormat(ctx context.Context, wb Workbook, outputPath string, opts ExportOptions) error {
	w, ok := wb.(*excelWorkbook)
	if !ok || w.disp == nil {
		return fmt.Errorf("workbook handle %T was not opened by this engine", wb)
	}
	// ExportAsFixedFormat blocks inside Excel and cannot be interrupted; an
	// expired deadline is only honoured before the call.
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := filepath.Abs(outputPath)
	if err != nil {
		return err
	}
	// ExportAsFixedFormat(Type, Filename, Quality, IncludeDocProperties, IgnorePrintAreas)
	if _, err := oleutil.CallMethod(w.disp, "ExportAsFixedFormat",
		xlTypePDF, abs, int(opts.Quality), opts.IncludeDocProperties, opts.IgnorePrintAreas); err != nil {
		return fmt.Errorf("ExportAsFixedFormat: %w", err)
	}
	return nil
}

func (e *excelEngine) CloseWorkbook(wb Workbook, saveChanges bool) error {
	w, ok := wb.(*excelWorkbook)
	if !ok || w.disp == nil {
		return fmt.Errorf("workbook handle %T was not opened by this engine", wb)
	}
	defer func() {
		w.disp.Release()
		w.disp = nil
	}()
	if _, err := oleutil.CallMethod(w.disp, "Close", saveChanges); err != nil {
		return fmt.Errorf("Workbook.Close: %w", err)
	}
	return nil
}

func (e *excelEngine) Quit() error {
	if e.app == nil {
		return nil
	}
	var quitErr error
	if _, err := oleutil.CallMethod(e.app, "Quit"); err != nil {
		quitErr = fmt.Errorf("Excel.Quit: %w", err)
	}
	if e.workbooks != nil {
		e.workbooks.Release()
		e.workbooks = nil
	}
	e.app.Release()
	e.app = nil
	ole.CoUninitialize()
	runtime.UnlockOSThread()
	return quitErr
}
