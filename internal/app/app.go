package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agbru/xl2pdf/internal/config"
	"github.com/agbru/xl2pdf/internal/engine"
	apperrors "github.com/agbru/xl2pdf/internal/errors"
	"github.com/agbru/xl2pdf/internal/logging"
	"github.com/agbru/xl2pdf/internal/metrics"
	"github.com/agbru/xl2pdf/internal/orchestration"
	"github.com/agbru/xl2pdf/internal/report"
	"github.com/agbru/xl2pdf/internal/tui"
	"github.com/agbru/xl2pdf/internal/ui"
)

const component = "xl2pdf"

// StarterFactory builds the engine Starter for a backend name.
type StarterFactory func(name string, opts engine.Options) (engine.Starter, error)

// Application represents the xl2pdf application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	newStarter StarterFactory
	isTerminal func(io.Writer) bool
	runShell   func(context.Context, tui.Options) int
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithStarterFactory replaces engine.NewStarter.
func WithStarterFactory(f StarterFactory) AppOption {
	return func(a *Application) { a.newStarter = f }
}

// WithTerminalDetector overrides how Run decides whether out is a terminal.
func WithTerminalDetector(f func(io.Writer) bool) AppOption {
	return func(a *Application) { a.isTerminal = f }
}

// WithShell replaces the interactive shell entry point.
func WithShell(run func(context.Context, tui.Options) int) AppOption {
	return func(a *Application) { a.runShell = run }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{
		ErrWriter:  errWriter,
		newStarter: engine.NewStarter,
		isTerminal: isTerminal,
		runShell:   tui.Run,
	}
	for _, opt := range opts {
		opt(app)
	}

	programName := "xl2pdf"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	zerolog.SetGlobalLevel(logging.ParseLevel(a.Config.LogLevel))
	ui.InitTheme(a.Config.NoColor)

	shell := a.Config.TUI || (a.Config.Path == "" && a.isTerminal(out))
	if !shell && a.Config.Path == "" {
		fmt.Fprintln(a.ErrWriter, "Error: no PATH given and no terminal for the interactive shell (see --help).")
		return apperrors.ExitErrorConfig
	}

	logger, closeLog, err := a.openLogger(shell)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	defer closeLog()

	starter, err := a.newStarter(a.Config.Engine, a.Config.EngineOptions())
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	recorder := metrics.NewRecorder(metrics.NewMemoryCollector())
	runner := orchestration.NewRunner(starter,
		orchestration.WithLogger(logger),
		orchestration.WithConvertOptions(a.Config.ToConvertOptions()),
		orchestration.WithRecorder(recorder),
	)
	afterBatch := func(sum orchestration.Summary) {
		a.writeArtifacts(sum, recorder, logger)
	}

	if shell {
		return a.runTUI(ctx, runner, afterBatch)
	}
	return a.runCLI(ctx, out, runner, afterBatch)
}

// runTUI launches the interactive shell and waits for a batch still running
// when it exits.
func (a *Application) runTUI(ctx context.Context, runner orchestration.BatchRunner, afterBatch func(orchestration.Summary)) int {
	worker := orchestration.NewWorker()
	code := a.runShell(ctx, tui.Options{
		Runner:     runner,
		Worker:     worker,
		Config:     a.Config,
		Version:    Version,
		AfterBatch: afterBatch,
	})
	worker.Wait()
	return code
}

// openLogger returns the diagnostic logger for the selected mode and a
// function releasing its output.
func (a *Application) openLogger(shell bool) (logging.Logger, func(), error) {
	if a.Config.LogFile != "" {
		f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, apperrors.WrapError(err, "opening log file %s", a.Config.LogFile)
		}
		return logging.NewFileLogger(f, component, a.Config.LogLevel), func() { _ = f.Close() }, nil
	}
	if shell {
		// The shell owns the terminal.
		return logging.Nop(), func() {}, nil
	}
	return logging.NewConsoleLogger(a.ErrWriter, component, a.Config.LogLevel), func() {}, nil
}

// writeArtifacts writes the optional metrics textfile and PDF report. Failures
// are logged and never change the batch outcome.
func (a *Application) writeArtifacts(sum orchestration.Summary, recorder *metrics.Recorder, logger logging.Logger) {
	if a.Config.MetricsFile != "" {
		if err := recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
			logger.Warn("metrics textfile not written", logging.String("path", a.Config.MetricsFile), logging.Err(err))
		}
	}
	if a.Config.Report != "" {
		if err := report.WriteFile(a.Config.Report, sum); err != nil {
			logger.Warn("report not written", logging.String("path", a.Config.Report), logging.Err(err))
		}
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// notifyContext returns a context canceled on SIGINT or SIGTERM.
func notifyContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}
