package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/xl2pdf/internal/cli"
	apperrors "github.com/agbru/xl2pdf/internal/errors"
	"github.com/agbru/xl2pdf/internal/orchestration"
)

// runCLI converts the configured path in the foreground and prints the
// summary. An interrupt does not stop the batch: the engine is always closed
// before exit, and the exit code then reports the interruption.
func (a *Application) runCLI(ctx context.Context, out io.Writer, runner orchestration.BatchRunner, afterBatch func(orchestration.Summary)) int {
	ctx, stopSignals := notifyContext(ctx)
	defer stopSignals()

	req := a.Config.Request()
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, req, out)
	}

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.ErrWriter, "Interrupt received, finishing the running conversion before exit...")
		case <-finished:
		}
	}()

	display := cli.NewProgressDisplay(out, a.Config.Quiet)
	sum := runner.Run(ctx, req, display)
	afterBatch(sum)

	if a.Config.Quiet {
		cli.DisplayQuietSummary(sum, out)
	} else {
		cli.DisplaySummary(sum, out)
	}

	if ctx.Err() != nil {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitCodeFor(sum.Err, sum.FailCount)
}
