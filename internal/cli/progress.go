package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/briandowns/spinner"

	"github.com/agbru/xl2pdf/internal/format"
	"github.com/agbru/xl2pdf/internal/orchestration"
)

// ProgressDisplay is the command-line batch observer. Log lines are printed
// as they arrive and a spinner line shows the progress bar, the ETA and the
// workbook being converted. In quiet mode nothing is printed.
type ProgressDisplay struct {
	out   io.Writer
	quiet bool

	mu       sync.Mutex
	spin     Spinner
	spinning bool
	progress *format.BatchProgress
	total    int
	summary  orchestration.Summary
	done     bool
}

var _ orchestration.Observer = (*ProgressDisplay)(nil)

// NewProgressDisplay creates a display writing to out.
func NewProgressDisplay(out io.Writer, quiet bool) *ProgressDisplay {
	return &ProgressDisplay{out: out, quiet: quiet}
}

// OnProgress refreshes the spinner line.
func (d *ProgressDisplay) OnProgress(current, total int, label string) {
	if d.quiet {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.progress == nil || d.total != total {
		d.progress = format.NewBatchProgress(total)
		d.total = total
	}
	frac, eta := d.progress.Update(current)
	if d.spin == nil {
		d.spin = newSpinner(spinner.WithWriter(d.out))
	}
	d.spin.UpdateSuffix(" " + FormatProgressLine(frac, eta, current, total, label))
	if !d.spinning && current < total {
		d.spin.Start()
		d.spinning = true
	}
}

// OnLog prints one log line above the spinner.
func (d *ProgressDisplay) OnLog(line string) {
	if d.quiet {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.spinning {
		d.spin.Stop()
	}
	fmt.Fprintln(d.out, line)
	if d.spinning {
		d.spin.Start()
	}
}

// OnDone stops the spinner and keeps the summary.
func (d *ProgressDisplay) OnDone(summary orchestration.Summary) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.spinning {
		d.spin.Stop()
		d.spinning = false
	}
	d.summary = summary
	d.done = true
}

// Summary returns the summary delivered by OnDone and whether it arrived.
func (d *ProgressDisplay) Summary() (orchestration.Summary, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.summary, d.done
}
