package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/xl2pdf/internal/config"
	"github.com/agbru/xl2pdf/internal/format"
	"github.com/agbru/xl2pdf/internal/orchestration"
	"github.com/agbru/xl2pdf/internal/ui"
)

// PrintExecutionConfig shows what is about to be converted and how.
func PrintExecutionConfig(cfg config.AppConfig, req orchestration.Request, out io.Writer) {
	mode := "workbook"
	if req.IsFolder {
		mode = "folder"
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Converting %s %s%s%s with the %s%s%s engine (quality %s).\n",
		mode, ui.ColorPrimary(), req.TargetPath, ui.ColorReset(),
		ui.ColorInfo(), cfg.Engine, ui.ColorReset(), cfg.Quality)
	if cfg.FileTimeout > 0 {
		fmt.Fprintf(out, "Per-file timeout: %s%s%s.\n", ui.ColorWarning(), cfg.FileTimeout, ui.ColorReset())
	}
	if cfg.ConfigFile != "" {
		fmt.Fprintf(out, "Config file: %s.\n", cfg.ConfigFile)
	}
	fmt.Fprintf(out, "\n--- Starting Conversion ---\n")
}

// FormatProgressLine renders the spinner suffix, e.g.
// "[████░░] 40.00% ETA: 12s (2/5) budget.xlsx".
func FormatProgressLine(frac float64, eta time.Duration, current, total int, label string) string {
	return fmt.Sprintf("%s (%d/%d) %s",
		format.FormatProgressBarWithETA(frac, eta, ProgressBarWidth), current, total, label)
}

// FormatSummaryLine renders the one-line result used in quiet mode.
func FormatSummaryLine(sum orchestration.Summary) string {
	line := fmt.Sprintf("%s: %d converted, %d failed in %s",
		sum.Outcome(), sum.SuccessCount, sum.FailCount, format.FormatSeconds(sum.Duration))
	if sum.Digest != "" && sum.Outcome() != orchestration.OutcomeSuccess {
		line += " - " + sum.Digest
	}
	return line
}

// FormatFileLine renders one row of the results table. nameWidth pads the
// workbook name so that columns line up.
func FormatFileLine(res orchestration.FileResult, nameWidth int) string {
	name := padRight(res.Name(), nameWidth-len([]rune(res.Name())))
	if !res.Success {
		return fmt.Sprintf("  %s✗%s %s   %s%s%s",
			ui.ColorError(), ui.ColorReset(), name, ui.ColorError(), res.Message(), ui.ColorReset())
	}
	return fmt.Sprintf("  %s✓%s %s   %s%s -> %s%s   %s",
		ui.ColorSuccess(), ui.ColorReset(), name,
		ui.ColorSecondary(), format.FormatMB(res.InputBytes), format.FormatMB(res.OutputBytes), ui.ColorReset(),
		format.FormatSeconds(res.Duration))
}

// DisplaySummary prints the per-file results and the batch totals.
func DisplaySummary(sum orchestration.Summary, out io.Writer) {
	fmt.Fprintf(out, "\n--- Batch Summary ---\n")

	if len(sum.Results) > 0 {
		width := 0
		for _, res := range sum.Results {
			if n := len([]rune(res.Name())); n > width {
				width = n
			}
		}
		for _, res := range sum.Results {
			fmt.Fprintln(out, FormatFileLine(res, width))
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Converted: %s%d%s   Failed: %s%d%s   Duration: %s\n",
		ui.ColorSuccess(), sum.SuccessCount, ui.ColorReset(),
		failColor(sum.FailCount), sum.FailCount, ui.ColorReset(),
		format.FormatSeconds(sum.Duration))

	switch outcome := sum.Outcome(); outcome {
	case orchestration.OutcomeSuccess:
		fmt.Fprintf(out, "%s%s✓ All files converted.%s\n", ui.ColorBold(), ui.ColorSuccess(), ui.ColorReset())
	case orchestration.OutcomePartial:
		fmt.Fprintf(out, "%s%d files converted (%d failed).%s\n",
			ui.ColorWarning(), sum.SuccessCount, sum.FailCount, ui.ColorReset())
	default:
		fmt.Fprintf(out, "%s%s✗ %s%s\n", ui.ColorBold(), ui.ColorError(), describeFailure(sum), ui.ColorReset())
	}
}

// DisplayQuietSummary prints FormatSummaryLine.
func DisplayQuietSummary(sum orchestration.Summary, out io.Writer) {
	fmt.Fprintln(out, FormatSummaryLine(sum))
}

func describeFailure(sum orchestration.Summary) string {
	switch sum.Outcome() {
	case orchestration.OutcomeInvalid:
		return "Nothing to convert: " + sum.Digest
	case orchestration.OutcomeEngineUnavailable:
		return "Engine unavailable: " + sum.Digest
	case orchestration.OutcomeAborted:
		return "Batch aborted: " + sum.Digest
	}
	return "No file converted: " + sum.Digest
}

func failColor(n int) string {
	if n > 0 {
		return ui.ColorError()
	}
	return ui.ColorSecondary()
}

// padRight pads s with n spaces.
func padRight(s string, n int) string {
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}
