package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/xl2pdf/internal/format"
	"github.com/agbru/xl2pdf/internal/orchestration"
)

// batchStatus is the state shown in the header.
type batchStatus int

const (
	statusIdle batchStatus = iota
	statusRunning
	statusDone
	statusFailed
)

// HeaderModel renders the top bar: title, version, engine, status and the
// elapsed time of the current or last batch.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	engine    string
	status    batchStatus
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version, engine string) HeaderModel {
	return HeaderModel{version: version, engine: engine}
}

// Start marks the beginning of a batch.
func (h *HeaderModel) Start(now time.Time) {
	h.startTime = now
	h.endTime = time.Time{}
	h.status = statusRunning
}

// SetDone freezes the elapsed timer and records the outcome.
func (h *HeaderModel) SetDone(now time.Time, sum orchestration.Summary) {
	h.endTime = now
	h.status = statusDone
	if sum.Outcome() != orchestration.OutcomeSuccess && sum.Outcome() != orchestration.OutcomePartial {
		h.status = statusFailed
	}
	if sum.Engine != "" {
		h.engine = sum.Engine
	}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// elapsed returns the duration of the current or last batch.
func (h HeaderModel) elapsed(now time.Time) time.Duration {
	switch {
	case h.startTime.IsZero():
		return 0
	case !h.endTime.IsZero():
		return h.endTime.Sub(h.startTime)
	}
	return now.Sub(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "xl2pdf"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := versionStyle.Render(" | ")

	row := titleStyle.Render(titleText) +
		pipe + versionStyle.Render("Engine: ") + elapsedStyle.Render(h.engine) +
		pipe + h.statusView() +
		pipe + elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.elapsed(time.Now()))))

	innerWidth := max(h.width-2, 0)
	gap := max(innerWidth-lipgloss.Width(row), 0)
	return headerStyle.Width(h.width).Render(row + spaces(gap))
}

func (h HeaderModel) statusView() string {
	switch h.status {
	case statusRunning:
		return statusRunningStyle.Render("Converting")
	case statusDone:
		return statusDoneStyle.Render("Done")
	case statusFailed:
		return statusErrorStyle.Render("Failed")
	}
	return statusIdleStyle.Render("Idle")
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
