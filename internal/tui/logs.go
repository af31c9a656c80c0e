package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// maxLogLines bounds the log history kept by the panel.
const maxLogLines = 2000

// LogsModel is the scrollable log panel. It follows new lines until the
// user scrolls up, and resumes following once scrolled back to the bottom.
type LogsModel struct {
	viewport viewport.Model
	lines    []string
	follow   bool
	width    int
	height   int
}

// NewLogsModel creates an empty log panel.
func NewLogsModel() LogsModel {
	return LogsModel{viewport: viewport.New(0, 0), follow: true}
}

// SetSize updates the panel dimensions, borders included.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.viewport.Width = max(w-4, 0)
	l.viewport.Height = max(h-3, 0)
	l.refresh()
}

// Append adds one log line.
func (l *LogsModel) Append(line string) {
	l.lines = append(l.lines, line)
	if over := len(l.lines) - maxLogLines; over > 0 {
		l.lines = l.lines[over:]
	}
	l.refresh()
}

// Lines returns the raw log lines.
func (l LogsModel) Lines() []string { return l.lines }

// Update forwards scroll keys to the viewport.
func (l *LogsModel) Update(msg tea.Msg) {
	l.viewport, _ = l.viewport.Update(msg)
	l.follow = l.viewport.AtBottom()
}

func (l *LogsModel) refresh() {
	rendered := make([]string, len(l.lines))
	for i, line := range l.lines {
		rendered[i] = styleLogLine(line)
	}
	l.viewport.SetContent(strings.Join(rendered, "\n"))
	if l.follow {
		l.viewport.GotoBottom()
	}
}

// styleLogLine colors a log line by its kind.
func styleLogLine(line string) string {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "✓"):
		return logSuccessStyle.Render(line)
	case strings.HasPrefix(trimmed, "✗"), strings.HasPrefix(trimmed, "ERROR"),
		strings.HasPrefix(trimmed, "Critical error"):
		return logErrorStyle.Render(line)
	case strings.HasPrefix(trimmed, "Total "), trimmed == "Engine closed.":
		return logInfoStyle.Render(line)
	}
	return logTextStyle.Render(line)
}

// View renders the panel.
func (l LogsModel) View() string {
	title := panelTitleStyle.Render("LOG")
	if len(l.lines) > 0 && !l.follow {
		title += metricLabelStyle.Render(fmt.Sprintf("  %3.0f%%", l.viewport.ScrollPercent()*100))
	}
	return panelStyle.
		Width(max(l.width-2, 0)).
		Height(max(l.height-2, 0)).
		Render(title + "\n" + l.viewport.View())
}
