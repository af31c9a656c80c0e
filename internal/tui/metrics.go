package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/xl2pdf/internal/format"
	"github.com/agbru/xl2pdf/internal/metrics"
	"github.com/agbru/xl2pdf/internal/orchestration"
	"github.com/agbru/xl2pdf/internal/sysmon"
)

// MetricsModel displays batch statistics, process memory and system load.
type MetricsModel struct {
	mem       metrics.MemorySnapshot
	sys       sysmon.Stats
	done      int
	total     int
	fileStart time.Time
	lastFile  time.Duration
	totalTime time.Duration
	durations *RingBuffer
	summary   *orchestration.Summary
	width     int
	height    int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{durations: NewRingBuffer(32)}
}

// SetSize updates dimensions. The duration history keeps as many samples as
// the sparkline can show.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.durations.Resize(max(w-18, 1))
}

// Reset clears the statistics of the previous batch.
func (m *MetricsModel) Reset() {
	m.done = 0
	m.total = 0
	m.fileStart = time.Time{}
	m.lastFile = 0
	m.totalTime = 0
	m.durations.Reset()
	m.summary = nil
}

// UpdateMemory stores a memory reading and a system snapshot.
func (m *MetricsModel) UpdateMemory(s metrics.MemorySnapshot, sys sysmon.Stats) {
	m.mem = s
	m.sys = sys
}

// UpdateProgress consumes a progress tick. A tick with current equal to the
// files done so far marks the start of a file; a higher one marks its end.
func (m *MetricsModel) UpdateProgress(current, total int, now time.Time) {
	m.total = total
	if current > m.done {
		if !m.fileStart.IsZero() {
			d := now.Sub(m.fileStart)
			m.lastFile = d
			m.totalTime += d
			m.durations.Push(d.Seconds())
		}
		m.done = current
		return
	}
	m.fileStart = now
}

// SetSummary records the final counts of a batch.
func (m *MetricsModel) SetSummary(sum orchestration.Summary) {
	m.summary = &sum
}

// average returns the mean time per finished file.
func (m MetricsModel) average() time.Duration {
	if m.durations.Len() == 0 || m.done == 0 {
		return 0
	}
	return m.totalTime / time.Duration(m.done)
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder
	rows.WriteString(panelTitleStyle.Render("BATCH"))

	colWidth := max((m.width-4)/2, 0)
	converted, failed := "-", "-"
	if m.summary != nil {
		converted = fmt.Sprintf("%d", m.summary.SuccessCount)
		failed = fmt.Sprintf("%d", m.summary.FailCount)
	}

	lines := [][2]string{
		{
			formatMetricCol("Files:", fmt.Sprintf("%d/%d", m.done, m.total), colWidth),
			formatMetricCol("Last file:", format.FormatSeconds(m.lastFile), colWidth),
		},
		{
			formatMetricCol("Converted:", converted, colWidth),
			formatMetricCol("Avg/file:", format.FormatSeconds(m.average()), colWidth),
		},
		{
			formatMetricCol("Failed:", failed, colWidth),
			formatMetricCol("Engines:", fmt.Sprintf("%d", m.sys.Engines), colWidth),
		},
		{
			formatMetricCol("Heap:", metrics.FormatBytes(m.mem.HeapAlloc), colWidth),
			formatMetricCol("CPU/Mem:", fmt.Sprintf("%.0f%% / %.0f%%", m.sys.CPUPercent, m.sys.MemPercent), colWidth),
		},
	}
	for _, l := range lines {
		rows.WriteString("\n")
		rows.WriteString(l[0])
		rows.WriteString(l[1])
	}

	rows.WriteString("\n")
	rows.WriteString(fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", "Times:")),
		sparklineStyle.Render(RenderSparkline(scaleToPercent(m.durations.Slice())))))

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	// Pad to fixed column width using lipgloss-aware width
	visible := lipgloss.Width(cell)
	if visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
