package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/xl2pdf/internal/ui"
)

// Style variables for the shell.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle         lipgloss.Style
	panelTitleStyle    lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	logTextStyle       lipgloss.Style
	logInfoStyle       lipgloss.Style
	logSuccessStyle    lipgloss.Style
	logErrorStyle      lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	toggleOnStyle      lipgloss.Style
	toggleOffStyle     lipgloss.Style
	buttonStyle        lipgloss.Style
	buttonBusyStyle    lipgloss.Style
	noticeStyle        lipgloss.Style
	statusIdleStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	sparklineStyle     lipgloss.Style
	dialogInfoStyle    lipgloss.Style
	dialogErrorStyle   lipgloss.Style
	dialogHintStyle    lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)

	panelTitleStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	logTextStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	logInfoStyle = lipgloss.NewStyle().
		Foreground(t.Info)

	logSuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	logErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	metricLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	metricValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	toggleOnStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	toggleOffStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	buttonStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	buttonBusyStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	noticeStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	statusIdleStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusRunningStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	statusErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	sparklineStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	dialogInfoStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Accent).
		Padding(1, 2)

	dialogErrorStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Error).
		Padding(1, 2)

	dialogHintStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
