package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/xl2pdf/internal/config"
	apperrors "github.com/agbru/xl2pdf/internal/errors"
	"github.com/agbru/xl2pdf/internal/format"
	"github.com/agbru/xl2pdf/internal/metrics"
	"github.com/agbru/xl2pdf/internal/orchestration"
	"github.com/agbru/xl2pdf/internal/sysmon"
)

// Notices shown in the footer.
const (
	noticeBusy      = "A conversion is already running."
	noticeEmptyPath = "Please select a file or folder."
	noticeQuitting  = "Waiting for the running conversion to finish..."
)

// Options configures the shell.
type Options struct {
	// Runner executes batches; Worker runs them in the background.
	Runner orchestration.BatchRunner
	Worker *orchestration.Worker
	// Config supplies the initial path, folder mode and engine name.
	Config  config.AppConfig
	Version string
	// AfterBatch runs on the worker goroutine once a batch has finished,
	// before the completion dialog appears. May be nil.
	AfterBatch func(orchestration.Summary)
}

// focusArea is the panel receiving keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusLog
)

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the log and metrics panels.
func (l LayoutManager) bodyHeight() int {
	h := l.height - headerHeight - formHeight - progressHeight - footerHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// logsWidth returns the width allocated to the log panel.
func (l LayoutManager) logsWidth() int {
	return l.width * LogsPanelWidthPercent / 100
}

// rightWidth returns the width allocated to the metrics panel.
func (l LayoutManager) rightWidth() int {
	return l.width - l.logsWidth()
}

// Layout constants for the shell.
const (
	headerHeight          = 1
	formHeight            = 3
	progressHeight        = 1
	footerHeight          = 1
	minBodyHeight         = 8
	LogsPanelWidthPercent = 62
)

// BatchState holds the fields describing the batch in flight.
type BatchState struct {
	running  bool
	quitting bool
	progress *format.BatchProgress
	frac     float64
	eta      time.Duration
	current  int
	total    int
	label    string
	exitCode int
}

// Model is the root bubbletea model of the shell.
type Model struct {
	header  HeaderModel
	input   textinput.Model
	bar     progress.Model
	logs    LogsModel
	metrics MetricsModel
	help    help.Model
	keymap  KeyMap

	BatchState
	LayoutManager

	ctx        context.Context
	runner     orchestration.BatchRunner
	worker     *orchestration.Worker
	afterBatch func(orchestration.Summary)
	mem        *metrics.MemoryCollector
	ref        *programRef

	folder bool
	focus  focusArea
	notice string
	dialog *Dialog
}

// NewModel creates the shell model. The path field is prefilled from
// opts.Config.Path.
func NewModel(ctx context.Context, opts Options) Model {
	input := textinput.New()
	input.Prompt = "Path: "
	input.Placeholder = "workbook or folder (type or drop here)"
	input.CharLimit = 4096
	input.Focus()

	folder := false
	if opts.Config.Path != "" {
		req := opts.Config.Request()
		input.SetValue(req.TargetPath)
		folder = req.IsFolder
	}

	worker := opts.Worker
	if worker == nil {
		worker = orchestration.NewWorker()
	}

	return Model{
		header:     NewHeaderModel(opts.Version, opts.Config.Engine),
		input:      input,
		bar:        progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		logs:       NewLogsModel(),
		metrics:    NewMetricsModel(),
		help:       help.New(),
		keymap:     DefaultKeyMap(),
		BatchState: BatchState{exitCode: apperrors.ExitSuccess},
		ctx:        ctx,
		runner:     opts.Runner,
		worker:     worker,
		afterBatch: opts.AfterBatch,
		mem:        metrics.NewMemoryCollector(),
		ref:        &programRef{},
		folder:     folder,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(), sampleStatsCmd(m.mem))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		m.applyProgress(msg, time.Now())
		return m, nil

	case LogMsg:
		m.logs.Append(msg.Line)
		return m, nil

	case DoneMsg:
		m.finishBatch(msg.Summary, time.Now())
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleStatsCmd(m.mem), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemory(msg.Snapshot, msg.System)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Printable keys belong to the path field while it has focus.
	typed := m.focus == focusInput && m.dialog == nil && msg.Type == tea.KeyRunes

	if key.Matches(msg, m.keymap.Quit) && !typed {
		return m.quit()
	}

	if m.dialog != nil {
		if key.Matches(msg, m.keymap.Convert) || key.Matches(msg, m.keymap.Dismiss) {
			m.dialog = nil
		}
		return m, nil
	}

	if msg.Paste {
		return m.handleDrop(msg)
	}

	switch {
	case key.Matches(msg, m.keymap.Convert):
		return m.startBatch()

	case key.Matches(msg, m.keymap.ToggleFolder):
		if !m.running {
			m.folder = !m.folder
		}
		return m, nil

	case key.Matches(msg, m.keymap.Focus):
		if m.focus == focusInput {
			m.focus = focusLog
			m.input.Blur()
			return m, nil
		}
		m.focus = focusInput
		return m, m.input.Focus()

	case key.Matches(msg, m.keymap.Dismiss):
		m.notice = ""
		if m.help.ShowAll {
			m.toggleHelp()
		}
		return m, nil

	case key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.logs.Update(msg)
		return m, nil
	}

	if m.focus == focusLog {
		switch {
		case key.Matches(msg, m.keymap.Help):
			m.toggleHelp()
		case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down):
			m.logs.Update(msg)
		}
		return m, nil
	}

	if key.Matches(msg, m.keymap.Help) && !typed {
		m.toggleHelp()
		return m, nil
	}

	// The path cannot be edited while a batch runs.
	if m.running {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleDrop applies a terminal drop. Text that does not name an existing
// file or folder is treated as typed input.
func (m Model) handleDrop(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.running {
		m.notice = noticeBusy
		return m, nil
	}
	if path, isFolder, ok := ParseDroppedPath(string(msg.Runes)); ok {
		m.input.SetValue(path)
		m.input.CursorEnd()
		m.folder = isFolder
		m.notice = ""
		return m, nil
	}
	if m.focus != focusInput {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startBatch hands the current path to the worker.
func (m Model) startBatch() (tea.Model, tea.Cmd) {
	if m.running || m.worker.Busy() {
		m.notice = noticeBusy
		return m, nil
	}
	path := strings.TrimSpace(m.input.Value())
	if path == "" {
		m.notice = noticeEmptyPath
		return m, nil
	}

	req := orchestration.Request{TargetPath: path, IsFolder: m.folder}
	obs := &TUIObserver{ref: m.ref, afterBatch: m.afterBatch}
	if err := m.worker.Start(m.ctx, m.runner, req, obs); err != nil {
		if errors.Is(err, apperrors.ErrBatchRunning) {
			m.notice = noticeBusy
		} else {
			m.notice = err.Error()
		}
		return m, nil
	}

	m.running = true
	m.notice = ""
	m.progress = nil
	m.frac, m.eta = 0, 0
	m.current, m.total, m.label = 0, 0, ""
	m.metrics.Reset()
	m.header.Start(time.Now())
	return m, nil
}

func (m *Model) applyProgress(msg ProgressMsg, now time.Time) {
	if m.progress == nil || m.total != msg.Total {
		m.progress = format.NewBatchProgress(msg.Total)
	}
	m.frac, m.eta = m.progress.Update(msg.Current)
	m.current, m.total, m.label = msg.Current, msg.Total, msg.Label
	m.metrics.UpdateProgress(msg.Current, msg.Total, now)
}

func (m *Model) finishBatch(sum orchestration.Summary, now time.Time) {
	m.running = false
	m.eta = 0
	if m.total > 0 && m.current == m.total {
		m.frac = 1
	}
	m.exitCode = apperrors.ExitCodeFor(sum.Err, sum.FailCount)
	m.header.SetDone(now, sum)
	m.metrics.SetSummary(sum)
	d := dialogFor(sum)
	m.dialog = &d
}

// quit exits immediately when idle. While a batch runs, the shell waits for
// its completion so that the engine is shut down first.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.running {
		m.quitting = true
		m.notice = noticeQuitting
		return m, nil
	}
	return m, tea.Quit
}

// View renders the entire shell.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.dialog != nil {
		return m.dialog.View(m.width, m.height)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.logs.View(), m.metrics.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.formView(),
		m.progressView(),
		body,
		m.footerView(),
	)
}

func (m Model) formView() string {
	toggle := toggleOffStyle.Render("[ ] Folder")
	if m.folder {
		toggle = toggleOnStyle.Render("[x] Folder")
	}
	button := buttonStyle.Render("[enter] Convert")
	if m.running {
		button = buttonBusyStyle.Render("Converting...")
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), "  ", toggle, "  ", button)
	return panelStyle.Width(max(m.width-2, 0)).Render(row)
}

func (m Model) progressView() string {
	stats := ""
	if m.total > 0 {
		stats = fmt.Sprintf(" %3.0f%%  %d/%d", m.frac*100, m.current, m.total)
		if m.running {
			stats += "  ETA " + format.FormatETA(m.eta) + "  " + m.label
		}
	}
	return " " + m.bar.ViewAs(m.frac) + metricLabelStyle.Render(stats)
}

func (m Model) footerView() string {
	if m.notice != "" {
		return " " + noticeStyle.Render(m.notice)
	}
	return " " + m.help.View(m.keymap)
}

func (m *Model) toggleHelp() {
	m.help.ShowAll = !m.help.ShowAll
	m.layoutPanels()
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.help.Width = m.width - 2
	m.input.Width = max(m.width-40, 10)
	m.bar.Width = max(m.width/2, 10)
	bodyHeight := m.bodyHeight()
	if m.help.ShowAll {
		bodyHeight -= 2
	}
	m.logs.SetSize(m.logsWidth(), bodyHeight)
	m.metrics.SetSize(m.rightWidth(), bodyHeight)
}

// ExitCode returns the exit code of the last batch.
func (m Model) ExitCode() int { return m.exitCode }

// Run is the public entry point for the interactive shell.
// It creates the bubbletea program, runs it, and returns the exit code of the
// last batch.
func Run(ctx context.Context, opts Options) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so the worker can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleStatsCmd reads runtime memory stats and system load off the UI
// goroutine and returns a MemStatsMsg.
func sampleStatsCmd(mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg{Snapshot: mc.Snapshot(), System: sysmon.Sample()}
	}
}
