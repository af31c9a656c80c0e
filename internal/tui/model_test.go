package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/xl2pdf/internal/config"
	apperrors "github.com/agbru/xl2pdf/internal/errors"
	"github.com/agbru/xl2pdf/internal/orchestration"
)

// blockingRunner records requests and finishes a batch only when released.
type blockingRunner struct {
	mu       sync.Mutex
	requests []orchestration.Request
	started  chan struct{}
	release  chan struct{}
}

func newBlockingRunner() *blockingRunner {
	return &blockingRunner{started: make(chan struct{}, 4), release: make(chan struct{})}
}

func (r *blockingRunner) Run(_ context.Context, req orchestration.Request, obs orchestration.Observer) orchestration.Summary {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.mu.Unlock()
	r.started <- struct{}{}
	<-r.release
	sum := orchestration.Summary{SuccessCount: 1}
	obs.OnDone(sum)
	return sum
}

func (r *blockingRunner) lastRequest() orchestration.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[len(r.requests)-1]
}

func newTestModel(t *testing.T, runner orchestration.BatchRunner, worker *orchestration.Worker) Model {
	t.Helper()
	m := NewModel(context.Background(), Options{
		Runner:  runner,
		Worker:  worker,
		Config:  config.AppConfig{Engine: "soffice"},
		Version: "v1.0.0",
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_EmptyPathNotice(t *testing.T) {
	runner := newBlockingRunner()
	m := newTestModel(t, runner, orchestration.NewWorker())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.notice != noticeEmptyPath {
		t.Errorf("notice = %q, want %q", m.notice, noticeEmptyPath)
	}
	if m.running {
		t.Error("no batch should start without a path")
	}
}

func TestModel_ConvertLifecycle(t *testing.T) {
	runner := newBlockingRunner()
	worker := orchestration.NewWorker()
	m := newTestModel(t, runner, worker)

	m = typeText(m, "/data/q3.xlsx")
	if m.input.Value() != "/data/q3.xlsx" {
		t.Fatalf("input = %q", m.input.Value())
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.running {
		t.Fatal("batch should be running after enter")
	}
	<-runner.started
	if got := runner.lastRequest(); got.TargetPath != "/data/q3.xlsx" || got.IsFolder {
		t.Errorf("request = %+v", got)
	}

	// Controls are disabled while running.
	m = typeText(m, "x")
	if m.input.Value() != "/data/q3.xlsx" {
		t.Errorf("path edited while running: %q", m.input.Value())
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if m.folder {
		t.Error("folder mode toggled while running")
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.notice != noticeBusy {
		t.Errorf("notice = %q, want %q", m.notice, noticeBusy)
	}

	next, _ := m.Update(LogMsg{Line: "Total 1 files will be processed. Starting engine..."})
	m = next.(Model)
	next, _ = m.Update(ProgressMsg{Current: 0, Total: 1, Label: "q3.xlsx"})
	m = next.(Model)
	if m.label != "q3.xlsx" || m.total != 1 {
		t.Errorf("progress not applied: %+v", m.BatchState)
	}
	next, _ = m.Update(ProgressMsg{Current: 1, Total: 1, Label: "q3.xlsx"})
	m = next.(Model)
	if m.frac != 1 {
		t.Errorf("frac = %f, want 1", m.frac)
	}

	close(runner.release)
	worker.Wait()
	next, _ = m.Update(DoneMsg{Summary: orchestration.Summary{SuccessCount: 1}})
	m = next.(Model)

	if m.running {
		t.Error("batch should be finished")
	}
	if m.dialog == nil || m.dialog.Body != "1 files converted (0 failed)" {
		t.Fatalf("dialog = %+v", m.dialog)
	}
	if m.ExitCode() != apperrors.ExitSuccess {
		t.Errorf("exit code = %d", m.ExitCode())
	}
	if len(m.logs.Lines()) != 1 {
		t.Errorf("log lines = %q", m.logs.Lines())
	}
	if !strings.Contains(m.View(), "Conversion complete") {
		t.Error("view should show the completion dialog")
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.dialog != nil {
		t.Error("esc should close the dialog")
	}
	if !strings.Contains(m.View(), "xl2pdf v1.0.0") {
		t.Error("view should show the header")
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m := newTestModel(t, newBlockingRunner(), orchestration.NewWorker())

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if isQuit(cmd) {
		t.Error("'q' typed in the path field should not quit")
	}
	if m.input.Value() != "q" {
		t.Errorf("input = %q, want q", m.input.Value())
	}

	_, cmd = press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Error("ctrl+c should quit")
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusLog {
		t.Fatal("tab should move focus to the log")
	}
	_, cmd = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !isQuit(cmd) {
		t.Error("'q' should quit when the log has focus")
	}
}

func TestModel_QuitWaitsForBatch(t *testing.T) {
	runner := newBlockingRunner()
	worker := orchestration.NewWorker()
	m := newTestModel(t, runner, worker)

	m = typeText(m, "/data")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	<-runner.started

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if isQuit(cmd) {
		t.Fatal("quit should wait for the running batch")
	}
	if !m.quitting || m.notice != noticeQuitting {
		t.Errorf("quitting=%v notice=%q", m.quitting, m.notice)
	}

	close(runner.release)
	worker.Wait()
	_, cmd = m.Update(DoneMsg{Summary: orchestration.Summary{SuccessCount: 1}})
	if !isQuit(cmd) {
		t.Error("shell should quit once the batch is done")
	}
}

func TestModel_DropSetsPathAndMode(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.xlsx")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, newBlockingRunner(), orchestration.NewWorker())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("'" + dir + "'"), Paste: true})
	if m.input.Value() != dir || !m.folder {
		t.Errorf("folder drop: input=%q folder=%v", m.input.Value(), m.folder)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(file), Paste: true})
	if m.input.Value() != file || m.folder {
		t.Errorf("file drop: input=%q folder=%v", m.input.Value(), m.folder)
	}

	missing := filepath.Join(dir, "missing.xlsx")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(missing), Paste: true})
	if m.folder {
		t.Error("a paste that names nothing should not change the mode")
	}
}

func TestModel_ToggleFolder(t *testing.T) {
	m := newTestModel(t, newBlockingRunner(), orchestration.NewWorker())
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if !m.folder {
		t.Error("ctrl+f should enable folder mode")
	}
	if !strings.Contains(m.View(), "[x] Folder") {
		t.Error("view should show the folder toggle")
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if m.folder {
		t.Error("ctrl+f should disable folder mode")
	}
}

func TestModel_PrefilledFromConfig(t *testing.T) {
	dir := t.TempDir()
	m := NewModel(context.Background(), Options{
		Runner: newBlockingRunner(),
		Config: config.AppConfig{Path: dir, Engine: "auto"},
	})
	if m.input.Value() != dir || !m.folder {
		t.Errorf("input=%q folder=%v", m.input.Value(), m.folder)
	}
	if m.worker == nil {
		t.Error("a worker should be created when none is given")
	}
}

func TestModel_FailedBatchExitCode(t *testing.T) {
	m := newTestModel(t, newBlockingRunner(), orchestration.NewWorker())
	m.running = true
	next, _ := m.Update(DoneMsg{Summary: orchestration.Summary{SuccessCount: 1, FailCount: 1, Digest: "b.xlsx: locked"}})
	m = next.(Model)
	if m.ExitCode() != apperrors.ExitErrorPartial {
		t.Errorf("exit code = %d, want %d", m.ExitCode(), apperrors.ExitErrorPartial)
	}
	if m.header.status != statusDone {
		t.Errorf("header status = %v, want done", m.header.status)
	}
}

func TestHeaderModel_Elapsed(t *testing.T) {
	h := NewHeaderModel("dev", "excel")
	now := time.Unix(100, 0)
	if h.elapsed(now) != 0 {
		t.Error("idle header should show zero elapsed time")
	}
	h.Start(now)
	if got := h.elapsed(now.Add(3 * time.Second)); got != 3*time.Second {
		t.Errorf("running elapsed = %v", got)
	}
	h.SetDone(now.Add(5*time.Second), orchestration.Summary{Err: apperrors.ValidationError{}})
	if got := h.elapsed(now.Add(time.Hour)); got != 5*time.Second {
		t.Errorf("frozen elapsed = %v", got)
	}
	if h.status != statusFailed {
		t.Errorf("status = %v, want failed", h.status)
	}
}
