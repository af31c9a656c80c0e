package cli

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/xl2pdf/internal/config"
	apperrors "github.com/agbru/xl2pdf/internal/errors"
	"github.com/agbru/xl2pdf/internal/orchestration"
	"github.com/agbru/xl2pdf/internal/ui"
)

// MockSpinner records calls instead of drawing.
type MockSpinner struct {
	mu      sync.Mutex
	starts  int
	stops   int
	suffix  string
	running bool
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starts++
	m.running = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops++
	m.running = false
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

// useMockSpinner swaps newSpinner for the duration of the test. Tests using
// it do not run in parallel.
func useMockSpinner(t *testing.T) *MockSpinner {
	t.Helper()
	mock := &MockSpinner{}
	original := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return mock }
	t.Cleanup(func() { newSpinner = original })
	return mock
}

func noColor(t *testing.T) {
	t.Helper()
	previous := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(previous) })
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(&bytes.Buffer{}))
	rs := &realSpinner{s}

	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
	if s.Suffix != " test" {
		t.Errorf("suffix = %q", s.Suffix)
	}
}

func TestProgressDisplay(t *testing.T) {
	mock := useMockSpinner(t)
	var out bytes.Buffer
	d := NewProgressDisplay(&out, false)

	d.OnLog("Total 2 files will be processed. Starting engine...")
	d.OnProgress(0, 2, "a.xlsx")
	if mock.starts != 1 || !mock.running {
		t.Fatalf("spinner should start on first progress, starts=%d", mock.starts)
	}
	if !strings.Contains(mock.suffix, "(0/2) a.xlsx") {
		t.Errorf("suffix = %q", mock.suffix)
	}

	d.OnLog("  Opening: a.xlsx (0.01 MB)")
	if mock.stops != 1 || mock.starts != 2 {
		t.Errorf("log lines should pause the spinner: starts=%d stops=%d", mock.starts, mock.stops)
	}

	d.OnProgress(1, 2, "a.xlsx")
	d.OnProgress(2, 2, "b.xlsx")
	if !strings.Contains(mock.suffix, "100.00%") {
		t.Errorf("final suffix = %q", mock.suffix)
	}

	sum := orchestration.Summary{SuccessCount: 2}
	d.OnDone(sum)
	if mock.running {
		t.Error("spinner should be stopped after OnDone")
	}
	got, ok := d.Summary()
	if !ok || got.SuccessCount != 2 {
		t.Errorf("Summary() = %+v, %v", got, ok)
	}

	lines := out.String()
	for _, want := range []string{"Starting engine...", "Opening: a.xlsx"} {
		if !strings.Contains(lines, want) {
			t.Errorf("output missing %q:\n%s", want, lines)
		}
	}
}

func TestProgressDisplay_Quiet(t *testing.T) {
	mock := useMockSpinner(t)
	var out bytes.Buffer
	d := NewProgressDisplay(&out, true)

	d.OnLog("Engine closed.")
	d.OnProgress(0, 1, "a.xlsx")
	d.OnDone(orchestration.Summary{})

	if out.Len() != 0 {
		t.Errorf("quiet mode printed %q", out.String())
	}
	if mock.starts != 0 {
		t.Error("quiet mode should not start the spinner")
	}
	if _, ok := d.Summary(); !ok {
		t.Error("quiet mode should still record the summary")
	}
}

func TestDisplaySummary(t *testing.T) {
	noColor(t)

	tests := []struct {
		name     string
		sum      orchestration.Summary
		contains []string
	}{
		{
			name: "all converted",
			sum: orchestration.Summary{
				SuccessCount: 1,
				Duration:     1500 * time.Millisecond,
				Results: []orchestration.FileResult{
					{Path: "/data/a.xlsx", Success: true, InputBytes: 1 << 20, OutputBytes: 2 << 20, Duration: time.Second},
				},
			},
			contains: []string{"--- Batch Summary ---", "✓ a.xlsx", "1.00 MB -> 2.00 MB", "1.00 s", "Converted: 1", "All files converted."},
		},
		{
			name: "partial",
			sum: orchestration.Summary{
				SuccessCount: 1,
				FailCount:    1,
				Digest:       "b.xlsx: locked",
				Results: []orchestration.FileResult{
					{Path: "/data/a.xlsx", Success: true},
					{Path: "/data/b.xlsx", Err: errors.New("locked")},
				},
			},
			contains: []string{"✗ b.xlsx", "locked", "Failed: 1", "1 files converted (1 failed)."},
		},
		{
			name: "validation",
			sum: orchestration.Summary{
				Err:    apperrors.ValidationError{Field: "folder", Message: orchestration.DigestNoWorkbooks},
				Digest: orchestration.DigestNoWorkbooks,
			},
			contains: []string{"Nothing to convert: no Excel files found"},
		},
		{
			name: "engine",
			sum: orchestration.Summary{
				Err:    apperrors.EngineUnavailableError{Engine: "excel", NotRegistered: true},
				Digest: orchestration.DigestEngineNotInstalled,
			},
			contains: []string{"Engine unavailable: Excel not found or COM access error"},
		},
		{
			name: "all failed",
			sum: orchestration.Summary{
				FailCount: 1,
				Digest:    "a.xlsx: boom",
				Results:   []orchestration.FileResult{{Path: "a.xlsx", Err: errors.New("boom")}},
			},
			contains: []string{"No file converted: a.xlsx: boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			DisplaySummary(tt.sum, &buf)
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestFormatSummaryLine(t *testing.T) {
	t.Parallel()
	ok := orchestration.Summary{SuccessCount: 3, Duration: 2 * time.Second, Digest: ""}
	if got, want := FormatSummaryLine(ok), "success: 3 converted, 0 failed in 2.00 s"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	partial := orchestration.Summary{SuccessCount: 1, FailCount: 1, Digest: "b.xlsx: locked"}
	if got := FormatSummaryLine(partial); !strings.HasSuffix(got, " - b.xlsx: locked") {
		t.Errorf("partial line %q should end with the digest", got)
	}
}

func TestFormatFileLine_Alignment(t *testing.T) {
	noColor(t)
	short := FormatFileLine(orchestration.FileResult{Path: "a.xlsx", Success: true}, 10)
	long := FormatFileLine(orchestration.FileResult{Path: "longer.xlsx", Success: true}, 11)
	if strings.Index(short, "0.00 MB") != strings.Index(long, "0.00 MB")-1 {
		t.Errorf("columns misaligned:\n%q\n%q", short, long)
	}
}

func TestPrintExecutionConfig(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	cfg := config.AppConfig{Engine: "soffice", Quality: "minimum", FileTimeout: time.Minute, ConfigFile: "xl2pdf.yaml"}
	PrintExecutionConfig(cfg, orchestration.Request{TargetPath: "/data", IsFolder: true}, &buf)

	for _, want := range []string{
		"Converting folder /data with the soffice engine (quality minimum).",
		"Per-file timeout: 1m0s.",
		"Config file: xl2pdf.yaml.",
		"--- Starting Conversion ---",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}
