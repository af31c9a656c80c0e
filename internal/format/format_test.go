package format

import (
	"strings"
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// TestBatchProgressETA verifies the per-file estimate and its smoothing.
func TestBatchProgressETA(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newBatchProgress(4, clock.now)

	if frac, eta := p.Update(0); frac != 0 || eta != 0 {
		t.Fatalf("before any file: got (%f, %v), want (0, 0)", frac, eta)
	}

	clock.advance(2 * time.Second)
	frac, eta := p.Update(1)
	if frac != 0.25 {
		t.Errorf("fraction = %f, want 0.25", frac)
	}
	if eta != 6*time.Second {
		t.Errorf("eta = %v, want 6s", eta)
	}

	clock.advance(4 * time.Second)
	_, eta = p.Update(2)
	// smoothed per-file = 0.3*4s + 0.7*2s = 2.6s, two files left
	if want := 5200 * time.Millisecond; eta != want {
		t.Errorf("eta = %v, want %v", eta, want)
	}

	clock.advance(time.Second)
	frac, eta = p.Update(4)
	if frac != 1 || eta != 0 {
		t.Errorf("complete: got (%f, %v), want (1, 0)", frac, eta)
	}
	if p.Elapsed() != 7*time.Second {
		t.Errorf("Elapsed() = %v, want 7s", p.Elapsed())
	}
}

// TestBatchProgressEdgeCases verifies clamping and empty batches.
func TestBatchProgressEdgeCases(t *testing.T) {
	t.Parallel()
	t.Run("done beyond total is clamped", func(t *testing.T) {
		t.Parallel()
		p := NewBatchProgress(2)
		if frac, _ := p.Update(5); frac != 1 {
			t.Errorf("fraction = %f, want 1", frac)
		}
	})

	t.Run("zero total", func(t *testing.T) {
		t.Parallel()
		p := NewBatchProgress(0)
		if p.Fraction() != 0 || p.ETA() != 0 {
			t.Errorf("empty batch should report (0, 0), got (%f, %v)", p.Fraction(), p.ETA())
		}
	})

	t.Run("eta is capped", func(t *testing.T) {
		t.Parallel()
		clock := &fakeClock{t: time.Unix(0, 0)}
		p := newBatchProgress(1000, clock.now)
		clock.advance(time.Hour)
		if _, eta := p.Update(1); eta != maxETA {
			t.Errorf("eta = %v, want cap %v", eta, maxETA)
		}
	})
}

// TestFormatETA verifies ETA formatting.
func TestFormatETA(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		eta      time.Duration
		expected string
	}{
		{"Zero duration", 0, "calculating..."},
		{"Negative duration", -time.Second, "calculating..."},
		{"Less than a second", 500 * time.Millisecond, "< 1s"},
		{"One second", time.Second, "1s"},
		{"Multiple seconds", 45 * time.Second, "45s"},
		{"One minute", time.Minute, "1m"},
		{"Minutes and seconds", 2*time.Minute + 30*time.Second, "2m30s"},
		{"One hour", time.Hour, "1h"},
		{"Hours and minutes", time.Hour + 15*time.Minute, "1h15m"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatETA(tc.eta); got != tc.expected {
				t.Errorf("FormatETA(%v) = %q, want %q", tc.eta, got, tc.expected)
			}
		})
	}
}

// TestProgressBar verifies progress bar rendering.
func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		expected string
	}{
		{0.0, 10, "░░░░░░░░░░"},
		{0.5, 10, "█████░░░░░"},
		{1.0, 10, "██████████"},
		{1.2, 10, "██████████"},  // Cap at 1.0
		{-0.1, 10, "░░░░░░░░░░"}, // Floor at 0.0
	}

	for _, tt := range tests {
		got := ProgressBar(tt.progress, tt.length)
		if got != tt.expected {
			t.Errorf("ProgressBar(%f, %d) = %s; want %s", tt.progress, tt.length, got, tt.expected)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.5, 30*time.Second, 10)
	for _, want := range []string{"[", "]", " 50.00%", "ETA: 30s"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatProgressBarWithETA() = %q, missing %q", got, want)
		}
	}
}

// TestFormatExecutionDuration verifies duration formatting.
func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}

	for _, tt := range tests {
		got := FormatExecutionDuration(tt.d)
		if got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestFormatSecondsAndMB(t *testing.T) {
	t.Parallel()
	if got := FormatSeconds(1250 * time.Millisecond); got != "1.25 s" {
		t.Errorf("FormatSeconds() = %q, want %q", got, "1.25 s")
	}
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0.00 MB"},
		{1024 * 1024, "1.00 MB"},
		{1536 * 1024, "1.50 MB"},
		{10 * 1024, "0.01 MB"},
	}
	for _, tt := range tests {
		if got := FormatMB(tt.n); got != tt.want {
			t.Errorf("FormatMB(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
