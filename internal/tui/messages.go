package tui

import (
	"time"

	"github.com/agbru/xl2pdf/internal/metrics"
	"github.com/agbru/xl2pdf/internal/orchestration"
	"github.com/agbru/xl2pdf/internal/sysmon"
)

// ProgressMsg carries an OnProgress callback.
type ProgressMsg struct {
	Current int
	Total   int
	Label   string
}

// LogMsg carries an OnLog callback.
type LogMsg struct {
	Line string
}

// DoneMsg carries the final summary of a batch.
type DoneMsg struct {
	Summary orchestration.Summary
}

// TickMsg drives the elapsed timer and resource sampling.
type TickMsg time.Time

// MemStatsMsg carries a process memory reading and a system snapshot.
type MemStatsMsg struct {
	Snapshot metrics.MemorySnapshot
	System   sysmon.Stats
}
