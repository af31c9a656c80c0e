package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps estimates so a stalled engine never shows absurd values.
const maxETA = 24 * time.Hour

// etaWeight is the weight, in tenths, of the newest per-file rate in the
// moving average.
const etaWeight = 3

// BatchProgress tracks files completed in a batch and estimates the time
// remaining from an exponentially smoothed per-file duration.
// It is safe for concurrent use.
type BatchProgress struct {
	mu        sync.Mutex
	total     int
	done      int
	perFile   time.Duration
	lastTick  time.Time
	startTime time.Time
	now       func() time.Time
}

// NewBatchProgress creates a tracker for total files.
func NewBatchProgress(total int) *BatchProgress {
	return newBatchProgress(total, time.Now)
}

func newBatchProgress(total int, now func() time.Time) *BatchProgress {
	t := now()
	return &BatchProgress{total: total, lastTick: t, startTime: t, now: now}
}

// Update records that done files have completed and returns the fraction
// complete together with the remaining-time estimate.
func (p *BatchProgress) Update(done int) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if done > p.total {
		done = p.total
	}
	if done > p.done {
		t := p.now()
		rate := t.Sub(p.lastTick) / time.Duration(done-p.done)
		if p.perFile == 0 {
			p.perFile = rate
		} else {
			p.perFile = (etaWeight*rate + (10-etaWeight)*p.perFile) / 10
		}
		p.lastTick = t
		p.done = done
	}
	return p.fraction(), p.eta()
}

// Fraction returns the completed fraction in [0, 1].
func (p *BatchProgress) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fraction()
}

// ETA returns the current remaining-time estimate, or 0 when unknown.
func (p *BatchProgress) ETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.eta()
}

// Elapsed returns the time since the tracker was created.
func (p *BatchProgress) Elapsed() time.Duration {
	return p.now().Sub(p.startTime)
}

func (p *BatchProgress) fraction() float64 {
	if p.total <= 0 {
		return 0
	}
	return float64(p.done) / float64(p.total)
}

func (p *BatchProgress) eta() time.Duration {
	if p.done == 0 || p.done >= p.total {
		return 0
	}
	eta := p.perFile * time.Duration(p.total-p.done)
	if eta > maxETA {
		return maxETA
	}
	return eta
}

// ProgressBar renders a fixed-width bar of █ and ░ for a progress in [0, 1].
// Out-of-range values are clamped.
func ProgressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0 {
		progress = 0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatProgressBarWithETA renders "[bar]  45.00% ETA: 2m30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}
