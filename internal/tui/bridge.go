package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/xl2pdf/internal/orchestration"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the worker goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIObserver implements orchestration.Observer by forwarding every
// callback to the program as a message, so that all model changes happen
// on the bubbletea event loop.
type TUIObserver struct {
	ref *programRef
	// afterBatch runs on the worker goroutine before DoneMsg is sent.
	afterBatch func(orchestration.Summary)
}

var _ orchestration.Observer = (*TUIObserver)(nil)

// OnProgress sends a ProgressMsg.
func (o *TUIObserver) OnProgress(current, total int, label string) {
	o.ref.Send(ProgressMsg{Current: current, Total: total, Label: label})
}

// OnLog sends a LogMsg.
func (o *TUIObserver) OnLog(line string) {
	o.ref.Send(LogMsg{Line: line})
}

// OnDone runs the after-batch hook and sends a DoneMsg. The message is sent
// even if the hook panics.
func (o *TUIObserver) OnDone(summary orchestration.Summary) {
	defer o.ref.Send(DoneMsg{Summary: summary})
	if o.afterBatch != nil {
		o.afterBatch(summary)
	}
}
