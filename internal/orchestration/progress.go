package orchestration

import (
	"fmt"

	"github.com/agbru/xl2pdf/internal/logging"
)

// guardedObserver shields the batch from its observer: a panicking callback
// is logged and swallowed, and OnDone is delivered at most once.
type guardedObserver struct {
	obs    Observer
	logger logging.Logger
	done   bool
}

func guard(obs Observer, logger logging.Logger) *guardedObserver {
	if obs == nil {
		obs = NullObserver{}
	}
	return &guardedObserver{obs: obs, logger: logger}
}

func (g *guardedObserver) progress(current, total int, label string) {
	defer g.recoverCallback("OnProgress")
	g.obs.OnProgress(current, total, label)
}

func (g *guardedObserver) log(line string) {
	defer g.recoverCallback("OnLog")
	g.obs.OnLog(line)
}

func (g *guardedObserver) finish(summary Summary) {
	if g.done {
		return
	}
	g.done = true
	defer g.recoverCallback("OnDone")
	g.obs.OnDone(summary)
}

func (g *guardedObserver) recoverCallback(name string) {
	if r := recover(); r != nil {
		g.logger.Warn("observer callback panicked",
			logging.String("callback", name),
			logging.String("panic", fmt.Sprint(r)))
	}
}
