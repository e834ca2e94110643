package sync

import (
	"context"
	"sync"
	"time"
)

// Poller runs a task on a fixed interval until stopped. Start while
// running and Stop while stopped are both no-ops, so callers can wire it
// to UI lifecycle events without tracking state themselves.
type Poller struct {
	interval time.Duration
	task     func(context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(interval time.Duration, task func(context.Context)) *Poller {
	return &Poller{interval: interval, task: task}
}

func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx, p.done)
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.task(ctx)
		}
	}
}

// Stop cancels the loop and waits for the in-flight tick to return.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Tick runs the task once, synchronously, outside the schedule.
func (p *Poller) Tick(ctx context.Context) {
	p.task(ctx)
}
