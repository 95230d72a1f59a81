package runner

import (
	"context"
	"sync"
	"time"

	"github.com/eirsyl/shardadvisor/pkg"
	log "github.com/sirupsen/logrus"
)

// Loop repeats advisor runs one after another and keeps the last report for
// the debug server.
type Loop struct {
	runner *Runner
	every  time.Duration
	ctx    context.Context
	cancel context.CancelFunc

	lock sync.RWMutex
	last *Report
	err  error
}

// NewLoop creates a loop that starts a new run every interval.
func NewLoop(runner *Runner, every time.Duration) (*Loop, error) {
	if every <= 0 {
		every = pkg.DefaultServeEvery
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loop{
		runner: runner,
		every:  every,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Run starts the loop and blocks until Exit is called.
func (l *Loop) Run() error {
	for {
		l.Iteration()

		select {
		case <-l.ctx.Done():
			return nil
		case <-time.After(l.every):
		}
	}
}

// Iteration performs one run and records the outcome.
func (l *Loop) Iteration() {
	report, err := l.runner.Run(l.ctx)
	if err != nil {
		if l.ctx.Err() != nil {
			return
		}
		log.Warnf("Advisor run failed: %v", err)
	}

	l.lock.Lock()
	defer l.lock.Unlock()
	l.err = err
	if err == nil {
		l.last = report
	}
}

// Last returns the last successful report and the error of the last run.
func (l *Loop) Last() (*Report, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.last, l.err
}

// Exit stops the loop, an ongoing sample wait is interrupted.
func (l *Loop) Exit() error {
	l.cancel()
	return nil
}
