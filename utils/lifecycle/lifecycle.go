// Package lifecycle drives a worker's step loop in a background goroutine
// with one-shot start and close.
package lifecycle

import (
	"errors"
	"runtime/debug"
	"sync"

	"github.com/ugparu/vivid/utils/logger"
)

// Worker is a unit of background work. Step is called repeatedly until it
// returns an error. Release runs exactly once after the loop ends.
type Worker interface {
	String() string
	Step(stop <-chan struct{}) error
	Release()
}

var (
	// ErrStop ends the loop quietly.
	ErrStop = errors.New("stop")
	// ErrStartedAlready is returned by a second Start.
	ErrStartedAlready = errors.New("started already")
	// ErrClosed is returned by Start after Close.
	ErrClosed = errors.New("start after close")
)

// Runner owns the goroutine that drives a Worker.
type Runner[T Worker] struct {
	worker    T
	stop      chan struct{}
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// NewRunner wraps w. Nothing runs until Start.
func NewRunner[T Worker](w T) *Runner[T] {
	return &Runner[T]{
		worker: w,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start calls open on the worker and spawns the step loop when it succeeds.
// A failed open releases the worker and marks the runner done.
func (r *Runner[T]) Start(open func(T) error) error {
	select {
	case <-r.stop:
		return ErrClosed
	default:
	}

	err := ErrStartedAlready
	r.startOnce.Do(func() {
		logger.Debugf(r.worker, "Starting")
		if err = open(r.worker); err != nil {
			r.finish()
			return
		}
		go r.loop()
	})
	return err
}

func (r *Runner[T]) loop() {
	defer r.finish()
	logger.Debug(r.worker, "Entering main loop")
	for r.step() {
	}
}

func (r *Runner[T]) step() (ok bool) {
	defer func() {
		if p := recover(); p != nil {
			logger.Errorf(r.worker, "Panic detected! Recovering from: %v", p)
			logger.Errorf(r.worker, "%s", debug.Stack())
			ok = false
		}
	}()

	if err := r.worker.Step(r.stop); err != nil {
		if !errors.Is(err, ErrStop) {
			logger.Warningf(r.worker, "Detected error: %s", err.Error())
		}
		return false
	}
	return true
}

func (r *Runner[T]) finish() {
	r.worker.Release()
	close(r.done)
}

// Close signals the loop to stop and waits for the worker to be released.
// Closing a runner that never started releases the worker directly.
func (r *Runner[T]) Close() {
	r.closeOnce.Do(func() {
		close(r.stop)
		r.startOnce.Do(r.finish)
		<-r.done
	})
}

// Done is closed once the worker has been released.
func (r *Runner[T]) Done() <-chan struct{} {
	return r.done
}
