package service

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrRunInProgress is returned when another run holds the guard.
var ErrRunInProgress = errors.New("an upload run is already in progress")

// RunGuard rejects overlapping runs within one process. It does not
// coordinate between processes.
type RunGuard struct {
	running atomic.Bool
}

// TryAcquire takes the guard without blocking. The returned release
// function must be called once the run finishes.
func (g *RunGuard) TryAcquire() (release func(), err error) {
	if !g.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	var once sync.Once
	return func() { once.Do(func() { g.running.Store(false) }) }, nil
}

// Running reports whether a run currently holds the guard.
func (g *RunGuard) Running() bool {
	return g.running.Load()
}
