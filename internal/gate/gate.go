// Package gate provides a settle-once completion signal. The reporter settles
// it when its work is finished; the harness waits on it before exiting.
package gate

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrRejected is the rejection cause used when Reject is called with a nil error.
	ErrRejected = errors.New("gate rejected")
)

// Gate is pending until the first Resolve or Reject. The first call wins;
// later calls are ignored and return false.
type Gate struct {
	once sync.Once
	done chan struct{}
	err  error
}

// New creates a pending gate.
func New() *Gate {
	return &Gate{done: make(chan struct{})}
}

// Resolve settles the gate successfully.
func (g *Gate) Resolve() bool {
	return g.settle(nil)
}

// Reject settles the gate with err.
func (g *Gate) Reject(err error) bool {
	if err == nil {
		err = ErrRejected
	}

	return g.settle(err)
}

func (g *Gate) settle(err error) bool {
	settled := false

	g.once.Do(func() {
		g.err = err
		settled = true
		close(g.done)
	})

	return settled
}

// Done is closed once the gate is settled.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// Settled reports whether the gate has been resolved or rejected.
func (g *Gate) Settled() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}

// Err returns the rejection cause, or nil while pending or once resolved.
func (g *Gate) Err() error {
	select {
	case <-g.done:
		return g.err
	default:
		return nil
	}
}

// Wait blocks until the gate settles or ctx ends.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return g.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
