package catalog

import "sync/atomic"

// Gate is a single-permit lock guarding an at-most-one-in-flight operation.
// TryAcquire never blocks; a caller that loses the race is expected to treat
// the operation as already running, not to wait for it.
type Gate struct {
	busy atomic.Bool
}

func (g *Gate) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

func (g *Gate) Release() {
	g.busy.Store(false)
}

func (g *Gate) InFlight() bool {
	return g.busy.Load()
}
