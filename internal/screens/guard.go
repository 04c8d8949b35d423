package screens

import "sync/atomic"

// fetchGuard stamps each fetch with a monotonically increasing generation so
// a response that completes after a newer fetch has started is discarded
// instead of overwriting newer state.
type fetchGuard struct {
	gen atomic.Uint64
}

func (g *fetchGuard) next() uint64 {
	return g.gen.Add(1)
}

func (g *fetchGuard) latest(gen uint64) bool {
	return g.gen.Load() == gen
}
