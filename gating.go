// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"sync"
	"sync/atomic"
)

// atomicSnapshot holds a read-mostly slice snapshot. atomix's surface
// covers scalar padded atomics (Uint64/Int64/Int32/Bool/Uintptr) but
// not a generic atomic object pointer, and register/deregister are
// setup/teardown-rate operations, not hot path — so this one spot
// uses sync/atomic.Pointer directly rather than round-tripping a
// slice header through atomix.Uintptr and unsafe.Pointer.
type atomicSnapshot struct {
	p atomic.Pointer[[]*Sequence]
}

func (a *atomicSnapshot) store(s []*Sequence) { a.p.Store(&s) }

func (a *atomicSnapshot) load() []*Sequence {
	p := a.p.Load()
	if p == nil {
		return nil
	}
	return *p
}

// gatingSet is the set of registered consumer cursors a producer must
// stay behind. For a single-consumer sequencer it always holds exactly
// one cursor. For a multi-consumer sequencer, register/deregister run
// under a mutex (setup/teardown cost only); the hot path reads a
// read-mostly snapshot slice captured at the last registration change,
// per spec.md §9.
type gatingSet struct {
	mu       sync.Mutex
	cursors  []*Sequence
	snapshot atomicSnapshot
}

func newGatingSet(initial *Sequence) *gatingSet {
	g := &gatingSet{cursors: []*Sequence{initial}}
	g.rebuild()
	return g
}

// register adds a new consumer cursor, used when cloning a
// multi-consumer receiver. The new cursor is initialized by the
// caller to the current producer cursor before calling register, so
// the clone never observes history (spec.md §4.6, §9 Open Question).
func (g *gatingSet) register(s *Sequence) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cursors = append(g.cursors, s)
	g.rebuild()
}

// deregister removes a consumer cursor when its handle is released.
func (g *gatingSet) deregister(s *Sequence) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, c := range g.cursors {
		if c == s {
			g.cursors = append(g.cursors[:i], g.cursors[i+1:]...)
			break
		}
	}
	g.rebuild()
}

func (g *gatingSet) rebuild() {
	snap := make([]*Sequence, len(g.cursors))
	copy(snap, g.cursors)
	g.snapshot.store(snap)
}

// minimum returns G = min(Cᵢ) across every registered consumer
// cursor. An empty gating set (every consumer dropped) has no lower
// bound to report (ok is false); callers then keep gating on the last
// minimum they observed, so sends continue only until the buffer
// fills and then block.
func (g *gatingSet) minimum() (uint64, bool) {
	snap := g.snapshot.load()
	if len(snap) == 0 {
		return 0, false
	}
	min := snap[0].LoadAcquire()
	for _, c := range snap[1:] {
		if v := c.LoadAcquire(); v < min {
			min = v
		}
	}
	return min, true
}
