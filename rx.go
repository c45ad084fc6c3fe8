// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// RxSC is a consumer handle bound to a single-consumer sequencer. Only
// one goroutine may call its methods. RxSC has no Clone method: the
// single-consumer constraint is refused at compile time, not checked
// at runtime, per spec.md §7.
type RxSC[T any] struct {
	ring   *ring[T]
	view   producerView
	gating *gatingSet
	cursor *Sequence
	cw     waiter // this consumer's own wait strategy
	pw     waiter // signaled after release to wake a parked producer
}

// Recv is non-blocking: it processes whatever is already available
// and returns immediately, reporting Idle if nothing was.
func (rx *RxSC[T]) Recv(handler func(T)) Status {
	return recvOnce(rx.ring, rx.view, rx.cursor, rx.cw, rx.pw, -1, handler)
}

// BlockingRecv blocks via the consumer wait strategy until at least
// one sequence is available, then processes up to maxBatch slots and
// returns. This is the steady-state consumer loop shape.
func (rx *RxSC[T]) BlockingRecv(maxBatch int, handler func(T)) {
	for {
		if s := recvOnce(rx.ring, rx.view, rx.cursor, rx.cw, rx.pw, maxBatch, handler); !s.IsIdle() {
			return
		}
		if _, ok := rx.cw.waitUntil(func() (uint64, bool) {
			return rx.view.available(rx.cursor.LoadRelaxed() + 1)
		}); !ok {
			return
		}
	}
}

// Close wakes a consumer of this handle parked in BlockingRecv,
// without altering any gating state. It is a liveness aid for
// graceful shutdown, not a channel-closing operation: spec.md §5
// deliberately leaves shutdown cooperative and gives no close signal.
func (rx *RxSC[T]) Close() {
	rx.cw.close()
}

// RxMC is a consumer handle bound to a multi-consumer sequencer.
// Cloning registers an independent cursor starting at the current
// producer cursor, so the clone sees every future event but no
// buffered history (spec.md §9 Open Question).
type RxMC[T any] struct {
	ring   *ring[T]
	view   producerView
	gating *gatingSet
	cursor *Sequence
	cw     waiter
	pw     waiter
}

// Recv is non-blocking; see RxSC.Recv.
func (rx *RxMC[T]) Recv(handler func(T)) Status {
	return recvOnce(rx.ring, rx.view, rx.cursor, rx.cw, rx.pw, -1, handler)
}

// BlockingRecv blocks until data is available; see RxSC.BlockingRecv.
func (rx *RxMC[T]) BlockingRecv(maxBatch int, handler func(T)) {
	for {
		if s := recvOnce(rx.ring, rx.view, rx.cursor, rx.cw, rx.pw, maxBatch, handler); !s.IsIdle() {
			return
		}
		if _, ok := rx.cw.waitUntil(func() (uint64, bool) {
			return rx.view.available(rx.cursor.LoadRelaxed() + 1)
		}); !ok {
			return
		}
	}
}

// Clone registers a fresh consumer cursor initialized to the current
// gating-visible high-water mark and returns an independent handle
// that observes every event published from this point on.
func (rx *RxMC[T]) Clone() *RxMC[T] {
	start := rx.view.highWaterMark()
	cursor := &Sequence{}
	cursor.StoreRelaxed(start)
	rx.gating.register(cursor)
	return &RxMC[T]{
		ring:   rx.ring,
		view:   rx.view,
		gating: rx.gating,
		cursor: cursor,
		cw:     rx.cw,
		pw:     rx.pw,
	}
}

// Close deregisters this handle's cursor and wakes any consumer
// parked on its wait strategy. After Close, this handle's share of
// gating no longer constrains producers, so other consumers and
// producers can make progress even if this handle is never read
// again.
func (rx *RxMC[T]) Close() {
	rx.gating.deregister(rx.cursor)
	rx.cw.close()
}

// recvOnce implements the shared poll-then-process-then-release body
// for both non-blocking Recv (maxBatch < 0, unbounded) and the single
// batch BlockingRecv performs once data is known to be available.
func recvOnce[T any](r *ring[T], view producerView, cursor *Sequence, cw, pw waiter, maxBatch int, handler func(T)) Status {
	next := cursor.LoadRelaxed() + 1
	high, ok := cw.peek(func() (uint64, bool) { return view.available(next) })
	if !ok {
		return idleStatus()
	}

	if maxBatch > 0 && high-next+1 > uint64(maxBatch) {
		high = next + uint64(maxBatch) - 1
	}

	n := 0
	for s := next; s <= high; s++ {
		handler(r.get(s))
		n++
	}

	cursor.StoreRelease(high)
	pw.signal()
	return processedStatus(n)
}
