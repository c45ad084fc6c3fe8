// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// SPSC creates a single-producer single-consumer channel: one
// producer goroutine, one consumer goroutine, wait-free claim on both
// sides beyond the chosen wait strategy's own cadence.
//
// capacity must be a power of two >= 2; otherwise SPSC panics.
func SPSC[T any](capacity int, pw ProducerWaitKind, cw ConsumerWaitKind) (*TxSP[T], *RxSC[T]) {
	n := assertCapacity(capacity)
	r := newRing[T](n)

	pwWaiter := newProducerWaiter(pw)
	cwWaiter := newConsumerWaiter(cw)

	seq := newSPSequencer(n, pwWaiter)
	cursor := &Sequence{}
	seq.gating = newGatingSet(cursor)

	tx := &TxSP[T]{ring: r, seq: seq, cw: cwWaiter}
	rx := &RxSC[T]{ring: r, view: seq, gating: seq.gating, cursor: cursor, cw: cwWaiter, pw: pwWaiter}
	return tx, rx
}

// MPSC creates a multi-producer single-consumer channel: any number
// of producer goroutines (directly or via TxMP.Clone), one consumer
// goroutine.
//
// capacity must be a power of two >= 2; otherwise MPSC panics.
func MPSC[T any](capacity int, pw ProducerWaitKind, cw ConsumerWaitKind) (*TxMP[T], *RxSC[T]) {
	n := assertCapacity(capacity)
	r := newRing[T](n)

	pwWaiter := newProducerWaiter(pw)
	cwWaiter := newConsumerWaiter(cw)

	seq := newMPSequencer(n, pwWaiter)
	cursor := &Sequence{}
	seq.gating = newGatingSet(cursor)

	tx := &TxMP[T]{ring: r, seq: seq, cw: cwWaiter}
	rx := &RxSC[T]{ring: r, view: seq, gating: seq.gating, cursor: cursor, cw: cwWaiter, pw: pwWaiter}
	return tx, rx
}

// SPMC creates a single-producer multi-consumer channel: one producer
// goroutine, any number of independent consumer goroutines obtained
// via RxMC.Clone, each observing every event from the point it was
// cloned onward.
//
// capacity must be a power of two >= 2; otherwise SPMC panics.
func SPMC[T any](capacity int, pw ProducerWaitKind, cw ConsumerWaitKind) (*TxSP[T], *RxMC[T]) {
	n := assertCapacity(capacity)
	r := newRing[T](n)

	pwWaiter := newProducerWaiter(pw)
	cwWaiter := newConsumerWaiter(cw)

	seq := newSPSequencer(n, pwWaiter)
	cursor := &Sequence{}
	seq.gating = newGatingSet(cursor)

	tx := &TxSP[T]{ring: r, seq: seq, cw: cwWaiter}
	rx := &RxMC[T]{ring: r, view: seq, gating: seq.gating, cursor: cursor, cw: cwWaiter, pw: pwWaiter}
	return tx, rx
}

// MPMC creates a multi-producer multi-consumer channel: any number of
// producer and consumer goroutines, each consumer independently
// observing every event from the point it was created or cloned.
//
// capacity must be a power of two >= 2; otherwise MPMC panics.
func MPMC[T any](capacity int, pw ProducerWaitKind, cw ConsumerWaitKind) (*TxMP[T], *RxMC[T]) {
	n := assertCapacity(capacity)
	r := newRing[T](n)

	pwWaiter := newProducerWaiter(pw)
	cwWaiter := newConsumerWaiter(cw)

	seq := newMPSequencer(n, pwWaiter)
	cursor := &Sequence{}
	seq.gating = newGatingSet(cursor)

	tx := &TxMP[T]{ring: r, seq: seq, cw: cwWaiter}
	rx := &RxMC[T]{ring: r, view: seq, gating: seq.gating, cursor: cursor, cw: cwWaiter, pw: pwWaiter}
	return tx, rx
}
