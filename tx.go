// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// TxSP is a producer handle bound to a single-producer sequencer.
// Only one goroutine may call its methods; calling them from more
// than one goroutine concurrently is undefined behavior, exactly as
// using lfq.SPSC/lfq.SPMC from multiple producer goroutines is.
type TxSP[T any] struct {
	ring *ring[T]
	seq  *spSequencer
	cw   waiter // signaled after publish to wake a parked consumer
}

// Send claims one slot, writes value, and publishes it. It blocks per
// the configured producer wait strategy when the ring is full; it
// never fails in the absence of panics.
func (tx *TxSP[T]) Send(value T) {
	low, high := tx.seq.claim(1)
	tx.ring.put(low, value)
	tx.seq.publish(low, high)
	tx.cw.signal()
}

// SendVia claims one slot and constructs the event in place by
// calling translate on a pointer into the ring, instead of building a
// T and copying it in. If translate panics, the slot is left
// unpublished: the producer cursor is not advanced past the last
// successful publish, and the next Send reclaims the same sequence.
func (tx *TxSP[T]) SendVia(translate func(*T, any), arg any) {
	low, high := tx.seq.claim(1)
	translate(tx.ring.at(low), arg)
	tx.seq.publish(low, high)
	tx.cw.signal()
}

// SendN claims len(values) slots, writes them in program order, and
// publishes the contiguous range as one unit: no reader ever observes
// a partial batch from this call.
func (tx *TxSP[T]) SendN(values []T) {
	if len(values) == 0 {
		return
	}
	low, high := tx.seq.claim(uint64(len(values)))
	for i, v := range values {
		tx.ring.put(low+uint64(i), v)
	}
	tx.seq.publish(low, high)
	tx.cw.signal()
}

// TxMP is a producer handle bound to a multi-producer sequencer. Any
// number of goroutines may call its methods concurrently, including
// via independently obtained Clones.
type TxMP[T any] struct {
	ring *ring[T]
	seq  *mpSequencer
	cw   waiter
}

// Clone returns an independent handle to the same channel. Multiple
// producer goroutines typically each hold their own clone, though
// sharing a single TxMP across goroutines is equally safe.
func (tx *TxMP[T]) Clone() *TxMP[T] {
	return &TxMP[T]{ring: tx.ring, seq: tx.seq, cw: tx.cw}
}

// Send claims one slot, writes value, and marks it available.
func (tx *TxMP[T]) Send(value T) {
	low, high := tx.seq.claim(1)
	tx.ring.put(low, value)
	tx.seq.publish(low, high)
	tx.cw.signal()
}

// SendVia claims one slot and constructs the event in place. If
// translate panics, the claimed slot's availability marker is never
// advanced: the gap is tolerated by the availability buffer the way
// any other stalled publisher's gap would be, per spec.md §4.7.
func (tx *TxMP[T]) SendVia(translate func(*T, any), arg any) {
	low, high := tx.seq.claim(1)
	translate(tx.ring.at(low), arg)
	tx.seq.publish(low, high)
	tx.cw.signal()
}

// SendN claims len(values) contiguous sequence numbers for this
// producer, writes them in order, and marks the whole range available
// per slot. Interleaved batches from distinct producers may interleave
// at slot granularity, but no reader ever observes a partial batch
// from a single SendN call.
func (tx *TxMP[T]) SendN(values []T) {
	if len(values) == 0 {
		return
	}
	low, high := tx.seq.claim(uint64(len(values)))
	for i, v := range values {
		tx.ring.put(low+uint64(i), v)
	}
	tx.seq.publish(low, high)
	tx.cw.signal()
}
