// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "unsafe"

// TxSPPtr is the zero-copy producer side of an SPSCPtr channel: it
// passes unsafe.Pointer values directly instead of copying a typed
// value into the ring. Ownership transfers to the consumer on Send;
// the producer must not touch the pointee afterward.
type TxSPPtr struct {
	buffer []unsafe.Pointer
	mask   uint64
	seq    *spSequencer
	cw     waiter
}

// Send claims the next slot and stores ptr into it with a single
// unsafe.Add write, bypassing the slice bounds check the same way the
// teacher's SPSCIndirect does: sequence&mask is always < len(buffer)
// because mask = len(buffer)-1.
func (tx *TxSPPtr) Send(ptr unsafe.Pointer) {
	low, high := tx.seq.claim(1)
	*(*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(tx.buffer)), (low&tx.mask)*uint64(ptrSize))) = ptr
	tx.seq.publish(low, high)
	tx.cw.signal()
}

// RxSCPtr is the zero-copy consumer side of an SPSCPtr channel.
type RxSCPtr struct {
	buffer []unsafe.Pointer
	mask   uint64
	view   producerView
	cursor *Sequence
	cw     waiter
	pw     waiter
}

// Recv is non-blocking: it returns the next pointer if one is ready,
// or (nil, false) if the ring is caught up to the producer.
func (rx *RxSCPtr) Recv() (unsafe.Pointer, bool) {
	next := rx.cursor.LoadRelaxed() + 1
	_, ok := rx.cw.peek(func() (uint64, bool) { return rx.view.available(next) })
	if !ok {
		return nil, false
	}
	ptr := *(*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(rx.buffer)), (next&rx.mask)*uint64(ptrSize)))
	rx.cursor.StoreRelease(next)
	rx.pw.signal()
	return ptr, true
}

// BlockingRecv blocks via the consumer wait strategy until a pointer
// is available, then returns it. ok is false only if Close was called
// while parked and no pointer ever became available.
func (rx *RxSCPtr) BlockingRecv() (ptr unsafe.Pointer, ok bool) {
	for {
		if ptr, ok := rx.Recv(); ok {
			return ptr, true
		}
		if _, ok := rx.cw.waitUntil(func() (uint64, bool) {
			return rx.view.available(rx.cursor.LoadRelaxed() + 1)
		}); !ok {
			return nil, false
		}
	}
}

// Close wakes a consumer parked in BlockingRecv; see RxSC.Close.
func (rx *RxSCPtr) Close() {
	rx.cw.close()
}

// SPSCPtr creates a single-producer single-consumer channel of
// unsafe.Pointer values, for passing ownership of a heap object
// between goroutines without copying it into the ring. capacity must
// be a power of two >= 2.
func SPSCPtr(capacity int, pw ProducerWaitKind, cw ConsumerWaitKind) (*TxSPPtr, *RxSCPtr) {
	n := assertCapacity(capacity)
	buffer := make([]unsafe.Pointer, n)
	mask := n - 1

	pwWaiter := newProducerWaiter(pw)
	cwWaiter := newConsumerWaiter(cw)

	seq := newSPSequencer(n, pwWaiter)
	cursor := &Sequence{}
	seq.gating = newGatingSet(cursor)

	tx := &TxSPPtr{buffer: buffer, mask: mask, seq: seq, cw: cwWaiter}
	rx := &RxSCPtr{buffer: buffer, mask: mask, view: seq, cursor: cursor, cw: cwWaiter, pw: pwWaiter}
	return tx, rx
}
