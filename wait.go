// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// ProducerWaitKind enumerates the wait strategies usable on the
// producer side of a sequencer. It is a distinct type from
// ConsumerWaitKind so that a mismatched pairing (passing a consumer
// kind where a producer kind is expected) is refused by the compiler,
// not a runtime check.
type ProducerWaitKind int

// ConsumerWaitKind enumerates the wait strategies usable on the
// consumer side of a sequencer.
type ConsumerWaitKind int

const (
	// Spinning is a tight re-check loop with no signaling. Lowest
	// latency, burns a core.
	Spinning ProducerWaitKind = iota
	// YieldingSpin spins a bounded number of iterations, then yields
	// to the scheduler.
	YieldingSpin
	// Sleeping spins briefly, then sleeps for an exponentially-growing
	// bounded interval.
	Sleeping
	// Blocking parks on a condition variable; wakes via signal() from
	// the opposite side. Highest latency, zero idle CPU.
	Blocking
)

const (
	// ConsumerSpinning mirrors Spinning for the consumer side.
	ConsumerSpinning ConsumerWaitKind = iota
	// ConsumerYieldingSpin mirrors YieldingSpin for the consumer side.
	ConsumerYieldingSpin
	// ConsumerSleeping mirrors Sleeping for the consumer side.
	ConsumerSleeping
	// ConsumerBlocking mirrors Blocking for the consumer side.
	ConsumerBlocking
)

// ready is the predicate a waiter polls: it reports the currently
// observed sequence and whether it satisfies the caller's condition
// (enough free slots for a producer, enough published data for a
// consumer). Sequencer code supplies the condition; the waiter
// supplies the cadence (spin/yield/sleep/park) at which it is polled.
type ready func() (uint64, bool)

// waiter is the common shape of every wait strategy, on both the
// producer and the consumer side: block the calling goroutine until
// cond is satisfied, polling at a cadence specific to the strategy.
// peek checks cond exactly once and never blocks — recv (spec.md
// §4.8) must not suspend regardless of the configured strategy.
//
// waitUntil's bool return distinguishes "cond became true" (true)
// from "close aborted the wait before cond did" (false); callers that
// can never be closed (producer-side callers) ignore it.
type waiter interface {
	waitUntil(cond ready) (uint64, bool)
	peek(cond ready) (uint64, bool)
	signal()
	close()
}

func newWaiterKind(kind int) waiter {
	switch kind {
	case int(Spinning):
		return &spinningWaiter{}
	case int(YieldingSpin):
		return &yieldingWaiter{}
	case int(Sleeping):
		return &sleepingWaiter{}
	case int(Blocking):
		return newBlockingWaiter()
	default:
		panic("disruptor: unknown wait strategy kind")
	}
}

func newProducerWaiter(kind ProducerWaitKind) waiter { return newWaiterKind(int(kind)) }
func newConsumerWaiter(kind ConsumerWaitKind) waiter { return newWaiterKind(int(kind)) }

// --- Spinning ---

type spinningWaiter struct {
	closed atomix.Bool
}

func (w *spinningWaiter) waitUntil(cond ready) (uint64, bool) {
	for {
		if v, ok := cond(); ok {
			return v, true
		}
		if w.closed.LoadAcquire() {
			return 0, false
		}
		spin.Wait{}.Once()
	}
}

func (w *spinningWaiter) peek(cond ready) (uint64, bool) { return cond() }
func (*spinningWaiter) signal()                          {}
func (w *spinningWaiter) close()                         { w.closed.StoreRelease(true) }

// --- YieldingSpin ---

type yieldingWaiter struct {
	closed atomix.Bool
}

func (w *yieldingWaiter) waitUntil(cond ready) (uint64, bool) {
	sw := spin.Wait{}
	for {
		if v, ok := cond(); ok {
			return v, true
		}
		if w.closed.LoadAcquire() {
			return 0, false
		}
		sw.Once()
	}
}

func (w *yieldingWaiter) peek(cond ready) (uint64, bool) { return cond() }
func (*yieldingWaiter) signal()                          {}
func (w *yieldingWaiter) close()                         { w.closed.StoreRelease(true) }

// --- Sleeping ---

type sleepingWaiter struct {
	closed atomix.Bool
}

func (w *sleepingWaiter) waitUntil(cond ready) (uint64, bool) {
	backoff := iox.Backoff{}
	for {
		if v, ok := cond(); ok {
			return v, true
		}
		if w.closed.LoadAcquire() {
			return 0, false
		}
		backoff.Wait()
	}
}

func (w *sleepingWaiter) peek(cond ready) (uint64, bool) { return cond() }
func (*sleepingWaiter) signal()                          {}
func (w *sleepingWaiter) close()                         { w.closed.StoreRelease(true) }

// --- Blocking ---

// blockingWaiter parks on a condition variable and is woken either by
// signal() from the opposite side of the channel publishing new work,
// or by close() ending the wait unconditionally.
type blockingWaiter struct {
	mu     sync.Mutex
	cond   *sync.Cond
	closed atomix.Bool
}

func newBlockingWaiter() *blockingWaiter {
	w := &blockingWaiter{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

func (w *blockingWaiter) waitUntil(cond ready) (uint64, bool) {
	if v, ok := cond(); ok {
		return v, true
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for {
		if v, ok := cond(); ok {
			return v, true
		}
		if w.closed.LoadAcquire() {
			return 0, false
		}
		w.cond.Wait()
	}
}

func (w *blockingWaiter) peek(cond ready) (uint64, bool) { return cond() }

func (w *blockingWaiter) signal() {
	w.mu.Lock()
	w.cond.Broadcast()
	w.mu.Unlock()
}

func (w *blockingWaiter) close() {
	w.closed.StoreRelease(true)
	w.mu.Lock()
	w.cond.Broadcast()
	w.mu.Unlock()
}
