// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package disruptor provides a single-process, in-memory, lock-free
// ring buffer for passing values between goroutines, built on the
// same sequencer-and-gating design as the LMAX Disruptor.
//
// The package offers four topologies, selected by constructor:
//
//   - SPSC: Single-Producer Single-Consumer
//   - MPSC: Multi-Producer Single-Consumer
//   - SPMC: Single-Producer Multi-Consumer
//   - MPMC: Multi-Producer Multi-Consumer
//
// # Quick Start
//
//	tx, rx := disruptor.SPSC[Event](1024, disruptor.Spinning, disruptor.ConsumerSpinning)
//
//	go func() { // producer
//	    for ev := range source {
//	        tx.Send(ev)
//	    }
//	}()
//
//	go func() { // consumer
//	    rx.BlockingRecv(64, func(ev Event) {
//	        process(ev)
//	    })
//	}()
//
// # Basic Usage
//
// Every handle pair shares the same surface for the hot path: Send
// (and SendN/SendVia) on the producer side, Recv (non-blocking) and
// BlockingRecv on the consumer side. Send never fails: when the ring
// is full it blocks per the producer's configured wait strategy
// instead of returning an error.
//
//	tx, rx := disruptor.MPMC[Job](4096, disruptor.YieldingSpin, disruptor.ConsumerBlocking)
//
//	// Multiple producers, each with its own clone
//	for range numSubmitters {
//	    go func() {
//	        w := tx.Clone()
//	        for j := range jobs {
//	            w.Send(j)
//	        }
//	    }()
//	}
//
//	// Multiple consumers, each with its own clone
//	for range numWorkers {
//	    go func() {
//	        r := rx.Clone()
//	        r.BlockingRecv(32, func(j Job) { j.Run() })
//	    }()
//	}
//
// # Common Patterns
//
// Pipeline Stage (SPSC):
//
//	tx, rx := disruptor.SPSC[Data](1024, disruptor.Sleeping, disruptor.ConsumerSleeping)
//
//	go func() { // Stage 1
//	    for data := range input {
//	        tx.Send(data)
//	    }
//	}()
//
//	go func() { // Stage 2
//	    rx.BlockingRecv(128, process)
//	}()
//
// Event Aggregation (MPSC):
//
//	tx, rx := disruptor.MPSC[Event](4096, disruptor.YieldingSpin, disruptor.ConsumerSleeping)
//
//	for sensor := range slices.Values(sensors) {
//	    go func(s Sensor) {
//	        w := tx.Clone()
//	        for ev := range s.Events() {
//	            w.Send(ev)
//	        }
//	    }(sensor)
//	}
//
//	go rx.BlockingRecv(256, aggregate)
//
// Work Distribution (SPMC):
//
//	tx, rx := disruptor.SPMC[Task](1024, disruptor.Spinning, disruptor.ConsumerYieldingSpin)
//
//	go func() {
//	    for task := range tasks {
//	        tx.Send(task)
//	    }
//	}()
//
//	for range numWorkers {
//	    go func() {
//	        r := rx.Clone()
//	        r.BlockingRecv(16, func(t Task) { t.Execute() })
//	    }()
//	}
//
// # Wait Strategies
//
// Each side of a channel picks its own wait strategy independently:
// a Spinning producer can feed a Blocking consumer, and vice versa.
// ProducerWaitKind and ConsumerWaitKind are distinct types so a
// mismatched pairing is a compile error, not a runtime surprise.
//
//	Spinning / ConsumerSpinning         lowest latency, burns a core
//	YieldingSpin / ConsumerYieldingSpin spin briefly, then yield
//	Sleeping / ConsumerSleeping         spin briefly, then exponential sleep
//	Blocking / ConsumerBlocking         park on a condvar, zero idle CPU
//
// # SendVia and in-place construction
//
// SendVia claims a slot and hands the caller a pointer directly into
// the ring, avoiding a build-then-copy for large event types:
//
//	tx.SendVia(func(ev *Event, arg any) {
//	    ev.ID = arg.(int)
//	    ev.Timestamp = time.Now()
//	}, requestID)
//
// If translate panics, the claimed slot is never published, so
// downstream consumers never see a half-constructed event. On a TxSP
// the producer cursor does not advance and the next send reuses the
// same sequence. On a TxMP the sequence stays unmarked for good:
// consumers receive nothing published after it.
//
// # Capacity
//
// Capacity must be an exact power of two, at least 2. Unlike a
// plain ring buffer that silently rounds up, constructors here panic
// on a non-power-of-two capacity, since silently allocating a
// different capacity than requested is more likely to hide a sizing
// bug than to help a caller:
//
//	disruptor.SPSC[int](1024, ...) // ok
//	disruptor.SPSC[int](1000, ...) // panics
//
// Length is intentionally not exposed: an accurate count requires
// synchronizing across every registered cursor, which defeats the
// purpose of a lock-free structure. Track counts in application logic
// if needed.
//
// # Thread Safety
//
// Handle methods are safe exactly within their topology's constraint:
//
//   - TxSP / RxSC: exactly one producer goroutine, one consumer goroutine
//   - TxMP / RxSC: any number of producer goroutines (via Clone), one consumer
//   - TxSP / RxMC: one producer goroutine, any number of consumers (via Clone)
//   - TxMP / RxMC: any number of producers and consumers
//
// RxSC has no Clone method, and TxSP has no Clone method: the
// single-side constraint is enforced by the type system, not a
// runtime check. Calling Send from two goroutines on a TxSP, or Recv
// from two goroutines on an RxSC, is undefined behavior.
//
// # Graceful Shutdown
//
// There is no channel-level close. A consumer handle's Close wakes
// any goroutine parked in BlockingRecv and, for RxMC, deregisters its
// cursor from gating so it no longer holds back producers; it does
// not signal "no more data" to that goroutine's own loop. Callers
// coordinate actual shutdown (a done channel, a context, a sentinel
// value) the same way they would around a plain Go channel; Close
// only guarantees a parked goroutine is not left waiting forever.
//
// # Race Detection
//
// Go's race detector tracks synchronization through mutexes, channels,
// and WaitGroups, but not the acquire-release orderings on separate
// atomic sequence counters that this package's correctness depends on.
// Stress tests that rely on those orderings skip themselves in race
// builds by checking RaceEnabled, which reports which build is active.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for padded atomics
// with explicit memory ordering, [code.hybscloud.com/spin] for
// bounded spin-then-pause cadences, and [code.hybscloud.com/iox] for
// the Sleeping wait strategy's backoff and for semantic-error helpers
// re-exported for ecosystem consistency.
package disruptor
