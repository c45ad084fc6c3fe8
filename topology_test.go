// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor_test

import (
	"sort"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/disruptor"
)

// =============================================================================
// SPSC round-trip over topology (spec.md §8 property 6)
// =============================================================================

// TestSPSCRoundTripLarge sends K >> N items through a small-capacity SPSC
// channel and checks every value arrives exactly once, in order.
func TestSPSCRoundTripLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("skip: long-running in -short")
	}
	const n = 8
	const k = 200_000

	tx, rx := disruptor.SPSC[int](n, disruptor.Spinning, disruptor.ConsumerSpinning)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range k {
			tx.Send(i)
		}
	}()

	got := make([]int, 0, k)
	for len(got) < k {
		rx.Recv(func(v int) { got = append(got, v) })
	}
	wg.Wait()

	if len(got) != k {
		t.Fatalf("got %d values, want %d", len(got), k)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, want %d", i, v, i)
		}
	}
}

// =============================================================================
// SPMC fan-out (spec.md §8 concrete scenario)
// =============================================================================

// TestSPMCFanOut has one producer send 0..100000 and four independent
// consumers each observe the full, ordered sequence.
func TestSPMCFanOut(t *testing.T) {
	if testing.Short() {
		t.Skip("skip: long-running in -short")
	}
	const capacity = 8192
	const total = 100_000
	const numConsumers = 4

	tx, rx0 := disruptor.SPMC[int](capacity, disruptor.Spinning, disruptor.ConsumerSpinning)

	consumers := make([]*disruptor.RxMC[int], numConsumers)
	consumers[0] = rx0
	for i := 1; i < numConsumers; i++ {
		consumers[i] = rx0.Clone()
	}

	var wg sync.WaitGroup
	results := make([][]int, numConsumers)
	for i := range consumers {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			rx := consumers[idx]
			got := make([]int, 0, total)
			for len(got) < total {
				rx.Recv(func(v int) { got = append(got, v) })
			}
			results[idx] = got
		}(i)
	}

	for i := range total {
		tx.Send(i)
	}
	wg.Wait()

	for i, got := range results {
		if len(got) != total {
			t.Fatalf("consumer %d: got %d values, want %d", i, len(got), total)
		}
		for j, v := range got {
			if v != j {
				t.Fatalf("consumer %d: got[%d] = %d, want %d", i, j, v, j)
			}
		}
	}
}

// =============================================================================
// MPSC blocking (spec.md §8 concrete scenario)
// =============================================================================

// TestMPSCBlockingTaggedProducers has three producers each tag their own id
// into 50000 events; the single consumer's multiset matches the union of
// sent events, and each producer's subsequence is observed in order.
func TestMPSCBlockingTaggedProducers(t *testing.T) {
	if testing.Short() {
		t.Skip("skip: long-running in -short")
	}
	const capacity = 1024
	const numProducers = 3
	const perProducer = 50_000

	tx, rx := disruptor.MPSC[int](capacity, disruptor.Blocking, disruptor.ConsumerBlocking)

	var wg sync.WaitGroup
	for id := 1; id <= numProducers; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w := tx.Clone()
			for i := range perProducer {
				w.Send(id*perProducer + i)
			}
		}(id)
	}

	total := numProducers * perProducer
	lastPerProducer := make(map[int]int)
	got := 0
	for got < total {
		rx.BlockingRecv(64, func(v int) {
			id := v / perProducer
			seq := v % perProducer
			if prev, ok := lastPerProducer[id]; ok && seq != prev+1 {
				t.Fatalf("producer %d: out-of-order delivery, prev=%d got=%d", id, prev, seq)
			}
			lastPerProducer[id] = seq
			got++
		})
	}

	for id := 1; id <= numProducers; id++ {
		if lastPerProducer[id] != perProducer-1 {
			t.Fatalf("producer %d: last seen seq %d, want %d", id, lastPerProducer[id], perProducer-1)
		}
	}
}

// =============================================================================
// MPMC yielding (spec.md §8 concrete scenario)
// =============================================================================

// TestMPMCYieldingFanInFanOut runs 4 producers x 4 consumers over 1,000,000
// total events: each consumer must receive every event, the global multiset
// must match, and each producer's order must be preserved within each
// consumer's view.
func TestMPMCYieldingFanInFanOut(t *testing.T) {
	if testing.Short() {
		t.Skip("skip: long-running in -short")
	}
	const capacity = 4096
	const numProducers = 4
	const numConsumers = 4
	const total = 1_000_000
	const perProducer = total / numProducers

	tx0, rx0 := disruptor.MPMC[int](capacity, disruptor.YieldingSpin, disruptor.ConsumerYieldingSpin)

	var producerWG sync.WaitGroup
	for id := range numProducers {
		producerWG.Add(1)
		go func(id int) {
			defer producerWG.Done()
			w := tx0.Clone()
			for i := range perProducer {
				w.Send(id*perProducer + i)
			}
		}(id)
	}

	consumers := make([]*disruptor.RxMC[int], numConsumers)
	consumers[0] = rx0
	for i := 1; i < numConsumers; i++ {
		consumers[i] = rx0.Clone()
	}

	var consumerWG sync.WaitGroup
	results := make([][]int, numConsumers)
	for i := range consumers {
		consumerWG.Add(1)
		go func(idx int) {
			defer consumerWG.Done()
			rx := consumers[idx]
			got := make([]int, 0, total)
			for len(got) < total {
				rx.Recv(func(v int) { got = append(got, v) })
			}
			results[idx] = got
		}(i)
	}

	producerWG.Wait()
	consumerWG.Wait()

	for ci, got := range results {
		if len(got) != total {
			t.Fatalf("consumer %d: got %d events, want %d", ci, len(got), total)
		}
		lastPerProducer := make(map[int]int)
		counts := make(map[int]bool, total)
		for _, v := range got {
			if counts[v] {
				t.Fatalf("consumer %d: duplicate value %d", ci, v)
			}
			counts[v] = true
			id := v / perProducer
			seq := v % perProducer
			if prev, ok := lastPerProducer[id]; ok && seq != prev+1 {
				t.Fatalf("consumer %d: producer %d out of order, prev=%d got=%d", ci, id, prev, seq)
			}
			lastPerProducer[id] = seq
		}
	}
}

// =============================================================================
// MP global order: contiguous 1..total after quiescence (spec.md §8 property 4)
// =============================================================================

// TestMPGlobalOrderContiguous verifies that after several MP producers
// quiesce, the sequence numbers assigned across all of them form a
// contiguous range with no gaps, observed indirectly by draining the
// channel and checking the received count exactly matches total sent.
func TestMPGlobalOrderContiguous(t *testing.T) {
	const capacity = 256
	const numProducers = 8
	const perProducer = 5_000
	total := numProducers * perProducer

	tx, rx := disruptor.MPSC[struct{}](capacity, disruptor.Spinning, disruptor.ConsumerSpinning)

	done := make(chan struct{})
	var received atomix.Int64
	go func() {
		for received.Load() < int64(total) {
			rx.BlockingRecv(128, func(struct{}) { received.Add(1) })
		}
		close(done)
	}()

	var wg sync.WaitGroup
	for range numProducers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := tx.Clone()
			for range perProducer {
				w.Send(struct{}{})
			}
		}()
	}
	wg.Wait()
	<-done

	if got := received.Load(); got != int64(total) {
		t.Fatalf("received %d events, want %d (a gap implies a dropped claim)", got, total)
	}
}

// =============================================================================
// Gating invariant: P - min(Ci) <= N at every observed instant
// (spec.md §8 property 2)
// =============================================================================

// TestGatingNeverExceedsCapacity drives a tiny SPSC channel with a slow
// consumer and asserts, in the consumer, that every value arrives
// strictly after the previous one (a producer overwriting a slot the
// consumer hadn't finished would show up as an out-of-order or
// duplicate value).
func TestGatingNeverExceedsCapacity(t *testing.T) {
	if testing.Short() {
		t.Skip("skip: long-running in -short")
	}
	const capacity = 4
	const total = 2_000

	tx, rx := disruptor.SPSC[int](capacity, disruptor.Sleeping, disruptor.ConsumerSleeping)

	var lastSeen atomix.Int64
	lastSeen.Store(-1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		seen := 0
		for seen < total {
			rx.BlockingRecv(1, func(v int) {
				if int64(v) <= lastSeen.Load() {
					t.Errorf("out-of-order or duplicate: got %d after %d", v, lastSeen.Load())
				}
				lastSeen.Store(int64(v))
				seen++
				time.Sleep(time.Millisecond)
			})
		}
	}()

	start := time.Now()
	for i := range total {
		tx.Send(i)
	}
	<-done

	// Producer completion implies the consumer kept pace; no assertion
	// on elapsed time beyond "it finished", since gating correctness
	// (no overtake) is what this test exercises, not timing.
	_ = time.Since(start)
}

// =============================================================================
// Back-pressure correctness (spec.md §8 concrete scenario)
// =============================================================================

// TestBackpressureCorrectness mirrors spec.md's back-pressure scenario: a
// tiny capacity, a sleeping producer strategy, and a consumer that sleeps
// per event. The producer must complete iff the consumer completes, and
// every one of the 1000 sent events must be observed exactly once.
func TestBackpressureCorrectness(t *testing.T) {
	if testing.Short() {
		t.Skip("skip: long-running in -short")
	}
	const capacity = 4
	const total = 1_000

	tx, rx := disruptor.SPSC[int](capacity, disruptor.Sleeping, disruptor.ConsumerSleeping)

	got := make([]int, 0, total)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for len(got) < total {
			rx.BlockingRecv(1, func(v int) {
				got = append(got, v)
				time.Sleep(time.Millisecond)
			})
		}
	}()

	producerDone := make(chan struct{})
	go func() {
		defer close(producerDone)
		for i := range total {
			tx.Send(i)
		}
	}()

	select {
	case <-producerDone:
	case <-time.After(10 * time.Second):
		t.Fatal("producer did not complete: consumer likely stalled")
	}
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("consumer did not complete after producer finished")
	}

	if len(got) != total {
		t.Fatalf("got %d events, want %d", len(got), total)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, want %d", i, v, i)
		}
	}
}

// =============================================================================
// MP SendVia panic: permanent gap tolerated by the availability buffer
// (SPEC_FULL.md §9)
// =============================================================================

// TestMPSendViaPanicLeavesPermanentGap verifies spec.md §4.7's MP
// tolerance clause directly: a panic inside SendVia between claim and
// publish leaves that sequence's availability marker unset forever.
// Unlike the SP case, a later producer cannot reclaim the same
// sequence (a different producer may already have claimed past it via
// CAS), so the gap permanently blocks the availability scan from
// exposing anything published after it — the consumer sees no event
// ever again past that point, which is the "tolerated" (not
// recovered) outcome SPEC_FULL.md §9 calls out for MP.
func TestMPSendViaPanicLeavesPermanentGap(t *testing.T) {
	tx, rx := disruptor.MPSC[int](8, disruptor.Spinning, disruptor.ConsumerSpinning)

	func() {
		defer func() { recover() }()
		tx.SendVia(func(v *int, arg any) {
			panic("boom")
		}, nil)
	}()

	// This claims the sequence right after the gap and publishes it
	// normally, but the availability scan can never reach past the
	// still-unmarked gapped sequence to expose it.
	tx.Send(99)

	for i := 0; i < 100; i++ {
		if s := rx.Recv(func(int) {}); !s.IsIdle() {
			t.Fatalf("Recv after MP SendVia panic: want Idle forever (permanent gap), got %+v", s)
		}
	}
}

// =============================================================================
// No drops, no duplicates across topologies (spec.md §8 property 1)
// =============================================================================

// TestNoDropsNoDuplicatesMPMC is a linearizability-style check in the
// teacher's idiom (correctness_test.go's runGeneric): every value sent by
// every producer is observed by every consumer exactly once.
func TestNoDropsNoDuplicatesMPMC(t *testing.T) {
	if disruptor.RaceEnabled {
		t.Skip("skip: relies on acquire-release orderings the race detector cannot observe")
	}
	if testing.Short() {
		t.Skip("skip: long-running in -short")
	}
	const capacity = 512
	const numProducers = 4
	const numConsumers = 3
	const perProducer = 20_000

	tx0, rx0 := disruptor.MPMC[int](capacity, disruptor.YieldingSpin, disruptor.ConsumerYieldingSpin)

	var producerWG sync.WaitGroup
	for id := range numProducers {
		producerWG.Add(1)
		go func(id int) {
			defer producerWG.Done()
			w := tx0.Clone()
			for i := range perProducer {
				w.Send(id*perProducer + i)
			}
		}(id)
	}

	consumers := make([]*disruptor.RxMC[int], numConsumers)
	consumers[0] = rx0
	for i := 1; i < numConsumers; i++ {
		consumers[i] = rx0.Clone()
	}

	total := numProducers * perProducer
	var consumerWG sync.WaitGroup
	allOK := make([]bool, numConsumers)
	for i := range consumers {
		consumerWG.Add(1)
		go func(idx int) {
			defer consumerWG.Done()
			rx := consumers[idx]
			seen := make([]bool, total)
			got := 0
			for got < total {
				rx.Recv(func(v int) {
					if seen[v] {
						t.Errorf("consumer %d: duplicate value %d", idx, v)
					}
					seen[v] = true
					got++
				})
			}
			allOK[idx] = true
		}(i)
	}

	producerWG.Wait()
	consumerWG.Wait()

	for i, ok := range allOK {
		if !ok {
			t.Fatalf("consumer %d did not finish", i)
		}
	}
}

// TestBatchAtomicitySingleProducer verifies spec.md §8 property 3: a
// consumer never observes a partial SendN batch interleaved with a
// subsequent SendN batch from the same single producer.
func TestBatchAtomicitySingleProducer(t *testing.T) {
	const capacity = 64
	const batchSize = 16
	const numBatches = 200

	tx, rx := disruptor.SPSC[int](capacity, disruptor.Spinning, disruptor.ConsumerSpinning)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for b := range numBatches {
			batch := make([]int, batchSize)
			for i := range batch {
				batch[i] = b*batchSize + i
			}
			tx.SendN(batch)
		}
	}()

	got := make([]int, 0, numBatches*batchSize)
	for len(got) < numBatches*batchSize {
		rx.Recv(func(v int) { got = append(got, v) })
	}
	<-done

	if !sort.IntsAreSorted(got) {
		t.Fatalf("received values not monotonic: batches interleaved out of order")
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, want %d (batch boundary corrupted)", i, v, i)
		}
	}
}
