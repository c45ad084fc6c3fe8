// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// mpSequencer is the multi-producer sequencer: producers coordinate a
// shared claim counter with CAS (spec.md §4.5), then mark per-slot
// availability after writing so that non-contiguous publication from
// concurrent producers is bridged on the read side.
type mpSequencer struct {
	capacity     uint64
	claimCounter Sequence
	gating       *gatingSet
	availability *availabilityBuffer
	pw           waiter
	// publishedCache is a monotonically advancing hint of the highest
	// contiguously published sequence, used only to give Clone a
	// correct scan floor (see highWaterMark). Ordinary reads use each
	// consumer's own cursor as the scan floor instead, since gating
	// guarantees that floor is always within live, unwrapped data.
	publishedCache Sequence
	// cachedGate holds the last real gating minimum observed by any
	// producer. It is only ever written from a successful
	// s.gating.minimum() (ok == true), so once the last consumer is
	// dropped and minimum() starts reporting !ok, claim freezes on this
	// true historical value instead of substituting the claim
	// counter's own position — which would let claims through forever.
	// Relaxed ordering is enough: it is a liveness hint shared between
	// producers, not a correctness-critical cursor.
	cachedGate Sequence
}

func newMPSequencer(capacity uint64, pw waiter) *mpSequencer {
	return &mpSequencer{
		capacity:     capacity,
		availability: newAvailabilityBuffer(capacity),
		pw:           pw,
	}
}

// claim reserves k contiguous sequence numbers for the calling
// producer via the CAS retry loop spec.md §4.5 describes: load the
// claim counter, compute the candidate target, wait for the gate to
// allow it, then CAS the counter from old to target.
func (s *mpSequencer) claim(k uint64) (low, high uint64) {
	capacity := s.capacity
	for {
		old := s.claimCounter.LoadRelaxed()
		target := old + k

		min, ok := s.gating.minimum()
		if ok {
			s.cachedGate.StoreRelaxed(min)
		} else {
			// frozen: see the cachedGate field comment for why this
			// must be the last real gating minimum, not old.
			min = s.cachedGate.LoadRelaxed()
		}
		if target > min+capacity {
			s.pw.waitUntil(func() (uint64, bool) {
				min, ok := s.gating.minimum()
				if !ok {
					// No consumer left to ever advance the gate:
					// this claim can never proceed. Report not-ready
					// forever so the configured strategy actually
					// waits (parks/sleeps) instead of busy-retrying
					// the CAS loop, per spec.md §4.6's "producers
					// block forever" outcome.
					return 0, false
				}
				s.cachedGate.StoreRelaxed(min)
				if target <= min+capacity {
					return min, true
				}
				return 0, false
			})
			continue
		}

		if s.claimCounter.CompareAndSwap(old, target) {
			return old + 1, target
		}
	}
}

// publish marks every sequence in [low, high] available by storing
// its round number into the availability buffer with release
// semantics.
func (s *mpSequencer) publish(low, high uint64) {
	s.availability.setRange(low, high)
}

// highestPublished derives P, the highest contiguously published
// sequence visible to readers, by scanning forward from low while the
// availability marker matches the expected round. claimHigh bounds
// the scan to sequences that have actually been claimed.
func (s *mpSequencer) highestPublished(low, claimHigh uint64) uint64 {
	if low > claimHigh {
		return low - 1
	}
	return s.availability.highestAvailable(low, claimHigh)
}

func (s *mpSequencer) claimSnapshot() uint64 { return s.claimCounter.LoadAcquire() }

// highWaterMark reports the highest contiguously published sequence
// known so far, scanning forward from the last cached point rather
// than from zero so that the scan floor is never behind a wrapped,
// already-overwritten slot. It is used only by Clone; ordinary reads
// use the reading consumer's own cursor as the floor instead.
func (s *mpSequencer) highWaterMark() uint64 {
	claimHigh := s.claimSnapshot()
	cached := s.publishedCache.LoadAcquire()
	// Every sequence up to the gating minimum has been consumed, so it
	// is a valid floor even when no Clone has refreshed the cache since
	// the ring last wrapped.
	if min, ok := s.gating.minimum(); ok && min > cached {
		cached = min
	}
	if cached >= claimHigh {
		return cached
	}
	high := s.highestPublished(cached+1, claimHigh)
	for {
		old := s.publishedCache.LoadAcquire()
		if high <= old {
			return old
		}
		if s.publishedCache.CompareAndSwap(old, high) {
			return high
		}
	}
}
