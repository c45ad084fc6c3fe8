// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// spSequencer is the single-producer sequencer: no CAS on the claim
// path, since only one goroutine ever calls claim. Publishing is a
// single release store of the contiguous high end of the claimed
// range, matching spec.md §4.4 exactly.
type spSequencer struct {
	capacity uint64
	next     uint64 // producer-local: highest published sequence, no atomic needed
	cached   uint64 // cached last-observed gating minimum
	cursor   Sequence
	gating   *gatingSet
	pw       waiter
}

func newSPSequencer(capacity uint64, pw waiter) *spSequencer {
	return &spSequencer{
		capacity: capacity,
		pw:       pw,
	}
}

// claim reserves k contiguous slots and returns their range [low, high].
// It does not advance s.next: that only happens in publish, once the
// caller has actually made the range visible. A claim whose range is
// never published (the caller's translator or batch copy panicked
// between claim and publish) leaves s.next untouched, so the next
// claim computes the same [low, high] again instead of skipping past
// the abandoned slots, per spec.md §4.7.
func (s *spSequencer) claim(k uint64) (low, high uint64) {
	low = s.next + 1
	high = s.next + k
	target := high

	if target > s.cached+s.capacity {
		capacity := s.capacity
		g, _ := s.pw.waitUntil(func() (uint64, bool) {
			// An empty gating set (every consumer dropped) reports
			// no minimum; the producer then treats its last cached
			// observation as frozen, per spec.md §4.6 — sends keep
			// succeeding only until the buffer fills, then block
			// forever, since nothing will ever advance the gate
			// again.
			min, ok := s.gating.minimum()
			if !ok {
				min = s.cached
			}
			if target <= min+capacity {
				return min, true
			}
			return 0, false
		})
		s.cached = g
	}

	return low, high
}

// publish makes [low, high] visible by release-storing high into the
// producer cursor, then commits s.next so the following claim starts
// past this range. SP publish is strictly contiguous: low is always
// the previous s.next value + 1, enforced by claim's bookkeeping.
func (s *spSequencer) publish(low, high uint64) {
	s.next = high
	s.cursor.StoreRelease(high)
}

func (s *spSequencer) cursorValue() *Sequence { return &s.cursor }
