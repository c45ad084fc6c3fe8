// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// producerView is the read-side window onto a sequencer's published
// work: given the next sequence a consumer wants, it reports the
// highest sequence currently safe to read, if any.
type producerView interface {
	available(next uint64) (high uint64, ok bool)
	highWaterMark() uint64
}

func (s *spSequencer) available(next uint64) (uint64, bool) {
	c := s.cursor.LoadAcquire()
	if c < next {
		return 0, false
	}
	return c, true
}

func (s *spSequencer) highWaterMark() uint64 { return s.cursor.LoadAcquire() }

func (s *mpSequencer) available(next uint64) (uint64, bool) {
	claimHigh := s.claimSnapshot()
	if claimHigh < next {
		return 0, false
	}
	high := s.highestPublished(next, claimHigh)
	if high < next {
		return 0, false
	}
	return high, true
}
