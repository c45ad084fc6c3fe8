// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "code.hybscloud.com/atomix"

// Sequence is a monotonically increasing 64-bit counter used to track
// cursor positions and gating sequences. It is cache-line padded on
// both sides to prevent false sharing with neighboring fields.
type Sequence struct {
	_     pad
	value atomix.Uint64
	_     pad
}

// LoadRelaxed reads the sequence's own cursor value, for inspection by
// the goroutine that owns the write side of this sequence.
func (s *Sequence) LoadRelaxed() uint64 {
	return s.value.LoadRelaxed()
}

// StoreRelaxed sets the value with relaxed ordering. Used by a
// sequence's sole writer when no other goroutine needs to observe the
// write through this store alone.
func (s *Sequence) StoreRelaxed(v uint64) {
	s.value.StoreRelaxed(v)
}

// LoadAcquire reads a cursor written by another goroutine, establishing
// happens-before with the paired release store or release CAS.
func (s *Sequence) LoadAcquire() uint64 {
	return s.value.LoadAcquire()
}

// StoreRelease publishes a value that must be visible together with
// all writes that happened before this call on the calling goroutine.
func (s *Sequence) StoreRelease(v uint64) {
	s.value.StoreRelease(v)
}

// CompareAndSwap attempts to move the sequence from old to new with
// acquire-release ordering.
func (s *Sequence) CompareAndSwap(old, new uint64) bool {
	return s.value.CompareAndSwapAcqRel(old, new)
}
