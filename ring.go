// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// ring is a fixed-capacity, power-of-two slot array with index wrap.
// Bounds checks are unnecessary because the mask constrains the index;
// the zero value of T pre-fills every slot until first write.
type ring[T any] struct {
	buffer []T
	mask   uint64
}

// newRing allocates a ring of the given capacity, which must already
// be validated as a power of two >= 2 by the caller.
func newRing[T any](capacity uint64) *ring[T] {
	return &ring[T]{
		buffer: make([]T, capacity),
		mask:   capacity - 1,
	}
}

// put writes value into the slot for sequence. Ownership of value
// transfers from caller to whichever consumer next reads this
// sequence.
func (r *ring[T]) put(sequence uint64, value T) {
	r.buffer[sequence&r.mask] = value
}

// at returns a pointer to the slot for sequence, for in-place
// construction via a translator function.
func (r *ring[T]) at(sequence uint64) *T {
	return &r.buffer[sequence&r.mask]
}

// get returns the value at sequence and clears the slot so the
// consumer doesn't hold a stale reference past release of the slot.
func (r *ring[T]) get(sequence uint64) T {
	idx := sequence & r.mask
	v := r.buffer[idx]
	var zero T
	r.buffer[idx] = zero
	return v
}

// capacity returns the number of slots in the ring.
func (r *ring[T]) capacity() uint64 {
	return r.mask + 1
}
