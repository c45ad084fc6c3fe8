// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "code.hybscloud.com/atomix"

// availabilityBuffer tracks, per slot, the round number at which that
// slot was last published by a multi-producer sequencer. It bridges
// non-contiguous publication from concurrent producers into a single
// "highest contiguously published" view on the read side.
//
// A 32-bit round field is sufficient (rounds are monotonic and slot
// reuse is bounded by capacity); a 64-bit field would only double the
// footprint for no benefit, per the capacity-vs-cache tradeoff noted
// for this design.
type availabilityBuffer struct {
	mask   uint64
	shift  uint64 // log2(capacity), for round = sequence >> shift
	marker []atomix.Int32
}

func newAvailabilityBuffer(capacity uint64) *availabilityBuffer {
	b := &availabilityBuffer{
		mask:   capacity - 1,
		shift:  log2Pow2(capacity),
		marker: make([]atomix.Int32, capacity),
	}
	for i := range b.marker {
		b.marker[i].StoreRelaxed(-1)
	}
	return b
}

func (b *availabilityBuffer) round(sequence uint64) int32 {
	return int32(sequence >> b.shift)
}

// set marks a single sequence as published.
func (b *availabilityBuffer) set(sequence uint64) {
	b.marker[sequence&b.mask].StoreRelease(b.round(sequence))
}

// setRange marks every sequence in [low, high] as published. Each
// slot's marker is stored with release ordering, pairing with the
// per-slot acquire load in highestAvailable.
func (b *availabilityBuffer) setRange(low, high uint64) {
	for s := low; s <= high; s++ {
		b.marker[s&b.mask].StoreRelease(b.round(s))
	}
}

// highestAvailable scans forward from low while each slot's marker
// matches the expected round for that sequence, returning the last
// sequence found. Returns low-1 if low itself isn't available yet.
func (b *availabilityBuffer) highestAvailable(low, high uint64) uint64 {
	for s := low; s <= high; s++ {
		if b.marker[s&b.mask].LoadAcquire() != b.round(s) {
			return s - 1
		}
	}
	return high
}
