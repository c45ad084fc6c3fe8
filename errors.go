// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "code.hybscloud.com/iox"

// This package's hot path never returns an error: a full ring blocks
// the producer per its configured wait strategy rather than failing,
// and an empty ring reports Idle from Recv rather than an error value.
// Construction-time misuse (bad capacity, an unknown wait-strategy
// kind value) panics instead, since it is a programming error
// discoverable at startup, not a runtime condition callers should
// branch on. Passing a consumer kind where a producer kind is expected
// does not compile.
//
// The semantic-error helpers below are re-exported from
// [code.hybscloud.com/iox] purely for ecosystem consistency with
// code that mixes this package with iox-based queues elsewhere in a
// pipeline; nothing in this package itself produces an iox error.

// IsWouldBlock reports whether err indicates an operation would block.
// Delegates to [iox.IsWouldBlock].
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal rather than
// a failure. Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
