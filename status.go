// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// StatusKind distinguishes the two outcomes a non-blocking Recv can
// report.
type StatusKind int

const (
	// Idle means no new sequence was available to read.
	Idle StatusKind = iota
	// Processed means N events were handled.
	Processed
)

// Status reports the outcome of a non-blocking Recv call.
type Status struct {
	Kind StatusKind
	N    int
}

func idleStatus() Status           { return Status{Kind: Idle} }
func processedStatus(n int) Status { return Status{Kind: Processed, N: n} }

// IsIdle reports whether the status represents no work done.
func (s Status) IsIdle() bool { return s.Kind == Idle }
