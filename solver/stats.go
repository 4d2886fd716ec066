package solver

import "fmt"

// RunStats is the per-BBL, per-site measurement record ingested from a
// stats file (spec §3 "RunStats"). It accumulates across repeated sightings
// of the same BblHash within one site's input (spec §4.1: "on recurrence,
// merge").
type RunStats struct {
	BblId            BblId
	BblHash          BblHash
	InstructionCount int64
	MemoryAccess     int64
	ElapsedTime      Cost

	// ThreadElapsedTime indexes by thread id; extended as needed on merge.
	ThreadElapsedTime []Cost
}

// NewRunStats constructs a RunStats from the first sighting of a BblHash at
// the given thread id.
func NewRunStats(bblhash BblHash, tid int, elapsed Cost, instr, mem int64) (*RunStats, error) {
	if elapsed < 0 {
		return nil, fmt.Errorf("bblhash %s: negative elapsed time %v", bblhash, elapsed)
	}
	rs := &RunStats{
		BblHash:          bblhash,
		InstructionCount: instr,
		MemoryAccess:     mem,
		ElapsedTime:      elapsed,
	}
	rs.growTo(tid)
	rs.ThreadElapsedTime[tid] = elapsed
	return rs, nil
}

func (rs *RunStats) growTo(tid int) {
	if tid >= len(rs.ThreadElapsedTime) {
		grown := make([]Cost, tid+1)
		copy(grown, rs.ThreadElapsedTime)
		rs.ThreadElapsedTime = grown
	}
}

// Merge folds another sighting of the same BblHash (at thread tid) into rs:
// counts sum element-wise, elapsed time sums, and the per-thread vector is
// grown and summed at index tid.
func (rs *RunStats) Merge(tid int, elapsed Cost, instr, mem int64) error {
	if elapsed < 0 {
		return fmt.Errorf("bblhash %s: negative elapsed time %v", rs.BblHash, elapsed)
	}
	rs.growTo(tid)
	rs.InstructionCount += instr
	rs.MemoryAccess += mem
	rs.ElapsedTime += elapsed
	rs.ThreadElapsedTime[tid] += elapsed
	return nil
}

// Parallelism is a coarse degree-of-parallelism proxy: the count of threads
// with strictly positive elapsed time.
func (rs *RunStats) Parallelism() int {
	n := 0
	for _, t := range rs.ThreadElapsedTime {
		if t > 0 {
			n++
		}
	}
	return n
}

// MaxElapsedTime is the wall-time contribution assuming perfect overlap
// across threads: the maximum per-thread elapsed time.
func (rs *RunStats) MaxElapsedTime() Cost {
	var max Cost
	for _, t := range rs.ThreadElapsedTime {
		if t > max {
			max = t
		}
	}
	return max
}

// MPKI returns memory accesses per thousand instructions (spec §4.5).
// Zero instructions yields an MPKI of 0 rather than dividing by zero.
func (rs *RunStats) MPKI() float64 {
	if rs.InstructionCount == 0 {
		return 0
	}
	return float64(rs.MemoryAccess) / float64(rs.InstructionCount) * 1000
}

// placeholderStats builds a zero-measurement RunStats for a BblId/BblHash
// that was observed in one site's file but not the other (spec §4.1
// alignment: "if missing, create a placeholder RunStats").
func placeholderStats(id BblId, h BblHash) *RunStats {
	return &RunStats{BblId: id, BblHash: h}
}
