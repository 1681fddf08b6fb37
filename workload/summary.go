package workload

import (
	"fmt"
	"io"
)

// Summary accumulates per-run tallies for sanity checking the
// generated sequence against the configured targets.
type Summary struct {
	// NumElements is the element universe size of the run.
	NumElements int

	// TotalOps is the total number of operations emitted.
	TotalOps int
	// FindOps is the number of FIND operations emitted.
	FindOps int
	// UnionOps is the number of UNION operations emitted.
	UnionOps int
	// SameSetOps is the number of SAMESET operations emitted.
	SameSetOps int

	// Accesses is the total number of element accesses across all
	// emitted operands.
	Accesses int
	// HotAccesses is the number of accesses that landed on the hot
	// element (focused mode) or the {0, 1} pair (extreme mode).  It
	// is zero in uniform mode.
	HotAccesses int
}

func (s *Summary) record(op Op, isHot func(int) bool) {
	s.TotalOps++
	switch op.Kind {
	case KindFind:
		s.FindOps++
		s.countAccess(op.A, isHot)
	case KindUnion:
		s.UnionOps++
		s.countAccess(op.A, isHot)
		s.countAccess(op.B, isHot)
	case KindSameSet:
		s.SameSetOps++
		s.countAccess(op.A, isHot)
		s.countAccess(op.B, isHot)
	}
}

func (s *Summary) countAccess(idx int, isHot func(int) bool) {
	s.Accesses++
	if isHot != nil && isHot(idx) {
		s.HotAccesses++
	}
}

// FindFraction returns the empirical fraction of FIND operations.
func (s *Summary) FindFraction() float64 {
	if s.TotalOps == 0 {
		return 0
	}
	return float64(s.FindOps) / float64(s.TotalOps)
}

// SameSetFraction returns the empirical fraction of SAMESET operations
// among non-FIND operations.
func (s *Summary) SameSetFraction() float64 {
	nonFind := s.UnionOps + s.SameSetOps
	if nonFind == 0 {
		return 0
	}
	return float64(s.SameSetOps) / float64(nonFind)
}

// HotFraction returns the empirical fraction of element accesses that
// landed on the hot element or pair.
func (s *Summary) HotFraction() float64 {
	if s.Accesses == 0 {
		return 0
	}
	return float64(s.HotAccesses) / float64(s.Accesses)
}

// Tally re-derives a Summary from an existing workload sequence,
// consuming the decoder.  Hot access accounting is unavailable as the
// contention parameters are not part of the on-disk format.
func Tally(d *Decoder) (*Summary, error) {
	summary := &Summary{NumElements: d.NumElements()}
	for {
		op, err := d.Next()
		switch err {
		case nil:
		case io.EOF:
			return summary, nil
		default:
			return nil, fmt.Errorf("workload: tally: %w", err)
		}

		summary.record(op, nil)
	}
}
