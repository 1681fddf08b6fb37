package workload

import (
	"io"
	"math/rand"

	"github.com/ufbench/ufgen/common/logging"
)

// maxDistinctRetries bounds the resampling loop that enforces
// distinct operands for UNION and SAMESET.  The loop terminates
// almost surely for any universe larger than one element; the bound
// exists so that a pathologically focused selector cannot stall the
// run, with a deterministic fallback to the next index in the
// universe.
const maxDistinctRetries = 64

var logger = logging.GetLogger("workload")

// Generate produces a workload sequence for the provided parameters,
// streaming it to the provided writer in the on-disk format.  The
// returned Summary holds the per-kind tallies of the emitted sequence.
//
// Generate is a pure function of the parameters and the provided
// random source: a fixed rng state and fixed parameters yield a
// byte-identical output stream.
func Generate(rng *rand.Rand, p Params, w io.Writer) (*Summary, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// A single-element universe admits no valid UNION or SAMESET, so
	// every operation is coerced to FIND.  This is a degenerate case,
	// not an error.
	if p.NumElements == 1 && p.FindRatio != 1.0 {
		logger.Warn("single-element universe, forcing all operations to FIND",
			"requested_find_ratio", p.FindRatio,
		)
		p.FindRatio = 1.0
	}

	sel, err := NewSelector(&p)
	if err != nil {
		return nil, err
	}

	enc, err := NewEncoder(w, p.NumElements, p.NumOps)
	if err != nil {
		return nil, err
	}

	var isHot func(int) bool
	switch p.Mode {
	case ModeFocused:
		isHot = func(idx int) bool { return idx == p.HotIndex }
	case ModeExtreme:
		isHot = func(idx int) bool { return idx <= 1 }
	}

	summary := &Summary{NumElements: p.NumElements}
	for i := 0; i < p.NumOps; i++ {
		op := sampleOp(rng, &p, sel)
		if err = enc.Encode(op); err != nil {
			return nil, err
		}
		summary.record(op, isHot)
	}

	if err = enc.Flush(); err != nil {
		return nil, err
	}

	return summary, nil
}

func sampleOp(rng *rand.Rand, p *Params, sel Selector) Op {
	a := sel.Pick(rng)

	if rng.Float64() < p.FindRatio {
		return Op{Kind: KindFind, A: a}
	}

	b := pickDistinct(rng, sel, a)

	kind := KindUnion
	if rng.Float64() < p.SameSetRatio {
		kind = KindSameSet
	}

	return Op{Kind: kind, A: a, B: b}
}

func pickDistinct(rng *rand.Rand, sel Selector, a int) int {
	for i := 0; i < maxDistinctRetries; i++ {
		if b := sel.Pick(rng); b != a {
			return b
		}
	}
	return (a + 1) % sel.Universe()
}
