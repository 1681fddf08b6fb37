package workload

import (
	"fmt"
	"math/rand"
)

// Selector picks element indices under a contention model.
//
// The bias a Selector applies is probabilistic: no single Pick is tied
// to the configured distribution, only the long-run expectation.
type Selector interface {
	// Pick returns an element index in [0, Universe()).
	Pick(rng *rand.Rand) int

	// Universe returns the number of indices Pick selects from.
	Universe() int
}

// NewSelector creates the Selector for the configured contention mode.
func NewSelector(p *Params) (Selector, error) {
	switch p.Mode {
	case ModeUniform:
		return &uniformSelector{n: p.NumElements}, nil
	case ModeFocused:
		// The hot element is selected directly with probability
		// level*maxFocusProb + (1-level)*(1/n); the uniform fallback
		// may still select it coincidentally.
		prob := p.FocusLevel*p.MaxFocusProb + (1-p.FocusLevel)*(1/float64(p.NumElements))
		if prob > 1 {
			prob = 1
		}
		return &focusedSelector{
			n:    p.NumElements,
			hot:  p.HotIndex,
			prob: prob,
		}, nil
	case ModeExtreme:
		if p.NumElements < 2 {
			return nil, fmt.Errorf("workload: extreme mode requires at least 2 elements, got: %d", p.NumElements)
		}
		return &extremeSelector{}, nil
	default:
		return nil, fmt.Errorf("workload: invalid contention mode: %d", p.Mode)
	}
}

type uniformSelector struct {
	n int
}

func (s *uniformSelector) Pick(rng *rand.Rand) int {
	return rng.Intn(s.n)
}

func (s *uniformSelector) Universe() int {
	return s.n
}

type focusedSelector struct {
	n    int
	hot  int
	prob float64
}

func (s *focusedSelector) Pick(rng *rand.Rand) int {
	if rng.Float64() < s.prob {
		return s.hot
	}
	return rng.Intn(s.n)
}

func (s *focusedSelector) Universe() int {
	return s.n
}

// extremeSelector restricts the universe to exactly {0, 1}, regardless
// of the configured number of elements.
type extremeSelector struct{}

func (s *extremeSelector) Pick(rng *rand.Rand) int {
	return rng.Intn(2)
}

func (s *extremeSelector) Universe() int {
	return 2
}
