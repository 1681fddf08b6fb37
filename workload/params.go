package workload

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
)

// DefaultMaxFocusProb is the default probability of selecting the hot
// element in focused mode at contention level 1.
const DefaultMaxFocusProb = 0.9

var _ pflag.Value = (*Mode)(nil)

// Mode is a contention mode, governing how element accesses are
// distributed over the universe.
type Mode int

const (
	// ModeUniform draws every element uniformly from the universe.
	ModeUniform Mode = iota
	// ModeFocused biases element selection towards a single hot
	// element, with a tunable contention level.
	ModeFocused
	// ModeExtreme restricts every element selection to {0, 1}.
	ModeExtreme
)

// String returns the string representation of a Mode.
func (m *Mode) String() string {
	switch *m {
	case ModeUniform:
		return "uniform"
	case ModeFocused:
		return "focused"
	case ModeExtreme:
		return "extreme"
	default:
		panic("workload: unsupported contention mode")
	}
}

// Set sets the Mode to the value specified by the provided string.
func (m *Mode) Set(s string) error {
	switch strings.ToLower(s) {
	case "uniform":
		*m = ModeUniform
	case "focused":
		*m = ModeFocused
	case "extreme":
		*m = ModeExtreme
	default:
		return fmt.Errorf("workload: invalid contention mode: '%s'", s)
	}

	return nil
}

// Type returns the list of supported Modes.
func (m *Mode) Type() string {
	return "[uniform,focused,extreme]"
}

// Params are the generation parameters for a single run.  They are
// validated once, before any output is produced, and are immutable
// for the duration of the run.
type Params struct {
	// NumElements is the size of the element universe.  Generated
	// indices are in [0, NumElements).
	NumElements int

	// NumOps is the total number of operations to emit.
	NumOps int

	// FindRatio is the target fraction of operations that are FIND,
	// in [0, 1].
	FindRatio float64

	// SameSetRatio is the target fraction of non-FIND operations that
	// are SAMESET, in [0, 1].  The remainder are UNION.
	SameSetRatio float64

	// Mode is the contention mode.
	Mode Mode

	// HotIndex is the element favored in focused mode.  It must be a
	// valid element index.
	HotIndex int

	// FocusLevel is the contention level in focused mode, in [0, 1].
	// At 0 selection degrades to (nearly) uniform, at 1 the hot
	// element is selected with probability MaxFocusProb.
	FocusLevel float64

	// MaxFocusProb is the probability of directly selecting the hot
	// element at FocusLevel 1, in (0, 1].
	MaxFocusProb float64
}

// Validate checks the parameters, aggregating all violations into the
// returned error.
func (p *Params) Validate() error {
	var errs *multierror.Error

	if p.NumElements <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("workload: number of elements must be positive, got: %d", p.NumElements))
	}
	if p.NumOps <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("workload: number of operations must be positive, got: %d", p.NumOps))
	}
	if p.FindRatio < 0 || p.FindRatio > 1 {
		errs = multierror.Append(errs, fmt.Errorf("workload: FIND ratio out of range [0,1]: %v", p.FindRatio))
	}
	if p.SameSetRatio < 0 || p.SameSetRatio > 1 {
		errs = multierror.Append(errs, fmt.Errorf("workload: SAMESET ratio out of range [0,1]: %v", p.SameSetRatio))
	}

	switch p.Mode {
	case ModeUniform:
	case ModeFocused:
		if p.NumElements > 0 && (p.HotIndex < 0 || p.HotIndex >= p.NumElements) {
			errs = multierror.Append(errs, fmt.Errorf("workload: hot index out of range [0,%d): %d", p.NumElements, p.HotIndex))
		}
		if p.FocusLevel < 0 || p.FocusLevel > 1 {
			errs = multierror.Append(errs, fmt.Errorf("workload: focus level out of range [0,1]: %v", p.FocusLevel))
		}
		if p.MaxFocusProb <= 0 || p.MaxFocusProb > 1 {
			errs = multierror.Append(errs, fmt.Errorf("workload: max focus probability out of range (0,1]: %v", p.MaxFocusProb))
		}
	case ModeExtreme:
		if p.NumElements < 2 {
			errs = multierror.Append(errs, fmt.Errorf("workload: extreme mode requires at least 2 elements, got: %d", p.NumElements))
		}
	default:
		errs = multierror.Append(errs, fmt.Errorf("workload: invalid contention mode: %d", p.Mode))
	}

	return errs.ErrorOrNil()
}
