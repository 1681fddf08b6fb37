package workload

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectorBounds(t *testing.T) {
	rng := testRng(t, "selector bounds")

	for _, tc := range []struct {
		name string
		p    Params
	}{
		{"Uniform", Params{NumElements: 17, Mode: ModeUniform}},
		{"Focused", Params{NumElements: 17, Mode: ModeFocused, HotIndex: 5, FocusLevel: 0.7, MaxFocusProb: 0.95}},
		{"Extreme", Params{NumElements: 17, Mode: ModeExtreme}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sel, err := NewSelector(&tc.p)
			require.NoError(t, err, "NewSelector")

			for i := 0; i < 10000; i++ {
				idx := sel.Pick(rng)
				require.True(t, idx >= 0 && idx < sel.Universe(), "index in [0,%d): %d", sel.Universe(), idx)
			}
		})
	}
}

func TestSelectorExtremeUniverse(t *testing.T) {
	p := Params{NumElements: 1000000, Mode: ModeExtreme}
	sel, err := NewSelector(&p)
	require.NoError(t, err, "NewSelector")
	require.Equal(t, 2, sel.Universe(), "extreme mode restricts the universe to {0,1}")

	p = Params{NumElements: 1, Mode: ModeExtreme}
	_, err = NewSelector(&p)
	require.Error(t, err, "extreme mode rejects a single-element universe")
}

func TestSelectorFocusedClamp(t *testing.T) {
	rng := testRng(t, "selector clamp")

	// Level 1 with a unit max focus probability pins every draw to
	// the hot element.
	p := Params{NumElements: 50, Mode: ModeFocused, HotIndex: 49, FocusLevel: 1.0, MaxFocusProb: 1.0}
	sel, err := NewSelector(&p)
	require.NoError(t, err, "NewSelector")

	for i := 0; i < 1000; i++ {
		require.Equal(t, 49, sel.Pick(rng), "hot element every draw")
	}
}
