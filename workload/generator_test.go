package workload

import (
	"bytes"
	"crypto"
	"crypto/sha512"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ufbench/ufgen/common/crypto/drbg"
	"github.com/ufbench/ufgen/common/crypto/mathrand"
)

func testRng(t *testing.T, seed string) *rand.Rand {
	sum := sha512.Sum512([]byte(seed))
	src, err := drbg.New(crypto.SHA512, sum[:], []byte("workload:tests"), nil)
	require.NoError(t, err, "drbg.New")
	return rand.New(mathrand.New(src))
}

func generateAndDecode(t *testing.T, seed string, p Params) (*Summary, []Op, *bytes.Buffer) {
	var buf bytes.Buffer
	summary, err := Generate(testRng(t, seed), p, &buf)
	require.NoError(t, err, "Generate")

	dec, err := NewDecoder(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err, "NewDecoder")
	require.Equal(t, p.NumElements, dec.NumElements(), "header element count")
	require.Equal(t, p.NumOps, dec.NumOps(), "header operation count")

	ops := make([]Op, 0, p.NumOps)
	for {
		op, err := dec.Next()
		if err != nil {
			require.Equal(t, io.EOF, err, "decode terminates cleanly")
			break
		}
		ops = append(ops, op)
	}
	require.Len(t, ops, p.NumOps, "all declared operations present")

	return summary, ops, &buf
}

func TestGenerateUnionOnly(t *testing.T) {
	p := Params{
		NumElements:  10,
		NumOps:       5,
		FindRatio:    0.0,
		SameSetRatio: 0.0,
		Mode:         ModeUniform,
	}

	_, ops, buf := generateAndDecode(t, "42", p)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6, "header plus five operation lines")
	require.Equal(t, "10 5", lines[0], "header")

	for _, op := range ops {
		require.Equal(t, KindUnion, op.Kind, "all operations are UNION")
		require.True(t, op.A >= 0 && op.A < 10, "operand A in range")
		require.True(t, op.B >= 0 && op.B < 10, "operand B in range")
		require.NotEqual(t, op.A, op.B, "distinct operands")
	}
}

func TestGenerateDeterminism(t *testing.T) {
	p := Params{
		NumElements:  1000,
		NumOps:       10000,
		FindRatio:    0.5,
		SameSetRatio: 0.25,
		Mode:         ModeFocused,
		HotIndex:     7,
		FocusLevel:   0.8,
		MaxFocusProb: DefaultMaxFocusProb,
	}

	var bufA, bufB, bufC bytes.Buffer
	_, err := Generate(testRng(t, "determinism"), p, &bufA)
	require.NoError(t, err, "Generate A")
	_, err = Generate(testRng(t, "determinism"), p, &bufB)
	require.NoError(t, err, "Generate B")
	_, err = Generate(testRng(t, "a different seed"), p, &bufC)
	require.NoError(t, err, "Generate C")

	require.True(t, bytes.Equal(bufA.Bytes(), bufB.Bytes()), "identical seed, byte-identical output")
	require.False(t, bytes.Equal(bufA.Bytes(), bufC.Bytes()), "differing seed, differing output")
}

func TestGenerateRatios(t *testing.T) {
	const tolerance = 0.01

	p := Params{
		NumElements:  1000,
		NumOps:       100000,
		FindRatio:    0.7,
		SameSetRatio: 0.5,
		Mode:         ModeUniform,
	}

	summary, _, _ := generateAndDecode(t, "ratios", p)

	require.Equal(t, p.NumOps, summary.TotalOps, "summary total")
	require.Equal(t, summary.TotalOps, summary.FindOps+summary.UnionOps+summary.SameSetOps, "tallies add up")
	require.InDelta(t, p.FindRatio, summary.FindFraction(), tolerance, "empirical FIND fraction")
	require.InDelta(t, p.SameSetRatio, summary.SameSetFraction(), tolerance, "empirical SAMESET fraction")
}

func TestGenerateExtreme(t *testing.T) {
	p := Params{
		NumElements:  100,
		NumOps:       5000,
		FindRatio:    0.3,
		SameSetRatio: 0.5,
		Mode:         ModeExtreme,
	}

	summary, ops, _ := generateAndDecode(t, "extreme", p)

	for _, op := range ops {
		require.True(t, op.A == 0 || op.A == 1, "operand A in {0,1}")
		if op.Kind != KindFind {
			require.True(t, op.B == 0 || op.B == 1, "operand B in {0,1}")
			require.NotEqual(t, op.A, op.B, "distinct operands")
		}
	}
	require.Equal(t, 1.0, summary.HotFraction(), "every access lands on the hot pair")
}

func TestGenerateFocusedRates(t *testing.T) {
	// With all-FIND workloads every access is a single unconditioned
	// draw, so the empirical hot rate can be checked against the
	// analytic expectation p + (1-p)/n.
	for _, tc := range []struct {
		name      string
		level     float64
		tolerance float64
	}{
		{"MaxLevel", 1.0, 0.01},
		{"ZeroLevel", 0.0, 0.005},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := Params{
				NumElements:  100,
				NumOps:       100000,
				FindRatio:    1.0,
				Mode:         ModeFocused,
				HotIndex:     13,
				FocusLevel:   tc.level,
				MaxFocusProb: DefaultMaxFocusProb,
			}

			summary, _, _ := generateAndDecode(t, "focused:"+tc.name, p)

			n := float64(p.NumElements)
			prob := tc.level*p.MaxFocusProb + (1-tc.level)*(1/n)
			expected := prob + (1-prob)/n
			require.InDelta(t, expected, summary.HotFraction(), tc.tolerance, "empirical hot rate")
		})
	}
}

func TestGenerateSingleElement(t *testing.T) {
	p := Params{
		NumElements: 1,
		NumOps:      50,
		FindRatio:   0.0,
		Mode:        ModeUniform,
	}

	summary, ops, _ := generateAndDecode(t, "degenerate", p)

	require.Equal(t, 50, summary.FindOps, "every operation coerced to FIND")
	for _, op := range ops {
		require.Equal(t, Op{Kind: KindFind, A: 0, B: 0}, op, "FIND 0 0")
	}
}

func TestGenerateValidation(t *testing.T) {
	rng := testRng(t, "validation")

	for _, tc := range []struct {
		name string
		p    Params
	}{
		{"NonPositiveElements", Params{NumElements: 0, NumOps: 10}},
		{"NonPositiveOps", Params{NumElements: 10, NumOps: 0}},
		{"FindRatioOutOfRange", Params{NumElements: 10, NumOps: 10, FindRatio: 1.5}},
		{"SameSetRatioOutOfRange", Params{NumElements: 10, NumOps: 10, SameSetRatio: -0.5}},
		{"HotIndexOutOfRange", Params{NumElements: 10, NumOps: 10, Mode: ModeFocused, HotIndex: 10, MaxFocusProb: 0.9}},
		{"MaxFocusProbOutOfRange", Params{NumElements: 10, NumOps: 10, Mode: ModeFocused, MaxFocusProb: 0.0}},
		{"ExtremeTooSmall", Params{NumElements: 1, NumOps: 10, Mode: ModeExtreme}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := Generate(rng, tc.p, &buf)
			require.Error(t, err, "invalid parameters rejected")
			require.Zero(t, buf.Len(), "no output written")
		})
	}
}

func TestPickDistinct(t *testing.T) {
	rng := testRng(t, "distinct")

	// A maximally focused selector nearly always proposes the hot
	// element; the retry loop (or its fallback) must still yield a
	// distinct second operand.
	sel := &focusedSelector{n: 10, hot: 3, prob: 1.0}
	for i := 0; i < 100; i++ {
		require.NotEqual(t, 3, pickDistinct(rng, sel, 3), "distinct from hot")
	}
}
