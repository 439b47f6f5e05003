// Package tempo_test validates the BPM compatibility predicates.
// Focus:
//  1. Direct / half-time / double-time acceptance within tolerance.
//  2. Strict sentinels on malformed inputs (non-positive BPM, negative tolerance).
//  3. Symmetry: Compatible(a,b) == Compatible(b,a) across a value sweep.
//  4. Difference as the minimum over enabled ratio forms.
package tempo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mixkraft/seqmix/tempo"
)

func TestCompatible_Table(t *testing.T) {
	cases := []struct {
		name       string
		a, b       float64
		tolerance  float64
		halfDouble bool
		want       bool
	}{
		{"direct/exact", 128, 128, 0, false, true},
		{"direct/within", 128, 130, 10, false, true},
		{"direct/boundary", 120, 130, 10, false, true},
		{"direct/too-far", 128, 100, 10, false, false},
		{"half/enabled", 128, 64, 10, true, true},
		{"half/with-tolerance", 140, 68, 10, true, true},
		{"half/disabled", 128, 64, 10, false, false},
		{"double/enabled", 75, 150, 10, true, true},
		{"double/reversed", 150, 75, 10, true, true},
		{"ratio/too-far", 128, 50, 5, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tempo.Compatible(tc.a, tc.b, tc.tolerance, tc.halfDouble)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestCompatible_Sentinels(t *testing.T) {
	_, err := tempo.Compatible(0, 128, 10, true)
	require.ErrorIs(t, err, tempo.ErrNonPositiveBPM)

	_, err = tempo.Compatible(128, -1, 10, true)
	require.ErrorIs(t, err, tempo.ErrNonPositiveBPM)

	_, err = tempo.Compatible(128, 130, -0.5, true)
	require.ErrorIs(t, err, tempo.ErrNegativeTolerance)
}

// TestCompatible_Symmetry sweeps a grid of tempos and asserts
// Compatible(a,b) == Compatible(b,a) for both half/double policies.
func TestCompatible_Symmetry(t *testing.T) {
	tempos := []float64{60, 64, 70, 75, 85, 100, 120, 128, 140, 150, 174, 200}
	tolerances := []float64{0, 2, 5, 10}

	var (
		a, b, tol float64
		hd        bool
	)
	for _, a = range tempos {
		for _, b = range tempos {
			for _, tol = range tolerances {
				for _, hd = range []bool{false, true} {
					ab, err := tempo.Compatible(a, b, tol, hd)
					require.NoError(t, err)
					ba, err := tempo.Compatible(b, a, tol, hd)
					require.NoError(t, err)
					require.Equalf(t, ab, ba,
						"asymmetry: a=%.1f b=%.1f tol=%.1f halfDouble=%v", a, b, tol, hd)
				}
			}
		}
	}
}

func TestDifference(t *testing.T) {
	require.InDelta(t, 2.0, tempo.Difference(128, 130, true), 1e-9)
	require.InDelta(t, 0.0, tempo.Difference(128, 64, true), 1e-9)
	require.InDelta(t, 2.0, tempo.Difference(140, 68, true), 1e-9)
	// Ratio forms ignored when disabled.
	require.InDelta(t, 64.0, tempo.Difference(128, 64, false), 1e-9)
	// Symmetric by construction.
	require.InDelta(t, tempo.Difference(75, 150, true), tempo.Difference(150, 75, true), 1e-9)
}
