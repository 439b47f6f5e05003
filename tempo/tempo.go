package tempo

import (
	"errors"
	"math"
)

// Sentinel errors returned by tempo predicates.
var (
	// ErrNonPositiveBPM indicates that a tempo value was zero or negative.
	ErrNonPositiveBPM = errors.New("tempo: BPM must be positive")

	// ErrNegativeTolerance indicates that the tolerance was negative.
	ErrNegativeTolerance = errors.New("tempo: tolerance must be non-negative")
)

// Compatible reports whether two tempos are mixable under the given
// tolerance. The checks, OR-ed together:
//
//	direct:      |a − b|   ≤ tolerance
//	half-time:   |a − b/2| ≤ tolerance   (only if allowHalfDouble)
//	double-time: |a − 2b|  ≤ tolerance   (only if allowHalfDouble)
//
// Both orientations of the ratio forms are tested (a vs b/2 and b vs a/2),
// so the predicate is symmetric even though each single form is not.
//
// Complexity: O(1).
func Compatible(a, b, tolerance float64, allowHalfDouble bool) (bool, error) {
	if a <= 0 || b <= 0 {
		return false, ErrNonPositiveBPM
	}
	if tolerance < 0 {
		return false, ErrNegativeTolerance
	}

	// Direct match.
	if math.Abs(a-b) <= tolerance {
		return true, nil
	}
	if !allowHalfDouble {
		return false, nil
	}

	// Half-time and double-time, both orientations.
	if math.Abs(a-b/2) <= tolerance || math.Abs(b-a/2) <= tolerance {
		return true, nil
	}

	return math.Abs(a-2*b) <= tolerance || math.Abs(b-2*a) <= tolerance, nil
}

// Difference returns the minimal tempo gap between a and b over the
// enabled forms: direct always, half-time and double-time (in both
// orientations) when allowHalfDouble is set.
//
// Non-positive inputs yield the plain direct gap; validation belongs to
// callers that care (Compatible enforces it).
//
// Complexity: O(1).
func Difference(a, b float64, allowHalfDouble bool) float64 {
	min := math.Abs(a - b)
	if !allowHalfDouble {
		return min
	}

	var (
		candidates = [4]float64{
			math.Abs(a - b/2),
			math.Abs(b - a/2),
			math.Abs(a - 2*b),
			math.Abs(b - 2*a),
		}
		c float64 // candidate under comparison
	)
	for _, c = range candidates {
		if c < min {
			min = c
		}
	}

	return min
}
