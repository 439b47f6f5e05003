// Package tempo provides pure BPM-compatibility predicates for mixing.
//
// Two tempos are considered mixable when their difference stays within a
// tolerance, either directly or — when half/double-time matching is
// enabled — after halving or doubling one of them. The predicate is
// symmetric: Compatible(a, b, ...) == Compatible(b, a, ...) for every
// valid input, because both ratio orientations are always tested.
//
// Complexity:
//
//	– Time:  O(1) per call
//	– Space: O(1), no allocations
//
// Errors (sentinel):
//
//	– ErrNonPositiveBPM     if either tempo is zero or negative.
//	– ErrNegativeTolerance  if the tolerance is negative.
//
// Example usage:
//
//	ok, err := tempo.Compatible(128, 64, 10, true) // half-time match
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ok) // true
package tempo
