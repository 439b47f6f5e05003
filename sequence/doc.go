// Package sequence selects and orders a maximal subset of tracks into a
// single playlist in which every consecutive pair is tempo-compatible,
// harmonic mismatches stay within a bounded fraction of transitions, and
// perceived energy never decreases.
//
// The problem is a constrained maximum-length circuit. The track set is
// extended with one synthetic anchor node; the open playlist
//
//	anchor → t1 → t2 → … → tk → anchor
//
// becomes a closed tour, and a node whose self-loop is taken is excluded
// from the result. This is the standard reduction from "longest simple
// path" to a circuit formulation: every node has exactly one incoming and
// one outgoing taken arc, and self-loops stand for exclusion. The anchor
// is tempo-compatible with everything by construction and is exempt from
// harmonic and energy constraints, so the tour can open and close
// anywhere.
//
// Pipeline:
//
//	Optimize → validate → buildGraph → buildModel → Engine.Solve → reconstruct
//
// The solving backend sits behind the Engine interface; the default is an
// exact Branch-and-Bound circuit search with a soft wall-clock budget.
// Timeouts and infeasibility are Status values, not errors: callers must
// inspect Result.Status to distinguish "no valid playlist exists" from
// "something failed". Only malformed input (ErrValidation,
// ErrConfiguration) and internal solver faults (ErrEngineFailure) surface
// as errors.
//
// Concurrency: one call transforms one track list into one result, with
// no shared mutable state between calls. Concurrent independent calls are
// safe; a single call is not reentrant. The time budget is the only
// cancellation mechanism.
//
// Complexity:
//
//	– Graph construction: O(n²) for n tracks.
//	– Solving: exponential worst case (exact search); pruning by an
//	  admissible remaining-weight bound keeps practical instances fast.
//	– Reconstruction: O(k) for a k-track playlist.
//
// Example usage:
//
//	res, err := sequence.Optimize(tracks, sequence.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Status == sequence.StatusInfeasible {
//	    // no valid playlist under the hard constraints
//	}
//	for _, t := range res.Playlist {
//	    fmt.Println(t.ID)
//	}
package sequence
