// Backend-contract tests: OptimizeWithEngine must faithfully map engine
// outcomes onto results, and the reconstruction self-check must reject
// inconsistent assignments instead of downgrading them.
package sequence_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mixkraft/seqmix/sequence"
)

// stubEngine returns a canned outcome, standing in for an external
// solving backend behind the Engine interface.
type stubEngine struct {
	assignment sequence.Assignment
	status     sequence.Status
	err        error
}

func (s stubEngine) Solve(*sequence.Model, time.Duration) (sequence.Assignment, sequence.Status, error) {
	return s.assignment, s.status, s.err
}

func twoTracks(t *testing.T) []sequence.Track {
	t.Helper()

	return []sequence.Track{
		mustTrack(t, "a", "8A", 128, 3),
		mustTrack(t, "b", "8B", 130, 3),
	}
}

func TestOptimizeWithEngine_UnknownStatus(t *testing.T) {
	res, err := sequence.OptimizeWithEngine(twoTracks(t), sequence.DefaultOptions(),
		stubEngine{status: sequence.StatusUnknown})
	require.NoError(t, err)
	require.Equal(t, sequence.StatusUnknown, res.Status)
	require.Empty(t, res.Playlist)
	require.Equal(t, 2, res.TracksConsidered)
}

func TestOptimizeWithEngine_BackendError(t *testing.T) {
	boom := errors.New("backend crashed")
	_, err := sequence.OptimizeWithEngine(twoTracks(t), sequence.DefaultOptions(),
		stubEngine{err: boom})
	require.ErrorIs(t, err, boom)
}

func TestOptimizeWithEngine_ViolationMismatch(t *testing.T) {
	// Tour anchor→a→b→anchor with a fabricated violation count: the
	// reconstruction recount must catch the inconsistency.
	a := sequence.Assignment{
		Next:       []int{1, 2, 0}, // a→b, b→anchor, anchor→a
		Included:   []bool{true, true},
		Violations: 7,
	}
	_, err := sequence.OptimizeWithEngine(twoTracks(t), sequence.DefaultOptions(),
		stubEngine{assignment: a, status: sequence.StatusOptimal})
	require.ErrorIs(t, err, sequence.ErrEngineFailure)
}

func TestOptimizeWithEngine_BrokenTour(t *testing.T) {
	// a→b, b→a never returns to the anchor: not a single closed tour.
	a := sequence.Assignment{
		Next:       []int{1, 0, 0},
		Included:   []bool{true, true},
		Violations: 0,
	}
	_, err := sequence.OptimizeWithEngine(twoTracks(t), sequence.DefaultOptions(),
		stubEngine{assignment: a, status: sequence.StatusOptimal})
	require.ErrorIs(t, err, sequence.ErrEngineFailure)
}

func TestOptimizeWithEngine_DisjointSubCycle(t *testing.T) {
	// The anchor takes its self-loop while a→b→a forms a cycle of its
	// own. The walk from the anchor is empty, so only the inclusion
	// cross-check can expose the stray sub-cycle.
	a := sequence.Assignment{
		Next:       []int{1, 0, 2},
		Included:   []bool{true, true},
		Violations: 0,
	}
	_, err := sequence.OptimizeWithEngine(twoTracks(t), sequence.DefaultOptions(),
		stubEngine{assignment: a, status: sequence.StatusOptimal})
	require.ErrorIs(t, err, sequence.ErrEngineFailure)
}

func TestOptimizeWithEngine_InclusionMismatch(t *testing.T) {
	// A valid anchor→a→anchor tour, but b claims inclusion while
	// sitting on its self-loop.
	a := sequence.Assignment{
		Next:       []int{2, 1, 0},
		Included:   []bool{true, true},
		Violations: 0,
	}
	_, err := sequence.OptimizeWithEngine(twoTracks(t), sequence.DefaultOptions(),
		stubEngine{assignment: a, status: sequence.StatusOptimal})
	require.ErrorIs(t, err, sequence.ErrEngineFailure)
}

func TestOptimizeWithEngine_MalformedAssignmentShape(t *testing.T) {
	a := sequence.Assignment{Next: []int{0}} // wrong length
	_, err := sequence.OptimizeWithEngine(twoTracks(t), sequence.DefaultOptions(),
		stubEngine{assignment: a, status: sequence.StatusOptimal})
	require.ErrorIs(t, err, sequence.ErrEngineFailure)
}

func TestBranchBound_EmptyResultWhenNothingFits(t *testing.T) {
	// A start track that is its own only neighbor cannot chain, so the
	// playlist degenerates to that single track — and forcing an exact
	// length of two on top of it is provably infeasible.
	tracks := []sequence.Track{
		mustTrack(t, "a", "8A", 128, 3),
		mustTrack(t, "b", "8A", 60, 3),
	}
	opts := sequence.DefaultOptions(
		sequence.WithHalfDouble(false),
		sequence.WithStartTrack("a"),
		sequence.WithTargetLength(2),
	)

	res, err := sequence.Optimize(tracks, opts)
	require.NoError(t, err)
	require.Equal(t, sequence.StatusInfeasible, res.Status)
	require.Empty(t, res.Playlist)
}
