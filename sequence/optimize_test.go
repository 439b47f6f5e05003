// End-to-end optimization tests.
// Focus:
//  1. The four canonical scenarios (ordered triple, single track,
//     disconnected pair, isolated must-include).
//  2. Constraint properties on returned playlists: energy monotonicity,
//     violation budget, must-include dominance.
//  3. Idempotence of repeated solves.
//  4. Supplemented hard constraints: start/end forcing, target length,
//     duration cap.
//  5. Staged validation sentinels.
package sequence_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mixkraft/seqmix/camelot"
	"github.com/mixkraft/seqmix/sequence"
)

// ids extracts playlist IDs for compact assertions.
func ids(res sequence.Result) []string {
	out := make([]string, 0, len(res.Playlist))
	for _, t := range res.Playlist {
		out = append(out, t.ID)
	}

	return out
}

func TestOptimize_OrderedTriple(t *testing.T) {
	// 9A@125/E2 can only open the set (energy 2 < 3); 8A→8B is the only
	// violation-free continuation under Strict with a zero budget.
	tracks := []sequence.Track{
		mustTrack(t, "a", "8A", 128, 3),
		mustTrack(t, "b", "8B", 130, 3),
		mustTrack(t, "c", "9A", 125, 2),
	}
	opts := sequence.DefaultOptions(
		sequence.WithBPMTolerance(10),
		sequence.WithLevel(camelot.Strict),
		sequence.WithMaxViolationFraction(0),
	)

	res, err := sequence.Optimize(tracks, opts)
	require.NoError(t, err)
	require.Equal(t, sequence.StatusOptimal, res.Status)
	require.Equal(t, []string{"c", "a", "b"}, ids(res))
	require.Equal(t, 0, res.Violations)
	require.Equal(t, 3, res.TracksConsidered)
	require.Equal(t, 3, res.TracksSelected)

	// Energy never decreases along the sequence.
	for i := 0; i+1 < len(res.Playlist); i++ {
		require.GreaterOrEqual(t, res.Playlist[i+1].Energy, res.Playlist[i].Energy)
	}
}

func TestOptimize_SingleTrack(t *testing.T) {
	tracks := []sequence.Track{mustTrack(t, "only", "4B", 90, 5)}

	res, err := sequence.Optimize(tracks, sequence.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, sequence.StatusOptimal, res.Status)
	require.Equal(t, []string{"only"}, ids(res))
	require.Equal(t, 0, res.Violations)
	require.Empty(t, res.Transitions)
	require.InDelta(t, 90, res.Stats.AvgBPM, 1e-9)
	require.InDelta(t, 100, res.Stats.HarmonicPct, 1e-9)
}

func TestOptimize_DisconnectedPair(t *testing.T) {
	// 128 vs 100 at tolerance 10 with half/double disabled: no edge, so
	// only one track fits.
	tracks := []sequence.Track{
		mustTrack(t, "a", "8A", 128, 3),
		mustTrack(t, "b", "8A", 100, 3),
	}
	opts := sequence.DefaultOptions(sequence.WithHalfDouble(false))

	res, err := sequence.Optimize(tracks, opts)
	require.NoError(t, err)
	require.Equal(t, sequence.StatusOptimal, res.Status)
	require.Equal(t, 1, res.TracksSelected)

	// Priority steers which of the tied singletons wins.
	res, err = sequence.Optimize(tracks, sequence.DefaultOptions(
		sequence.WithHalfDouble(false),
		sequence.WithPriority("b", 2),
	))
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, ids(res))
}

func TestOptimize_IsolatedMustInclude(t *testing.T) {
	// "solo" (200 BPM) has no tempo-compatible neighbor; insisting on it
	// shrinks the optimum to a single track even though a 3-track
	// playlist exists without it.
	tracks := []sequence.Track{
		mustTrack(t, "a", "8A", 122, 3),
		mustTrack(t, "b", "8B", 126, 3),
		mustTrack(t, "c", "9A", 124, 3),
		mustTrack(t, "solo", "1A", 200, 3),
	}

	res, err := sequence.Optimize(tracks, sequence.DefaultOptions(sequence.WithHalfDouble(false)))
	require.NoError(t, err)
	require.Equal(t, 3, res.TracksSelected)
	require.NotContains(t, ids(res), "solo")

	res, err = sequence.Optimize(tracks, sequence.DefaultOptions(
		sequence.WithHalfDouble(false),
		sequence.WithMustInclude("solo"),
	))
	require.NoError(t, err)
	require.Equal(t, sequence.StatusOptimal, res.Status)
	require.Equal(t, []string{"solo"}, ids(res))
}

func TestOptimize_ViolationBudget(t *testing.T) {
	// a→b is an always-violating transition (hour distance 6); b→c is
	// identical-key. With a zero budget only [b, c] fits; with one
	// violation allowed all three chain up.
	tracks := []sequence.Track{
		mustTrack(t, "a", "8A", 128, 3),
		mustTrack(t, "b", "2A", 126, 3),
		mustTrack(t, "c", "2A", 124, 3),
	}

	res, err := sequence.Optimize(tracks, sequence.DefaultOptions(sequence.WithMaxViolationFraction(0)))
	require.NoError(t, err)
	require.Equal(t, 2, res.TracksSelected)
	require.Equal(t, 0, res.Violations)

	res, err = sequence.Optimize(tracks, sequence.DefaultOptions(sequence.WithMaxViolationFraction(0.34)))
	require.NoError(t, err)
	require.Equal(t, 3, res.TracksSelected)
	require.Equal(t, 1, res.Violations)

	// The returned playlist always satisfies V ≤ floor(fraction × K).
	require.LessOrEqual(t, res.Violations, res.TracksSelected/3)
}

func TestOptimize_EnergyMonotonicity(t *testing.T) {
	// All same key and tempo cluster: ordering is constrained only by
	// energy flow, so the full set must come back sorted by energy.
	energies := []int{4, 1, 3, 5, 2, 3}
	tracks := make([]sequence.Track, 0, len(energies))
	for i, e := range energies {
		tracks = append(tracks, mustTrack(t, string(rune('a'+i)), "8A", 124+float64(i), e))
	}

	res, err := sequence.Optimize(tracks, sequence.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, len(energies), res.TracksSelected)
	for i := 0; i+1 < len(res.Playlist); i++ {
		require.GreaterOrEqual(t, res.Playlist[i+1].Energy, res.Playlist[i].Energy)
	}

	// Disabling the constraint keeps everything reachable too.
	res, err = sequence.Optimize(tracks, sequence.DefaultOptions(sequence.WithEnergyFlow(false)))
	require.NoError(t, err)
	require.Equal(t, len(energies), res.TracksSelected)
}

func TestOptimize_Idempotence(t *testing.T) {
	tracks := []sequence.Track{
		mustTrack(t, "a", "8A", 128, 3),
		mustTrack(t, "b", "8B", 130, 3),
		mustTrack(t, "c", "9A", 125, 2),
		mustTrack(t, "d", "7A", 121, 4),
	}
	opts := sequence.DefaultOptions()

	first, err := sequence.Optimize(tracks, opts)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := sequence.Optimize(tracks, opts)
		require.NoError(t, err)
		require.Equal(t, first.TracksSelected, again.TracksSelected)
		require.Equal(t, first.Status, again.Status)
		require.Equal(t, first.Violations, again.Violations)
	}
}

func TestOptimize_StartEndForcing(t *testing.T) {
	tracks := []sequence.Track{
		mustTrack(t, "a", "8A", 128, 3),
		mustTrack(t, "b", "8B", 130, 3),
		mustTrack(t, "c", "9A", 125, 3),
	}

	res, err := sequence.Optimize(tracks, sequence.DefaultOptions(
		sequence.WithStartTrack("b"),
		sequence.WithEndTrack("c"),
	))
	require.NoError(t, err)
	require.NotEmpty(t, res.Playlist)
	require.Equal(t, "b", res.Playlist[0].ID)
	require.Equal(t, "c", res.Playlist[len(res.Playlist)-1].ID)
}

func TestOptimize_TargetLength(t *testing.T) {
	tracks := []sequence.Track{
		mustTrack(t, "a", "8A", 128, 3),
		mustTrack(t, "b", "8B", 130, 3),
		mustTrack(t, "c", "9A", 125, 3),
	}

	res, err := sequence.Optimize(tracks, sequence.DefaultOptions(sequence.WithTargetLength(2)))
	require.NoError(t, err)
	require.Equal(t, sequence.StatusOptimal, res.Status)
	require.Equal(t, 2, res.TracksSelected)

	// More tracks demanded than supplied: provably infeasible, empty
	// playlist, no error.
	res, err = sequence.Optimize(tracks, sequence.DefaultOptions(sequence.WithTargetLength(5)))
	require.NoError(t, err)
	require.Equal(t, sequence.StatusInfeasible, res.Status)
	require.Empty(t, res.Playlist)
}

func TestOptimize_DurationCap(t *testing.T) {
	long := func(id string, bpm float64) sequence.Track {
		tr, err := sequence.NewTrack(id, mustKey(t, "8A"), bpm, 3, 300)
		require.NoError(t, err)

		return tr
	}
	tracks := []sequence.Track{long("a", 124), long("b", 126), long("c", 128)}

	res, err := sequence.Optimize(tracks, sequence.DefaultOptions(sequence.WithMaxDuration(650)))
	require.NoError(t, err)
	require.Equal(t, 2, res.TracksSelected)
	require.LessOrEqual(t, res.Stats.TotalDuration, 650.0)
}

func TestOptimize_TimeBudgetExpires(t *testing.T) {
	// Two incompatible key blocks force heavy backtracking under a tight
	// violation budget; a nanosecond budget cannot finish the search but
	// the empty baseline keeps the outcome feasible.
	tracks := make([]sequence.Track, 0, 16)
	for i := 0; i < 16; i++ {
		keyName := "8A"
		if i%2 == 1 {
			keyName = "2A"
		}
		tracks = append(tracks, mustTrack(t, string(rune('a'+i)), keyName, 120+float64(i%8), 3))
	}

	res, err := sequence.Optimize(tracks, sequence.DefaultOptions(
		sequence.WithMaxViolationFraction(0.2),
		sequence.WithTimeBudget(time.Nanosecond),
	))
	require.NoError(t, err)
	require.Equal(t, sequence.StatusFeasibleTimeLimit, res.Status)
	// Whatever was found still honors the budget.
	require.LessOrEqual(t, res.Violations, res.TracksSelected/5)
}

func TestOptimize_InputSentinels(t *testing.T) {
	_, err := sequence.Optimize(nil, sequence.DefaultOptions())
	require.ErrorIs(t, err, sequence.ErrNoTracks)
	require.ErrorIs(t, err, sequence.ErrConfiguration)

	bad := sequence.Track{ID: "x", BPM: 128, Energy: 3} // zero Key
	_, err = sequence.Optimize([]sequence.Track{bad}, sequence.DefaultOptions())
	require.ErrorIs(t, err, sequence.ErrTrackKey)

	dup := []sequence.Track{
		mustTrack(t, "a", "8A", 128, 3),
		mustTrack(t, "a", "9A", 126, 3),
	}
	_, err = sequence.Optimize(dup, sequence.DefaultOptions())
	require.ErrorIs(t, err, sequence.ErrDuplicateTrackID)

	valid := []sequence.Track{mustTrack(t, "a", "8A", 128, 3)}
	_, err = sequence.Optimize(valid, sequence.DefaultOptions(sequence.WithMaxViolationFraction(1.5)))
	require.ErrorIs(t, err, sequence.ErrConfiguration)

	_, err = sequence.Optimize(valid, sequence.DefaultOptions(sequence.WithTimeBudget(0)))
	require.ErrorIs(t, err, sequence.ErrConfiguration)

	_, err = sequence.Optimize(valid, sequence.DefaultOptions(sequence.WithBPMTolerance(-1)))
	require.ErrorIs(t, err, sequence.ErrConfiguration)

	_, err = sequence.Optimize(valid, sequence.DefaultOptions(sequence.WithEnergyWeight(-0.5)))
	require.ErrorIs(t, err, sequence.ErrConfiguration)
}

func TestOptimize_EnergyWeightPreference(t *testing.T) {
	// Two chains of equal length that cannot connect to each other:
	// without an energy bonus their objectives tie, with one the
	// higher-energy pair must win.
	tracks := []sequence.Track{
		mustTrack(t, "h1", "1A", 128, 4),
		mustTrack(t, "h2", "1A", 128, 5),
		mustTrack(t, "l1", "7B", 90, 1),
		mustTrack(t, "l2", "7B", 90, 1),
	}
	opts := sequence.DefaultOptions(
		sequence.WithHalfDouble(false),
		sequence.WithEnergyWeight(1),
	)

	res, err := sequence.Optimize(tracks, opts)
	require.NoError(t, err)
	require.Equal(t, sequence.StatusOptimal, res.Status)
	require.Equal(t, 2, res.TracksSelected)
	require.Equal(t, "h1", res.Playlist[0].ID)
	require.Equal(t, "h2", res.Playlist[1].ID)
	require.Zero(t, res.Violations)
}
