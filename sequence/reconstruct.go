package sequence

import (
	"github.com/mixkraft/seqmix/camelot"
	"github.com/mixkraft/seqmix/tempo"
)

// reconstruct walks the taken arcs from the anchor's outgoing edge back
// to the anchor and builds the final Result. Anchor endpoints are
// excluded from the emitted sequence; an anchor self-loop yields the
// empty playlist.
//
// Harmonic violations are re-counted over the emitted pairs and must
// equal the count the engine certified, and the inclusion indicators
// must match the walked node set exactly — every included node on the
// anchor's cycle, every excluded node on its self-loop. Any mismatch
// means the backend produced an inconsistent assignment (for instance a
// sub-cycle disjoint from the anchor) and surfaces as ErrEngineFailure.
//
// Complexity: O(k) for a k-track playlist.
func reconstruct(g *compatGraph, opts Options, a Assignment, status Status) (Result, error) {
	var (
		anchor   = g.anchor()
		playlist = make([]Track, 0, g.n)
		walked   = make([]bool, g.n)
		current  int
	)
	if len(a.Next) != g.n+1 || len(a.Included) != g.n {
		return Result{}, ErrEngineFailure
	}

	current = a.Next[anchor]
	for current != anchor {
		if current < 0 || current >= g.n || walked[current] {
			// Out-of-range head or a revisited node: the walk from the
			// anchor does not encode a single closed tour.
			return Result{}, ErrEngineFailure
		}
		walked[current] = true
		playlist = append(playlist, g.tracks[current])
		current = a.Next[current]
	}

	for u := 0; u < g.n; u++ {
		if walked[u] != a.Included[u] {
			return Result{}, ErrEngineFailure
		}
		if !walked[u] && a.Next[u] != u {
			// An excluded node must take its exclusion self-loop; a
			// stray arc here is a sub-cycle the anchor never reaches.
			return Result{}, ErrEngineFailure
		}
	}

	transitions := make([]Transition, 0, max(0, len(playlist)-1))
	violations := 0

	var i int
	for i = 0; i+1 < len(playlist); i++ {
		from, to := playlist[i], playlist[i+1]
		tier := camelot.Tier(from.Key, to.Key)
		harmonic := opts.Level.Allows(tier)
		if !harmonic {
			violations++
		}
		transitions = append(transitions, Transition{
			FromID:        from.ID,
			ToID:          to.ID,
			Tier:          tier,
			Harmonic:      harmonic,
			BPMDifference: tempo.Difference(from.BPM, to.BPM, opts.AllowHalfDouble),
		})
	}

	if violations != a.Violations {
		return Result{}, ErrEngineFailure
	}

	return Result{
		Playlist:         playlist,
		Status:           status,
		Violations:       violations,
		TracksConsidered: g.n,
		TracksSelected:   len(playlist),
		Transitions:      transitions,
		Stats:            buildStats(g.n, playlist, transitions, violations),
	}, nil
}

// buildStats computes all aggregate statistics in one constructing step,
// so the result never mutates after creation.
func buildStats(considered int, playlist []Track, transitions []Transition, violations int) Stats {
	var st Stats
	if len(playlist) == 0 {
		st.HarmonicPct = 100
		return st
	}

	var (
		sumBPM      float64
		minBPM      = playlist[0].BPM
		maxBPM      = playlist[0].BPM
		energyDelta float64
	)
	for _, t := range playlist {
		sumBPM += t.BPM
		if t.BPM < minBPM {
			minBPM = t.BPM
		}
		if t.BPM > maxBPM {
			maxBPM = t.BPM
		}
		st.TotalDuration += t.Duration
	}
	st.AvgBPM = sumBPM / float64(len(playlist))
	st.BPMRange = [2]float64{minBPM, maxBPM}

	if considered > 0 {
		st.CoveragePct = float64(len(playlist)) / float64(considered) * 100
	}

	if len(transitions) == 0 {
		st.HarmonicPct = 100
		return st
	}
	st.HarmonicPct = float64(len(transitions)-violations) / float64(len(transitions)) * 100

	for i := 0; i+1 < len(playlist); i++ {
		energyDelta += float64(playlist[i+1].Energy - playlist[i].Energy)
	}
	st.AvgEnergyDelta = energyDelta / float64(len(transitions))

	return st
}
