package sequence

import (
	"github.com/mixkraft/seqmix/camelot"
	"github.com/mixkraft/seqmix/tempo"
)

// compatGraph is the directed compatibility graph over n tracks plus one
// synthetic anchor node at index n. Edges are stored in dense (n+1)²
// buffers indexed u*(n+1)+v to keep the solver's hot loops free of
// interface dispatch and map lookups.
//
// Edge semantics:
//   - feasible[u][v]: the transition u→v may be taken. Track-track pairs
//     are feasible iff tempo-compatible; anchor↔track arcs and the
//     anchor self-loop are always feasible; each track's self-loop is
//     feasible and stands for "excluded from the result".
//   - tier[u][v]: harmonic tier of a track-track pair (undefined for
//     anchor arcs and self-loops).
//   - violation[u][v]: the pair's tier is a violation at the configured
//     strictness level. Harmonic mismatch is soft: it never removes an
//     edge, it only counts against the violation budget.
//   - energyOK[u][v]: energy(v) ≥ energy(u). Consulted by the model only
//     when energy flow is enforced; anchor arcs are exempt.
type compatGraph struct {
	n      int     // number of real tracks; anchor index == n
	tracks []Track // the validated input, index-addressed

	feasible  []bool
	tier      []camelot.TransitionTier
	violation []bool
	energyOK  []bool

	indexByID map[string]int // track ID → node index
}

// anchor returns the synthetic anchor node index.
func (g *compatGraph) anchor() int { return g.n }

// at flattens a (u, v) pair into the dense buffers.
func (g *compatGraph) at(u, v int) int { return u*(g.n+1) + v }

// buildGraph constructs the compatibility graph for a validated track
// list. Tracks must already have passed Validate; tempo.Compatible
// therefore cannot fail here, and an error from it is a programming
// fault surfaced as ErrEngineFailure.
//
// Complexity: O(n²) time and space.
func buildGraph(tracks []Track, opts Options) (*compatGraph, error) {
	n := len(tracks)
	g := &compatGraph{
		n:         n,
		tracks:    tracks,
		feasible:  make([]bool, (n+1)*(n+1)),
		tier:      make([]camelot.TransitionTier, (n+1)*(n+1)),
		violation: make([]bool, (n+1)*(n+1)),
		energyOK:  make([]bool, (n+1)*(n+1)),
		indexByID: make(map[string]int, n),
	}

	var (
		i, j   int
		ok     bool
		err    error
		anchor = g.anchor()
	)
	for i = 0; i < n; i++ {
		g.indexByID[tracks[i].ID] = i
	}

	// Track-track arcs: materialized only where tempo compatibility holds.
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			ok, err = tempo.Compatible(tracks[i].BPM, tracks[j].BPM, opts.BPMTolerance, opts.AllowHalfDouble)
			if err != nil {
				return nil, ErrEngineFailure
			}
			if !ok {
				continue
			}
			idx := g.at(i, j)
			g.feasible[idx] = true
			g.tier[idx] = camelot.Tier(tracks[i].Key, tracks[j].Key)
			g.violation[idx] = !opts.Level.Allows(g.tier[idx])
			g.energyOK[idx] = tracks[j].Energy >= tracks[i].Energy
		}
	}

	// Anchor arcs: tempo-compatible with everything by construction, so
	// the tour can open and close anywhere. Exempt from harmonic and
	// energy constraints.
	for i = 0; i < n; i++ {
		g.feasible[g.at(anchor, i)] = true
		g.feasible[g.at(i, anchor)] = true
		g.energyOK[g.at(anchor, i)] = true
		g.energyOK[g.at(i, anchor)] = true
	}

	// Self-loops: anchor's closes the degenerate empty tour; a track's
	// marks the track as excluded.
	for i = 0; i <= n; i++ {
		idx := g.at(i, i)
		g.feasible[idx] = true
		g.energyOK[idx] = true
	}

	return g, nil
}
