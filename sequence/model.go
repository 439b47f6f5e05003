package sequence

import "math"

// baseTrackWeight is the objective value of including one ordinary
// track. Priorities and energy bonuses stack on top of it, so maximizing
// the objective with all-equal weights maximizes the playlist length.
const baseTrackWeight = 1.0

// budgetEps absorbs floating-point drift before flooring the violation
// budget, so a fraction like 0.3 over 10 selected tracks yields 3, not 2.
const budgetEps = 1e-9

// Model is the declarative encoding of one sequencing problem: the
// compatibility graph plus objective weights and hard constraints. It is
// what an Engine solves. Build it once per call; a Model is never reused
// across solves.
type Model struct {
	graph *compatGraph

	weights  []float64 // per-track objective weight (base + priority + energy bonus)
	must     []bool    // per-track must-include flag
	numMust  int       // count of must-include tracks
	sentinel float64   // objective bonus granted to each must-include track

	enforceEnergy     bool
	violationFraction float64

	startIdx     int     // forced first track, -1 when unset
	endIdx       int     // forced last track, -1 when unset
	targetLength int     // exact selected-track count, 0 when unconstrained
	maxDuration  float64 // summed-duration cap in seconds, 0 when unlimited
}

// buildModel resolves ID references against the graph and assembles the
// objective. Unknown IDs in priorities, must-include, or start/end
// forcing are configuration faults.
//
// The must-include sentinel is chosen orders of magnitude above the
// total ordinary objective mass, so any feasible assignment carrying a
// must-include track strictly dominates every assignment that drops it.
//
// Complexity: O(n + len(Priorities) + len(MustInclude)).
func buildModel(g *compatGraph, opts Options) (*Model, error) {
	m := &Model{
		graph:             g,
		weights:           make([]float64, g.n),
		must:              make([]bool, g.n),
		enforceEnergy:     opts.EnforceEnergyFlow,
		violationFraction: opts.MaxViolationFraction,
		startIdx:          -1,
		endIdx:            -1,
		targetLength:      opts.TargetLength,
		maxDuration:       opts.MaxDuration,
	}
	var (
		i       int
		maxBase = baseTrackWeight
	)
	for i = 0; i < g.n; i++ {
		m.weights[i] = baseTrackWeight + opts.EnergyWeight*float64(g.tracks[i].Energy)
		if m.weights[i] > maxBase {
			maxBase = m.weights[i]
		}
	}
	for id, w := range opts.Priorities {
		idx, ok := g.indexByID[id]
		if !ok {
			return nil, ErrUnknownTrackID
		}
		m.weights[idx] += w
		if m.weights[idx] > maxBase {
			maxBase = m.weights[idx]
		}
	}

	// Sentinel above anything n ordinary tracks could ever sum to.
	m.sentinel = maxBase * float64(g.n+1) * 1000

	for _, id := range opts.MustInclude {
		idx, ok := g.indexByID[id]
		if !ok {
			return nil, ErrUnknownTrackID
		}
		if !m.must[idx] {
			m.must[idx] = true
			m.numMust++
			m.weights[idx] += m.sentinel
		}
	}

	if opts.StartTrackID != "" {
		idx, ok := g.indexByID[opts.StartTrackID]
		if !ok {
			return nil, ErrUnknownTrackID
		}
		m.startIdx = idx
	}
	if opts.EndTrackID != "" {
		idx, ok := g.indexByID[opts.EndTrackID]
		if !ok {
			return nil, ErrUnknownTrackID
		}
		m.endIdx = idx
	}

	return m, nil
}

// maxViolations returns the harmonic violation budget for k selected
// tracks: floor(fraction × k), with a tiny epsilon against FP drift.
func (m *Model) maxViolations(k int) int {
	return int(math.Floor(m.violationFraction*float64(k) + budgetEps))
}

// arcAllowed reports whether the transition u→v may be taken under the
// hard edge-level constraints: tempo feasibility always, energy
// monotonicity when enforced (anchor arcs and self-loops exempt by
// construction of energyOK).
func (m *Model) arcAllowed(u, v int) bool {
	idx := m.graph.at(u, v)
	if !m.graph.feasible[idx] {
		return false
	}
	if m.enforceEnergy && !m.graph.energyOK[idx] {
		return false
	}

	return true
}

// emptyAllowed reports whether the degenerate empty playlist satisfies
// the hard constraints (it never satisfies must-include demands, which
// are handled through the objective sentinel).
func (m *Model) emptyAllowed() bool {
	return m.startIdx < 0 && m.endIdx < 0 && m.targetLength == 0
}

// Assignment is a solved set of circuit variables: one taken outgoing
// arc per node (Next[u] == u means the exclusion self-loop), plus the
// bookkeeping the engine certified.
type Assignment struct {
	Next       []int  // len n+1; Next[u] is the taken arc's head
	Included   []bool // len n; track inclusion indicators
	Violations int    // harmonic violations over taken track-track arcs
	Objective  float64
}
