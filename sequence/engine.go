package sequence

import (
	"sort"
	"time"
)

// Engine is the narrow solving-capability contract: given a circuit
// model over the compatibility graph, return within a soft time budget
// either an optimal assignment, a best-found assignment with optimality
// unproven, a proof of infeasibility, or no conclusion — as a Status.
// Errors are reserved for internal backend faults.
//
// Implementations need not be reentrant; Optimize creates one session
// per call. Any general-purpose constraint or integer-programming
// backend can sit behind this interface.
type Engine interface {
	Solve(m *Model, budget time.Duration) (Assignment, Status, error)
}

// BranchBound is the default Engine: an exact depth-first
// Branch-and-Bound circuit search with deterministic branching and an
// admissible remaining-weight upper bound.
//
// Search design:
//  1. One synthetic anchor closes the open playlist into a tour; a
//     node's self-loop stands for exclusion, so the search enumerates
//     paths anchor → … → anchor over any subset of tracks.
//  2. Branching order: successors sorted by descending objective weight
//     (index tiebreak), precomputed per node. Heavy tracks enter the
//     incumbent early, which tightens pruning while staying fully
//     deterministic.
//  3. Bound: currentWeight + Σ weight(unvisited) is an upper bound on
//     any completion; prune when it cannot strictly beat the incumbent.
//  4. Violation budget floor(fraction×K) depends on the final selected
//     count K, so partial paths are pruned only against the loosest
//     possible budget floor(fraction×n); the exact budget is enforced
//     when a tour closes.
//  5. Soft time limit: sparse deadline checks (every 1024 node events).
//
// Complexity: exponential worst case (exact search); per node O(n).
type BranchBound struct{}

// NewBranchBound returns the default Branch-and-Bound engine.
func NewBranchBound() *BranchBound { return &BranchBound{} }

// bbSearch holds one solve session's state. A dedicated struct (instead
// of closures) keeps the hot-path state predictable and testable.
type bbSearch struct {
	m      *Model
	n      int
	anchor int

	useDeadline bool
	deadline    time.Time
	steps       int
	timedOut    bool

	succ [][]int // per node: feasible successor tracks, weight-desc order

	visited   []bool
	path      []int   // selected track indices in tour order
	dur       float64 // summed durations of the current path
	remaining float64
	budgetAll int // loosest violation budget, floor(fraction×n)

	found    bool
	bestPath []int
	bestV    int
	bestW    float64
}

// Solve runs the search and maps its outcome onto the Status contract.
func (BranchBound) Solve(m *Model, budget time.Duration) (Assignment, Status, error) {
	s := &bbSearch{
		m:      m,
		n:      m.graph.n,
		anchor: m.graph.anchor(),
	}
	if budget > 0 {
		s.useDeadline = true
		s.deadline = time.Now().Add(budget)
	}

	s.buildSuccessorOrder()
	s.visited = make([]bool, s.n)
	s.path = make([]int, 0, s.n)
	s.bestPath = make([]int, 0, s.n)
	s.budgetAll = m.maxViolations(s.n)
	for i := 0; i < s.n; i++ {
		s.remaining += m.weights[i]
	}

	// Baseline incumbent: the empty tour (anchor self-loop), feasible
	// unless start/end forcing or a target length forbids it.
	if m.emptyAllowed() {
		s.found = true
		s.bestW = 0
	}

	s.dfs(s.anchor, 0, 0, 0)

	switch {
	case s.timedOut && s.found:
		return s.assignment(), StatusFeasibleTimeLimit, nil
	case s.timedOut:
		return Assignment{}, StatusUnknown, nil
	case !s.found:
		return Assignment{}, StatusInfeasible, nil
	}

	// Search completed: the incumbent is globally optimal. A missing
	// must-include track therefore proves that no feasible assignment
	// carries it — the sentinel weight would have dominated.
	if !s.carriesAllMust() {
		return Assignment{}, StatusInfeasible, nil
	}

	return s.assignment(), StatusOptimal, nil
}

// buildSuccessorOrder precomputes, for every node, its feasible
// successor tracks sorted by descending weight (index tiebreak).
// Feasibility here is the hard edge level: tempo always, energy when
// enforced. Anchor closures and self-loops are handled in the search.
func (s *bbSearch) buildSuccessorOrder() {
	s.succ = make([][]int, s.n+1)

	var u, v int
	for u = 0; u <= s.n; u++ {
		row := make([]int, 0, s.n)
		for v = 0; v < s.n; v++ {
			if v == u {
				continue
			}
			if s.m.arcAllowed(u, v) {
				row = append(row, v)
			}
		}
		w := s.m.weights
		sort.SliceStable(row, func(i, j int) bool {
			if w[row[i]] == w[row[j]] {
				return row[i] < row[j]
			}

			return w[row[i]] > w[row[j]]
		})
		s.succ[u] = row
	}
}

// deadlineCheck performs a rare deadline test (every 1024 node events).
func (s *bbSearch) deadlineCheck() bool {
	if s.timedOut {
		return true
	}
	s.steps++
	if !s.useDeadline || (s.steps&1023) != 0 {
		return false
	}
	if time.Now().After(s.deadline) {
		s.timedOut = true
	}

	return s.timedOut
}

// closeTour records the current path as a new incumbent when the tour
// may legally return to the anchor here and strictly improves the
// objective.
func (s *bbSearch) closeTour(last, k, v int, w float64) {
	if k == 0 {
		return // empty baseline handled in Solve
	}
	if s.m.endIdx >= 0 && last != s.m.endIdx {
		return
	}
	if s.m.targetLength > 0 && k != s.m.targetLength {
		return
	}
	if v > s.m.maxViolations(k) {
		return
	}
	if s.found && w <= s.bestW {
		return
	}

	s.found = true
	s.bestW = w
	s.bestV = v
	s.bestPath = append(s.bestPath[:0], s.path...)
}

// dfs explores extensions of the current partial path.
// last is the current tour head (anchor at depth 0), k the selected
// count, v the violations so far, w the objective so far.
func (s *bbSearch) dfs(last, k, v int, w float64) {
	if s.deadlineCheck() {
		return
	}

	s.closeTour(last, k, v, w)

	// Bound: even taking every unvisited track cannot strictly beat the
	// incumbent.
	if s.found && w+s.remaining <= s.bestW {
		return
	}
	// A longer playlist never loosens an already blown loosest budget.
	if v > s.budgetAll {
		return
	}
	// Extending past an exact target length is pointless.
	if s.m.targetLength > 0 && k == s.m.targetLength {
		return
	}

	order := s.succ[last]
	if last == s.anchor && s.m.startIdx >= 0 {
		// Start forcing: the anchor's only legal outgoing arc heads to
		// the forced first track.
		if !s.m.arcAllowed(s.anchor, s.m.startIdx) {
			return
		}
		order = []int{s.m.startIdx}
	}

	var (
		next  int
		nextV int
		dur   float64
	)
	for _, next = range order {
		if s.visited[next] {
			continue
		}
		dur = s.m.graph.tracks[next].Duration
		if s.m.maxDuration > 0 && s.dur+dur > s.m.maxDuration+budgetEps {
			continue
		}
		nextV = v
		if last != s.anchor && s.m.graph.violation[s.m.graph.at(last, next)] {
			nextV++
		}

		s.visited[next] = true
		s.path = append(s.path, next)
		s.dur += dur
		s.remaining -= s.m.weights[next]

		s.dfs(next, k+1, nextV, w+s.m.weights[next])

		s.remaining += s.m.weights[next]
		s.dur -= dur
		s.path = s.path[:len(s.path)-1]
		s.visited[next] = false
	}
}

// carriesAllMust reports whether the incumbent includes every
// must-include track.
func (s *bbSearch) carriesAllMust() bool {
	if s.m.numMust == 0 {
		return true
	}
	carried := 0
	for _, idx := range s.bestPath {
		if s.m.must[idx] {
			carried++
		}
	}

	return carried == s.m.numMust
}

// assignment materializes the incumbent as circuit variables: self-loops
// everywhere, then the tour anchor → path… → anchor written over them.
func (s *bbSearch) assignment() Assignment {
	a := Assignment{
		Next:       make([]int, s.n+1),
		Included:   make([]bool, s.n),
		Violations: s.bestV,
		Objective:  s.bestW,
	}
	for i := 0; i <= s.n; i++ {
		a.Next[i] = i
	}

	prev := s.anchor
	for _, idx := range s.bestPath {
		a.Next[prev] = idx
		a.Included[idx] = true
		prev = idx
	}
	a.Next[prev] = s.anchor

	return a
}
