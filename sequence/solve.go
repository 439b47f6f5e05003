package sequence

// Optimize runs the full pipeline with the default Branch-and-Bound
// engine: staged validation, graph construction, model assembly, solve,
// reconstruction.
//
// Contracts:
//   - tracks must be non-empty and each must pass Track.Validate.
//   - opts must satisfy the domain ranges (see validateOptions).
//   - The call blocks for at most opts.TimeBudget plus reconstruction.
//
// Errors: ErrValidation / ErrConfiguration for malformed input,
// ErrEngineFailure for backend faults. Infeasibility and timeouts are
// Result.Status values, never errors.
func Optimize(tracks []Track, opts Options) (Result, error) {
	return OptimizeWithEngine(tracks, opts, NewBranchBound())
}

// OptimizeWithEngine is Optimize with a caller-supplied solving backend.
func OptimizeWithEngine(tracks []Track, opts Options, eng Engine) (Result, error) {
	// Stage 1 — configuration sanity.
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}
	if len(tracks) == 0 {
		return Result{}, ErrNoTracks
	}

	// Stage 2 — per-track domain validation and ID uniqueness.
	seen := make(map[string]struct{}, len(tracks))
	for _, t := range tracks {
		if err := t.Validate(); err != nil {
			return Result{}, err
		}
		if _, dup := seen[t.ID]; dup {
			return Result{}, ErrDuplicateTrackID
		}
		seen[t.ID] = struct{}{}
	}

	// Stage 3 — graph and model. The input slice is copied so the graph
	// stays immutable even if the caller mutates theirs mid-solve.
	owned := make([]Track, len(tracks))
	copy(owned, tracks)

	g, err := buildGraph(owned, opts)
	if err != nil {
		return Result{}, err
	}
	m, err := buildModel(g, opts)
	if err != nil {
		return Result{}, err
	}

	// Stage 4 — solve within the budget.
	assignment, status, err := eng.Solve(m, opts.TimeBudget)
	if err != nil {
		return Result{}, err
	}

	// Infeasible and unknown outcomes carry no tour to walk.
	if status == StatusInfeasible || status == StatusUnknown {
		return Result{
			Status:           status,
			TracksConsidered: g.n,
			Stats:            buildStats(g.n, nil, nil, 0),
		}, nil
	}

	// Stage 5 — reconstruction and self-consistency check.
	return reconstruct(g, opts, assignment, status)
}
