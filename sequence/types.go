package sequence

import (
	"errors"
	"fmt"

	"github.com/mixkraft/seqmix/camelot"
)

// Energy bounds of the normalized 1..5 perceptual scale.
const (
	// EnergyMin is the lowest valid energy level.
	EnergyMin = 1

	// EnergyMax is the highest valid energy level.
	EnergyMax = 5
)

// Umbrella sentinels forming the error taxonomy. Specific failures wrap
// one of these, so callers can match either the broad class
// (errors.Is(err, ErrValidation)) or the precise cause.
var (
	// ErrValidation marks malformed track input: bad key, energy out of
	// domain, non-positive tempo. Raised before any graph construction.
	ErrValidation = errors.New("sequence: track validation failed")

	// ErrConfiguration marks an unusable configuration or input shape:
	// empty track list, out-of-range tolerance or fraction, references
	// to unknown track IDs.
	ErrConfiguration = errors.New("sequence: invalid configuration")

	// ErrEngineFailure marks an internal solving-backend fault. It is
	// always fatal to the call and never downgraded to an infeasible
	// status.
	ErrEngineFailure = errors.New("sequence: engine failure")
)

// Specific sentinels, statically wrapped under the taxonomy above.
var (
	// ErrTrackID indicates an empty track identifier.
	ErrTrackID = fmt.Errorf("%w: empty track ID", ErrValidation)

	// ErrTrackKey indicates a key outside the 24 wheel states.
	ErrTrackKey = fmt.Errorf("%w: key out of wheel range", ErrValidation)

	// ErrTrackBPM indicates a zero or negative tempo.
	ErrTrackBPM = fmt.Errorf("%w: BPM must be positive", ErrValidation)

	// ErrTrackEnergy indicates an energy level outside 1..5.
	ErrTrackEnergy = fmt.Errorf("%w: energy must be 1..5", ErrValidation)

	// ErrTrackDuration indicates a negative duration.
	ErrTrackDuration = fmt.Errorf("%w: duration must be non-negative", ErrValidation)

	// ErrDuplicateTrackID indicates two input tracks sharing an ID.
	ErrDuplicateTrackID = fmt.Errorf("%w: duplicate track ID", ErrValidation)

	// ErrNoTracks indicates an empty input track list.
	ErrNoTracks = fmt.Errorf("%w: empty track list", ErrConfiguration)

	// ErrUnknownTrackID indicates a start/end/must-include or priority
	// reference to an ID absent from the input.
	ErrUnknownTrackID = fmt.Errorf("%w: unknown track ID", ErrConfiguration)
)

// Status is the solving outcome carried by every Result.
type Status int

const (
	// StatusUnknown — the engine reached its budget without finding any
	// feasible assignment or proving infeasibility.
	StatusUnknown Status = iota

	// StatusOptimal — the search completed; the result is optimal.
	StatusOptimal

	// StatusFeasibleTimeLimit — a feasible result was found but the time
	// budget expired before optimality was proven. Not an error: the
	// carried playlist is usable.
	StatusFeasibleTimeLimit

	// StatusInfeasible — no assignment satisfies the hard constraints.
	// Not an error: the playlist is empty and the status says why.
	StatusInfeasible
)

// String returns the conventional status name.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasibleTimeLimit:
		return "feasible_time_limit"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// Track is an immutable record of one playable track.
// Construct via NewTrack; literals can be checked with Validate.
type Track struct {
	ID       string      // unique identifier, non-empty
	Key      camelot.Key // harmonic key on the Camelot wheel
	BPM      float64     // tempo in beats per minute, > 0
	Energy   int         // perceptual energy, 1..5
	Duration float64     // seconds; 0 means unknown
}

// NewTrack builds a validated Track. Duration 0 means "unknown" and is
// ignored by duration constraints.
func NewTrack(id string, key camelot.Key, bpm float64, energy int, duration float64) (Track, error) {
	t := Track{ID: id, Key: key, BPM: bpm, Energy: energy, Duration: duration}
	if err := t.Validate(); err != nil {
		return Track{}, err
	}

	return t, nil
}

// Validate checks the track against the domain ranges.
// Errors: ErrTrackID, ErrTrackKey, ErrTrackBPM, ErrTrackEnergy,
// ErrTrackDuration — all matching ErrValidation.
func (t Track) Validate() error {
	if t.ID == "" {
		return ErrTrackID
	}
	if !t.Key.Valid() {
		return ErrTrackKey
	}
	if t.BPM <= 0 {
		return ErrTrackBPM
	}
	if t.Energy < EnergyMin || t.Energy > EnergyMax {
		return ErrTrackEnergy
	}
	if t.Duration < 0 {
		return ErrTrackDuration
	}

	return nil
}

// Transition annotates one consecutive pair of the returned playlist.
type Transition struct {
	FromID        string                 // preceding track
	ToID          string                 // following track
	Tier          camelot.TransitionTier // harmonic tier of the pair
	Harmonic      bool                   // non-violating at the configured level
	BPMDifference float64                // minimal tempo gap over enabled ratio forms
}

// Stats summarizes a returned playlist. All fields are populated once at
// result construction and never mutated afterwards.
type Stats struct {
	AvgBPM         float64    // mean tempo of the playlist
	BPMRange       [2]float64 // min and max tempo
	CoveragePct    float64    // selected / considered × 100
	HarmonicPct    float64    // non-violating transitions × 100 (100 when no transitions)
	AvgEnergyDelta float64    // mean energy(next) − energy(prev) over transitions
	TotalDuration  float64    // summed known durations, seconds
}

// Result is the outcome of one optimization call. The caller owns it;
// the engine retains no reference.
type Result struct {
	Playlist         []Track      // ordered selected tracks
	Status           Status       // solving outcome
	Violations       int          // harmonic-violating transitions in Playlist
	TracksConsidered int          // size of the input list
	TracksSelected   int          // len(Playlist)
	Transitions      []Transition // per-pair annotations, len = max(0, len(Playlist)-1)
	Stats            Stats        // aggregate statistics
}
