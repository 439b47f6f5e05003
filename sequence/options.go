package sequence

import (
	"time"

	"github.com/mixkraft/seqmix/camelot"
)

// Default configuration values.
const (
	// DefaultBPMTolerance is the default mixable tempo gap.
	DefaultBPMTolerance = 10.0

	// DefaultMaxViolationFraction caps harmonic violations at 10% of the
	// selected tracks.
	DefaultMaxViolationFraction = 0.10

	// DefaultTimeBudget bounds one solve call.
	DefaultTimeBudget = 5 * time.Second
)

// Options configures one optimization call. Immutable once a solve has
// started: Optimize copies what it needs up front.
//
// BPMTolerance         – mixable tempo gap, ≥ 0.
// AllowHalfDouble      – also accept half-time / double-time tempo ratios.
// Level                – harmonic strictness (camelot.Strict/Moderate/Relaxed).
// MaxViolationFraction – harmonic violation budget as a fraction of the
//
//	selected track count, in [0, 1].
//
// EnforceEnergyFlow    – require non-decreasing energy along the playlist.
// TimeBudget           – soft wall-clock budget for the solving backend, > 0.
// Priorities           – optional per-track objective bonus by ID, ≥ 0.
// EnergyWeight         – optional objective bonus per energy point, ≥ 0.
// MustInclude          – track IDs that any optimal result must carry.
// StartTrackID         – force the playlist to open with this track.
// EndTrackID           – force the playlist to close with this track.
// TargetLength         – exact playlist length; 0 means unconstrained.
// MaxDuration          – cap on summed track durations, seconds; 0 = unlimited.
type Options struct {
	BPMTolerance         float64
	AllowHalfDouble      bool
	Level                camelot.Level
	MaxViolationFraction float64
	EnforceEnergyFlow    bool
	TimeBudget           time.Duration
	Priorities           map[string]float64
	EnergyWeight         float64
	MustInclude          []string
	StartTrackID         string
	EndTrackID           string
	TargetLength         int
	MaxDuration          float64
}

// Option is a functional setter over Options.
type Option func(*Options)

// WithBPMTolerance sets the mixable tempo gap.
func WithBPMTolerance(tolerance float64) Option {
	return func(o *Options) { o.BPMTolerance = tolerance }
}

// WithHalfDouble toggles half-time / double-time tempo matching.
func WithHalfDouble(allow bool) Option {
	return func(o *Options) { o.AllowHalfDouble = allow }
}

// WithLevel sets the harmonic strictness level.
func WithLevel(level camelot.Level) Option {
	return func(o *Options) { o.Level = level }
}

// WithMaxViolationFraction sets the harmonic violation budget fraction.
func WithMaxViolationFraction(fraction float64) Option {
	return func(o *Options) { o.MaxViolationFraction = fraction }
}

// WithEnergyFlow toggles the non-decreasing energy constraint.
func WithEnergyFlow(enforce bool) Option {
	return func(o *Options) { o.EnforceEnergyFlow = enforce }
}

// WithTimeBudget sets the soft wall-clock budget for one solve.
func WithTimeBudget(budget time.Duration) Option {
	return func(o *Options) { o.TimeBudget = budget }
}

// WithPriority adds an objective bonus for one track ID.
func WithPriority(id string, weight float64) Option {
	return func(o *Options) {
		if o.Priorities == nil {
			o.Priorities = make(map[string]float64)
		}
		o.Priorities[id] = weight
	}
}

// WithEnergyWeight sets the per-energy-point objective bonus.
func WithEnergyWeight(weight float64) Option {
	return func(o *Options) { o.EnergyWeight = weight }
}

// WithMustInclude marks track IDs that any optimal result must carry.
func WithMustInclude(ids ...string) Option {
	return func(o *Options) { o.MustInclude = append(o.MustInclude, ids...) }
}

// WithStartTrack forces the playlist to open with the given track.
func WithStartTrack(id string) Option {
	return func(o *Options) { o.StartTrackID = id }
}

// WithEndTrack forces the playlist to close with the given track.
func WithEndTrack(id string) Option {
	return func(o *Options) { o.EndTrackID = id }
}

// WithTargetLength requires the playlist to contain exactly n tracks.
func WithTargetLength(n int) Option {
	return func(o *Options) { o.TargetLength = n }
}

// WithMaxDuration caps the summed playlist duration in seconds.
func WithMaxDuration(seconds float64) Option {
	return func(o *Options) { o.MaxDuration = seconds }
}

// DefaultOptions returns the baseline configuration:
//   - BPMTolerance:         10
//   - AllowHalfDouble:      true
//   - Level:                camelot.Strict
//   - MaxViolationFraction: 0.10
//   - EnforceEnergyFlow:    true
//   - TimeBudget:           5s
//
// Everything else starts empty / unconstrained.
func DefaultOptions(opts ...Option) Options {
	o := Options{
		BPMTolerance:         DefaultBPMTolerance,
		AllowHalfDouble:      true,
		Level:                camelot.Strict,
		MaxViolationFraction: DefaultMaxViolationFraction,
		EnforceEnergyFlow:    true,
		TimeBudget:           DefaultTimeBudget,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// validateOptions checks internal consistency of Options without
// referencing the track list. ID references are resolved later, once the
// index is known (see buildModel).
//
// Complexity: O(len(Priorities)).
func validateOptions(o Options) error {
	if o.BPMTolerance < 0 {
		return ErrConfiguration
	}
	if o.MaxViolationFraction < 0 || o.MaxViolationFraction > 1 {
		return ErrConfiguration
	}
	if o.TimeBudget <= 0 {
		return ErrConfiguration
	}
	if o.TargetLength < 0 {
		return ErrConfiguration
	}
	if o.MaxDuration < 0 {
		return ErrConfiguration
	}
	if o.EnergyWeight < 0 {
		return ErrConfiguration
	}
	for _, w := range o.Priorities {
		if w < 0 {
			return ErrConfiguration
		}
	}
	switch o.Level {
	case camelot.Strict, camelot.Moderate, camelot.Relaxed:
		// ok
	default:
		return ErrConfiguration
	}

	return nil
}
