package camelot

import "errors"

// Sentinel errors returned by key parsing.
var (
	// ErrKeyFormat indicates a key string too short or otherwise malformed.
	ErrKeyFormat = errors.New("camelot: invalid key format")

	// ErrKeyHour indicates an hour outside the 1..12 wheel range.
	ErrKeyHour = errors.New("camelot: hour must be 1..12")

	// ErrKeyMode indicates a mode letter other than A or B.
	ErrKeyMode = errors.New("camelot: mode must be A or B")

	// ErrLevelName indicates an unrecognized strictness level name.
	ErrLevelName = errors.New("camelot: level must be strict, moderate or relaxed")
)

// wheelHours is the number of positions on the Camelot wheel.
const wheelHours = 12

// Mode distinguishes the two rings of the wheel: A (minor), B (major).
type Mode byte

const (
	// ModeA is the inner (minor) ring.
	ModeA Mode = 'A'

	// ModeB is the outer (major) ring.
	ModeB Mode = 'B'
)

// Key is one of the 24 wheel states: an hour 1..12 plus a mode.
// The zero value is invalid; construct via ParseKey or NewKey.
type Key struct {
	Hour int  // wheel position, 1..12
	Mode Mode // ModeA or ModeB
}

// TransitionTier is the discrete harmonic-distance class of a transition.
// Lower is closer; TierIncompatible marks transitions that violate every
// strictness level.
type TransitionTier int

const (
	// TierIdentical — same hour, same mode.
	TierIdentical TransitionTier = 0

	// TierAdjacent — same mode, hour distance 1.
	TierAdjacent TransitionTier = 1

	// TierRelative — different mode, hour distance 0.
	TierRelative TransitionTier = 2

	// TierDiagonal — different mode, hour distance 1.
	TierDiagonal TransitionTier = 3

	// TierStretch — hour distance 2 or 3, either mode.
	TierStretch TransitionTier = 4

	// TierIncompatible — hour distance beyond 3; always a violation.
	TierIncompatible TransitionTier = 1 << 30
)

// Level selects which tiers count as compatible (non-violating).
type Level int

const (
	// Strict allows tiers {0, 1, 2}.
	Strict Level = iota

	// Moderate allows tiers {0, 1, 2, 3}.
	Moderate

	// Relaxed allows tiers {0, 1, 2, 3, 4}.
	Relaxed
)

// String returns the conventional lowercase level name.
func (l Level) String() string {
	switch l {
	case Strict:
		return "strict"
	case Moderate:
		return "moderate"
	case Relaxed:
		return "relaxed"
	default:
		return "unknown"
	}
}

// maxAllowedTier is the largest tier each level accepts.
func (l Level) maxAllowedTier() TransitionTier {
	switch l {
	case Strict:
		return TierRelative
	case Moderate:
		return TierDiagonal
	case Relaxed:
		return TierStretch
	default:
		// Unknown levels accept nothing beyond identical keys.
		return TierIdentical
	}
}

// Allows reports whether a tier is compatible (not a violation) at this
// level. TierIncompatible is rejected by every level.
func (l Level) Allows(tier TransitionTier) bool {
	if tier == TierIncompatible {
		return false
	}

	return tier <= l.maxAllowedTier()
}
