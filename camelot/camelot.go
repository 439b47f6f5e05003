package camelot

import (
	"strconv"
	"strings"
)

// NewKey builds a Key from an hour and mode, validating both.
//
// Complexity: O(1).
func NewKey(hour int, mode Mode) (Key, error) {
	if hour < 1 || hour > wheelHours {
		return Key{}, ErrKeyHour
	}
	if mode != ModeA && mode != ModeB {
		return Key{}, ErrKeyMode
	}

	return Key{Hour: hour, Mode: mode}, nil
}

// ParseKey parses Camelot notation such as "8A" or "12b".
// Surrounding whitespace is trimmed and the mode letter is
// case-insensitive.
//
// Errors: ErrKeyFormat, ErrKeyHour, ErrKeyMode.
//
// Complexity: O(len(s)).
func ParseKey(s string) (Key, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Key{}, ErrKeyFormat
	}

	var (
		letter   = s[len(s)-1] // trailing mode letter
		hourPart = s[:len(s)-1]
	)
	if letter != byte(ModeA) && letter != byte(ModeB) {
		return Key{}, ErrKeyMode
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return Key{}, ErrKeyFormat
	}

	return NewKey(hour, Mode(letter))
}

// ParseLevel resolves a strictness level by its conventional name,
// case-insensitively.
//
// Errors: ErrLevelName.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return Strict, nil
	case "moderate":
		return Moderate, nil
	case "relaxed":
		return Relaxed, nil
	default:
		return Strict, ErrLevelName
	}
}

// String renders the key back into Camelot notation ("8A", "12B").
func (k Key) String() string {
	return strconv.Itoa(k.Hour) + string(k.Mode)
}

// Valid reports whether the key holds an in-range hour and mode.
// The zero value is invalid.
func (k Key) Valid() bool {
	return k.Hour >= 1 && k.Hour <= wheelHours && (k.Mode == ModeA || k.Mode == ModeB)
}

// HourDistance returns the circular distance between two hours on the
// wheel: min(|h1−h2|, 12−|h1−h2|). Hours 1 and 12 are distance 1 apart.
//
// Complexity: O(1).
func HourDistance(h1, h2 int) int {
	d := h1 - h2
	if d < 0 {
		d = -d
	}
	if wheelHours-d < d {
		d = wheelHours - d
	}

	return d
}

// Tier classifies the transition from one key to another.
// Classification is symmetric in its arguments.
//
// Complexity: O(1).
func Tier(from, to Key) TransitionTier {
	var (
		dist     = HourDistance(from.Hour, to.Hour)
		sameMode = from.Mode == to.Mode
	)

	switch {
	case dist == 0 && sameMode:
		return TierIdentical
	case dist == 1 && sameMode:
		return TierAdjacent
	case dist == 0:
		return TierRelative
	case dist == 1:
		return TierDiagonal
	case dist == 2 || dist == 3:
		return TierStretch
	default:
		return TierIncompatible
	}
}

// Compatible reports whether the transition from → to is non-violating
// at the given strictness level.
//
// Complexity: O(1).
func Compatible(from, to Key, level Level) bool {
	return level.Allows(Tier(from, to))
}

// CompatibleKeys enumerates every wheel state compatible with k at the
// given level, in hour order with mode A before B. Includes k itself.
//
// Complexity: O(1) — the wheel has 24 states.
func CompatibleKeys(k Key, level Level) []Key {
	out := make([]Key, 0, 2*wheelHours)

	var (
		hour int
		mode Mode
	)
	for hour = 1; hour <= wheelHours; hour++ {
		for _, mode = range [2]Mode{ModeA, ModeB} {
			candidate := Key{Hour: hour, Mode: mode}
			if Compatible(k, candidate, level) {
				out = append(out, candidate)
			}
		}
	}

	return out
}
