// Package camelot models musical keys on the Camelot wheel and classifies
// harmonic transition quality between them.
//
// The wheel has 12 positions ("hours") in two modes: A (minor) and
// B (major) — 24 states arranged circularly, so hours 1 and 12 are
// neighbors. A transition between two keys is classified into a discrete
// tier by wheel distance and mode change:
//
//	Tier 0 — same hour, same mode (identical key)
//	Tier 1 — same mode, hour distance 1 (energy shift)
//	Tier 2 — different mode, hour distance 0 (relative major/minor)
//	Tier 3 — different mode, hour distance 1 (dominant/subdominant)
//	Tier 4 — hour distance 2 or 3, either mode (mood change)
//	TierIncompatible — anything farther
//
// A strictness Level maps tiers to the "compatible" set:
//
//	STRICT   = {0, 1, 2}
//	MODERATE = STRICT ∪ {3}
//	RELAXED  = MODERATE ∪ {4}
//
// TierIncompatible is a violation at every level.
//
// Errors (sentinel):
//
//	– ErrKeyFormat  if a key string is too short or malformed.
//	– ErrKeyHour    if the hour is outside 1..12.
//	– ErrKeyMode    if the mode letter is not A or B.
//
// All functions are pure; classification never fails on valid Keys.
//
// Example usage:
//
//	from, _ := camelot.ParseKey("8A")
//	to, _ := camelot.ParseKey("9B")
//	fmt.Println(camelot.Tier(from, to))                        // 3
//	fmt.Println(camelot.Compatible(from, to, camelot.Moderate)) // true
package camelot
