package catalog

import (
	"errors"
	"math"
	"strings"

	"github.com/mixkraft/seqmix/camelot"
)

// ErrUnknownKeyName indicates a key name that is neither Camelot
// notation nor a recognized musical key spelling.
var ErrUnknownKeyName = errors.New("catalog: unknown key name")

// keyByName maps canonical musical key spellings to Camelot notation.
// Minor keys carry an "m" suffix; enharmonic spellings share an entry.
var keyByName = map[string]string{
	// Major keys.
	"B": "1B", "F#": "2B", "Gb": "2B", "Db": "3B", "C#": "3B",
	"Ab": "4B", "G#": "4B", "Eb": "5B", "D#": "5B", "Bb": "6B",
	"A#": "6B", "F": "7B", "C": "8B", "G": "9B", "D": "10B",
	"A": "11B", "E": "12B",
	// Minor keys.
	"Abm": "1A", "G#m": "1A", "Ebm": "2A", "D#m": "2A", "Bbm": "3A",
	"A#m": "3A", "Fm": "4A", "Cm": "5A", "Gm": "6A", "Dm": "7A",
	"Am": "8A", "Em": "9A", "Bm": "10A", "F#m": "11A", "Gbm": "11A",
	"Dbm": "12A", "C#m": "12A",
}

// MapKeyName resolves an external key spelling to a Camelot key.
// Accepted forms, case-insensitively:
//   - Camelot notation itself: "8A", "12b"
//   - bare note names: "Am", "F#", "Db"
//   - note + mode words: "A Minor", "A Min", "C Major", "C Maj"
//
// Errors: ErrUnknownKeyName, or the camelot parse sentinels when the
// input looks like Camelot notation but is out of range.
func MapKeyName(name string) (camelot.Key, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return camelot.Key{}, ErrUnknownKeyName
	}

	// Already Camelot? ("8A", "12b")
	if s[0] >= '0' && s[0] <= '9' {
		return camelot.ParseKey(s)
	}

	var (
		fields = strings.Fields(s)
		note   = canonicalNote(fields[0])
		minor  bool
	)
	if len(fields) > 1 {
		switch strings.ToLower(fields[1]) {
		case "minor", "min":
			minor = true
		case "major", "maj":
			minor = false
		default:
			return camelot.Key{}, ErrUnknownKeyName
		}
	} else if strings.HasSuffix(note, "m") {
		// Compact minor spelling: "Am", "F#m".
		minor = true
		note = note[:len(note)-1]
	}

	if minor {
		note += "m"
	}
	camelotName, ok := keyByName[note]
	if !ok {
		return camelot.Key{}, ErrUnknownKeyName
	}

	return camelot.ParseKey(camelotName)
}

// canonicalNote normalizes a note token to the table's spelling:
// uppercase note letter, lowercase flat/minor suffix, '#' preserved.
// "ab" → "Ab", "f#" → "F#", "AM" → "Am".
func canonicalNote(token string) string {
	if token == "" {
		return token
	}

	return strings.ToUpper(token[:1]) + strings.ToLower(token[1:])
}

// NormalizeEnergy maps a rating on an arbitrary non-negative scale onto
// the 1–5 energy range: round(value/scaleMax × 5), clamped. Zero and
// negative ratings (unrated) normalize to 1.
func NormalizeEnergy(value, scaleMax float64) int {
	if value <= 0 || scaleMax <= 0 {
		return 1
	}
	e := int(math.Round(value / scaleMax * 5))
	if e < 1 {
		e = 1
	}
	if e > 5 {
		e = 5
	}

	return e
}
