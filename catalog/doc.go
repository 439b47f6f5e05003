// Package catalog contains the collaborators around the sequencing core:
// loading track lists from JSON files or a Rekordbox library database,
// mapping external key-naming conventions onto the Camelot wheel,
// normalizing external rating scales into the 1–5 energy range, and
// serializing optimization results to JSON or Rekordbox-importable XML.
//
// The core (package sequence) performs no I/O; everything file- or
// database-shaped lives here.
//
// Input conventions:
//   - JSON: either {"tracks": [...]} or a bare array of track objects
//     with fields id, key, bpm and optional energy, duration.
//   - Rekordbox: a decrypted Rekordbox 6 SQLite database; tonality names
//     ("Am", "F# Minor", "Db Major") are mapped to Camelot keys, star
//     ratings (0–5 or 0–255) to energy levels. Tracks with no usable key
//     or tempo are skipped, not failed.
package catalog
