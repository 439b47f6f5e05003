// Package seqmix turns an unordered crate of tracks into a playable set —
// the longest sequence where every transition is mixable.
//
// What seqmix does:
//
//	• Tempo matching: direct, half-time and double-time BPM compatibility
//	• Harmonic matching: Camelot-wheel distances with STRICT/MODERATE/RELAXED levels
//	• Sequencing: circuit-based longest-path optimization with an energy-flow
//	  constraint and a bounded budget of harmonic violations
//	• Catalog plumbing: JSON track lists, Rekordbox library import, XML export
//
// Everything is organized under four subpackages:
//
//	tempo/    — pure BPM compatibility predicates
//	camelot/  — key parsing, wheel distance, transition tiers
//	sequence/ — the optimization core: graph, model, engine, reconstruction
//	catalog/  — collaborators: JSON / Rekordbox input and output
//
// The cmd/seqmix binary wires the four together behind a small CLI.
//
//	go get github.com/mixkraft/seqmix
package seqmix
