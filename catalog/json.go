package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/mixkraft/seqmix/sequence"
)

// Sentinel errors for JSON track lists.
var (
	// ErrTracksShape indicates input that is neither a tracks object nor
	// a bare array.
	ErrTracksShape = errors.New(`catalog: JSON must contain a "tracks" array or be an array of tracks`)

	// ErrTrackFields indicates a track entry missing id, key or bpm.
	ErrTrackFields = errors.New("catalog: track missing required fields (id, key, bpm)")
)

// defaultEnergy fills in unrated tracks at mid-scale.
const defaultEnergy = 3

// trackJSON is the wire shape of one track entry.
type trackJSON struct {
	ID       string   `json:"id"`
	Key      string   `json:"key"`
	BPM      *float64 `json:"bpm"`
	Energy   *int     `json:"energy,omitempty"`
	Duration float64  `json:"duration,omitempty"`
}

// tracksFile is the enveloped input form.
type tracksFile struct {
	Tracks []trackJSON `json:"tracks"`
}

// LoadTracks reads a track list from a JSON file. Both the enveloped
// form {"tracks": [...]} and a bare array are accepted.
func LoadTracks(path string) ([]sequence.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open tracks file: %w", err)
	}
	defer f.Close()

	return DecodeTracks(f)
}

// DecodeTracks parses a track list from a JSON stream.
func DecodeTracks(r io.Reader) ([]sequence.Track, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read tracks: %w", err)
	}

	var entries []trackJSON
	var envelope tracksFile
	if err = json.Unmarshal(raw, &envelope); err == nil && envelope.Tracks != nil {
		entries = envelope.Tracks
	} else if err = json.Unmarshal(raw, &entries); err != nil {
		return nil, ErrTracksShape
	}

	tracks := make([]sequence.Track, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" || e.Key == "" || e.BPM == nil {
			return nil, ErrTrackFields
		}
		key, err := MapKeyName(e.Key)
		if err != nil {
			return nil, fmt.Errorf("catalog: track %q: %w", e.ID, err)
		}
		energy := defaultEnergy
		if e.Energy != nil {
			energy = *e.Energy
		}
		t, err := sequence.NewTrack(e.ID, key, *e.BPM, energy, e.Duration)
		if err != nil {
			return nil, fmt.Errorf("catalog: track %q: %w", e.ID, err)
		}
		tracks = append(tracks, t)
	}

	return tracks, nil
}

// resultJSON is the serialized optimization outcome.
type resultJSON struct {
	Playlist    []trackJSON      `json:"playlist"`
	Transitions []transitionJSON `json:"transitions"`
	Statistics  statisticsJSON   `json:"statistics"`
	Solver      solverJSON       `json:"solver"`
}

type transitionJSON struct {
	From          string  `json:"from"`
	To            string  `json:"to"`
	Harmonic      bool    `json:"is_harmonic"`
	BPMDifference float64 `json:"bpm_difference"`
}

type statisticsJSON struct {
	TotalInputTracks       int        `json:"total_input_tracks"`
	PlaylistLength         int        `json:"playlist_length"`
	CoveragePct            float64    `json:"coverage_pct"`
	HarmonicTransitions    int        `json:"harmonic_transitions"`
	NonHarmonicTransitions int        `json:"non_harmonic_transitions"`
	HarmonicPct            float64    `json:"harmonic_pct"`
	AvgBPM                 float64    `json:"avg_bpm"`
	BPMRange               [2]float64 `json:"bpm_range"`
	AverageEnergyDelta     float64    `json:"avg_energy_delta"`
	TotalDurationSeconds   float64    `json:"total_duration_seconds"`
}

type solverJSON struct {
	Status string `json:"status"`
}

// SaveResult writes the optimization result as indented JSON.
func SaveResult(path string, res sequence.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("catalog: create result file: %w", err)
	}
	defer f.Close()

	return EncodeResult(f, res)
}

// EncodeResult serializes the result to a JSON stream. Fractional
// statistics are rounded to two decimals for stable output.
func EncodeResult(w io.Writer, res sequence.Result) error {
	out := resultJSON{
		Playlist:    make([]trackJSON, 0, len(res.Playlist)),
		Transitions: make([]transitionJSON, 0, len(res.Transitions)),
		Statistics: statisticsJSON{
			TotalInputTracks:       res.TracksConsidered,
			PlaylistLength:         res.TracksSelected,
			CoveragePct:            round2(res.Stats.CoveragePct),
			HarmonicTransitions:    len(res.Transitions) - res.Violations,
			NonHarmonicTransitions: res.Violations,
			HarmonicPct:            round2(res.Stats.HarmonicPct),
			AvgBPM:                 round2(res.Stats.AvgBPM),
			BPMRange:               res.Stats.BPMRange,
			AverageEnergyDelta:     round2(res.Stats.AvgEnergyDelta),
			TotalDurationSeconds:   round2(res.Stats.TotalDuration),
		},
		Solver: solverJSON{Status: res.Status.String()},
	}

	for _, t := range res.Playlist {
		bpm := t.BPM
		energy := t.Energy
		out.Playlist = append(out.Playlist, trackJSON{
			ID:       t.ID,
			Key:      t.Key.String(),
			BPM:      &bpm,
			Energy:   &energy,
			Duration: t.Duration,
		})
	}
	for _, tr := range res.Transitions {
		out.Transitions = append(out.Transitions, transitionJSON{
			From:          tr.FromID,
			To:            tr.ToID,
			Harmonic:      tr.Harmonic,
			BPMDifference: round2(tr.BPMDifference),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

// round2 stabilizes fractional output at two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
