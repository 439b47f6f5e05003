package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mixkraft/seqmix/sequence"
)

// Sentinel errors for the Rekordbox library reader.
var (
	// ErrPlaylistNotFound indicates no playlist with the requested name.
	ErrPlaylistNotFound = errors.New("catalog: playlist not found")
)

// ratingScaleMax is the star-rating ceiling stored by Rekordbox
// (0-255, 51 per star).
const ratingScaleMax = 255

// scaledBPMThreshold marks tempo values stored at 100x their real
// value. Anything above it is divided back down.
const scaledBPMThreshold = 200

// Library reads tracks from a decrypted Rekordbox 6 master database.
type Library struct {
	db *sql.DB
}

// OpenLibrary opens a decrypted Rekordbox SQLite database read-only.
func OpenLibrary(path string) (*Library, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("catalog: open library: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: connect to library: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &Library{db: db}, nil
}

// Close releases the database connection.
func (l *Library) Close() error {
	if l.db == nil {
		return nil
	}

	return l.db.Close()
}

// ReadTracks returns every usable track in the collection. Tracks
// without a mappable key or tempo are skipped; the count of skipped
// rows is returned alongside the usable tracks.
func (l *Library) ReadTracks(ctx context.Context) ([]sequence.Track, int, error) {
	const q = `
		SELECT c.Title, c.BPM, c.Rating, c.Length, k.ScaleName,
		       COALESCE(a.Name, '')
		FROM djmdContent c
		LEFT JOIN djmdKey k ON c.KeyID = k.ID
		LEFT JOIN djmdArtist a ON c.ArtistID = a.ID
		WHERE c.rb_local_deleted = 0`

	rows, err := l.db.QueryContext(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog: query collection: %w", err)
	}
	defer rows.Close()

	return scanTracks(rows)
}

// ReadPlaylist returns the tracks of a named playlist in stored order.
func (l *Library) ReadPlaylist(ctx context.Context, name string) ([]sequence.Track, int, error) {
	var playlistID string
	err := l.db.QueryRowContext(ctx,
		`SELECT ID FROM djmdPlaylist WHERE Name = ? AND rb_local_deleted = 0`,
		name).Scan(&playlistID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, fmt.Errorf("%w: %q", ErrPlaylistNotFound, name)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("catalog: query playlist: %w", err)
	}

	const q = `
		SELECT c.Title, c.BPM, c.Rating, c.Length, k.ScaleName,
		       COALESCE(a.Name, '')
		FROM djmdSongPlaylist sp
		JOIN djmdContent c ON sp.ContentID = c.ID
		LEFT JOIN djmdKey k ON c.KeyID = k.ID
		LEFT JOIN djmdArtist a ON c.ArtistID = a.ID
		WHERE sp.PlaylistID = ? AND sp.rb_local_deleted = 0
		ORDER BY sp.TrackNo`

	rows, err := l.db.QueryContext(ctx, q, playlistID)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog: query playlist tracks: %w", err)
	}
	defer rows.Close()

	return scanTracks(rows)
}

// scanTracks converts collection rows into tracks, skipping rows that
// lack a key or tempo and rows whose key name cannot be mapped.
func scanTracks(rows *sql.Rows) ([]sequence.Track, int, error) {
	var (
		tracks  []sequence.Track
		skipped int
		seen    = map[string]bool{}
	)
	for rows.Next() {
		var (
			title   string
			bpm     sql.NullFloat64
			rating  sql.NullInt64
			length  sql.NullFloat64
			keyName sql.NullString
			artist  string
		)
		if err := rows.Scan(&title, &bpm, &rating, &length, &keyName, &artist); err != nil {
			return nil, skipped, fmt.Errorf("catalog: scan track row: %w", err)
		}
		if !keyName.Valid || keyName.String == "" || !bpm.Valid || bpm.Float64 <= 0 {
			skipped++
			continue
		}
		key, err := MapKeyName(keyName.String)
		if err != nil {
			skipped++
			continue
		}

		tempo := bpm.Float64
		if tempo > scaledBPMThreshold {
			tempo /= 100
		}
		energy := 1 // unrated
		if rating.Valid {
			switch r := rating.Int64; {
			case r > 5:
				energy = NormalizeEnergy(float64(r), ratingScaleMax)
			case r > 0:
				// Already on the star scale.
				energy = int(r)
			}
		}

		id := title
		if artist != "" {
			id = artist + " - " + title
		}
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			skipped++
			continue
		}

		var duration float64
		if length.Valid && length.Float64 > 0 {
			duration = length.Float64
		}
		t, err := sequence.NewTrack(id, key, tempo, energy, duration)
		if err != nil {
			skipped++
			continue
		}
		seen[id] = true
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, skipped, fmt.Errorf("catalog: iterate track rows: %w", err)
	}

	return tracks, skipped, nil
}
