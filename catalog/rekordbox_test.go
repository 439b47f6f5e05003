package catalog_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/mixkraft/seqmix/catalog"
)

// newFixtureDB builds a minimal decrypted-Rekordbox schema with a few
// collection rows: one with a 100x-scaled tempo and a 0-255 rating, one
// unrated, one rated on the 0-5 star scale, one without a key, one with
// an unmappable key, and one soft-deleted.
func newFixtureDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "master.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE djmdContent (
			ID TEXT PRIMARY KEY, Title TEXT, BPM REAL, Rating INTEGER,
			Length REAL, KeyID TEXT, ArtistID TEXT, rb_local_deleted INTEGER
		)`,
		`CREATE TABLE djmdKey (ID TEXT PRIMARY KEY, ScaleName TEXT)`,
		`CREATE TABLE djmdArtist (ID TEXT PRIMARY KEY, Name TEXT)`,
		`CREATE TABLE djmdPlaylist (ID TEXT PRIMARY KEY, Name TEXT, rb_local_deleted INTEGER)`,
		`CREATE TABLE djmdSongPlaylist (
			PlaylistID TEXT, ContentID TEXT, TrackNo INTEGER, rb_local_deleted INTEGER
		)`,

		`INSERT INTO djmdKey VALUES ('k1', 'Am'), ('k2', '9A'), ('k3', 'Phrygian')`,
		`INSERT INTO djmdArtist VALUES ('a1', 'Ana'), ('a2', 'Bo')`,

		`INSERT INTO djmdContent VALUES ('c1', 'Dawn', 12400, 153, 300, 'k1', 'a1', 0)`,
		`INSERT INTO djmdContent VALUES ('c2', 'Dusk', 126, 0, 320, 'k2', 'a2', 0)`,
		`INSERT INTO djmdContent VALUES ('c3', 'NoKey', 120, 0, 0, NULL, 'a1', 0)`,
		`INSERT INTO djmdContent VALUES ('c4', 'BadKey', 120, 0, 0, 'k3', 'a1', 0)`,
		`INSERT INTO djmdContent VALUES ('c5', 'Gone', 122, 0, 0, 'k1', 'a1', 1)`,
		`INSERT INTO djmdContent VALUES ('c6', 'Lift', 128, 4, 310, 'k2', 'a2', 0)`,

		`INSERT INTO djmdPlaylist VALUES ('p1', 'Warmup', 0)`,
		`INSERT INTO djmdSongPlaylist VALUES ('p1', 'c2', 1, 0), ('p1', 'c1', 2, 0)`,
	}
	for _, s := range stmts {
		_, err = db.Exec(s)
		require.NoError(t, err)
	}

	return path
}

func TestLibrary_ReadTracks(t *testing.T) {
	lib, err := catalog.OpenLibrary(newFixtureDB(t))
	require.NoError(t, err)
	defer lib.Close()

	tracks, skipped, err := lib.ReadTracks(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, skipped) // missing key + unmappable key
	require.Len(t, tracks, 3)

	byID := map[string]int{}
	for i, tr := range tracks {
		byID[tr.ID] = i
	}
	require.Contains(t, byID, "Ana - Dawn")
	require.Contains(t, byID, "Bo - Dusk")
	require.Contains(t, byID, "Bo - Lift")

	dawn := tracks[byID["Ana - Dawn"]]
	require.Equal(t, "8A", dawn.Key.String())
	require.Equal(t, 124.0, dawn.BPM) // 100x-scaled tempo folded back
	require.Equal(t, 3, dawn.Energy)  // 153/255 rating
	require.Equal(t, 300.0, dawn.Duration)

	dusk := tracks[byID["Bo - Dusk"]]
	require.Equal(t, 126.0, dusk.BPM)
	require.Equal(t, 1, dusk.Energy) // unrated maps to lowest energy

	// A rating already on the star scale passes through untouched
	// instead of collapsing under the 0-255 normalization.
	lift := tracks[byID["Bo - Lift"]]
	require.Equal(t, 4, lift.Energy)
}

func TestLibrary_ReadPlaylist(t *testing.T) {
	lib, err := catalog.OpenLibrary(newFixtureDB(t))
	require.NoError(t, err)
	defer lib.Close()

	tracks, skipped, err := lib.ReadPlaylist(context.Background(), "Warmup")
	require.NoError(t, err)
	require.Zero(t, skipped)
	require.Len(t, tracks, 2)

	// Stored playlist order is preserved.
	require.Equal(t, "Bo - Dusk", tracks[0].ID)
	require.Equal(t, "Ana - Dawn", tracks[1].ID)
}

func TestLibrary_PlaylistNotFound(t *testing.T) {
	lib, err := catalog.OpenLibrary(newFixtureDB(t))
	require.NoError(t, err)
	defer lib.Close()

	_, _, err = lib.ReadPlaylist(context.Background(), "Cooldown")
	require.ErrorIs(t, err, catalog.ErrPlaylistNotFound)
}

func TestOpenLibrary_Missing(t *testing.T) {
	_, err := catalog.OpenLibrary(filepath.Join(t.TempDir(), "absent.db"))
	require.Error(t, err)
}
