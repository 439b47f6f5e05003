package catalog

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mixkraft/seqmix/sequence"
)

// Rekordbox-compatible XML shapes. Attribute names follow the format
// Rekordbox 6 accepts on import.
type xmlDocument struct {
	XMLName    xml.Name     `xml:"DJ_PLAYLISTS"`
	Version    string       `xml:"Version,attr"`
	Product    xmlProduct   `xml:"PRODUCT"`
	Collection xmlTrackList `xml:"COLLECTION"`
	Playlists  xmlPlaylists `xml:"PLAYLISTS"`
}

type xmlProduct struct {
	Name    string `xml:"Name,attr"`
	Version string `xml:"Version,attr"`
	Company string `xml:"Company,attr"`
}

type xmlTrackList struct {
	Entries int        `xml:"Entries,attr"`
	Tracks  []xmlTrack `xml:"TRACK"`
}

type xmlTrack struct {
	TrackID    string `xml:"TrackID,attr"`
	Name       string `xml:"Name,attr"`
	Artist     string `xml:"Artist,attr"`
	Kind       string `xml:"Kind,attr"`
	TotalTime  string `xml:"TotalTime,attr"`
	AverageBpm string `xml:"AverageBpm,attr"`
	Tonality   string `xml:"Tonality,attr"`
	Rating     string `xml:"Rating,attr"`
}

type xmlPlaylists struct {
	Root xmlRootNode `xml:"NODE"`
}

type xmlRootNode struct {
	Type     string          `xml:"Type,attr"`
	Name     string          `xml:"Name,attr"`
	Count    int             `xml:"Count,attr"`
	Playlist xmlPlaylistNode `xml:"NODE"`
}

type xmlPlaylistNode struct {
	Name    string        `xml:"Name,attr"`
	Type    string        `xml:"Type,attr"`
	KeyType string        `xml:"KeyType,attr"`
	Entries int           `xml:"Entries,attr"`
	Tracks  []xmlTrackRef `xml:"TRACK"`
}

type xmlTrackRef struct {
	Key string `xml:"Key,attr"`
}

// ExportXML writes the result as a Rekordbox-importable XML playlist.
// Track references use 1-based collection indices, so the output is
// deterministic for a given result.
func ExportXML(w io.Writer, name string, res sequence.Result) error {
	doc := xmlDocument{
		Version: "1.0.0",
		Product: xmlProduct{Name: "rekordbox", Version: "6.0.0", Company: "AlphaTheta"},
		Collection: xmlTrackList{
			Entries: len(res.Playlist),
			Tracks:  make([]xmlTrack, 0, len(res.Playlist)),
		},
		Playlists: xmlPlaylists{
			Root: xmlRootNode{
				Type:  "0",
				Name:  "ROOT",
				Count: 1,
				Playlist: xmlPlaylistNode{
					Name:    name,
					Type:    "1",
					KeyType: "0",
					Entries: len(res.Playlist),
					Tracks:  make([]xmlTrackRef, 0, len(res.Playlist)),
				},
			},
		},
	}

	for i, t := range res.Playlist {
		artist, title := splitTrackID(t.ID)
		ref := strconv.Itoa(i + 1)
		doc.Collection.Tracks = append(doc.Collection.Tracks, xmlTrack{
			TrackID:    ref,
			Name:       title,
			Artist:     artist,
			Kind:       "Music",
			TotalTime:  strconv.Itoa(int(t.Duration)),
			AverageBpm: strconv.FormatFloat(t.BPM, 'f', -1, 64),
			Tonality:   t.Key.String(),
			Rating:     strconv.Itoa(t.Energy),
		})
		doc.Playlists.Root.Playlist.Tracks = append(doc.Playlists.Root.Playlist.Tracks,
			xmlTrackRef{Key: ref})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("catalog: write XML header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("catalog: encode XML: %w", err)
	}

	return enc.Close()
}

// ExportFile writes the XML export into dir under a collision-free
// filename derived from the playlist name.
func ExportFile(dir, name string, res sequence.Result) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.xml", sanitizeName(name), uuid.NewString()[:8]))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("catalog: create export file: %w", err)
	}
	defer f.Close()

	if err = ExportXML(f, name, res); err != nil {
		return "", err
	}

	return path, nil
}

// splitTrackID recovers artist and title from the "Artist - Title"
// identifier convention. IDs without a separator map to title only.
func splitTrackID(id string) (artist, title string) {
	if before, after, ok := strings.Cut(id, " - "); ok {
		return before, after
	}

	return "Unknown", id
}

// sanitizeName strips filesystem-hostile characters from a playlist
// name before it becomes part of a filename.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "playlist"
	}

	return b.String()
}
