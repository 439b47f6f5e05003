package catalog_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/mixkraft/seqmix/catalog"
)

func TestExportXML_Golden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, catalog.ExportXML(&buf, "Evening Set", sampleResult(t)))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "export", buf.Bytes())
}

func TestExportXML_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, catalog.ExportXML(&buf, "Empty", sampleEmptyResult()))

	out := buf.String()
	require.Contains(t, out, `<COLLECTION Entries="0">`)
	require.Contains(t, out, `Name="Empty"`)
	require.NotContains(t, out, "TrackID=")
}

func TestExportFile(t *testing.T) {
	dir := t.TempDir()

	path, err := catalog.ExportFile(dir, "My Set: A/B", sampleResult(t))
	require.NoError(t, err)

	base := filepath.Base(path)
	require.True(t, strings.HasPrefix(base, "My Set_ A_B_"), "filename %q", base)
	require.True(t, strings.HasSuffix(base, ".xml"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `Name="My Set: A/B"`)

	// A second export of the same name must not collide.
	other, err := catalog.ExportFile(dir, "My Set: A/B", sampleResult(t))
	require.NoError(t, err)
	require.NotEqual(t, path, other)
}
