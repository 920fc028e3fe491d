package scan

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedtools/gto/internal/genome"
	"github.com/seedtools/gto/internal/location"
	"github.com/seedtools/gto/internal/report"
	"github.com/seedtools/gto/internal/store"
)

// testDirectory writes two small genomes. Feature coordinates are chosen so
// that location order differs from the order in the document.
func testDirectory(t *testing.T) *genome.Directory {
	t.Helper()
	dir := t.TempDir()

	g1 := `{
		"id": "100.1",
		"scientific_name": "first genome",
		"features": [
			{"id": "fig|100.1.peg.2", "type": "CDS", "function": "late protein",
			 "location": [["c1", "500", "+", 90]]},
			{"id": "fig|100.1.peg.1", "type": "CDS", "function": "early protein",
			 "location": [["c1", "100", "+", 60]]},
			{"id": "fig|100.1.rna.1", "type": "rna", "function": "tRNA-Gly",
			 "location": [["c1", "300", "-", 40]]}
		]
	}`
	g2 := `{
		"id": "200.2",
		"scientific_name": "second genome",
		"features": [
			{"id": "fig|200.2.peg.1", "type": "CDS", "function": "only protein",
			 "location": [["c9", "50", "+", 30], ["c9", "120", "+", 30]]}
		]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "100.1.gto"), []byte(g1), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "200.2.gto"), []byte(g2), 0644))

	d, err := genome.OpenDirectory(dir)
	require.NoError(t, err)
	return d
}

func scanToLines(t *testing.T, s *Scanner, d *genome.Directory) (int, []string) {
	t.Helper()
	var buf bytes.Buffer
	n, err := s.ScanDirectory(d, report.NewTabWriter(&buf))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	return n, lines
}

func TestScanDirectory(t *testing.T) {
	d := testDirectory(t)
	n, lines := scanToLines(t, NewScanner(), d)

	assert.Equal(t, 4, n)
	require.Len(t, lines, 5, "header plus one line per feature")

	// Genomes arrive in ID order, locations in location order within each.
	assert.Contains(t, lines[1], "fig|100.1.peg.1")
	assert.Contains(t, lines[2], "fig|100.1.rna.1")
	assert.Contains(t, lines[3], "fig|100.1.peg.2")
	assert.Contains(t, lines[4], "fig|200.2.peg.1")
}

func TestScanDirectory_TypeFilter(t *testing.T) {
	d := testDirectory(t)
	s := NewScanner()
	s.SetTypeFilter("rna")

	n, lines := scanToLines(t, s, d)
	assert.Equal(t, 1, n)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "tRNA-Gly")
}

func TestScanDirectory_Envelope(t *testing.T) {
	d := testDirectory(t)
	s := NewScanner()
	s.SetEnvelope(true)

	_, lines := scanToLines(t, s, d)
	// The segmented feature collapses to its [50, 149] extent.
	assert.Contains(t, lines[4], "c9+[50, 149]")
	assert.True(t, strings.Contains(lines[4], "\t1\t"), "single segment after collapse")
}

func TestScanDirectory_Store(t *testing.T) {
	d := testDirectory(t)
	st, err := store.Open("")
	require.NoError(t, err)
	defer st.Close()

	s := NewScanner()
	s.SetStore(st)

	var buf bytes.Buffer
	_, err = s.ScanDirectory(d, report.NewTabWriter(&buf))
	require.NoError(t, err)

	count, err := st.CountFeatures()
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	rows, err := st.LookupOverlapping("100.1", "c1", 110, 120)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "fig|100.1.peg.1", rows[0].FeatureID)
}

func TestScanDirectory_SkipsCorruptGenome(t *testing.T) {
	d := testDirectory(t)
	require.NoError(t, os.WriteFile(filepath.Join(d.Path(), "050.1.gto"), []byte("{broken"), 0644))

	d2, err := genome.OpenDirectory(d.Path())
	require.NoError(t, err)

	n, _ := scanToLines(t, NewScanner(), d2)
	assert.Equal(t, 4, n, "corrupt genome is skipped, good ones survive")
}

func TestKmerFrames(t *testing.T) {
	d := testDirectory(t)
	results, err := NewScanner().KmerFrames(d, 100, 9)
	require.NoError(t, err)
	require.Len(t, results, 4)

	byFeature := make(map[string]location.Frame, len(results))
	for _, r := range results {
		byFeature[r.FeatureID] = r.Frame
	}
	assert.Equal(t, location.FrameF0, byFeature["fig|100.1.peg.1"], "kmer at feature start")
	assert.Equal(t, location.FrameOutside, byFeature["fig|100.1.peg.2"])
	assert.Equal(t, location.FrameOutside, byFeature["fig|100.1.rna.1"])
}

func TestKmerFrames_ReverseAndGap(t *testing.T) {
	d := testDirectory(t)

	// Inside the rna feature [261, 300] on the minus strand:
	// offset (300 - end) mod 3 with end = 278.
	results, err := NewScanner().KmerFrames(d, 270, 9)
	require.NoError(t, err)
	for _, r := range results {
		if r.FeatureID == "fig|100.1.rna.1" {
			assert.Equal(t, location.FrameR1, r.Frame)
		}
	}

	// In the gap of the segmented feature [50, 79] + [120, 149].
	results, err = NewScanner().KmerFrames(d, 90, 9)
	require.NoError(t, err)
	for _, r := range results {
		if r.FeatureID == "fig|200.2.peg.1" {
			assert.Equal(t, location.FrameInvalid, r.Frame)
		}
	}
}

func TestScanDirectory_EmptyDirectory(t *testing.T) {
	d, err := genome.OpenDirectory(t.TempDir())
	require.NoError(t, err)

	n, lines := scanToLines(t, NewScanner(), d)
	assert.Zero(t, n)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "#Genome"))
}
