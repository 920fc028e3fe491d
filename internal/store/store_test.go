package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedtools/gto/internal/genome"
	"github.com/seedtools/gto/internal/location"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRows() []FeatureRow {
	return []FeatureRow{
		{
			GenomeID: "83333.1", FeatureID: "fig|83333.1.peg.1", Type: "CDS",
			Contig: "NC_000913", Left: 100, Right: 300, Strand: "+",
			Segments: 1, Span: 201, Function: "Thr operon leader peptide",
		},
		{
			GenomeID: "83333.1", FeatureID: "fig|83333.1.peg.2", Type: "CDS",
			Contig: "NC_000913", Left: 250, Right: 600, Strand: "-",
			Segments: 2, Span: 351, Function: "hypothetical protein",
		},
		{
			GenomeID: "83333.1", FeatureID: "fig|83333.1.rna.1", Type: "rna",
			Contig: "NC_000913", Left: 900, Right: 980, Strand: "+",
			Segments: 1, Span: 81, Function: "tRNA-Ala",
		},
	}
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestWriteAndCountFeatures(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteFeatures(testRows()))

	count, err := s.CountFeatures()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestWriteFeatures_Deduplicates(t *testing.T) {
	s := openInMemory(t)

	rows := testRows()
	rows = append(rows, rows[0])
	require.NoError(t, s.WriteFeatures(rows))

	count, err := s.CountFeatures()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestLookupOverlapping(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteFeatures(testRows()))

	found, err := s.LookupOverlapping("83333.1", "NC_000913", 280, 400)
	require.NoError(t, err)
	require.Len(t, found, 2, "both CDS features overlap [280, 400]")
	assert.Equal(t, "fig|83333.1.peg.1", found[0].FeatureID, "ordered by left")
	assert.Equal(t, "fig|83333.1.peg.2", found[1].FeatureID)

	found, err = s.LookupOverlapping("83333.1", "NC_000913", 700, 800)
	require.NoError(t, err)
	assert.Empty(t, found, "gap between features")

	found, err = s.LookupOverlapping("99999.9", "NC_000913", 100, 1000)
	require.NoError(t, err)
	assert.Empty(t, found, "unknown genome")
}

func TestLookupByType(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteFeatures(testRows()))

	cds, err := s.LookupByType("CDS")
	require.NoError(t, err)
	assert.Len(t, cds, 2)

	rna, err := s.LookupByType("rna")
	require.NoError(t, err)
	require.Len(t, rna, 1)
	assert.Equal(t, "tRNA-Ala", rna[0].Function)
}

func TestClearFeatures(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteFeatures(testRows()))
	require.NoError(t, s.ClearFeatures())

	count, err := s.CountFeatures()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNewFeatureRow(t *testing.T) {
	loc, err := location.Create("NC_000913", "-", 402, 450, 460, 500)
	require.NoError(t, err)

	row := NewFeatureRow("83333.1", genome.Feature{
		ID: "fig|83333.1.peg.9", Type: "CDS", Function: "test", Location: loc,
	})

	assert.Equal(t, int64(402), row.Left)
	assert.Equal(t, int64(500), row.Right)
	assert.Equal(t, "-", row.Strand)
	assert.Equal(t, 2, row.Segments)
	assert.Equal(t, int64(99), row.Span)
}

func TestFeatureRow_Location(t *testing.T) {
	row := testRows()[1]
	loc, err := row.Location()
	require.NoError(t, err)

	assert.Equal(t, int64(250), loc.Left())
	assert.Equal(t, int64(600), loc.Right())
	assert.Equal(t, location.StrandReverse, loc.Strand())
	assert.False(t, loc.IsSegmented(), "envelope only")
}
