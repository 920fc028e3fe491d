package store

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/seedtools/gto/internal/genome"
	"github.com/seedtools/gto/internal/location"
)

// FeatureRow is one feature location as stored in DuckDB.
type FeatureRow struct {
	GenomeID  string
	FeatureID string
	Type      string
	Contig    string
	Left      int64
	Right     int64
	Strand    string
	Segments  int
	Span      int64
	Function  string
}

// NewFeatureRow flattens a feature's location into a storable row.
func NewFeatureRow(genomeID string, f genome.Feature) FeatureRow {
	loc := f.Location
	return FeatureRow{
		GenomeID:  genomeID,
		FeatureID: f.ID,
		Type:      f.Type,
		Contig:    loc.ContigID(),
		Left:      loc.Left(),
		Right:     loc.Right(),
		Strand:    string(loc.Dir()),
		Segments:  loc.RegionCount(),
		Span:      loc.Length(),
		Function:  f.Function,
	}
}

// Location rebuilds the row's coordinate envelope as a location.
func (r FeatureRow) Location() (*location.Location, error) {
	return location.Create(r.Contig, r.Strand, r.Left, r.Right)
}

// rowKey is the composite key for deduplicating rows before writing.
type rowKey struct {
	genomeID, featureID string
}

// WriteFeatures batch-inserts feature rows using the Appender API. Duplicate
// (genome_id, feature_id) entries are deduplicated before writing.
func (s *Store) WriteFeatures(rows []FeatureRow) error {
	if len(rows) == 0 {
		return nil
	}

	seen := make(map[rowKey]bool, len(rows))
	deduped := make([]FeatureRow, 0, len(rows))
	for _, r := range rows {
		k := rowKey{r.GenomeID, r.FeatureID}
		if !seen[k] {
			seen[k] = true
			deduped = append(deduped, r)
		}
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "feature_locations")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range deduped {
		if err := appender.AppendRow(
			r.GenomeID, r.FeatureID, r.Type, r.Contig,
			r.Left, r.Right, r.Strand, int32(r.Segments), r.Span, r.Function,
		); err != nil {
			return fmt.Errorf("append feature row: %w", err)
		}
	}

	return appender.Flush()
}

// ClearFeatures removes all stored feature locations.
func (s *Store) ClearFeatures() error {
	_, err := s.db.Exec("DELETE FROM feature_locations")
	return err
}

// CountFeatures returns the number of stored feature locations.
func (s *Store) CountFeatures() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM feature_locations").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count features: %w", err)
	}
	return count, nil
}

// LookupOverlapping returns the stored features of a genome whose coordinate
// envelope overlaps [left, right] on a contig, ordered by left position.
func (s *Store) LookupOverlapping(genomeID, contig string, left, right int64) ([]FeatureRow, error) {
	rows, err := s.db.Query(`SELECT
		genome_id, feature_id, feature_type, contig,
		left_pos, right_pos, strand, segments, span, function
		FROM feature_locations
		WHERE genome_id=? AND contig=? AND left_pos<=? AND right_pos>=?
		ORDER BY left_pos, right_pos`,
		genomeID, contig, right, left)
	if err != nil {
		return nil, fmt.Errorf("query overlapping features: %w", err)
	}
	defer rows.Close()

	return scanFeatureRows(rows)
}

// LookupByType returns all stored features of a given type, ordered by
// genome, contig, and left position.
func (s *Store) LookupByType(featureType string) ([]FeatureRow, error) {
	rows, err := s.db.Query(`SELECT
		genome_id, feature_id, feature_type, contig,
		left_pos, right_pos, strand, segments, span, function
		FROM feature_locations
		WHERE feature_type=?
		ORDER BY genome_id, contig, left_pos`, featureType)
	if err != nil {
		return nil, fmt.Errorf("query features by type: %w", err)
	}
	defer rows.Close()

	return scanFeatureRows(rows)
}

// scanFeatureRows scans query rows into FeatureRow slices.
func scanFeatureRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]FeatureRow, error) {
	var result []FeatureRow
	for rows.Next() {
		var r FeatureRow
		var segments int32
		if err := rows.Scan(
			&r.GenomeID, &r.FeatureID, &r.Type, &r.Contig,
			&r.Left, &r.Right, &r.Strand, &segments, &r.Span, &r.Function,
		); err != nil {
			return nil, fmt.Errorf("scan feature row: %w", err)
		}
		r.Segments = int(segments)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feature rows: %w", err)
	}
	return result, nil
}
