// Package scan walks genome directories and reports feature locations.
package scan

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/seedtools/gto/internal/genome"
	"github.com/seedtools/gto/internal/location"
	"github.com/seedtools/gto/internal/store"
)

// ReportWriter receives feature locations in sorted order.
type ReportWriter interface {
	WriteHeader() error
	Write(genomeID string, f genome.Feature) error
	Flush() error
}

// FeatureStore persists feature rows; satisfied by *store.Store.
type FeatureStore interface {
	WriteFeatures(rows []store.FeatureRow) error
}

// Scanner streams the feature locations of a genome directory to a report
// writer, genome by genome, with each genome's locations in location order.
type Scanner struct {
	logger     *zap.Logger
	typeFilter string
	envelope   bool
	store      FeatureStore
}

// NewScanner creates a scanner with default settings.
func NewScanner() *Scanner {
	return &Scanner{logger: zap.NewNop()}
}

// SetLogger sets the logger for warning and info messages.
func (s *Scanner) SetLogger(l *zap.Logger) {
	s.logger = l
}

// SetTypeFilter restricts the scan to features of one type (e.g. "CDS").
// An empty filter keeps every feature.
func (s *Scanner) SetTypeFilter(ftype string) {
	s.typeFilter = ftype
}

// SetEnvelope collapses segmented locations to their single-region extent
// before reporting.
func (s *Scanner) SetEnvelope(envelope bool) {
	s.envelope = envelope
}

// SetStore configures a store that receives every reported feature.
func (s *Scanner) SetStore(fs FeatureStore) {
	s.store = fs
}

// ScanDirectory reports every feature location in the directory and returns
// the number of features written. Genomes that fail to load are logged and
// skipped; the scan continues with the next genome.
func (s *Scanner) ScanDirectory(dir *genome.Directory, w ReportWriter) (int, error) {
	if err := w.WriteHeader(); err != nil {
		return 0, fmt.Errorf("write report header: %w", err)
	}

	written := 0
	it := dir.Genomes()
	for {
		g, err := it.Next()
		if err != nil {
			s.logger.Warn("skipping genome", zap.Error(err))
			continue
		}
		if g == nil {
			break
		}

		n, err := s.scanGenome(g, w)
		if err != nil {
			return written, err
		}
		written += n
	}

	if err := w.Flush(); err != nil {
		return written, fmt.Errorf("flush report: %w", err)
	}

	s.logger.Info("scan complete",
		zap.String("directory", dir.Path()),
		zap.Int("genomes", dir.Size()),
		zap.Int("features", written))
	return written, nil
}

// scanGenome writes one genome's features in location order.
func (s *Scanner) scanGenome(g *genome.Genome, w ReportWriter) (int, error) {
	features := s.selectFeatures(g)
	slices.SortFunc(features, func(a, b genome.Feature) int {
		return a.Location.Compare(b.Location)
	})

	rows := make([]store.FeatureRow, 0, len(features))
	for _, f := range features {
		if err := w.Write(g.ID, f); err != nil {
			return 0, fmt.Errorf("write feature %s: %w", f.ID, err)
		}
		if s.store != nil {
			rows = append(rows, store.NewFeatureRow(g.ID, f))
		}
	}

	if s.store != nil {
		if err := s.store.WriteFeatures(rows); err != nil {
			return 0, fmt.Errorf("store features for genome %s: %w", g.ID, err)
		}
	}

	return len(features), nil
}

// selectFeatures applies the type filter and the envelope option. Features
// without a location are dropped with a warning.
func (s *Scanner) selectFeatures(g *genome.Genome) []genome.Feature {
	features := make([]genome.Feature, 0, len(g.Features))
	for _, f := range g.Features {
		if f.Location == nil {
			s.logger.Warn("feature has no location",
				zap.String("genome", g.ID),
				zap.String("feature", f.ID))
			continue
		}
		if s.typeFilter != "" && f.Type != s.typeFilter {
			continue
		}
		if s.envelope {
			f.Location = f.Location.RegionOf()
		}
		features = append(features, f)
	}
	return features
}

// FrameResult is the frame classification of one kmer against one feature.
type FrameResult struct {
	GenomeID  string
	FeatureID string
	Frame     location.Frame
}

// KmerFrames classifies a kmer at a 1-based position against every feature
// location in the directory, in genome and location order.
func (s *Scanner) KmerFrames(dir *genome.Directory, pos, kSize int64) ([]FrameResult, error) {
	var results []FrameResult

	it := dir.Genomes()
	for {
		g, err := it.Next()
		if err != nil {
			s.logger.Warn("skipping genome", zap.Error(err))
			continue
		}
		if g == nil {
			break
		}

		features := s.selectFeatures(g)
		slices.SortFunc(features, func(a, b genome.Feature) int {
			return a.Location.Compare(b.Location)
		})
		for _, f := range features {
			results = append(results, FrameResult{
				GenomeID:  g.ID,
				FeatureID: f.ID,
				Frame:     f.Location.KmerFrame(pos, kSize),
			})
		}
	}

	return results, nil
}
