// Package report provides feature location report formatters.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/seedtools/gto/internal/genome"
)

// TabWriter writes feature locations in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Genome",
			"Feature",
			"Type",
			"Contig",
			"Location",
			"Strand",
			"Left",
			"Right",
			"Length",
			"Segments",
			"Function",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single feature location.
func (tw *TabWriter) Write(genomeID string, f genome.Feature) error {
	loc := f.Location

	function := f.Function
	if function == "" {
		function = "-"
	}

	_, err := fmt.Fprintf(tw.w, "%s\t%s\t%s\t%s\t%s\t%c\t%d\t%d\t%d\t%d\t%s\n",
		genomeID,
		f.ID,
		f.Type,
		loc.ContigID(),
		loc.String(),
		loc.Dir(),
		loc.Left(),
		loc.Right(),
		loc.Length(),
		loc.RegionCount(),
		function,
	)
	return err
}

// Flush flushes buffered output.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
