// Package genome provides genome objects deserialized from GTO files.
package genome

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/seedtools/gto/internal/location"
)

// Genome is a single genome read from a GTO document. Only coordinates and
// identifiers are retained; sequence content is reduced to contig lengths.
type Genome struct {
	ID          string
	Name        string
	Domain      string
	GeneticCode int
	Contigs     []Contig
	Features    []Feature
}

// Contig describes one contig of a genome.
type Contig struct {
	ID     string
	Length int64
}

// Feature is an annotated feature with its location on a contig.
type Feature struct {
	ID       string
	Type     string
	Function string
	Location *location.Location
}

// rawGenome mirrors the GTO JSON document. Location tuples are heterogenous
// arrays of the form [contig, begin, strand, length] with numbers that may
// arrive as strings, so they are decoded loosely and converted afterward.
type rawGenome struct {
	ID             string       `json:"id"`
	ScientificName string       `json:"scientific_name"`
	Domain         string       `json:"domain"`
	GeneticCode    json.Number  `json:"genetic_code"`
	Contigs        []rawContig  `json:"contigs"`
	Features       []rawFeature `json:"features"`
}

type rawContig struct {
	ID     string      `json:"id"`
	DNA    string      `json:"dna"`
	Length json.Number `json:"length"`
}

type rawFeature struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Function string  `json:"function"`
	Location [][]any `json:"location"`
}

// ReadGenome reads and parses a GTO file.
func ReadGenome(path string) (*Genome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open genome file: %w", err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse genome file %s: %w", path, err)
	}
	return g, nil
}

// Parse decodes a GTO document from a reader.
func Parse(r io.Reader) (*Genome, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw rawGenome
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode genome json: %w", err)
	}

	g := &Genome{
		ID:     raw.ID,
		Name:   raw.ScientificName,
		Domain: raw.Domain,
	}
	if raw.GeneticCode != "" {
		code, err := raw.GeneticCode.Int64()
		if err != nil {
			return nil, fmt.Errorf("genetic code %q: %w", raw.GeneticCode, err)
		}
		g.GeneticCode = int(code)
	}

	g.Contigs = make([]Contig, 0, len(raw.Contigs))
	for _, rc := range raw.Contigs {
		length := int64(len(rc.DNA))
		if rc.Length != "" {
			n, err := rc.Length.Int64()
			if err != nil {
				return nil, fmt.Errorf("contig %s length %q: %w", rc.ID, rc.Length, err)
			}
			length = n
		}
		g.Contigs = append(g.Contigs, Contig{ID: rc.ID, Length: length})
	}

	g.Features = make([]Feature, 0, len(raw.Features))
	for _, rf := range raw.Features {
		loc, err := convertLocation(rf.Location)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", rf.ID, err)
		}
		g.Features = append(g.Features, Feature{
			ID:       rf.ID,
			Type:     rf.Type,
			Function: rf.Function,
			Location: loc,
		})
	}

	return g, nil
}

// convertLocation builds a location from GTO location tuples. Each tuple is
// [contig, begin, strand, length] with begin strand-relative; the first tuple
// fixes the contig and strand for the whole location. A location lives on a
// single contig, so a later tuple naming a different contig cannot be
// represented; its coordinates are dropped and the location is marked
// invalid so downstream frame classification refuses it.
func convertLocation(tuples [][]any) (*location.Location, error) {
	if len(tuples) == 0 {
		return nil, fmt.Errorf("feature has no location tuples")
	}

	var loc *location.Location
	for _, tuple := range tuples {
		if len(tuple) != 4 {
			return nil, fmt.Errorf("location tuple has %d elements, want 4", len(tuple))
		}
		contig, ok := tuple[0].(string)
		if !ok {
			return nil, fmt.Errorf("location contig %v is not a string", tuple[0])
		}
		begin, err := tupleInt(tuple[1])
		if err != nil {
			return nil, fmt.Errorf("location begin: %w", err)
		}
		dir, ok := tuple[2].(string)
		if !ok {
			return nil, fmt.Errorf("location strand %v is not a string", tuple[2])
		}
		length, err := tupleInt(tuple[3])
		if err != nil {
			return nil, fmt.Errorf("location length: %w", err)
		}

		if loc == nil {
			loc = location.New(contig, location.ParseStrand(dir))
		} else if contig != loc.ContigID() {
			loc.Invalidate()
			continue
		}
		if err := loc.AddRegion(begin, length); err != nil {
			return nil, err
		}
	}
	return loc, nil
}

// tupleInt converts a loosely typed tuple element to an int64. GTO documents
// carry positions both as JSON numbers and as decimal strings.
func tupleInt(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case string:
		return strconv.ParseInt(n, 10, 64)
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not a number", v, v)
	}
}

// FeatureCount returns the number of features in the genome.
func (g *Genome) FeatureCount() int {
	return len(g.Features)
}

// FeaturesOfType returns the features with the given type (e.g. "CDS").
func (g *Genome) FeaturesOfType(ftype string) []Feature {
	var result []Feature
	for _, f := range g.Features {
		if f.Type == ftype {
			result = append(result, f)
		}
	}
	return result
}

func (g *Genome) String() string {
	return fmt.Sprintf("%s (%s)", g.ID, g.Name)
}
