package genome

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Suffix carried by genome files in a directory. The file name minus the
// suffix is the genome ID.
const Suffix = ".gto"

// Directory manages a directory of GTO files and allows iteration over the
// genomes in genome ID order.
type Directory struct {
	path string
	ids  []string
}

// OpenDirectory scans a directory for GTO files and returns a Directory over
// them. Only the sorted, de-duplicated list of genome IDs is read up front;
// genomes themselves are loaded on demand.
func OpenDirectory(path string) (*Directory, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("genome directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("genome directory %s is not a directory", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list genome directory %s: %w", path, err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Suffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, Suffix))
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	return &Directory{path: path, ids: ids}, nil
}

// Path returns the directory path.
func (d *Directory) Path() string {
	return d.path
}

// IDs returns the genome IDs in sorted order.
func (d *Directory) IDs() []string {
	return slices.Clone(d.ids)
}

// Size returns the number of genomes in the directory.
func (d *Directory) Size() int {
	return len(d.ids)
}

// Genome loads the genome with the given ID.
func (d *Directory) Genome(id string) (*Genome, error) {
	return ReadGenome(filepath.Join(d.path, id+Suffix))
}

// Genomes returns an iterator over all genomes in ID order.
func (d *Directory) Genomes() *Iterator {
	return &Iterator{dir: d}
}

func (d *Directory) String() string {
	return fmt.Sprintf("%s (%d genomes)", d.path, len(d.ids))
}

// Iterator walks the genomes of a directory in ID order.
type Iterator struct {
	dir  *Directory
	next int
}

// Next loads and returns the next genome, or nil when the directory is
// exhausted. A genome that fails to load ends the iteration with an error
// identifying the genome.
func (it *Iterator) Next() (*Genome, error) {
	if it.next >= len(it.dir.ids) {
		return nil, nil
	}
	id := it.dir.ids[it.next]
	it.next++

	g, err := it.dir.Genome(id)
	if err != nil {
		return nil, fmt.Errorf("process genome %s: %w", id, err)
	}
	return g, nil
}
