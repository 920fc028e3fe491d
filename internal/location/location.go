package location

import (
	"fmt"
	"slices"
	"strings"
)

// Strand identifies the reading direction of a location on its contig.
type Strand int8

const (
	// StrandForward is the plus strand.
	StrandForward Strand = iota
	// StrandReverse is the minus strand.
	StrandReverse
)

// ParseStrand converts a strand symbol to a Strand. "+" selects the forward
// strand; any other symbol selects the reverse strand.
func ParseStrand(symbol string) Strand {
	if symbol == "+" {
		return StrandForward
	}
	return StrandReverse
}

// Dir returns the strand symbol as a byte ('+' or '-').
func (s Strand) Dir() byte {
	if s == StrandForward {
		return '+'
	}
	return '-'
}

// Location is an ordered, non-empty list of regions on one contig and strand,
// representing a (possibly segmented) feature's coordinates. The region list
// is kept sorted ascending by left position at all times and is exclusively
// owned by the location; Regions returns a copy, never the backing slice.
//
// A location is bacterial in spirit: multiple places on a single strand of a
// single contig. Regions normally do not overlap, but overlapping inserts are
// accepted as-is and never coalesced.
type Location struct {
	contigID string
	strand   Strand
	regions  []Region
	valid    bool
}

// New creates a blank location on a contig and strand. Positional accessors
// require at least one region; populate the location with PutRegion or
// AddRegion before using them.
func New(contigID string, strand Strand) *Location {
	return &Location{
		contigID: contigID,
		strand:   strand,
		regions:  make([]Region, 0, 1),
		valid:    true,
	}
}

// Create builds a location from a strand symbol and a flat list of segment
// coordinates in the form left, right, left, right, ... A "+" symbol selects
// the forward strand; anything else selects the reverse strand. Segments may
// arrive in any order; they are stored sorted ascending by left position.
func Create(contigID, strand string, segments ...int64) (*Location, error) {
	if len(segments)%2 == 1 {
		return nil, fmt.Errorf("odd number of segment specifiers (%d) in location construction: %w",
			len(segments), ErrInvalidArgument)
	}
	loc := New(contigID, ParseStrand(strand))
	for i := 0; i < len(segments); i += 2 {
		if err := loc.PutRegion(segments[i], segments[i+1]); err != nil {
			return nil, err
		}
	}
	return loc, nil
}

// PutRegion inserts a new region covering [left, right] at the position that
// keeps the region list sorted by left. A new region ties with an existing
// region of equal left position by inserting before it. Overlapping regions
// are permitted and are not merged.
func (l *Location) PutRegion(left, right int64) error {
	region, err := NewRegion(left, right)
	if err != nil {
		return err
	}
	i := 0
	for i < len(l.regions) && l.regions[i].left < left {
		i++
	}
	l.regions = slices.Insert(l.regions, i, region)
	return nil
}

// AddRegion adds a region expressed as a strand-relative begin position and a
// length. On the forward strand the region runs rightward from begin; on the
// reverse strand it runs leftward.
func (l *Location) AddRegion(begin, length int64) error {
	if l.strand == StrandForward {
		return l.PutRegion(begin, begin+length-1)
	}
	return l.PutRegion(begin-length+1, begin)
}

// ContigID returns the ID of the contig containing this location.
func (l *Location) ContigID() string {
	return l.contigID
}

// SetContigID moves this location to a different contig.
func (l *Location) SetContigID(contigID string) {
	l.contigID = contigID
}

// Strand returns the strand of this location.
func (l *Location) Strand() Strand {
	return l.strand
}

// Dir returns the strand symbol ('+' or '-').
func (l *Location) Dir() byte {
	return l.strand.Dir()
}

// Left returns the leftmost position (1-based) covered by any region.
func (l *Location) Left() int64 {
	return l.regions[0].left
}

// Right returns the rightmost position (1-based) covered by any region.
func (l *Location) Right() int64 {
	right := l.regions[0].right
	for _, region := range l.regions[1:] {
		if region.right > right {
			right = region.right
		}
	}
	return right
}

// Length returns the full span of the location, gaps included.
func (l *Location) Length() int64 {
	return l.Right() - l.Left() + 1
}

// Begin returns the start position in reading order: the left edge on the
// forward strand, the right edge on the reverse strand.
func (l *Location) Begin() int64 {
	if l.strand == StrandForward {
		return l.Left()
	}
	return l.Right()
}

// End returns the stop position in reading order.
func (l *Location) End() int64 {
	if l.strand == StrandForward {
		return l.Right()
	}
	return l.Left()
}

// IsSegmented returns true if this location has more than one region.
func (l *Location) IsSegmented() bool {
	return len(l.regions) > 1
}

// RegionCount returns the number of regions.
func (l *Location) RegionCount() int {
	return len(l.regions)
}

// Regions returns a copy of the region list in storage order.
func (l *Location) Regions() []Region {
	return slices.Clone(l.regions)
}

// IsValid returns true unless the location has been invalidated.
func (l *Location) IsValid() bool {
	return l.valid
}

// Invalidate marks this location as invalid. There is no way back.
func (l *Location) Invalidate() {
	l.valid = false
}

// RegionOf returns an independent single-region location on the same contig
// and strand spanning this location's full extent.
func (l *Location) RegionOf() *Location {
	envelope := New(l.contigID, l.strand)
	envelope.regions = append(envelope.regions, Region{left: l.Left(), right: l.Right()})
	return envelope
}

// Clone returns a deep copy of this location. The copy owns its own region
// list, so mutating either location never affects the other.
func (l *Location) Clone() *Location {
	return &Location{
		contigID: l.contigID,
		strand:   l.strand,
		regions:  slices.Clone(l.regions),
		valid:    l.valid,
	}
}

// Contains returns true if this location wholly contains the other location's
// extent. This is a coordinate-envelope test on the same contig; it does not
// require per-segment containment.
func (l *Location) Contains(other *Location) bool {
	return l.contigID == other.contigID &&
		l.Left() <= other.Left() && l.Right() >= other.Right()
}

// SetLeft moves the left edge of the location. Regions entirely to the left
// of the new position are dropped; the surviving first region is trimmed (or
// extended) to start at newLeft.
func (l *Location) SetLeft(newLeft int64) error {
	if newLeft > l.Right() {
		return fmt.Errorf("new location left %d is greater than right position %d: %w",
			newLeft, l.Right(), ErrInvalidArgument)
	}
	for l.regions[0].right < newLeft {
		l.regions = l.regions[1:]
	}
	l.regions[0].SetLeft(newLeft)
	return nil
}

// SetRight moves the right edge of the location. Regions entirely to the
// right of the new position are dropped; the surviving last region is trimmed
// (or extended) to end at newRight.
func (l *Location) SetRight(newRight int64) error {
	if newRight < l.Left() {
		return fmt.Errorf("new location right %d is less than left position %d: %w",
			newRight, l.Left(), ErrInvalidArgument)
	}
	for l.regions[len(l.regions)-1].left > newRight {
		l.regions = l.regions[:len(l.regions)-1]
	}
	l.regions[len(l.regions)-1].SetRight(newRight)
	return nil
}

// SetRegion collapses the location to a single region with the given limits.
// The bounds are not cross-validated here; an inverted pair produces an
// inverted region, matching the narrow validation scope of the mutators.
func (l *Location) SetRegion(left, right int64) {
	l.regions = l.regions[:1]
	l.regions[0].SetLeft(left)
	l.regions[0].SetRight(right)
}

// Compare imposes a total order on locations: by contig, then leftmost
// position, then rightmost position, then strand ('+' before '-'), then
// region count (fewer segments first), then pairwise region comparison in
// storage order. A zero result means the locations cover the same places.
func (l *Location) Compare(other *Location) int {
	if c := strings.Compare(l.contigID, other.contigID); c != 0 {
		return c
	}
	if c := compareInt64(l.Left(), other.Left()); c != 0 {
		return c
	}
	if c := compareInt64(l.Right(), other.Right()); c != 0 {
		return c
	}
	if c := int(l.Dir()) - int(other.Dir()); c != 0 {
		return c
	}
	if c := len(l.regions) - len(other.regions); c != 0 {
		return c
	}
	for i := range l.regions {
		if c := l.regions[i].Compare(other.regions[i]); c != 0 {
			return c
		}
	}
	return 0
}

// CompareLeft orders locations solely by leftmost position, ignoring contig,
// strand, and segmentation. It is intended for sorts that collect overlap
// candidates across strands.
func CompareLeft(a, b *Location) int {
	return compareInt64(a.Left(), b.Left())
}

// KmerFrame computes the frame of a kmer relative to this location. The kmer
// is identified by its 1-based start position on the contig and its length,
// and is assumed to be on the forward strand.
//
// A kmer that does not overlap the location's extent at all is FrameOutside.
// A kmer overlapping an invalidated location, or one not wholly inside a
// single region, is FrameInvalid. Otherwise the frame is the kmer's offset
// modulo 3 from the containing region's strand-relative start.
func (l *Location) KmerFrame(pos, kSize int64) Frame {
	end := pos + kSize - 1
	if end < l.Left() || pos > l.Right() {
		return FrameOutside
	}
	if !l.valid {
		return FrameInvalid
	}
	// Last containing region in storage order wins when regions overlap.
	found := -1
	for i, region := range l.regions {
		if pos >= region.left && end <= region.right {
			found = i
		}
	}
	if found < 0 {
		return FrameInvalid
	}
	return l.calcFrame(pos, end, l.regions[found])
}

// calcFrame maps a fully contained kmer to its in-frame code. Offsets are
// measured rightward from the region's left edge on the forward strand and
// leftward from the region's right edge on the reverse strand.
func (l *Location) calcFrame(pos, end int64, region Region) Frame {
	if l.strand == StrandForward {
		return FrameF0 + Frame((pos-region.left)%3)
	}
	return FrameR0 + Frame((region.right-end)%3)
}

func (l *Location) String() string {
	var sb strings.Builder
	sb.WriteString(l.contigID)
	sb.WriteByte(l.Dir())
	for _, region := range l.regions {
		sb.WriteString(region.String())
	}
	return sb.String()
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
