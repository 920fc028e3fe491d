// Package location models strand-aware genomic locations: ordered sets of
// contiguous regions on a single contig, as used in bacterial genome
// annotations.
package location

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every error returned for a coordinate
// bound violation (left > right, odd segment lists, out-of-range trims).
var ErrInvalidArgument = errors.New("invalid argument")

// Region is a single contiguous closed interval [left, right] on a contig,
// 1-based and inclusive on both ends. Coordinates are always on the forward
// axis regardless of the owning location's strand.
type Region struct {
	left  int64
	right int64
}

// NewRegion creates a region covering [left, right].
func NewRegion(left, right int64) (Region, error) {
	if left > right {
		return Region{}, fmt.Errorf("region left %d is greater than right %d: %w", left, right, ErrInvalidArgument)
	}
	return Region{left: left, right: right}, nil
}

// Left returns the leftmost position (1-based).
func (r Region) Left() int64 {
	return r.left
}

// Right returns the rightmost position (1-based).
func (r Region) Right() int64 {
	return r.right
}

// SetLeft moves the left position. The caller is responsible for keeping
// left <= right and for preserving the sort order of any containing location.
func (r *Region) SetLeft(left int64) {
	r.left = left
}

// SetRight moves the right position. Same caller contract as SetLeft.
func (r *Region) SetRight(right int64) {
	r.right = right
}

// Length returns the number of positions covered.
func (r Region) Length() int64 {
	return r.right - r.left + 1
}

// Compare orders regions by left position. Regions with equal left positions
// compare equal; there is no secondary key.
func (r Region) Compare(other Region) int {
	switch {
	case r.left < other.left:
		return -1
	case r.left > other.left:
		return 1
	default:
		return 0
	}
}

func (r Region) String() string {
	return fmt.Sprintf("[%d, %d]", r.left, r.right)
}
