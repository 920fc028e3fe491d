package location

// Frame classifies the relationship between a kmer and a location's coding
// frame. Frames are pure return values; they are never stored on a location.
type Frame int8

const (
	// FrameOutside means the kmer does not overlap the location at all.
	FrameOutside Frame = iota
	// FrameInvalid means the kmer straddles a region boundary or the
	// location has been invalidated.
	FrameInvalid
	// FrameF0 through FrameF2 are the forward-strand coding frames.
	FrameF0
	FrameF1
	FrameF2
	// FrameR0 through FrameR2 are the reverse-strand coding frames.
	FrameR0
	FrameR1
	FrameR2
)

var frameNames = [...]string{
	FrameOutside: "0",
	FrameInvalid: "XX",
	FrameF0:      "F0",
	FrameF1:      "F1",
	FrameF2:      "F2",
	FrameR0:      "R0",
	FrameR1:      "R1",
	FrameR2:      "R2",
}

// IsCoding returns true for the six in-frame codes.
func (f Frame) IsCoding() bool {
	return f >= FrameF0 && f <= FrameR2
}

func (f Frame) String() string {
	if f < 0 || int(f) >= len(frameNames) {
		return "??"
	}
	return frameNames[f]
}
