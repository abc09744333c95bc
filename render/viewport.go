package render

import "math"

// Viewport is the host's scroll state, sampled once per tick.
type Viewport struct {
	ScrollOffset float64 // leftmost visible position, scroll units
	ScrollExtent float64 // total scrollable width, scroll units
	VisibleWidth float64 // width of the visible region, scroll units
}

// Usable reports whether the viewport can be mapped onto a signal.
func (vp Viewport) Usable() bool {
	return vp.ScrollExtent > 0
}

// SampleRange is the viewport projected onto the decoded signal.
// Ranges are compared by value against the previous tick to detect
// redundant redraws.
type SampleRange struct {
	Start int
	End   int
}

// Count returns the number of visible samples.
func (r SampleRange) Count() int {
	return r.End - r.Start
}

// Empty reports an empty or inverted range.
func (r SampleRange) Empty() bool {
	return r.End <= r.Start
}

// MapRange maps vp onto a signal of total samples. Pure; no clamping
// beyond the floor. Callers check Usable and total before mapping.
func MapRange(vp Viewport, total int) SampleRange {
	var t = float64(total)
	return SampleRange{
		Start: int(math.Floor(vp.ScrollOffset / vp.ScrollExtent * t)),
		End:   int(math.Floor((vp.ScrollOffset + vp.VisibleWidth) / vp.ScrollExtent * t)),
	}
}
