package render

import "math"

// SampleBuffer owns a run of samples destined for the background
// renderer. Ownership moves with the buffer: Take yields the samples
// exactly once, and the sender must not touch them after handing the
// buffer off.
type SampleBuffer struct {
	samples []float64
}

// NewSampleBuffer wraps samples in an owned buffer.
func NewSampleBuffer(samples []float64) *SampleBuffer {
	return &SampleBuffer{samples: samples}
}

// Take returns the samples and empties the buffer. Second and later
// calls return nil.
func (b *SampleBuffer) Take() []float64 {
	var s = b.samples
	b.samples = nil
	return s
}

// Len returns the number of samples still held.
func (b *SampleBuffer) Len() int {
	return len(b.samples)
}

// FFTSize returns the smallest power of two covering windowSamples,
// never below 512. The floor keeps frequency resolution workable for
// very short analysis windows.
func FFTSize(windowSamples float64) int {
	var n = 1
	for float64(n) < windowSamples {
		n <<= 1
	}
	if n < 512 {
		n = 512
	}
	return n
}

// Slice is a padded run of samples ready for the background renderer,
// plus the geometry derived from the visible range.
type Slice struct {
	Buf           *SampleBuffer
	FFTSize       int
	WindowSamples float64 // analysis window length in samples, unrounded
	PerPixel      float64 // visible samples per output pixel column
	LeftPad       int
	Visible       int
}

// BuildSlice derives the FFT size for the analysis window and copies the
// visible range plus its context padding out of samples into an owned
// buffer. The left padding is bounded by half the analysis window, the
// right padding by half the FFT length, and both collapse at the signal
// edges.
//
// An empty or inverted range yields Visible == 0 and no buffer; callers
// must not submit such a slice.
func BuildSlice(samples []float64, r SampleRange, rate int, winSec float64, widthPx int) Slice {
	var winSamples = winSec * float64(rate)

	var s = Slice{
		FFTSize:       FFTSize(winSamples),
		WindowSamples: winSamples,
	}
	if widthPx > 0 {
		s.PerPixel = float64(r.End+1-r.Start) / float64(widthPx)
	}
	if r.Empty() {
		return s
	}
	s.Visible = r.Count()

	var total = len(samples)
	var leftPad = int(math.Min(float64(r.Start), winSamples/2))
	var rightPad = total - r.End
	if m := s.FFTSize/2 - 1; rightPad > m {
		rightPad = m
	}
	if leftPad < 0 {
		leftPad = 0
	}
	if rightPad < 0 {
		rightPad = 0
	}

	var buf = make([]float64, leftPad+s.Visible+rightPad)

	// Out-of-contract ranges read as zero instead of panicking.
	var lo = r.Start - leftPad
	var hi = r.End + rightPad
	if lo < 0 {
		lo = 0
	}
	if hi > total {
		hi = total
	}
	if lo < hi {
		copy(buf, samples[lo:hi])
	}

	s.Buf = NewSampleBuffer(buf)
	s.LeftPad = leftPad
	return s
}
