package render

import "github.com/velkyn/sgram/window"

// Request is the message handed to the background renderer. It is
// immutable once sent. Samples is transferred with the request; the
// sender must not read or mutate the buffer afterward.
//
// PreEmphasis and HeatMapAnchors ride along unconditionally even when
// the selected color mode ignores them.
type Request struct {
	WindowSizeSeconds float64
	FFTN              int // power of two, >= 512
	Alpha             float64
	UpperFreq         float64
	LowerFreq         float64
	SamplesPerPixel   float64
	Window            window.Type
	ImgWidth          int
	ImgHeight         int
	DynRangeDB        float64
	PixelRatio        float64
	SampleRate        int
	Transparency      uint8
	Samples           *SampleBuffer
	Channels          int // always 1; the caller pre-selects a channel
	DrawHeatMap       bool
	PreEmphasis       float64
	HeatMapAnchors    [3][3]uint8
	Invert            bool
}

// Response carries one rendered frame as RGBA bytes of length
// Width*Height*4.
type Response struct {
	Pix    []byte
	Width  int
	Height int
}
