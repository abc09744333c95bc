// Package render implements the viewport-synchronized render scheduling
// pipeline. Scroll state maps to a sample range, the range becomes a
// padded analysis slice, and a single background renderer paces the
// redraw loop so at most one frame is ever being computed.
package render

import "image"

// Host owns the decoded signal and the scroll state. Implementations
// must be safe for concurrent use. OnChange callbacks may fire from any
// goroutine and must return quickly.
type Host interface {
	// Viewport returns the current scroll state.
	Viewport() Viewport
	// Samples returns the decoded mono signal, nil until available.
	// Callers treat the result as immutable.
	Samples() []float64
	// SampleRate returns the signal rate in Hz.
	SampleRate() int
	// OnChange registers a listener fired on every host mutation.
	OnChange(func())
}

// Surface is the display target. Sync sizes the backing store to the
// container and returns its pixel dimensions; Blit replaces the whole
// frame. Both are only called from the scheduler goroutine.
type Surface interface {
	Sync() (w, h int)
	PixelRatio() float64
	Blit(*image.RGBA)
}

// Renderer computes one spectrogram frame per request. Render runs on
// the channel's worker goroutine; implementations may keep scratch
// state between calls.
type Renderer interface {
	Render(Request) Response
}
