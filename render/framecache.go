package render

import "image"

// FrameCache owns the display image buffer. The buffer is reallocated
// if and only if the requested dimensions differ from the current ones,
// keeping steady-state redraws allocation free.
type FrameCache struct {
	img *image.RGBA
}

// Ensure returns a zero-based buffer of exactly w by h pixels, reusing
// the current one when the dimensions already match.
func (c *FrameCache) Ensure(w, h int) *image.RGBA {
	if c.img != nil {
		b := c.img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return c.img
		}
	}
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	return c.img
}

// Write copies response bytes into img verbatim. Every redraw is a
// full-frame replace; there are no partial updates.
func (c *FrameCache) Write(img *image.RGBA, pix []byte) {
	copy(img.Pix, pix)
}
