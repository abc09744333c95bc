package render

import "testing"

func TestFrameCacheReuse(t *testing.T) {
	var c FrameCache

	a := c.Ensure(64, 32)
	b := c.Ensure(64, 32)
	if a != b {
		t.Error("same dimensions returned a different buffer")
	}
	if len(a.Pix) != 64*32*4 {
		t.Errorf("Pix length = %d, want %d", len(a.Pix), 64*32*4)
	}
}

func TestFrameCacheRealloc(t *testing.T) {
	var c FrameCache

	a := c.Ensure(64, 32)
	b := c.Ensure(64, 33)
	if a == b {
		t.Error("changed dimensions reused the old buffer")
	}
	if len(b.Pix) != 64*33*4 {
		t.Errorf("Pix length = %d, want %d", len(b.Pix), 64*33*4)
	}

	for i := range b.Pix {
		if b.Pix[i] != 0 {
			t.Errorf("fresh buffer not zero initialized at %d", i)
			break
		}
	}
}

func TestFrameCacheWrite(t *testing.T) {
	var c FrameCache

	img := c.Ensure(2, 1)
	c.Write(img, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], want[i])
		}
	}
}
