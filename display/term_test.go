package display

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSimTerm(t *testing.T, w, h int) (*Term, tcell.SimulationScreen) {
	t.Helper()

	sim := tcell.NewSimulationScreen("")
	term, err := newTerm(sim)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(term.Close)

	sim.SetSize(w, h)
	return term, sim
}

func TestSyncReportsPixelDims(t *testing.T) {
	term, _ := newSimTerm(t, 10, 4)

	w, h := term.Sync()
	if w != 10 || h != 8 {
		t.Errorf("Sync() = %dx%d, want 10x8 (two pixels per row)", w, h)
	}
	if term.PixelRatio() != 1 {
		t.Errorf("PixelRatio() = %v", term.PixelRatio())
	}
}

func TestBlitHalfBlocks(t *testing.T) {
	term, sim := newSimTerm(t, 4, 2)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		img.SetRGBA(x, 0, color.RGBA{R: 255, A: 255})
		img.SetRGBA(x, 1, color.RGBA{B: 255, A: 255})
	}
	term.Blit(img)

	mainc, _, style, _ := sim.GetContent(0, 0)
	if mainc != HalfBlock {
		t.Fatalf("cell rune = %q, want half block", mainc)
	}

	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("foreground = %v, want red (upper pixel)", fg)
	}
	if bg != tcell.NewRGBColor(0, 0, 255) {
		t.Errorf("background = %v, want blue (lower pixel)", bg)
	}
}

func TestKeyEvents(t *testing.T) {
	term, sim := newSimTerm(t, 4, 2)

	sim.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	want := []EventKind{EventScrollLeft, EventQuit}
	got := make([]EventKind, 0, len(want))
	deadline := time.After(2 * time.Second)

	for len(got) < len(want) {
		select {
		case ev, ok := <-term.Events():
			if !ok {
				t.Fatalf("event stream closed early, got %v", got)
			}
			if ev.Kind == EventResize {
				continue
			}
			got = append(got, ev.Kind)
		case <-deadline:
			t.Fatalf("timed out, got %v", got)
		}
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCloseIdempotent(t *testing.T) {
	term, _ := newSimTerm(t, 4, 2)

	term.Close()
	term.Close()

	if w, h := term.Sync(); w != 0 || h != 0 {
		t.Errorf("Sync after Close = %dx%d, want 0x0", w, h)
	}
}
