// Package display provides the terminal rendering surface.
package display

import (
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/velkyn/sgram/render"
)

// HalfBlock carries two vertically stacked pixels per terminal cell:
// the foreground colors the upper pixel, the background the lower one.
const HalfBlock rune = '▀'

const cellRows = 2

// EventKind tags simplified terminal input events.
type EventKind int

// Input events delivered to the key loop.
const (
	EventQuit EventKind = iota
	EventResize
	EventScrollLeft
	EventScrollRight
	EventZoomIn
	EventZoomOut
	EventHome
	EventEnd
	EventFollow
)

// Event is one simplified input event.
type Event struct {
	Kind EventKind
}

// Term renders frames into a terminal with half block cells. The pixel
// backing store is the terminal width by twice its rows. Term
// implements render.Surface.
type Term struct {
	mu     sync.Mutex
	screen tcell.Screen
	closed bool

	events    chan Event
	closeOnce sync.Once
}

var _ render.Surface = (*Term)(nil)

// NewTerm opens and initializes the default terminal screen.
func NewTerm() (*Term, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	return newTerm(screen)
}

func newTerm(screen tcell.Screen) (*Term, error) {
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "init screen")
	}

	screen.DisableMouse()
	screen.HideCursor()
	screen.Clear()

	t := &Term{
		screen: screen,
		events: make(chan Event, 8),
	}
	go t.poll()
	return t, nil
}

// Sync sizes the backing store to the terminal and returns its pixel
// dimensions.
func (t *Term) Sync() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, 0
	}
	w, h := t.screen.Size()
	return w, h * cellRows
}

// PixelRatio is always 1 for terminal cells.
func (t *Term) PixelRatio() float64 {
	return 1
}

// Blit draws img full-frame, two pixel rows per cell row, and flushes.
func (t *Term) Blit(img *image.RGBA) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	b := img.Bounds()
	w := b.Dx()
	rows := b.Dy() / cellRows

	for row := 0; row < rows; row++ {
		for x := 0; x < w; x++ {
			style := tcell.StyleDefault.
				Foreground(rgbAt(img, x, row*cellRows)).
				Background(rgbAt(img, x, row*cellRows+1))
			t.screen.SetContent(x, row, HalfBlock, nil, style)
		}
	}
	t.screen.Show()
}

// Events delivers input events. The channel closes once the screen
// shuts down.
func (t *Term) Events() <-chan Event {
	return t.events
}

// Close restores the terminal. Idempotent.
func (t *Term) Close() {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		t.closed = true
		t.mu.Unlock()
		t.screen.Fini()
	})
}

// poll pumps terminal events into the simplified stream. Fini makes
// PollEvent return nil, which ends the pump.
func (t *Term) poll() {
	defer close(t.events)

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			t.push(Event{Kind: EventResize})

		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q', 'Q':
					t.push(Event{Kind: EventQuit})
				case '+', '=':
					t.push(Event{Kind: EventZoomIn})
				case '-', '_':
					t.push(Event{Kind: EventZoomOut})
				case 'f', 'F':
					t.push(Event{Kind: EventFollow})
				}

			case tcell.KeyCtrlC, tcell.KeyEscape:
				t.push(Event{Kind: EventQuit})
			case tcell.KeyLeft:
				t.push(Event{Kind: EventScrollLeft})
			case tcell.KeyRight:
				t.push(Event{Kind: EventScrollRight})
			case tcell.KeyHome:
				t.push(Event{Kind: EventHome})
			case tcell.KeyEnd:
				t.push(Event{Kind: EventEnd})
			}
		}
	}
}

// push drops events when the reader lags; input is droppable.
func (t *Term) push(ev Event) {
	select {
	case t.events <- ev:
	default:
	}
}

func rgbAt(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
