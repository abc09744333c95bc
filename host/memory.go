// Package host provides an in-memory signal and viewport host.
package host

import (
	"sync"

	"github.com/velkyn/sgram/render"
)

// Memory is a thread-safe host holding a decoded mono signal and the
// scroll state over it. Scroll units are samples, so the scroll extent
// always equals the signal length. Every mutation notifies the
// registered listeners; listeners must be cheap and non-blocking.
type Memory struct {
	mu        sync.RWMutex
	samples   []float64
	rate      int
	offset    float64
	visible   float64
	follow    bool
	listeners []func()
}

var _ render.Host = (*Memory)(nil)

// NewMemory returns an empty host for signals at rate Hz.
func NewMemory(rate int) *Memory {
	return &Memory{rate: rate}
}

// Viewport returns the current scroll state.
func (m *Memory) Viewport() render.Viewport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return render.Viewport{
		ScrollOffset: m.offset,
		ScrollExtent: float64(len(m.samples)),
		VisibleWidth: m.visible,
	}
}

// Samples returns the decoded signal, nil until one is set. Callers
// treat the result as immutable; Append never rewrites delivered
// indices.
func (m *Memory) Samples() []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.samples
}

// SampleRate returns the signal rate in Hz.
func (m *Memory) SampleRate() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rate
}

// OnChange registers a listener fired on every mutation.
func (m *Memory) OnChange(fn func()) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// SetSamples replaces the signal wholesale.
func (m *Memory) SetSamples(samples []float64) {
	m.mu.Lock()
	m.samples = samples
	m.clampLocked()
	ls := m.listeners
	m.mu.Unlock()
	notify(ls)
}

// Append extends the signal with freshly captured samples. In follow
// mode the viewport tracks the newest ones.
func (m *Memory) Append(chunk []float64) {
	m.mu.Lock()
	m.samples = append(m.samples, chunk...)
	if m.follow {
		m.offset = float64(len(m.samples)) - m.visible
	}
	m.clampLocked()
	ls := m.listeners
	m.mu.Unlock()
	notify(ls)
}

// SetViewport replaces offset and visible width in one mutation, for
// restoring a saved view.
func (m *Memory) SetViewport(offset, visible float64) {
	if visible < 0 {
		visible = 0
	}
	m.mu.Lock()
	m.offset = offset
	m.visible = visible
	m.clampLocked()
	ls := m.listeners
	m.mu.Unlock()
	notify(ls)
}

// ScrollTo moves the left edge to offset, clamped into the signal.
func (m *Memory) ScrollTo(offset float64) {
	m.mu.Lock()
	m.offset = offset
	m.clampLocked()
	ls := m.listeners
	m.mu.Unlock()
	notify(ls)
}

// ScrollBy moves the viewport by delta samples.
func (m *Memory) ScrollBy(delta float64) {
	m.mu.Lock()
	m.offset += delta
	m.clampLocked()
	ls := m.listeners
	m.mu.Unlock()
	notify(ls)
}

// SetVisibleWidth sets the visible width in samples.
func (m *Memory) SetVisibleWidth(w float64) {
	if w < 0 {
		w = 0
	}
	m.mu.Lock()
	m.visible = w
	m.clampLocked()
	ls := m.listeners
	m.mu.Unlock()
	notify(ls)
}

// ZoomBy scales the visible width by factor about the view center.
// Zoom floors at 16 samples and caps at the signal length.
func (m *Memory) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	m.mu.Lock()
	center := m.offset + m.visible/2
	m.visible *= factor
	if total := float64(len(m.samples)); total > 0 && m.visible > total {
		m.visible = total
	}
	if m.visible < 16 {
		m.visible = 16
	}
	m.offset = center - m.visible/2
	m.clampLocked()
	ls := m.listeners
	m.mu.Unlock()
	notify(ls)
}

// SetFollow toggles tail tracking. Turning it on snaps the viewport to
// the newest samples.
func (m *Memory) SetFollow(on bool) {
	m.mu.Lock()
	m.follow = on
	if on {
		m.offset = float64(len(m.samples)) - m.visible
	}
	m.clampLocked()
	ls := m.listeners
	m.mu.Unlock()
	notify(ls)
}

// Follow reports whether the viewport tracks the signal tail.
func (m *Memory) Follow() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.follow
}

func (m *Memory) clampLocked() {
	max := float64(len(m.samples)) - m.visible
	if max < 0 {
		max = 0
	}
	if m.offset > max {
		m.offset = max
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func notify(ls []func()) {
	for _, fn := range ls {
		fn()
	}
}
