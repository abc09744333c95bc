// Package sgram renders a live, viewport-synchronized spectrogram of an
// audio signal. As the visible time range scrolls or zooms, only the
// visible slice is recomputed and redrawn, paced by the completion of a
// single background renderer rather than by a fixed timer.
package sgram

import (
	"log/slog"
	"sync"

	"github.com/pkg/errors"

	"github.com/velkyn/sgram/render"
	"github.com/velkyn/sgram/spectral"
	"github.com/velkyn/sgram/window"
)

// DefaultHeatMapAnchors is the blue to green to red gradient.
var DefaultHeatMapAnchors = [3][3]uint8{{0, 0, 160}, {0, 200, 0}, {220, 0, 0}}

// Options configure a Plugin. The zero value works; unset fields take
// the documented defaults at New.
type Options struct {
	// WindowFunc names the analysis window function. Default "hann";
	// unknown names fail New.
	WindowFunc string

	// WindowSizeSeconds is the analysis window length. Default 5 ms.
	WindowSizeSeconds float64

	// Alpha shapes the blackman and gauss windows. Default 0.16.
	Alpha float64

	// LowerFreq and UpperFreq bound the displayed band in Hz. A zero
	// UpperFreq means half the sample rate.
	LowerFreq float64
	UpperFreq float64

	// DynRangeDB is the displayed dynamic range in dB. Default 70.
	DynRangeDB float64

	// PreEmphasis is the pre-emphasis filter factor. Default 0.97;
	// negative values disable the filter.
	PreEmphasis float64

	// Transparency subtracts from full opacity, 0 to 255.
	Transparency uint8

	// DrawHeatMap colors frames through HeatMapAnchors instead of
	// grayscale. Unset anchors take DefaultHeatMapAnchors.
	DrawHeatMap    bool
	HeatMapAnchors [3][3]uint8

	// Invert flips the intensity scale.
	Invert bool

	// FrameRate is the tick rate of the scheduling loop. Default 60.
	FrameRate int

	// Renderer overrides the built-in spectral unit.
	Renderer render.Renderer

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) normalize() (Options, window.Type, error) {
	if o.WindowFunc == "" {
		o.WindowFunc = "hann"
	}
	win, err := window.FromName(o.WindowFunc)
	if err != nil {
		return o, 0, err
	}

	if o.WindowSizeSeconds <= 0 {
		o.WindowSizeSeconds = 0.005
	}
	if o.Alpha <= 0 {
		o.Alpha = 0.16
	}
	if o.DynRangeDB <= 0 {
		o.DynRangeDB = 70
	}

	switch {
	case o.PreEmphasis == 0:
		o.PreEmphasis = 0.97
	case o.PreEmphasis < 0:
		o.PreEmphasis = 0
	}

	if o.HeatMapAnchors == ([3][3]uint8{}) {
		o.HeatMapAnchors = DefaultHeatMapAnchors
	}
	if o.FrameRate <= 0 {
		o.FrameRate = 60
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o, win, nil
}

// Plugin owns one spectrogram pipeline. Create with New, bind with
// Attach, tear down with Detach.
type Plugin struct {
	opts Options
	win  window.Type
	log  *slog.Logger

	mu       sync.Mutex
	sched    *render.Scheduler
	channel  *render.Channel
	attached bool
}

// New validates opts and returns an unattached plugin. An unknown
// window function name fails here, before any scheduling can begin.
func New(opts Options) (*Plugin, error) {
	normalized, win, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	return &Plugin{
		opts: normalized,
		win:  win,
		log:  normalized.Logger,
	}, nil
}

// Attach binds the plugin to a host and a surface, acquires the
// background renderer, and starts the scheduling loop with its first
// tick armed.
func (p *Plugin) Attach(h render.Host, s render.Surface) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.attached {
		return errors.New("sgram: already attached")
	}
	if h == nil {
		return errors.New("sgram: nil host")
	}
	if s == nil {
		return errors.New("sgram: nil surface")
	}

	r := p.opts.Renderer
	if r == nil {
		r = spectral.NewUnit()
	}

	channel, err := render.NewChannel(r)
	if err != nil {
		return err
	}

	sched, err := render.NewScheduler(render.SchedulerConfig{
		Host:    h,
		Surface: s,
		Channel: channel,
		Params: render.Params{
			WindowSizeSeconds: p.opts.WindowSizeSeconds,
			Window:            p.win,
			Alpha:             p.opts.Alpha,
			LowerFreq:         p.opts.LowerFreq,
			UpperFreq:         p.opts.UpperFreq,
			DynRangeDB:        p.opts.DynRangeDB,
			Transparency:      p.opts.Transparency,
			DrawHeatMap:       p.opts.DrawHeatMap,
			HeatMapAnchors:    p.opts.HeatMapAnchors,
			PreEmphasis:       p.opts.PreEmphasis,
			Invert:            p.opts.Invert,
		},
		FrameRate: p.opts.FrameRate,
		Logger:    p.log,
	})
	if err != nil {
		channel.Close()
		return err
	}

	h.OnChange(sched.Invalidate)
	sched.Start()
	sched.Invalidate()

	p.sched = sched
	p.channel = channel
	p.attached = true

	p.log.Debug("attached", "window", p.win.String(), "fps", p.opts.FrameRate)
	return nil
}

// Detach stops scheduling and releases the background renderer. Safe
// while a request is in flight; a late response is discarded without
// touching the display. Idempotent, and the plugin may attach again
// afterward.
func (p *Plugin) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.attached {
		return
	}

	p.sched.Stop()
	p.channel.Close()
	p.sched = nil
	p.channel = nil
	p.attached = false

	p.log.Debug("detached")
}
