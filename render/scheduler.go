package render

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/velkyn/sgram/window"
)

// Params are the analysis and color parameters applied to every
// request. They are fixed for the lifetime of a scheduler.
type Params struct {
	WindowSizeSeconds float64
	Window            window.Type
	Alpha             float64
	LowerFreq         float64
	UpperFreq         float64 // 0 means half the sample rate
	DynRangeDB        float64
	Transparency      uint8
	DrawHeatMap       bool
	HeatMapAnchors    [3][3]uint8
	PreEmphasis       float64
	Invert            bool
}

// SchedulerConfig configures a Scheduler.
type SchedulerConfig struct {
	Host      Host
	Surface   Surface
	Channel   *Channel
	Params    Params
	FrameRate int          // ticks per second, default 60
	Logger    *slog.Logger // default slog.Default()
}

// Scheduler drives the render cycle. While armed it runs one tick per
// frame interval; submitting a request disarms it until the response
// arrives, so the loop is paced by the renderer's true throughput and
// at most one request is ever in flight.
type Scheduler struct {
	host    Host
	surface Surface
	channel *Channel
	params  Params
	log     *slog.Logger

	interval time.Duration

	// Set from host callbacks on any goroutine.
	dirty atomic.Bool

	// Owned by the run loop; tests drive tick directly.
	armed      bool
	terminated bool
	last       SampleRange
	cache      FrameCache

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewScheduler validates cfg and returns an idle scheduler with its
// first tick armed. Start launches the loop.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	if cfg.Host == nil {
		return nil, errors.New("render: nil host")
	}
	if cfg.Surface == nil {
		return nil, errors.New("render: nil surface")
	}
	if cfg.Channel == nil {
		return nil, errors.New("render: nil channel")
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 60
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Scheduler{
		host:     cfg.Host,
		surface:  cfg.Surface,
		channel:  cfg.Channel,
		params:   cfg.Params,
		log:      cfg.Logger,
		interval: time.Second / time.Duration(cfg.FrameRate),
		armed:    true,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Invalidate marks the viewport dirty. Safe from any goroutine; this is
// the only scheduler entry point host callbacks may use.
func (s *Scheduler) Invalidate() {
	s.dirty.Store(true)
}

// Start launches the scheduling loop.
func (s *Scheduler) Start() {
	go s.run()
}

// Stop terminates the loop and waits for it to exit. A response
// arriving afterward is never consumed and the display stays untouched.
// Stop is idempotent and safe while a request is in flight.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
}

func (s *Scheduler) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		// Termination is a flag checked at the top of each
		// iteration, so a buffered late response is left unread.
		select {
		case <-s.stop:
			s.terminated = true
			return
		default:
		}

		select {
		case <-s.stop:
			s.terminated = true
			return

		case <-ticker.C:
			if s.armed {
				s.armed = false
				s.tick()
			}

		case resp := <-s.channel.Responses():
			s.blit(resp)
			s.armed = true
		}
	}
}

// tick runs one pass of the scheduling state machine. It reports
// whether a request was submitted, in which case the loop stays
// disarmed until the response arrives. Every skip path re-arms.
func (s *Scheduler) tick() bool {
	if s.terminated {
		return false
	}

	if !s.dirty.Load() {
		s.armed = true
		return false
	}

	samples := s.host.Samples()
	if len(samples) == 0 {
		s.dirty.Store(false)
		s.armed = true
		return false
	}

	vp := s.host.Viewport()
	if !vp.Usable() {
		// Dirty stays set; retried once the host has geometry.
		s.armed = true
		return false
	}

	r := MapRange(vp, len(samples))
	if r == s.last {
		s.dirty.Store(false)
		s.armed = true
		return false
	}

	s.dirty.Store(false)
	s.last = r

	w, h := s.surface.Sync()
	slice := BuildSlice(samples, r, s.host.SampleRate(), s.params.WindowSizeSeconds, w)
	if slice.Visible == 0 || w <= 0 || h <= 0 {
		s.armed = true
		return false
	}

	if err := s.channel.Send(s.request(slice, w, h)); err != nil {
		s.log.Error("render: submit failed", "err", err)
		s.terminated = true
		return false
	}
	return true
}

func (s *Scheduler) blit(resp Response) {
	img := s.cache.Ensure(resp.Width, resp.Height)
	s.cache.Write(img, resp.Pix)
	s.surface.Blit(img)
}

func (s *Scheduler) request(sl Slice, w, h int) Request {
	rate := s.host.SampleRate()

	upper := s.params.UpperFreq
	if upper <= 0 {
		upper = float64(rate) / 2
	}

	return Request{
		WindowSizeSeconds: s.params.WindowSizeSeconds,
		FFTN:              sl.FFTSize,
		Alpha:             s.params.Alpha,
		UpperFreq:         upper,
		LowerFreq:         s.params.LowerFreq,
		SamplesPerPixel:   sl.PerPixel,
		Window:            s.params.Window,
		ImgWidth:          w,
		ImgHeight:         h,
		DynRangeDB:        s.params.DynRangeDB,
		PixelRatio:        s.surface.PixelRatio(),
		SampleRate:        rate,
		Transparency:      s.params.Transparency,
		Samples:           sl.Buf,
		Channels:          1,
		DrawHeatMap:       s.params.DrawHeatMap,
		PreEmphasis:       s.params.PreEmphasis,
		HeatMapAnchors:    s.params.HeatMapAnchors,
		Invert:            s.params.Invert,
	}
}
