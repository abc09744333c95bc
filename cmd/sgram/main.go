package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/integrii/flaggy"

	"github.com/velkyn/sgram"
	"github.com/velkyn/sgram/display"
	"github.com/velkyn/sgram/host"
	"github.com/velkyn/sgram/source"
)

// AppName is the app name echoed in usage text.
const AppName = "sgram"

// Version is the version string, overridden at build time.
var Version = "devel"

func main() {
	log.SetFlags(0)

	cfg := newZeroConfig()
	doFlags(&cfg)

	chk(cfg.Sanitize(), "invalid config")
	chk(run(cfg), "failed to run")
}

func doFlags(cfg *config) {
	parser := flaggy.NewParser(AppName)
	parser.Description = "terminal spectrogram with live scroll and zoom"
	parser.AdditionalHelpPrepend = "https://github.com/velkyn/sgram"
	parser.Version = Version

	listDevicesCmd := flaggy.Subcommand{
		Name:        "list-devices",
		ShortName:   "ld",
		Description: "list PulseAudio capture sources",
	}
	parser.AttachSubcommand(&listDevicesCmd, 1)

	parser.String(&cfg.file, "f", "file", "audio file to analyze, decoded with ffmpeg")
	parser.String(&cfg.device, "d", "device", "PulseAudio source to capture from")
	parser.Bool(&cfg.live, "l", "live", "capture live audio instead of reading a file")
	parser.Int(&cfg.sampleRate, "r", "rate", "sample rate in Hz")
	parser.Int(&cfg.frameRate, "", "fps", "frame redraw cap")
	parser.String(&cfg.windowFunc, "w", "window", "analysis window function")
	parser.Float64(&cfg.winSize, "", "win-size", "analysis window length in seconds")
	parser.Float64(&cfg.alpha, "", "alpha", "blackman and gauss window shape")
	parser.Float64(&cfg.minFreq, "", "min-freq", "lowest displayed frequency in Hz")
	parser.Float64(&cfg.maxFreq, "", "max-freq", "highest displayed frequency in Hz, 0 for half the rate")
	parser.Float64(&cfg.dynRange, "", "dyn-range", "displayed dynamic range in dB")
	parser.Float64(&cfg.preEmphasis, "", "pre-emphasis", "pre-emphasis factor, negative to disable")
	parser.Bool(&cfg.heatMap, "", "heatmap", "color frames with a heat map instead of grayscale")
	parser.Bool(&cfg.invert, "", "invert", "flip the intensity scale")
	parser.Bool(&cfg.follow, "", "follow", "keep the viewport on the newest samples")

	chk(parser.Parse(), "failed to parse arguments")

	switch {
	case listDevicesCmd.Used:
		names, err := source.ListSources()
		chk(err, "failed to list sources")

		for _, name := range names {
			fmt.Println(name)
		}
		os.Exit(0)
	}
}

func run(cfg config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	term, err := display.NewTerm()
	if err != nil {
		return err
	}
	defer term.Close()

	h := host.NewMemory(cfg.sampleRate)

	plugin, err := sgram.New(sgram.Options{
		WindowFunc:        cfg.windowFunc,
		WindowSizeSeconds: cfg.winSize,
		Alpha:             cfg.alpha,
		LowerFreq:         cfg.minFreq,
		UpperFreq:         cfg.maxFreq,
		DynRangeDB:        cfg.dynRange,
		PreEmphasis:       cfg.preEmphasis,
		DrawHeatMap:       cfg.heatMap,
		Invert:            cfg.invert,
		FrameRate:         cfg.frameRate,
	})
	if err != nil {
		return err
	}

	if err := plugin.Attach(h, term); err != nil {
		return err
	}
	defer plugin.Detach()

	// The viewport opens one second wide at the left edge.
	h.SetVisibleWidth(float64(cfg.sampleRate))
	h.SetFollow(cfg.follow)

	var streamErr chan error

	switch {
	case cfg.file != "":
		samples, err := source.File(ctx, cfg.file, cfg.sampleRate)
		if err != nil {
			return err
		}
		h.SetSamples(samples)

	case cfg.live:
		streamErr = make(chan error, 1)
		go func() {
			streamErr <- source.Stream(ctx, cfg.device, cfg.sampleRate, cfg.sampleRate/10, h.Append)
		}()

	default:
		// No input given; show a synthetic sweep instead.
		h.SetSamples(source.Chirp(5*cfg.sampleRate, cfg.sampleRate))
	}

	cols, _ := term.Sync()

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-streamErr:
			if err != nil {
				return err
			}
			streamErr = nil

		case ev, ok := <-term.Events():
			if !ok {
				return nil
			}

			vp := h.Viewport()
			switch ev.Kind {
			case display.EventQuit:
				return nil

			case display.EventResize:
				// Keep samples per column constant so zoom survives
				// the resize.
				if w, _ := term.Sync(); w > 0 && cols > 0 {
					h.SetVisibleWidth(vp.VisibleWidth * float64(w) / float64(cols))
					cols = w
				}

			case display.EventScrollLeft:
				h.SetFollow(false)
				h.ScrollBy(-vp.VisibleWidth / 4)
			case display.EventScrollRight:
				h.SetFollow(false)
				h.ScrollBy(vp.VisibleWidth / 4)

			case display.EventZoomIn:
				h.ZoomBy(0.8)
			case display.EventZoomOut:
				h.ZoomBy(1.25)

			case display.EventHome:
				h.SetFollow(false)
				h.ScrollTo(0)
			case display.EventEnd:
				h.ScrollTo(vp.ScrollExtent)

			case display.EventFollow:
				h.SetFollow(!h.Follow())
			}
		}
	}
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
