package main

import "github.com/pkg/errors"

type config struct {
	// file is an audio file to analyze, decoded through ffmpeg.
	file string
	// device is the PulseAudio source to capture from in live mode.
	device string
	// live captures from a PulseAudio source instead of reading a file.
	live bool
	// sampleRate is the capture and decode rate in Hz.
	sampleRate int
	// frameRate is the frame redraw cap.
	frameRate int
	// windowFunc is the analysis window function name.
	windowFunc string
	// winSize is the analysis window length in seconds.
	winSize float64
	// alpha shapes the blackman and gauss windows.
	alpha float64
	// minFreq and maxFreq bound the displayed band in Hz. A zero
	// maxFreq means half the sample rate.
	minFreq float64
	maxFreq float64
	// dynRange is the displayed dynamic range in dB.
	dynRange float64
	// preEmphasis is the pre-emphasis factor, negative to disable.
	preEmphasis float64
	// heatMap colors frames with a heat map instead of grayscale.
	heatMap bool
	// invert flips the intensity scale.
	invert bool
	// follow keeps the viewport on the newest samples.
	follow bool
}

// newZeroConfig returns a config with the default values.
func newZeroConfig() config {
	return config{
		sampleRate:  44100,
		frameRate:   60,
		windowFunc:  "hann",
		winSize:     0.005,
		alpha:       0.16,
		dynRange:    70,
		preEmphasis: 0.97,
	}
}

// Sanitize checks the config for invalid values after flag parsing.
func (cfg *config) Sanitize() error {
	if cfg.live && cfg.file != "" {
		return errors.New("cannot read a file and capture live at once")
	}
	if cfg.sampleRate < 512 {
		return errors.New("sample rate lower than 512")
	}
	if cfg.frameRate < 1 {
		return errors.New("frame rate lower than 1")
	}
	if cfg.winSize <= 0 {
		return errors.New("window size not positive")
	}
	if cfg.minFreq < 0 {
		return errors.New("negative min frequency")
	}
	if cfg.maxFreq != 0 && cfg.maxFreq <= cfg.minFreq {
		return errors.New("max frequency not above min frequency")
	}
	if cfg.dynRange <= 0 {
		return errors.New("dynamic range not positive")
	}
	return nil
}
