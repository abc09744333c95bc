// Package spectral implements the background computation unit: windowed
// FFT analysis of a padded sample slice, mapped into a colored RGBA
// frame.
package spectral

import (
	"math"
	"math/cmplx"

	"github.com/velkyn/sgram/fft"
	"github.com/velkyn/sgram/render"
	"github.com/velkyn/sgram/window"
)

// Unit renders spectrogram frames. It keeps its FFT plan, window
// coefficients, and row lookup as scratch state between requests, which
// is safe because the channel serializes all rendering onto one
// goroutine.
type Unit struct {
	plan   *fft.Plan
	coeffs []float64
	ckey   coeffsKey
	bins   []int
}

type coeffsKey struct {
	win   window.Type
	n     int
	alpha float64
}

// NewUnit returns a Unit with empty scratch state.
func NewUnit() *Unit {
	return &Unit{}
}

// Render computes one frame. The request's sample buffer is consumed.
//
// Each output column is an FFT frame starting at floor(column *
// SamplesPerPixel) in the padded buffer, zero filled past its end. Rows
// map linearly from UpperFreq at the top to LowerFreq at the bottom,
// and bin magnitudes land on a dB scale clamped to [-DynRangeDB, 0].
func (u *Unit) Render(req render.Request) render.Response {
	w, h := req.ImgWidth, req.ImgHeight
	if w <= 0 || h <= 0 {
		return render.Response{Width: w, Height: h}
	}

	resp := render.Response{
		Pix:    make([]byte, w*h*4),
		Width:  w,
		Height: h,
	}

	var samples []float64
	if req.Samples != nil {
		samples = req.Samples.Take()
	}
	if len(samples) == 0 || req.FFTN <= 0 || req.SampleRate <= 0 {
		return resp
	}

	if f := req.PreEmphasis; f > 0 {
		for i := len(samples) - 1; i > 0; i-- {
			samples[i] -= f * samples[i-1]
		}
	}

	u.ensure(req)
	u.mapRows(req, h)

	var gain float64
	for _, c := range u.coeffs {
		gain += c
	}
	if gain <= 0 {
		gain = float64(req.FFTN)
	}
	scale := 2.0 / gain

	dynRange := req.DynRangeDB
	if dynRange <= 0 {
		dynRange = 70
	}

	opacity := 255 - req.Transparency

	for x := 0; x < w; x++ {
		start := int(float64(x) * req.SamplesPerPixel)
		if start < 0 {
			start = 0
		}

		frame := u.plan.Input
		n := 0
		if start < len(samples) {
			n = copy(frame, samples[start:])
		}
		for i := n; i < len(frame); i++ {
			frame[i] = 0
		}

		window.Apply(frame, u.coeffs)
		u.plan.Execute()

		for y := 0; y < h; y++ {
			mag := cmplx.Abs(u.plan.Output[u.bins[y]])
			db := 20 * math.Log10(mag*scale)
			if db < -dynRange {
				db = -dynRange
			}
			if db > 0 {
				db = 0
			}

			v := 1 + db/dynRange
			if req.Invert {
				v = 1 - v
			}

			o := (y*w + x) * 4
			if req.DrawHeatMap {
				r, g, b := heatColor(req.HeatMapAnchors, v)
				resp.Pix[o] = r
				resp.Pix[o+1] = g
				resp.Pix[o+2] = b
			} else {
				g := uint8(v*255 + 0.5)
				resp.Pix[o] = g
				resp.Pix[o+1] = g
				resp.Pix[o+2] = g
			}
			resp.Pix[o+3] = opacity
		}
	}

	return resp
}

// ensure rebuilds the FFT plan and window coefficients only when the
// request geometry changed, mirroring the frame cache reuse rule.
func (u *Unit) ensure(req render.Request) {
	if u.plan == nil || u.plan.Size() != req.FFTN {
		u.plan = fft.NewPlan(req.FFTN)
	}

	key := coeffsKey{win: req.Window, n: req.FFTN, alpha: req.Alpha}
	if u.coeffs == nil || u.ckey != key {
		u.coeffs = window.Coefficients(req.Window, req.FFTN, req.Alpha)
		u.ckey = key
	}
}

// mapRows fills the row-to-bin lookup. Row 0 is the top of the image.
func (u *Unit) mapRows(req render.Request, h int) {
	if cap(u.bins) < h {
		u.bins = make([]int, h)
	}
	u.bins = u.bins[:h]

	nyquist := float64(req.SampleRate) / 2
	numBins := req.FFTN/2 + 1

	upper := req.UpperFreq
	if upper <= 0 || upper > nyquist {
		upper = nyquist
	}
	lower := req.LowerFreq
	if lower < 0 {
		lower = 0
	}

	denom := float64(h - 1)
	if denom <= 0 {
		denom = 1
	}

	for y := 0; y < h; y++ {
		freq := upper - (upper-lower)*float64(y)/denom
		bin := int(freq/nyquist*float64(numBins-1) + 0.5)
		if bin < 0 {
			bin = 0
		}
		if bin >= numBins {
			bin = numBins - 1
		}
		u.bins[y] = bin
	}
}

// heatColor maps intensity in [0,1] through the three anchor gradient.
func heatColor(anchors [3][3]uint8, v float64) (uint8, uint8, uint8) {
	if v <= 0 {
		return anchors[0][0], anchors[0][1], anchors[0][2]
	}
	if v >= 1 {
		return anchors[2][0], anchors[2][1], anchors[2][2]
	}

	t := v * 2
	seg := 0
	if t >= 1 {
		seg = 1
		t -= 1
	}

	lo, hi := anchors[seg], anchors[seg+1]
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return lerp(lo[0], hi[0]), lerp(lo[1], hi[1]), lerp(lo[2], hi[2])
}
