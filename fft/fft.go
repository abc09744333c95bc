// Package fft provides a reusable real-to-complex fourier transform plan.
package fft

import "gonum.org/v1/gonum/dsp/fourier"

// Plan holds the input and output buffers of a real FFT and a transformer
// sized for them. Plans are reused across frames and are not safe for
// concurrent Execute calls.
type Plan struct {
	Input  []float64
	Output []complex128
	fft    *fourier.FFT
}

// NewPlan returns a Plan for n point transforms. Output holds the n/2+1
// non-redundant coefficients.
func NewPlan(n int) *Plan {
	return &Plan{
		Input:  make([]float64, n),
		Output: make([]complex128, n/2+1),
		fft:    fourier.NewFFT(n),
	}
}

// Size returns the transform length.
func (p *Plan) Size() int {
	return len(p.Input)
}

// Execute transforms Input into Output.
func (p *Plan) Execute() {
	if p.fft == nil {
		p.fft = fourier.NewFFT(len(p.Input))
	}
	p.fft.Coefficients(p.Output, p.Input)
}
