// Package window provides the analysis window functions used to shape
// spectrogram frames.
//
// See https://wikipedia.org/wiki/Window_function
package window

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknown is returned by FromName for names outside the known set.
var ErrUnknown = errors.New("window: unknown function name")

// Type selects a window function. The zero value is invalid.
type Type int

// Window types, in wire order.
const (
	Bartlett Type = iota + 1
	BartlettHann
	Blackman
	Cosine
	Gauss
	Hamming
	Hann
	Lanczos
	Rectangular
	Triangular
)

var typeNames = [...]string{
	"bartlett",
	"bartletthann",
	"blackman",
	"cosine",
	"gauss",
	"hamming",
	"hann",
	"lanczos",
	"rectangular",
	"triangular",
}

var namedTypes = func() map[string]Type {
	var m = make(map[string]Type, len(typeNames))
	for i, name := range typeNames {
		m[name] = Type(i + 1)
	}
	return m
}()

// FromName maps a window function name to its Type. Matching is
// case-insensitive. Unknown names are a configuration error.
func FromName(name string) (Type, error) {
	if t, ok := namedTypes[strings.ToLower(name)]; ok {
		return t, nil
	}
	return 0, errors.Wrap(ErrUnknown, name)
}

// String returns the canonical lowercase name of t.
func (t Type) String() string {
	if t < Bartlett || t > Triangular {
		return "invalid"
	}
	return typeNames[t-1]
}

// Coefficients returns an n point window of type t. The alpha parameter
// shapes the Blackman and Gauss windows and is ignored by the rest.
// Types outside the known set yield a rectangular window.
func Coefficients(t Type, n int, alpha float64) []float64 {
	var coeffs = make([]float64, n)
	if n == 0 {
		return coeffs
	}
	if n == 1 {
		coeffs[0] = 1.0
		return coeffs
	}

	var m = float64(n - 1)

	switch t {
	case Bartlett:
		for i := range coeffs {
			coeffs[i] = 1.0 - math.Abs(2.0*float64(i)/m-1.0)
		}

	case BartlettHann:
		for i := range coeffs {
			var x = float64(i) / m
			coeffs[i] = 0.62 - 0.48*math.Abs(x-0.5) - 0.38*math.Cos(2.0*math.Pi*x)
		}

	case Blackman:
		var a0 = (1.0 - alpha) / 2.0
		var a2 = alpha / 2.0
		for i := range coeffs {
			var x = float64(i) / m
			coeffs[i] = a0 - 0.5*math.Cos(2.0*math.Pi*x) + a2*math.Cos(4.0*math.Pi*x)
		}

	case Cosine:
		for i := range coeffs {
			coeffs[i] = math.Sin(math.Pi * float64(i) / m)
		}

	case Gauss:
		var half = m / 2.0
		for i := range coeffs {
			var x = (float64(i) - half) / (alpha * half)
			coeffs[i] = math.Exp(-0.5 * x * x)
		}

	case Hamming:
		for i := range coeffs {
			coeffs[i] = 0.54 - 0.46*math.Cos(2.0*math.Pi*float64(i)/m)
		}

	case Hann:
		for i := range coeffs {
			coeffs[i] = 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/m))
		}

	case Lanczos:
		for i := range coeffs {
			coeffs[i] = sinc(2.0*float64(i)/m - 1.0)
		}

	case Triangular:
		var half = float64(n) / 2.0
		for i := range coeffs {
			coeffs[i] = (half - math.Abs(float64(i)-m/2.0)) / half
		}

	default:
		for i := range coeffs {
			coeffs[i] = 1.0
		}
	}

	return coeffs
}

// Apply multiplies buf by coeffs in place. A buffer longer than coeffs
// keeps its tail unchanged.
func Apply(buf, coeffs []float64) {
	var n = len(buf)
	if len(coeffs) < n {
		n = len(coeffs)
	}
	for i := 0; i < n; i++ {
		buf[i] *= coeffs[i]
	}
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1.0
	}
	var px = math.Pi * x
	return math.Sin(px) / px
}
