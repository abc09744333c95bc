// Package source acquires mono float64 samples for the demo host, from
// decoded files, live capture, or a synthesized test sweep.
package source

import (
	"encoding/binary"
	"math"
)

type floatReader struct {
	order binary.ByteOrder
	buf   []byte
	f64   bool
}

func (f *floatReader) next() float64 {
	if f.f64 {
		b := f.buf[:8]
		f.buf = f.buf[8:]
		return math.Float64frombits(f.order.Uint64(b))
	}

	b := f.buf[:4]
	f.buf = f.buf[4:]
	return float64(math.Float32frombits(f.order.Uint32(b)))
}

func parseFloats(raw []byte, f32 bool) []float64 {
	width := 8
	if f32 {
		width = 4
	}

	out := make([]float64, len(raw)/width)
	r := floatReader{order: binary.LittleEndian, buf: raw, f64: !f32}
	for i := range out {
		out[i] = r.next()
	}
	return out
}
