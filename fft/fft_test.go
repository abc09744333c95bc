package fft

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestPlanSizes(t *testing.T) {
	p := NewPlan(512)

	if p.Size() != 512 {
		t.Errorf("Size() = %d, want 512", p.Size())
	}
	if len(p.Input) != 512 {
		t.Errorf("len(Input) = %d, want 512", len(p.Input))
	}
	if len(p.Output) != 257 {
		t.Errorf("len(Output) = %d, want 257", len(p.Output))
	}
}

func TestExecuteDC(t *testing.T) {
	const n = 8
	p := NewPlan(n)
	for i := range p.Input {
		p.Input[i] = 1.0
	}

	p.Execute()

	if got := real(p.Output[0]); math.Abs(got-n) > 1e-9 {
		t.Errorf("bin 0 = %v, want %v", got, float64(n))
	}
	for k := 1; k < len(p.Output); k++ {
		if mag := cmplx.Abs(p.Output[k]); mag > 1e-9 {
			t.Errorf("bin %d magnitude = %v, want 0", k, mag)
		}
	}
}

func TestExecuteTone(t *testing.T) {
	const n = 16
	const bin = 2

	p := NewPlan(n)
	for i := range p.Input {
		p.Input[i] = math.Cos(2.0 * math.Pi * bin * float64(i) / n)
	}

	p.Execute()

	for k := range p.Output {
		mag := cmplx.Abs(p.Output[k])
		if k == bin {
			if math.Abs(mag-n/2) > 1e-9 {
				t.Errorf("bin %d magnitude = %v, want %v", k, mag, float64(n)/2)
			}
			continue
		}
		if mag > 1e-9 {
			t.Errorf("bin %d magnitude = %v, want 0", k, mag)
		}
	}
}

func TestPlanReuse(t *testing.T) {
	p := NewPlan(8)

	for i := range p.Input {
		p.Input[i] = 1.0
	}
	p.Execute()
	first := real(p.Output[0])

	for i := range p.Input {
		p.Input[i] = 2.0
	}
	p.Execute()
	second := real(p.Output[0])

	if math.Abs(second-2*first) > 1e-9 {
		t.Errorf("reused plan: bin 0 went %v -> %v, want doubling", first, second)
	}
}

func BenchmarkExecute(b *testing.B) {
	p := NewPlan(2048)

	c := 3.1
	for i := range p.Input {
		c += 0.3
		p.Input[i] = 2*c - c*c
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		p.Execute()
	}
}
