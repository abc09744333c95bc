package source

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestParseFloats64(t *testing.T) {
	raw := make([]byte, 16)
	binary.LittleEndian.PutUint64(raw[0:], math.Float64bits(1.5))
	binary.LittleEndian.PutUint64(raw[8:], math.Float64bits(-0.25))

	got := parseFloats(raw, false)
	if len(got) != 2 || got[0] != 1.5 || got[1] != -0.25 {
		t.Errorf("parseFloats = %v, want [1.5 -0.25]", got)
	}
}

func TestParseFloats32(t *testing.T) {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint32(raw[0:], math.Float32bits(0.5))
	binary.LittleEndian.PutUint32(raw[4:], math.Float32bits(-1))

	got := parseFloats(raw, true)
	if len(got) != 2 || got[0] != 0.5 || got[1] != -1 {
		t.Errorf("parseFloats = %v, want [0.5 -1]", got)
	}
}

func TestChirp(t *testing.T) {
	a := Chirp(8000, 8000)
	b := Chirp(8000, 8000)

	if len(a) != 8000 {
		t.Fatalf("len = %d, want 8000", len(a))
	}
	if a[0] != 0 {
		t.Errorf("first sample = %v, want 0", a[0])
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatal("chirp is not deterministic")
		}
		if math.Abs(a[i]) > 0.8 {
			t.Fatalf("sample %d = %v exceeds amplitude", i, a[i])
		}
	}
}

func TestChirpDegenerate(t *testing.T) {
	if got := Chirp(0, 8000); len(got) != 0 {
		t.Errorf("n=0 produced %d samples", len(got))
	}
	if got := Chirp(10, 0); len(got) != 10 {
		t.Errorf("rate=0 length = %d, want 10 zeros", len(got))
	}
}
