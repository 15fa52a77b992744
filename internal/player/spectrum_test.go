package player

import (
	"math"
	"testing"

	"github.com/gopxl/beep/v2"
)

func TestSpectrum_SilenceIsZero(t *testing.T) {
	dst := make([]uint8, Bins)
	spectrum(make([]float64, FFTSize), dst)
	for k, v := range dst {
		if v != 0 {
			t.Fatalf("bin %d = %d, want 0", k, v)
		}
	}
}

func TestSpectrum_SinePeaksAtItsBin(t *testing.T) {
	const bin = 8
	window := make([]float64, FFTSize)
	for n := range window {
		window[n] = 0.01 * math.Sin(2*math.Pi*bin*float64(n)/FFTSize)
	}
	dst := make([]uint8, Bins)
	spectrum(window, dst)

	peak := 0
	for k := range dst {
		if dst[k] > dst[peak] {
			peak = k
		}
	}
	if peak != bin {
		t.Errorf("peak bin = %d, want %d", peak, bin)
	}
	if dst[bin] == 255 {
		t.Error("peak should not saturate at this amplitude")
	}
	if dst[bin+3] != 0 {
		t.Errorf("bin %d = %d, want 0", bin+3, dst[bin+3])
	}
}

func TestSpectrum_ExtraBinsCleared(t *testing.T) {
	dst := make([]uint8, Bins+4)
	for i := range dst {
		dst[i] = 9
	}
	spectrum(make([]float64, FFTSize), dst)
	for _, v := range dst[Bins:] {
		if v != 0 {
			t.Fatalf("extra bin = %d, want 0", v)
		}
	}
}

func TestTap_KeepsMostRecentSamples(t *testing.T) {
	tp := newTap()
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 0}
		}
		return len(samples), true
	})
	s := tp.wrap(src)
	s.Stream(make([][2]float64, FFTSize*3))

	for i, v := range tp.ring {
		if v != 0.5 {
			t.Fatalf("ring[%d] = %v, want 0.5", i, v)
		}
	}

	tp.reset()
	dst := make([]uint8, Bins)
	tp.frequencyData(dst)
	if dst[0] != 0 {
		t.Errorf("after reset bin 0 = %d, want 0", dst[0])
	}
}

func TestToByte(t *testing.T) {
	tests := []struct {
		db   float64
		want uint8
	}{
		{math.Inf(-1), 0},
		{-120, 0},
		{-100, 0},
		{-65, 127},
		{-30, 255},
		{0, 255},
	}
	for _, tt := range tests {
		if got := toByte(tt.db); got != tt.want {
			t.Errorf("toByte(%v) = %d, want %d", tt.db, got, tt.want)
		}
	}
}
