package player

import (
	"math"
	"sync"

	"github.com/gopxl/beep/v2"
)

// Spectrum analysis parameters, matching a browser AnalyserNode with
// fftSize 128.
const (
	FFTSize = 128
	Bins    = FFTSize / 2

	minDecibels = -100.0
	maxDecibels = -30.0
)

var (
	hann     [FFTSize]float64
	cosTable [Bins][FFTSize]float64
	sinTable [Bins][FFTSize]float64
)

func init() {
	for n := range FFTSize {
		hann[n] = 0.5 * (1 - math.Cos(2*math.Pi*float64(n)/FFTSize))
	}
	for k := range Bins {
		for n := range FFTSize {
			a := 2 * math.Pi * float64(k) * float64(n) / FFTSize
			cosTable[k][n] = math.Cos(a)
			sinTable[k][n] = math.Sin(a)
		}
	}
}

// tap records the last FFTSize mono samples passing through a streamer.
type tap struct {
	mu   sync.Mutex
	ring [FFTSize]float64
	pos  int
}

func newTap() *tap {
	return &tap{}
}

func (t *tap) wrap(s beep.Streamer) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		t.record(samples[:n])
		return n, ok
	})
}

func (t *tap) record(samples [][2]float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(samples) > FFTSize {
		samples = samples[len(samples)-FFTSize:]
	}
	for _, s := range samples {
		t.ring[t.pos] = (s[0] + s[1]) / 2
		t.pos = (t.pos + 1) % FFTSize
	}
}

func (t *tap) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.ring[:])
	t.pos = 0
}

func (t *tap) frequencyData(dst []uint8) {
	var window [FFTSize]float64
	t.mu.Lock()
	for i := range FFTSize {
		window[i] = t.ring[(t.pos+i)%FFTSize]
	}
	t.mu.Unlock()
	spectrum(window[:], dst)
}

// spectrum writes byte magnitudes of window's first len(dst) frequency bins
// into dst, scaled linearly from minDecibels to maxDecibels.
func spectrum(window []float64, dst []uint8) {
	for k := range min(len(dst), Bins) {
		var re, im float64
		for n, x := range window[:FFTSize] {
			x *= hann[n]
			re += x * cosTable[k][n]
			im -= x * sinTable[k][n]
		}
		mag := math.Hypot(re, im) / FFTSize
		dst[k] = toByte(20 * math.Log10(mag))
	}
	for k := Bins; k < len(dst); k++ {
		dst[k] = 0
	}
}

func toByte(db float64) uint8 {
	if math.IsInf(db, -1) || db <= minDecibels {
		return 0
	}
	if db >= maxDecibels {
		return 255
	}
	return uint8(255 * (db - minDecibels) / (maxDecibels - minDecibels))
}
