package player

import (
	"math"

	"github.com/gopxl/beep/v2/effects"
)

func clampLevel(level float64) float64 {
	switch {
	case math.IsNaN(level), level < 0:
		return 0
	case level > 1:
		return 1
	default:
		return level
	}
}

// applyLevel sets v from a 0.0-1.0 level. Callers hold the speaker lock
// when v is playing.
func applyLevel(v *effects.Volume, level float64) {
	v.Silent = level <= 0
	v.Volume = levelToVolume(level)
}

// levelToVolume converts a 0.0-1.0 level to beep's Volume value.
// beep uses a logarithmic scale with base 2: 0 leaves the signal unchanged,
// -1 halves it. We map 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
