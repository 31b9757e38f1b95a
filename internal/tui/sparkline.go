package tui

import (
	gomath "math"
	"strings"

	"debug-overlay/math"
)

var sparkChars = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws samples as block characters scaled to [lo, hi].
// Samples outside the range are pinned to the lowest or highest block.
// Series longer than width are resampled; shorter ones are padded with
// spaces so every line of a graph box has the same width.
func Sparkline(samples []float64, lo, hi float64, width int) string {
	if width < 1 {
		width = 1
	}
	if len(samples) == 0 {
		return strings.Repeat(" ", width)
	}
	sampled := samples
	if len(samples) > width {
		sampled = make([]float64, 0, width)
		step := float64(len(samples)-1) / float64(max(width-1, 1))
		for i := 0; i < width; i++ {
			idx := int(gomath.Round(float64(i) * step))
			idx = min(max(idx, 0), len(samples)-1)
			sampled = append(sampled, samples[idx])
		}
	}

	top := float64(len(sparkChars) - 1)
	var b strings.Builder
	b.Grow(width * 3)
	for _, v := range sampled {
		pos := math.Clamp(gomath.Round(math.Remap(v, lo, hi, 0, top)), 0, top)
		b.WriteRune(sparkChars[int(pos)])
	}
	for i := len(sampled); i < width; i++ {
		b.WriteByte(' ')
	}
	return b.String()
}
