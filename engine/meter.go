package engine

import "github.com/viterin/vek/vek32"

// Meter tracks the absolute peak of the output buses per block.
type Meter struct {
	last float32
	tmp  []float32
}

// Update measures the first frames samples of out and reports whether the
// peak differs from the previous block.
func (m *Meter) Update(out []Bus, frames int) (peak float32, changed bool) {
	if frames > 0 {
		if cap(m.tmp) < frames {
			m.tmp = make([]float32, frames)
		}
		m.tmp = m.tmp[:frames]
		for _, b := range out {
			for c, ch := range b.Channels {
				if b.Silent(c) {
					continue
				}
				vek32.Abs_Into(m.tmp, ch[:frames])
				peak = max(peak, vek32.Max(m.tmp))
			}
		}
	}
	changed = peak != m.last
	m.last = peak
	return peak, changed
}
