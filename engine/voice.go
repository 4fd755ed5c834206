package engine

// Voice plays back a snapshot at a rate. A voice with rate 0 is idle and
// renders silence; it keeps its source so a direct trig can restart it.
type Voice struct {
	source   *Snapshot
	rate     float64
	position float64
}

// Arm starts playing source from the beginning.
func (v *Voice) Arm(source *Snapshot, rate float64) {
	v.source = source
	v.rate = rate
	v.position = 0
}

func (v *Voice) Idle() bool {
	return v.rate == 0 || v.source == nil
}

func (v *Voice) Source() *Snapshot { return v.source }
func (v *Voice) Rate() float64     { return v.rate }
func (v *Voice) Position() float64 { return v.position }

// Advance moves the playback position by n output samples. A voice that runs
// off either end of its source goes idle.
func (v *Voice) Advance(n int) {
	if v.Idle() {
		return
	}
	v.position += v.rate * float64(n)
	if v.position >= float64(v.source.Len()) || v.position < 0 {
		v.rate = 0
		v.position = 0
	}
}

// Fill writes len(dst) samples starting at the current position, scaled by
// gain, without advancing. It reports whether any written sample is non-zero.
func (v *Voice) Fill(dst []float32, gain float32) (sound bool) {
	if v.Idle() {
		clear(dst)
		return false
	}
	p := v.position
	for i := range dst {
		s := v.source.At(p) * gain
		dst[i] = s
		sound = sound || s != 0
		p += v.rate
	}
	return sound
}
