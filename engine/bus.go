package engine

// Bus is a group of planar audio channels, as hosts pass them. Bit c of
// Silence is set if channel c holds only zeros.
type Bus struct {
	Channels [][]float32
	Silence  uint64
}

func (b *Bus) Silent(c int) bool {
	return b.Silence&(1<<c) != 0
}

// Frames is the length of the shortest channel.
func (b *Bus) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	n := len(b.Channels[0])
	for _, c := range b.Channels[1:] {
		n = min(n, len(c))
	}
	return n
}

// clear zeroes the first frames samples of every channel and marks them all
// silent.
func (b *Bus) clear(frames int) {
	for _, c := range b.Channels {
		clear(c[:frames])
	}
	b.Silence = 1<<len(b.Channels) - 1
}
