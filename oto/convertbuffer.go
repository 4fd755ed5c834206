package oto

import (
	"encoding/binary"
	"math"

	"github.com/vtrack/vtrack"
)

// FloatBufferToLE appends the interleaved frames of buf to dst as float32
// little-endian bytes and returns the result.
func FloatBufferToLE(buf vtrack.AudioBuffer, dst []byte) []byte {
	for _, frame := range buf {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(frame[0]))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(frame[1]))
	}
	return dst
}
