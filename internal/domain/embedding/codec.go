package embedding

import (
	"encoding/binary"
	"math"
)

// Pack serializes a vector as little-endian float32 bytes for storage in a
// BLOB column.
func Pack(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// Unpack deserializes a packed vector. Returns nil for malformed input so a
// corrupt column degrades to "no stored embedding" and the vector is
// recomputed on demand.
func Unpack(b []byte) []float32 {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
