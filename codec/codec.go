// Package codec packs request arguments and decodes typed response payloads
// for the Turbo-BrainVoyager / Turbo-Satori wire protocol.
//
// All fields are big-endian (network byte order). Indices and counts travel
// as int32, values as float32 or float64 depending on the query; whole-volume
// voxel data arrives as int16.
package codec

import (
	"encoding/binary"
	"math"
)

// Int32 packs an index or count argument.
func Int32(v int32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(v))
	return buf
}

// Float32 packs a single-precision value argument.
func Float32(v float32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, math.Float32bits(v))
	return buf
}

// Float64 packs a double-precision value argument.
func Float64(v float64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(v))
	return buf
}

// String packs a string the way servers send one: a 4-byte length word
// counting the trailing zero byte, the text, then the zero byte.
func String(s string) []byte {
	buf := make([]byte, 0, 5+len(s))
	buf = append(buf, Int32(int32(len(s)+1))...)
	buf = append(buf, s...)
	return append(buf, 0)
}

// Int32Slice packs a contrast vector or similar int32 list, element by
// element in order.
func Int32Slice(vs []int32) []byte {
	buf := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.BigEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return buf
}

// Float32Slice packs a float32 list, element by element in order.
func Float32Slice(vs []float32) []byte {
	buf := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.BigEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
