package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ErrShortPayload reports a typed payload smaller than its declared layout.
type ErrShortPayload struct {
	Want int
	Got  int
}

func (e *ErrShortPayload) Error() string {
	return fmt.Sprintf("payload too short: want %d bytes, got %d", e.Want, e.Got)
}

// DecodeInt32 reads the single int32 a scalar query returns.
func DecodeInt32(data []byte) (int32, error) {
	if len(data) < 4 {
		return 0, &ErrShortPayload{Want: 4, Got: len(data)}
	}
	return int32(binary.BigEndian.Uint32(data)), nil
}

// DecodeBool reads an int32 flag and maps any non-zero value to true.
func DecodeBool(data []byte) (bool, error) {
	v, err := DecodeInt32(data)
	return v != 0, err
}

// DecodeFloat32 reads the single float32 a scalar query returns.
func DecodeFloat32(data []byte) (float32, error) {
	if len(data) < 4 {
		return 0, &ErrShortPayload{Want: 4, Got: len(data)}
	}
	return math.Float32frombits(binary.BigEndian.Uint32(data)), nil
}

// DecodeFloat64 reads the single float64 a scalar query returns.
func DecodeFloat64(data []byte) (float64, error) {
	if len(data) < 8 {
		return 0, &ErrShortPayload{Want: 8, Got: len(data)}
	}
	return math.Float64frombits(binary.BigEndian.Uint64(data)), nil
}

// DecodeInt32Triple reads three consecutive int32 values, the layout of
// volume dimensions, voxel coordinates, and the plugin version handshake.
func DecodeInt32Triple(data []byte) ([3]int32, error) {
	var triple [3]int32
	if len(data) < 12 {
		return triple, &ErrShortPayload{Want: 12, Got: len(data)}
	}
	for i := range triple {
		triple[i] = int32(binary.BigEndian.Uint32(data[i*4:]))
	}
	return triple, nil
}

// DecodeInt16Slice reads the remainder of the payload as consecutive int16
// values. Trailing bytes that do not fill an element are ignored, matching
// the floor division the layouts are defined with.
func DecodeInt16Slice(data []byte) []int16 {
	out := make([]int16, len(data)/2)
	for i := range out {
		out[i] = int16(binary.BigEndian.Uint16(data[i*2:]))
	}
	return out
}

// DecodeInt32Slice reads the remainder of the payload as consecutive int32
// values.
func DecodeInt32Slice(data []byte) []int32 {
	out := make([]int32, len(data)/4)
	for i := range out {
		out[i] = int32(binary.BigEndian.Uint32(data[i*4:]))
	}
	return out
}

// DecodeFloat32Slice reads the remainder of the payload as consecutive
// float32 values.
func DecodeFloat32Slice(data []byte) []float32 {
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.BigEndian.Uint32(data[i*4:]))
	}
	return out
}

// DecodeFloat64Slice reads the remainder of the payload as consecutive
// float64 values.
func DecodeFloat64Slice(data []byte) []float64 {
	out := make([]float64, len(data)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.BigEndian.Uint64(data[i*8:]))
	}
	return out
}

// DecodeString reads a server string: a 4-byte length word, the text, and a
// trailing zero byte.
func DecodeString(data []byte) (string, error) {
	if len(data) < 5 {
		return "", &ErrShortPayload{Want: 5, Got: len(data)}
	}
	return string(data[4 : len(data)-1]), nil
}

// GroupTriples reshapes a flat coordinate list into [x, y, z] triples.
// Trailing elements of an incomplete triple are dropped.
func GroupTriples(flat []int32) [][3]int32 {
	out := make([][3]int32, len(flat)/3)
	for i := range out {
		copy(out[i][:], flat[i*3:i*3+3])
	}
	return out
}
