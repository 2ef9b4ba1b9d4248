package render

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r3"
)

// pointSize is the encoded size of a point: three little endian float32.
const pointSize = 12

// AppendPoints appends the little endian float32 encoding of pts to b.
func AppendPoints(b []byte, pts []ms3.Vec) []byte {
	for _, v := range pts {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.X))
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.Y))
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.Z))
	}
	return b
}

// DecodePoints decodes points encoded by AppendPoints and appends them to dst.
// Trailing bytes that do not form a whole point are ignored.
func DecodePoints(dst []ms3.Vec, b []byte) []ms3.Vec {
	for len(b) >= pointSize {
		dst = append(dst, get3F32(b))
		b = b[pointSize:]
	}
	return dst
}

func put3F32(b []byte, v r3.Vec) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}

func get3F32(b []byte) ms3.Vec {
	_ = b[11] // early bounds check
	return ms3.Vec{
		X: math.Float32frombits(binary.LittleEndian.Uint32(b)),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}

func bad3F32(v ms3.Vec) bool {
	return math32.IsNaN(v.X) || math32.IsInf(v.X, 0) ||
		math32.IsNaN(v.Y) || math32.IsInf(v.Y, 0) ||
		math32.IsNaN(v.Z) || math32.IsInf(v.Z, 0)
}

func r3FromF32(v ms3.Vec) r3.Vec {
	return r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}
