// Package glsdf3 generates GLSL source for the heart field so browser and GPU
// consumers can shade or test against the same surface the sampler uses.
// Every shader has a float32 CPU evaluator that mirrors its GLSL.
package glsdf3

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/heart/glsdf3/glbuild"
)

// SDF3 evaluates a field over many positions at once on the CPU.
type SDF3 interface {
	glbuild.Shader3D
	// Evaluate evaluates the field over pos positions.
	// dist and pos must be of same length. Resulting values are stored in dist.
	Evaluate(pos []ms3.Vec, dist []float32, userData any) error
}

// heart bounds half-size at unit scale.
const heartBound = 1.5

type heart struct {
	scale float32
}

// NewHeart returns the Y-up heart field scaled uniformly by scale.
func NewHeart(scale float32) (SDF3, error) {
	if !(scale > 0) || math32.IsInf(scale, 0) {
		return nil, errors.New("heart scale must be positive and finite")
	}
	return &heart{scale: scale}, nil
}

func (h *heart) AppendShaderName(b []byte) []byte {
	b = append(b, "heart"...)
	b = glbuild.AppendFloat(b, h.scale, 'n', 'p')
	return b
}

func (h *heart) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendFloatDecl(b, "s", h.scale)
	// Field is written Z-up, swap to Y-up.
	b = append(b, `vec3 q=p/s;
float x2=q.x*q.x;
float y2=q.z*q.z;
float z2=q.y*q.y;
float z3=z2*q.y;
float t=x2+2.25*y2+z2-1.0;
return t*t*t-x2*z3-0.045*y2*z3;`...)
	return b
}

func (h *heart) Bounds() ms3.Box {
	r := heartBound * h.scale
	return ms3.Box{
		Min: ms3.Vec{X: -r, Y: -r, Z: -r},
		Max: ms3.Vec{X: r, Y: r, Z: r},
	}
}

func (h *heart) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return errors.New("position and distance buffer length mismatch")
	}
	inv := 1 / h.scale
	for i, p := range pos {
		q := ms3.Scale(inv, p)
		x2 := q.X * q.X
		y2 := q.Z * q.Z
		z2 := q.Y * q.Y
		z3 := z2 * q.Y
		t := x2 + 2.25*y2 + z2 - 1
		dist[i] = t*t*t - x2*z3 - 0.045*y2*z3
	}
	return nil
}
