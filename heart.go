package heart

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Field3 is the interface to a 3d implicit scalar field. The surface
// of interest is the zero set of Evaluate.
type Field3 interface {
	// Evaluate returns the value of the field at p. Points where the
	// value is zero lie on the surface.
	Evaluate(p r3.Vec) float64
	// Bounds returns a box that completely contains the zero set.
	Bounds() r3.Box
}

// heartBound is the half-size of the box enclosing the heart zero set.
// The lobes reach |y|≈1.16 and |x|≈1.14, the depth axis only ≈0.66.
const heartBound = 1.5

// EvaluateHeart evaluates the heart field at a point given in Y-up coordinates,
// where Y is vertical and X, Z are horizontal.
//
// The closed-form heart expression is written with Z as its vertical axis and
// Y as depth. The swap happens here and only here:
//
//	x_field = x, y_field = z, z_field = y
//
// and the result is
//
//	(x² + 9/4·y_f² + z_f² - 1)³ - x²·z_f³ - 9/200·y_f²·z_f³
func EvaluateHeart(x, y, z float64) float64 {
	yf := z
	zf := y
	x2 := x * x
	y2 := yf * yf
	z2 := zf * zf
	z3 := zf * z2
	term1 := x2 + (9./4.)*y2 + z2 - 1
	return term1*term1*term1 - x2*z3 - (9./200.)*y2*z3
}

type heart3 struct{}

// Heart returns the heart shaped implicit field in Y-up coordinates.
// See EvaluateHeart for the exact expression.
func Heart() Field3 { return heart3{} }

// Evaluate returns the heart field value at p.
func (heart3) Evaluate(p r3.Vec) float64 {
	return EvaluateHeart(p.X, p.Y, p.Z)
}

// Bounds returns the bounding box of the heart surface.
func (heart3) Bounds() r3.Box {
	return r3.Box{
		Min: r3.Vec{X: -heartBound, Y: -heartBound, Z: -heartBound},
		Max: r3.Vec{X: heartBound, Y: heartBound, Z: heartBound},
	}
}

// FieldFunc adapts an ordinary function to the Field3 interface.
// Box is returned by Bounds.
type FieldFunc struct {
	Func func(p r3.Vec) float64
	Box  r3.Box
}

// Evaluate calls f.Func(p).
func (f FieldFunc) Evaluate(p r3.Vec) float64 { return f.Func(p) }

// Bounds returns f.Box.
func (f FieldFunc) Bounds() r3.Box { return f.Box }
