package heart

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestEvaluateHeartOrigin(t *testing.T) {
	got := EvaluateHeart(0, 0, 0)
	if got != -1 {
		t.Errorf("evaluate at origin: got %g, want -1", got)
	}
	if got := Heart().Evaluate(r3.Vec{}); got != -1 {
		t.Errorf("Heart().Evaluate at origin: got %g, want -1", got)
	}
}

func TestEvaluateHeartAxisRemap(t *testing.T) {
	// Reference expression written with Z vertical, as the formula is usually given.
	zUp := func(x, y, z float64) float64 {
		t1 := x*x + 9./4.*y*y + z*z - 1
		return t1*t1*t1 - x*x*z*z*z - 9./200.*y*y*z*z*z
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x := 3 * (rng.Float64() - 0.5)
		y := 3 * (rng.Float64() - 0.5)
		z := 3 * (rng.Float64() - 0.5)
		// Our Y (vertical) is the formula's Z, our Z (depth) the formula's Y.
		got := EvaluateHeart(x, y, z)
		want := zUp(x, z, y)
		if math.Abs(got-want) > 1e-12*math.Max(1, math.Abs(want)) {
			t.Fatalf("remap mismatch at (%g,%g,%g): got %g, want %g", x, y, z, got, want)
		}
	}
}

func TestEvaluateHeartSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		x := 4 * (rng.Float64() - 0.5)
		y := 4 * (rng.Float64() - 0.5)
		z := 4 * (rng.Float64() - 0.5)
		v := EvaluateHeart(x, y, z)
		if mx := EvaluateHeart(-x, y, z); mx != v {
			t.Fatalf("field not even in x at (%g,%g,%g): %g != %g", x, y, z, v, mx)
		}
		if mz := EvaluateHeart(x, y, -z); mz != v {
			t.Fatalf("field not even in z at (%g,%g,%g): %g != %g", x, y, z, v, mz)
		}
	}
}

func TestEvaluateHeartKnownValues(t *testing.T) {
	for _, test := range []struct {
		p    r3.Vec
		want float64
	}{
		{p: r3.Vec{}, want: -1},
		{p: r3.Vec{X: 1}, want: 0},
		{p: r3.Vec{Y: 1}, want: 0},
		{p: r3.Vec{Y: -1}, want: 0},
		// x=2: term1=3, 27
		{p: r3.Vec{X: 2}, want: 27},
		// z=2 is depth: term1 = 9/4*4-1 = 8, 512
		{p: r3.Vec{Z: 2}, want: 512},
		// x=1,y=1: term1=1, 1 - 1*1 = 0
		{p: r3.Vec{X: 1, Y: 1}, want: 0},
	} {
		got := Heart().Evaluate(test.p)
		if math.Abs(got-test.want) > 1e-12 {
			t.Errorf("evaluate(%v): got %g, want %g", test.p, got, test.want)
		}
	}
}

func TestHeartBoundsContainSurface(t *testing.T) {
	bb := Heart().Bounds()
	// Field must be positive everywhere on the boundary faces.
	const n = 30
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			u := bb.Min.X + (bb.Max.X-bb.Min.X)*float64(i)/n
			v := bb.Min.Y + (bb.Max.Y-bb.Min.Y)*float64(j)/n
			for _, p := range []r3.Vec{
				{X: bb.Min.X, Y: u, Z: v}, {X: bb.Max.X, Y: u, Z: v},
				{X: u, Y: bb.Min.Y, Z: v}, {X: u, Y: bb.Max.Y, Z: v},
				{X: u, Y: v, Z: bb.Min.Z}, {X: u, Y: v, Z: bb.Max.Z},
			} {
				if Heart().Evaluate(p) <= 0 {
					t.Fatalf("field not positive on bounds face at %v", p)
				}
			}
		}
	}
}
