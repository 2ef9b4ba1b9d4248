package heart

import (
	"math"
	"testing"

	"github.com/soypat/heart/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCloudSortedByVertical(t *testing.T) {
	c := Sample(1600)
	orig := make(Cloud, len(c))
	copy(orig, c)
	sorted := c.SortedByVertical()
	if len(sorted) != len(c) {
		t.Fatalf("sorted length %d != %d", len(sorted), len(c))
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Y < sorted[i-1].Y {
			t.Fatalf("point %d not sorted: %g < %g", i, sorted[i].Y, sorted[i-1].Y)
		}
	}
	for i := range c {
		if c[i] != orig[i] {
			t.Fatal("SortedByVertical modified the sampled cloud")
		}
	}
}

func TestCloudBounds(t *testing.T) {
	if got := (Cloud{}).Bounds(); got != (r3.Box{}) {
		t.Errorf("empty cloud bounds: got %v", got)
	}
	c := Cloud{{X: 1, Y: -2, Z: 3}, {X: -1, Y: 4, Z: 0}, {X: 0.5, Y: 0, Z: -3}}
	want := d3.Box{Min: r3.Vec{X: -1, Y: -2, Z: -3}, Max: r3.Vec{X: 1, Y: 4, Z: 3}}
	if got := d3.Box(c.Bounds()); !got.Equals(want, 0) {
		t.Errorf("bounds: got %v, want %v", got, want)
	}

	heartBounds := d3.Box(Sample(10000).Bounds())
	// The heart spans roughly [-1.14,1.14] horizontally and [-1, 1.2] vertically.
	size := heartBounds.Size()
	if size.X < 2 || size.X > 2.5 || size.Y < 1.9 || size.Y > 2.5 || size.Z < 1 || size.Z > 1.5 {
		t.Errorf("unexpected heart extent %v", size)
	}
	if c := heartBounds.Center(); math.Abs(c.X) > 1e-2 || math.Abs(c.Z) > 1e-2 {
		t.Errorf("heart not centered horizontally: %v", c)
	}
}

func TestCloudSymmetry(t *testing.T) {
	// A grid with an even number of azimuth steps contains phi and π-phi,
	// which mirror each other under x -> -x, so every point has a mirror.
	c := Sample(48 * 48)
	mirrored := make(Cloud, len(c))
	for i, p := range c {
		mirrored[i] = r3.Vec{X: -p.X, Y: p.Y, Z: p.Z}
	}
	joined := append(append(Cloud{}, c...), mirrored...)
	pairs := joined.NearDuplicates(1e-6)
	matched := make([]bool, len(c))
	for _, pair := range pairs {
		if pair[0] < len(c) && pair[1] >= len(c) {
			matched[pair[0]] = true
		}
	}
	unmatched := 0
	for _, ok := range matched {
		if !ok {
			unmatched++
		}
	}
	if unmatched > len(c)/100 {
		t.Errorf("%d of %d points have no x-mirrored counterpart", unmatched, len(c))
	}
}

func TestNearDuplicates(t *testing.T) {
	c := Cloud{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1e-6},
		{X: 1, Y: 1e-7, Z: 0},
		{X: 5, Y: 5, Z: 5},
	}
	got := c.NearDuplicates(1e-4)
	want := [][2]int{{0, 2}, {1, 3}}
	if len(got) != len(want) {
		t.Fatalf("got pairs %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if got := c.NearDuplicates(0); got != nil {
		t.Errorf("zero tolerance should find nothing, got %v", got)
	}
	if got := (Cloud{{}}).NearDuplicates(1); got != nil {
		t.Errorf("single point should find nothing, got %v", got)
	}
}

func TestMaxResidual(t *testing.T) {
	c := Cloud{{X: 1}, {Y: 1}, {}}
	if got := c.MaxResidual(Heart()); got != 1 {
		t.Errorf("got %g, want 1 (origin)", got)
	}
}
