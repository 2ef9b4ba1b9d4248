package heart

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface  = kdPoints{}
	_ kdtree.Comparable = kdPoint{}
)

// NearDuplicates returns index pairs {i, j} with i < j of points closer than tol.
// Rays that graze the surface can produce two roots a few bisection widths
// apart. The sampler keeps both; this reports them so callers can decide.
// Pairs are ordered by i, then by j.
func (c Cloud) NearDuplicates(tol float64) [][2]int {
	if len(c) < 2 || tol <= 0 {
		return nil
	}
	pts := make(kdPoints, len(c))
	for i := range c {
		pts[i] = kdPoint{Vec: c[i], idx: i}
	}
	tree := kdtree.New(pts, false)
	var pairs [][2]int
	tol2 := tol * tol
	for i := range c {
		keep := kdtree.NewDistKeeper(tol2)
		tree.NearestSet(keep, kdPoint{Vec: c[i], idx: i})
		var found []int
		for _, cd := range keep.Heap {
			if cd.Comparable == nil {
				continue // sentinel
			}
			j := cd.Comparable.(kdPoint).idx
			if j > i && cd.Dist < tol2 {
				found = append(found, j)
			}
		}
		sort.Ints(found)
		for _, j := range found {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}

type kdPoint struct {
	r3.Vec
	idx int
}

type kdPoints []kdPoint

func (k kdPoints) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdPoints) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdPoints) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), points: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdPoints) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
func (a kdPoint) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdPoint), int(d))
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdPoint) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a kdPoint) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.Vec, b.(kdPoint).Vec))
}

// c = a.dim - b.dim
func kdComp(a, b kdPoint, dim int) (c float64) {
	switch dim {
	case 0:
		c = a.X - b.X
	case 1:
		c = a.Y - b.Y
	case 2:
		c = a.Z - b.Z
	}
	return c
}

type kdPlane struct {
	dim    int
	points kdPoints
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.points[i], p.points[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
func (p kdPlane) Len() int {
	return len(p.points)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
