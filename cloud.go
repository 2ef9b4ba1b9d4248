package heart

import (
	"math"
	"sort"

	"github.com/soypat/heart/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Cloud is an ordered sequence of surface points. Clouds returned by
// a Sampler are never modified after creation; transforms such as
// SortedByVertical return a new Cloud.
type Cloud []r3.Vec

// Bounds returns the smallest box containing every point of the cloud.
// An empty cloud returns the zero box.
func (c Cloud) Bounds() r3.Box {
	if len(c) == 0 {
		return r3.Box{}
	}
	return r3.Box{Min: d3.Set(c).Min(), Max: d3.Set(c).Max()}
}

// SortedByVertical returns a copy of the cloud sorted by ascending Y.
// Points with equal height keep their sampling order.
func (c Cloud) SortedByVertical() Cloud {
	sorted := make(Cloud, len(c))
	copy(sorted, c)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y < sorted[j].Y
	})
	return sorted
}

// MaxResidual returns the largest absolute value of f over the cloud.
// For a cloud sampled from f this measures how far points sit from the zero set.
func (c Cloud) MaxResidual(f Field3) float64 {
	var max float64
	for _, p := range c {
		max = math.Max(max, math.Abs(f.Evaluate(p)))
	}
	return max
}
