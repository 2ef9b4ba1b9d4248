package render

import (
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/heart"
)

// Revealer progressively copies a point cloud into a growing positional
// buffer, a bounded batch per tick. The cloud is only read, so several
// Revealers may share one cloud.
type Revealer struct {
	cloud  heart.Cloud
	batch  int
	cursor int
	pos    []ms3.Vec
}

// NewRevealer returns a Revealer that reveals at most batch points of c per Tick.
// batch values below 1 are treated as 1.
func NewRevealer(c heart.Cloud, batch int) *Revealer {
	if batch < 1 {
		batch = 1
	}
	return &Revealer{
		cloud: c,
		batch: batch,
		pos:   make([]ms3.Vec, 0, len(c)),
	}
}

// Tick reveals the next batch of points and returns them. The returned
// slice aliases the positional buffer and is empty once Done.
func (rv *Revealer) Tick() []ms3.Vec {
	start := len(rv.pos)
	end := rv.cursor + rv.batch
	if end > len(rv.cloud) {
		end = len(rv.cloud)
	}
	for _, p := range rv.cloud[rv.cursor:end] {
		rv.pos = append(rv.pos, ms3.Vec{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)})
	}
	rv.cursor = end
	return rv.pos[start:]
}

// Revealed returns the number of points revealed so far.
func (rv *Revealer) Revealed() int { return rv.cursor }

// Len returns the number of points in the underlying cloud.
func (rv *Revealer) Len() int { return len(rv.cloud) }

// Done reports whether every point was revealed.
func (rv *Revealer) Done() bool { return rv.cursor >= len(rv.cloud) }

// Points returns the revealed points.
func (rv *Revealer) Points() []ms3.Vec { return rv.pos }

// Positions appends the revealed points as consecutive x,y,z triples to
// dst and returns the result. This is the layout of a GPU position attribute.
func (rv *Revealer) Positions(dst []float32) []float32 {
	for _, v := range rv.pos {
		dst = append(dst, v.X, v.Y, v.Z)
	}
	return dst
}

// Reset hides all points again, keeping the buffer's capacity.
func (rv *Revealer) Reset() {
	rv.cursor = 0
	rv.pos = rv.pos[:0]
}
