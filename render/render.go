// Package render consumes sampled point clouds: it reveals them progressively
// into positional buffers and exports them as PLY files or PNG previews.
package render

import (
	"io"

	"github.com/soypat/heart"
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer streams points. ReadPoints fills dst with the next points and
// returns the number written. It returns io.EOF once every point was read.
type Renderer interface {
	ReadPoints(dst []r3.Vec) (int, error)
}

// NewCloudReader returns a Renderer that reads c in order.
// c is not modified.
func NewCloudReader(c heart.Cloud) Renderer {
	return &cloudReader{c: c}
}

type cloudReader struct {
	c   heart.Cloud
	off int
}

func (r *cloudReader) ReadPoints(dst []r3.Vec) (int, error) {
	if r.off >= len(r.c) {
		return 0, io.EOF
	}
	n := copy(dst, r.c[r.off:])
	r.off += n
	return n, nil
}

// NewSamplerRenderer returns a Renderer that samples requested points
// with s on the first call to ReadPoints.
func NewSamplerRenderer(s *heart.Sampler, requested int) Renderer {
	return &samplerRenderer{s: s, requested: requested}
}

type samplerRenderer struct {
	s         *heart.Sampler
	requested int
	r         Renderer
}

func (sr *samplerRenderer) ReadPoints(dst []r3.Vec) (int, error) {
	if sr.r == nil {
		sr.r = NewCloudReader(sr.s.Sample(sr.requested))
	}
	return sr.r.ReadPoints(dst)
}
