// Package cloudplot draws 2D projections of point clouds as scatter plots.
package cloudplot

import (
	"errors"
	"image/color"

	"github.com/soypat/heart"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Plane selects the two coordinates a cloud is projected onto.
type Plane int

const (
	// PlaneXY is the front view, Y up.
	PlaneXY Plane = iota
	// PlaneXZ is the top view.
	PlaneXZ
	// PlaneZY is the side view, Y up.
	PlaneZY
)

func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "front"
	case PlaneXZ:
		return "top"
	case PlaneZY:
		return "side"
	}
	return "unknown"
}

func (p Plane) axes() (x, y string) {
	switch p {
	case PlaneXZ:
		return "X", "Z"
	case PlaneZY:
		return "Z", "Y"
	}
	return "X", "Y"
}

// Project returns the 2D coordinates of c on plane p.
func Project(c heart.Cloud, p Plane) plotter.XYs {
	xys := make(plotter.XYs, len(c))
	for i, v := range c {
		switch p {
		case PlaneXZ:
			xys[i].X, xys[i].Y = v.X, v.Z
		case PlaneZY:
			xys[i].X, xys[i].Y = v.Z, v.Y
		default:
			xys[i].X, xys[i].Y = v.X, v.Y
		}
	}
	return xys
}

// Projection returns a scatter plot of c projected on plane p.
func Projection(c heart.Cloud, p Plane) (*plot.Plot, error) {
	if len(c) == 0 {
		return nil, errors.New("empty point cloud")
	}
	if p < PlaneXY || p > PlaneZY {
		return nil, errors.New("invalid projection plane")
	}
	plt := plot.New()
	plt.Title.Text = "heart point cloud, " + p.String() + " view"
	plt.X.Label.Text, plt.Y.Label.Text = p.axes()
	scatter, err := plotter.NewScatter(Project(c, p))
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 220, G: 30, B: 80, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(0.8)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	plt.Add(scatter)
	// Keep the aspect ratio so the heart is not distorted.
	bb := c.Bounds()
	lo, hi := bb.Min.X, bb.Max.X
	for _, v := range []float64{bb.Min.Y, bb.Min.Z} {
		if v < lo {
			lo = v
		}
	}
	for _, v := range []float64{bb.Max.Y, bb.Max.Z} {
		if v > hi {
			hi = v
		}
	}
	plt.X.Min, plt.X.Max = lo, hi
	plt.Y.Min, plt.Y.Max = lo, hi
	return plt, nil
}

// Save writes a square projection plot of c to path. The format is
// chosen from the file extension (png, svg, pdf...).
func Save(c heart.Cloud, p Plane, side vg.Length, path string) error {
	plt, err := Projection(c, p)
	if err != nil {
		return err
	}
	return plt.Save(side, side, path)
}
