package render

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera and output of a point cloud preview.
type View struct {
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eye       r3.Vec
	Near, Far float64
	// Fovy is the vertical field of view in degrees.
	Fovy float64
	// Width and Height of the output image in pixels.
	Width, Height int
	// Supersample renders at Supersample times the output size and
	// downsamples for antialiasing. Values below 1 mean no supersampling.
	Supersample int
	// PointSize scales the cube drawn for each point.
	PointSize  float64
	Color      string // hex point color
	Background string // hex background color
}

// DefaultView looks at the origin from +Z with Y up, framing a heart of unit size.
func DefaultView() View {
	return View{
		Up:          r3.Vec{Y: 1},
		Eye:         r3.Vec{Y: 0.5, Z: 5},
		Near:        1,
		Far:         10,
		Fovy:        35,
		Width:       960,
		Height:      540,
		Supersample: 2,
		PointSize:   0.025,
		Color:       "#FF3366",
		Background:  "#1A0A12",
	}
}

// CreatePNG renders points as seen from view and saves a PNG file at path.
func CreatePNG(path string, points []r3.Vec, view View) error {
	img, err := RenderImage(points, view)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}

// RenderImage rasterizes points as small shaded cubes.
func RenderImage(points []r3.Vec, view View) (image.Image, error) {
	if len(points) == 0 {
		return nil, errors.New("no points to render")
	}
	if view.Width <= 0 || view.Height <= 0 {
		return nil, errors.New("invalid image dimensions")
	}
	if view.PointSize <= 0 {
		return nil, errors.New("point size must be positive")
	}
	scale := view.Supersample
	if scale < 1 {
		scale = 1
	}
	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize() // light direction
	)
	mesh := pointMesh(points, view.PointSize)
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor(view.Background))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(view.Fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(view.Color)
	context.Shader = shader
	context.DrawMesh(mesh)
	img := context.Image()
	if scale > 1 {
		img = resize.Resize(uint(view.Width), uint(view.Height), img, resize.Bilinear)
	}
	return img, nil
}

// pointMesh returns a mesh with a cube scaled by size centered on every point.
func pointMesh(points []r3.Vec, size float64) *fauxgl.Mesh {
	mesh := fauxgl.NewEmptyMesh()
	cube := fauxgl.NewCube()
	s := fauxgl.V(size, size, size)
	for _, p := range points {
		c := cube.Copy()
		c.Transform(fauxgl.Scale(s).Translate(fauxgl.V(p.X, p.Y, p.Z)))
		mesh.Add(c)
	}
	return mesh
}
