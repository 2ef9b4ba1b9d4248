package render

import (
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer) ([]r3.Vec, error) {
	var err error
	var np int
	result := make([]r3.Vec, 0, 1<<12)
	buf := make([]r3.Vec, 1024)
	for {
		np, err = r.ReadPoints(buf)
		result = append(result, buf[:np]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}
