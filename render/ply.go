package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r3"
)

// zstdSuffix marks PLY files that are written zstd compressed.
const zstdSuffix = ".zst"

const pointsInBuffer = 1 << 10

// plyHeader returns the header of a binary little endian PLY file of n vertices.
// The vertex count is zero padded so the header length does not depend on n.
func plyHeader(n int) []byte {
	return []byte(fmt.Sprintf("ply\nformat binary_little_endian 1.0\ncomment heart point cloud\n"+
		"element vertex %010d\nproperty float x\nproperty float y\nproperty float z\nend_header\n", n))
}

// WritePLY writes points to w in binary little endian PLY format.
func WritePLY(w io.Writer, points []r3.Vec) error {
	if len(points) == 0 {
		return errors.New("empty point slice")
	}
	if _, err := w.Write(plyHeader(len(points))); err != nil {
		return err
	}
	var b [pointSize * pointsInBuffer]byte
	for len(points) > 0 {
		n := min(len(points), pointsInBuffer)
		for i, p := range points[:n] {
			put3F32(b[i*pointSize:], p)
		}
		if _, err := w.Write(b[:n*pointSize]); err != nil {
			return err
		}
		points = points[n:]
	}
	return nil
}

// CreatePLY reads all points from r and writes them to a PLY file at path.
// Paths ending in ".zst" are written zstd compressed.
func CreatePLY(path string, r Renderer) error {
	if strings.HasSuffix(path, zstdSuffix) {
		return createCompressedPLY(path, r)
	}
	return createPLY(path, r)
}

// createPLY streams points to the file and rewrites the header once the
// vertex count is known.
func createPLY(path string, r Renderer) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	header := plyHeader(0)
	if _, err = file.Seek(int64(len(header)), io.SeekStart); err != nil {
		return err
	}
	var (
		buf   [pointsInBuffer]r3.Vec
		b     [pointSize * pointsInBuffer]byte
		total int
		np    int
	)
	for err == nil {
		np, err = r.ReadPoints(buf[:])
		for i, p := range buf[:np] {
			put3F32(b[i*pointSize:], p)
		}
		if _, werr := file.Write(b[:np*pointSize]); werr != nil {
			return werr
		}
		total += np
	}
	if err != io.EOF {
		return err
	}
	if total == 0 {
		return errors.New("renderer produced no points")
	}
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err = file.Write(plyHeader(total))
	return err
}

func createCompressedPLY(path string, r Renderer) error {
	points, err := RenderAll(r)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	enc, err := zstd.NewWriter(file)
	if err != nil {
		return err
	}
	err = WritePLY(enc, points)
	if err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadPLYFile reads a PLY file written by CreatePLY. Files ending in
// ".zst" are decompressed.
func ReadPLYFile(path string) ([]ms3.Vec, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	var rd io.Reader = file
	if strings.HasSuffix(path, zstdSuffix) {
		dec, err := zstd.NewReader(file)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		rd = dec
	}
	return ReadPLY(rd)
}

// ReadPLY reads a binary little endian PLY file with a single float x,y,z
// vertex element, as written by WritePLY.
func ReadPLY(r io.Reader) (output []ms3.Vec, readErr error) {
	br := bufio.NewReader(r)
	n, err := readPLYHeader(br)
	if err != nil {
		return nil, err
	}
	var (
		buf [pointSize]byte
		i   int
	)
	defer func() {
		if readErr != nil {
			readErr = fmt.Errorf("%d/%d PLY vertices read: %w", i, n, readErr)
		}
	}()
	// The header count is not trusted for allocation.
	output = make([]ms3.Vec, 0, min(n, maxPLYPrealloc))
	for i = 0; i < n; i++ {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return nil, err
		}
		v := get3F32(buf[:])
		if bad3F32(v) {
			return nil, errors.New("inf/NaN PLY vertex")
		}
		output = append(output, v)
	}
	return output, nil
}

// maxPLYPrealloc caps the vertices allocated before any are read.
const maxPLYPrealloc = 1 << 16

func readPLYHeader(br *bufio.Reader) (nverts int, err error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("reading PLY magic: %w", err)
	}
	if strings.TrimSpace(line) != "ply" {
		return 0, errors.New("missing PLY magic number")
	}
	var props []string
	nverts = -1
	for {
		line, err = br.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("reading PLY header: %w", err)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "end_header":
			if nverts < 0 {
				return 0, errors.New("PLY header has no vertex element")
			}
			if strings.Join(props, " ") != "x y z" {
				return 0, fmt.Errorf("unsupported PLY vertex properties %q", props)
			}
			return nverts, nil
		case "format":
			if len(fields) < 2 || fields[1] != "binary_little_endian" {
				return 0, fmt.Errorf("unsupported PLY format %q", strings.TrimSpace(line))
			}
		case "element":
			if len(fields) != 3 || fields[1] != "vertex" {
				return 0, fmt.Errorf("unsupported PLY element %q", strings.Join(fields[1:], " "))
			}
			nverts, err = strconv.Atoi(fields[2])
			if err != nil || nverts < 0 {
				return 0, fmt.Errorf("bad PLY vertex count %q", fields[2])
			}
		case "property":
			if len(fields) != 3 || fields[1] != "float" {
				return 0, fmt.Errorf("unsupported PLY property %q", strings.Join(fields[1:], " "))
			}
			props = append(props, fields[2])
		}
	}
}

// ToR3 converts float32 points to r3 vectors.
func ToR3(pts []ms3.Vec) []r3.Vec {
	out := make([]r3.Vec, len(pts))
	for i, v := range pts {
		out[i] = r3FromF32(v)
	}
	return out
}
