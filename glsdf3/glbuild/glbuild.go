package glbuild

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	"github.com/soypat/glgl/math/ms3"
)

// Shader stores information for automatically generating SDF Shader pipelines.
type Shader interface {
	// AppendShaderName appends the name of the GL shader function
	// to the buffer and returns the result. It should be unique to that shader.
	AppendShaderName(b []byte) []byte
	// AppendShaderBody appends the body of the shader function to the
	// buffer and returns the result.
	AppendShaderBody(b []byte) []byte
}

// Shader3D can create shader source code for a 3D implicit field.
type Shader3D interface {
	Shader
	Bounds() ms3.Box
}

// WriteProgram writes the GL function of s followed by an entry point
//
//	float sdf(vec3 p)
//
// that calls it. scratch is an auxiliary buffer to avoid heap allocations.
func WriteProgram(w io.Writer, s Shader3D, scratch []byte) (n int, err error) {
	if s == nil {
		return 0, errors.New("nil shader object")
	}
	name := s.AppendShaderName(nil)
	if len(name) == 0 {
		return 0, errors.New("empty shader name")
	}
	if scratch == nil {
		scratch = make([]byte, 512)
	}
	n, err = WriteShader(w, s, scratch)
	if err != nil {
		return n, err
	}
	scratch = append(scratch[:0], "float sdf(vec3 p) {\n\treturn "...)
	scratch = append(scratch, name...)
	scratch = append(scratch, "(p);\n}\n"...)
	ngot, err := w.Write(scratch)
	return n + ngot, err
}

// WriteShader writes the GL code of a single shader to the writer. scratch is an auxiliary buffer to prevent allocations.
func WriteShader(w io.Writer, s Shader3D, scratch []byte) (int, error) {
	scratch = scratch[:0]
	scratch = append(scratch, "float "...)
	scratch = s.AppendShaderName(scratch)
	scratch = append(scratch, "(vec3 p) {\n"...)
	scratch = s.AppendShaderBody(scratch)
	scratch = append(scratch, "\n}\n\n"...)
	return w.Write(scratch)
}

// AppendFloatDecl appends a GLSL float declaration of name initialized to v.
func AppendFloatDecl(b []byte, name string, v float32) []byte {
	b = append(b, "float "...)
	b = append(b, name...)
	b = append(b, '=')
	b = AppendFloat(b, v, '-', '.')
	b = append(b, ';', '\n')
	return b
}

// AppendFloat appends v with six decimals. The minus sign and decimal point
// are replaced by neg and decimal, which lets values be embedded in identifiers.
func AppendFloat(b []byte, v float32, neg, decimal byte) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, float64(v), 'f', 6, 32)
	idx := bytes.IndexByte(b[start:], '.')
	if decimal != '.' && idx >= 0 {
		b[start+idx] = decimal
	}
	if b[start] == '-' {
		b[start] = neg
	}
	return b
}
