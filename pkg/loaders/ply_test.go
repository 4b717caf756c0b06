package loaders

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var squareVertices = []core.Vec3{
	core.NewVec3(0, 0, 0),
	core.NewVec3(1, 0, 0),
	core.NewVec3(1, 1, 0),
	core.NewVec3(0, 1, 0),
}

// createBinaryPLY writes a unit square as two triangles, optionally with normals
// and an extra per-face property to skip.
func createBinaryPLY(t *testing.T, order binary.ByteOrder, includeNormals bool) []byte {
	t.Helper()
	var buf bytes.Buffer

	format := "binary_little_endian"
	if order == binary.BigEndian {
		format = "binary_big_endian"
	}
	buf.WriteString("ply\n")
	buf.WriteString("format " + format + " 1.0\n")
	buf.WriteString("comment generated by test\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	if includeNormals {
		buf.WriteString("property float nx\n")
		buf.WriteString("property float ny\n")
		buf.WriteString("property float nz\n")
	}
	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("property uchar flags\n")
	buf.WriteString("end_header\n")

	for _, v := range squareVertices {
		require.NoError(t, binary.Write(&buf, order, [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}))
		if includeNormals {
			require.NoError(t, binary.Write(&buf, order, [3]float32{0, 0, 1}))
		}
	}

	for _, f := range [][3]int32{{0, 1, 2}, {0, 2, 3}} {
		require.NoError(t, binary.Write(&buf, order, uint8(3)))
		require.NoError(t, binary.Write(&buf, order, f))
		require.NoError(t, binary.Write(&buf, order, uint8(7)))
	}
	return buf.Bytes()
}

func TestReadPLY_Binary(t *testing.T) {
	tests := []struct {
		name    string
		order   binary.ByteOrder
		normals bool
	}{
		{"little endian", binary.LittleEndian, false},
		{"little endian with normals", binary.LittleEndian, true},
		{"big endian", binary.BigEndian, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadPLY(bytes.NewReader(createBinaryPLY(t, tt.order, tt.normals)))
			require.NoError(t, err)

			assert.Equal(t, squareVertices, data.Vertices)
			assert.Equal(t, []int{0, 1, 2, 0, 2, 3}, data.Faces)
			assert.Equal(t, 2, data.TriangleCount())
		})
	}
}

func TestReadPLY_ASCII(t *testing.T) {
	content := `ply
format ascii 1.0
comment a quad and a triangle
element vertex 5
property float x
property float y
property float z
property uchar red
element face 2
property list uchar int vertex_indices
end_header
0 0 0 255
1 0 0 255
1 1 0 255
0 1 0 255
0.5 2.5 -1e-1 0
4 0 1 2 3
3 2 3 4
`
	data, err := ReadPLY(strings.NewReader(content))
	require.NoError(t, err)

	require.Len(t, data.Vertices, 5)
	assert.Equal(t, core.NewVec3(0.5, 2.5, -0.1), data.Vertices[4])
	// The quad is split into a fan around its first vertex
	assert.Equal(t, []int{0, 1, 2, 0, 2, 3, 2, 3, 4}, data.Faces)
}

func TestReadPLY_SkipsUnknownElements(t *testing.T) {
	content := `ply
format ascii 1.0
element material 2
property float shininess
property list uchar float weights
element vertex 3
property float x
property float y
property float z
element face 1
property list uchar uint vertex_index
end_header
0.5 2 1 1
0.1 0
0 0 0
1 0 0
0 1 0
3 0 1 2
`
	data, err := ReadPLY(strings.NewReader(content))
	require.NoError(t, err)
	assert.Len(t, data.Vertices, 3)
	assert.Equal(t, []int{0, 1, 2}, data.Faces)
}

func TestReadPLY_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"not a ply file", "obj\n", "magic"},
		{"missing end_header", "ply\nformat ascii 1.0\nelement vertex 0\n", "end of header"},
		{"unknown format", "ply\nformat fancy 1.0\nend_header\n", "unsupported PLY format"},
		{"unknown type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty quad x\nend_header\n", "unsupported data type"},
		{
			name:    "face index out of range",
			content: "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0\n3 0 0 5\n",
			errPart: "references vertex 5",
		},
		{
			name:    "degenerate face",
			content: "ply\nformat ascii 1.0\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n2 0 1\n",
			errPart: "has 2 vertices",
		},
		{
			name:    "truncated data",
			content: "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nend_header\n1\n",
			errPart: "vertex 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPLY(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestLoadPLY_FileAndMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.ply")
	require.NoError(t, os.WriteFile(path, createBinaryPLY(t, binary.LittleEndian, true), 0644))

	data, err := LoadPLY(path)
	require.NoError(t, err)

	mesh := data.Mesh(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	assert.Equal(t, 2, mesh.Len())

	ray := core.NewRay(core.NewVec3(0.25, 0.5, 1), core.NewVec3(0, 0, -1))
	var rec material.HitRecord
	require.True(t, mesh.Hit(ray, 0.001, 10, &rec))
	assert.InDelta(t, 1.0, rec.T, 1e-9)
}

func TestLoadPLY_NonExistentFile(t *testing.T) {
	_, err := LoadPLY(filepath.Join(t.TempDir(), "nonexistent.ply"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParsePLYHeader(t *testing.T) {
	headerContent := `ply
format binary_little_endian 1.0
comment Test PLY file
element vertex 100
property float x
property float y
property float z
property float nx
property float ny
property float nz
property uchar red
property uchar green
property uchar blue
element face 50
property list uchar int vertex_indices
end_header
`
	header, err := parsePLYHeader(bufio.NewReader(strings.NewReader(headerContent)))
	require.NoError(t, err)

	assert.Equal(t, "binary_little_endian", header.Format)
	assert.Equal(t, "1.0", header.Version)
	assert.Equal(t, []string{"Test PLY file"}, header.Comments)
	require.Len(t, header.Elements, 2)
	assert.Equal(t, "vertex", header.Elements[0].Name)
	assert.Equal(t, 100, header.Elements[0].Count)
	assert.Len(t, header.Elements[0].Props, 9)
	assert.Equal(t, 50, header.Elements[1].Count)
	assert.Equal(t, PLYProperty{Name: "vertex_indices", IsList: true, ListType: "uchar", DataType: "int"}, header.Elements[1].Props[0])
}

func TestGetTypeSize(t *testing.T) {
	tests := []struct {
		dataType string
		expected int
	}{
		{"float", 4},
		{"float32", 4},
		{"int", 4},
		{"uint32", 4},
		{"double", 8},
		{"float64", 8},
		{"short", 2},
		{"ushort", 2},
		{"char", 1},
		{"uchar", 1},
		{"unknown", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, getTypeSize(tt.dataType), tt.dataType)
	}
}
