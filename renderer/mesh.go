package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glslview/glslview/recycle"
)

// Mesh is the geometry the renderer draws. Implementations are opaque to
// this package; only flat arrays are read. Vertices are 3 floats per
// vertex, normals 3, texture coordinates 2.
type Mesh interface {
	VertexCount() int
	Vertices() []float32
	Normals() []float32
	TexCoords() []float32
	Faces() []Face
}

// Face is a triangle or quad by vertex index. D is ignored for
// triangles.
type Face struct {
	A, B, C, D uint32
	Quad       bool
}

// Mesh data binds to the conventional attribute names. A shader that
// does not declare them simply draws without that input.
const (
	vertexAttribName   = "vert"
	normalAttribName   = "normal"
	texCoordAttribName = "texcoord"
)

// meshBuffers caches the GPU buffers of one mesh. Every buffer is 0
// until lazily created and is never re-uploaded during its handle's
// lifetime. Triangle and line index buffers coexist: the draw mode can
// change without invalidating mesh data.
type meshBuffers struct {
	mesh Mesh

	vertex   uint32
	normal   uint32
	texCoord uint32

	triIndex  uint32
	triCount  int32
	lineIndex uint32
	lineCount int32
}

// MeshCache holds the buffers of every mesh in the current draw set. The
// set is fully replaced between scene updates.
type MeshCache struct {
	bin    *recycle.Bin
	meshes []*meshBuffers
}

func NewMeshCache(bin *recycle.Bin) *MeshCache {
	return &MeshCache{bin: bin}
}

// Add appends a mesh to the draw set. Buffers are created lazily at
// first draw.
func (c *MeshCache) Add(m Mesh) {
	c.meshes = append(c.meshes, &meshBuffers{mesh: m})
}

func (c *MeshCache) Len() int {
	return len(c.meshes)
}

// Clear empties the draw set, queuing every allocated buffer handle for
// deferred deletion.
func (c *MeshCache) Clear() {
	for _, mb := range c.meshes {
		c.bin.AddBuffer(mb.vertex)
		c.bin.AddBuffer(mb.normal)
		c.bin.AddBuffer(mb.texCoord)
		c.bin.AddBuffer(mb.triIndex)
		c.bin.AddBuffer(mb.lineIndex)
	}
	c.meshes = nil
}

// triangleIndices lists 3 indices per triangle and 6 per quad, quads
// split into two triangles sharing the A-C diagonal.
func triangleIndices(faces []Face) []uint32 {
	idx := make([]uint32, 0, len(faces)*6)
	for _, f := range faces {
		idx = append(idx, f.A, f.B, f.C)
		if f.Quad {
			idx = append(idx, f.C, f.D, f.A)
		}
	}
	return idx
}

// lineIndices traces face edges as line-list pairs: 6 indices per
// triangle, 8 per quad. The quad diagonal is not drawn.
func lineIndices(faces []Face) []uint32 {
	idx := make([]uint32, 0, len(faces)*8)
	for _, f := range faces {
		if f.Quad {
			idx = append(idx, f.A, f.B, f.B, f.C, f.C, f.D, f.D, f.A)
		} else {
			idx = append(idx, f.A, f.B, f.B, f.C, f.C, f.A)
		}
	}
	return idx
}

func newArrayBuffer(data []float32) uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(data), gl.Ptr(data), gl.STATIC_DRAW)
	return id
}

func newElementBuffer(idx []uint32) uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, id)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(idx), gl.Ptr(idx), gl.STATIC_DRAW)
	return id
}

// bind ensures the vertex buffers exist and wires them to the program's
// conventional mesh attributes. Normals and texture coordinates are only
// used when their length matches the vertex count; otherwise the
// attribute is disabled with a constant zero.
func (mb *meshBuffers) bind(program uint32, b *Bindings) {
	m := mb.mesh
	n := m.VertexCount()

	if mb.vertex == 0 {
		if vs := m.Vertices(); len(vs) > 0 {
			mb.vertex = newArrayBuffer(vs)
		}
	}
	if mb.normal == 0 {
		if ns := m.Normals(); len(ns) == 3*n && n > 0 {
			mb.normal = newArrayBuffer(ns)
		}
	}
	if mb.texCoord == 0 {
		if ts := m.TexCoords(); len(ts) == 2*n && n > 0 {
			mb.texCoord = newArrayBuffer(ts)
		}
	}

	mb.bindAttrib(program, b, vertexAttribName, mb.vertex, 3)
	mb.bindAttrib(program, b, normalAttribName, mb.normal, 3)
	mb.bindAttrib(program, b, texCoordAttribName, mb.texCoord, 2)
}

func (mb *meshBuffers) bindAttrib(program uint32, b *Bindings, name string, vbo uint32, size int32) {
	loc := gl.GetAttribLocation(program, gl.Str(name+"\x00"))
	if loc < 0 {
		return
	}
	if vbo == 0 {
		gl.DisableVertexAttribArray(uint32(loc))
		gl.VertexAttrib3f(uint32(loc), 0, 0, 0)
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	b.enableArray(uint32(loc))
	gl.VertexAttribPointer(uint32(loc), size, gl.FLOAT, false, 0, nil)
}

// indexBuffer returns the index buffer appropriate for the draw mode,
// building it from the mesh's face topology on first use. A mesh without
// faces yields 0; the caller falls back to a non-indexed draw.
func (mb *meshBuffers) indexBuffer(mode Mode) (uint32, int32) {
	faces := mb.mesh.Faces()
	if len(faces) == 0 {
		return 0, 0
	}
	if mode == ModeLines {
		if mb.lineIndex == 0 {
			idx := lineIndices(faces)
			mb.lineIndex = newElementBuffer(idx)
			mb.lineCount = int32(len(idx))
		}
		return mb.lineIndex, mb.lineCount
	}
	if mb.triIndex == 0 {
		idx := triangleIndices(faces)
		mb.triIndex = newElementBuffer(idx)
		mb.triCount = int32(len(idx))
	}
	return mb.triIndex, mb.triCount
}
