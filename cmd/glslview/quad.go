package main

import (
	"github.com/glslview/glslview/renderer"
)

// unitQuad is the default geometry: a single quad in the XY plane,
// useful for fragment-shader experiments.
type unitQuad struct{}

func (unitQuad) VertexCount() int { return 4 }

func (unitQuad) Vertices() []float32 {
	return []float32{
		-1, -1, 0,
		1, -1, 0,
		1, 1, 0,
		-1, 1, 0,
	}
}

func (unitQuad) Normals() []float32 {
	return []float32{
		0, 0, 1,
		0, 0, 1,
		0, 0, 1,
		0, 0, 1,
	}
}

func (unitQuad) TexCoords() []float32 {
	return []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 1,
	}
}

func (unitQuad) Faces() []renderer.Face {
	return []renderer.Face{{A: 0, B: 1, C: 2, D: 3, Quad: true}}
}
