package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glslview/glslview/recycle"
	"github.com/glslview/glslview/shader"
)

// Mode is the GL primitive topology used for draw calls.
type Mode int

const (
	ModePoints Mode = iota
	ModeLines
	ModeLineLoop
	ModeLineStrip
	ModeTriangles
	ModeTriangleStrip
	ModeTriangleFan
	ModeLinesAdjacency
	ModeLineStripAdjacency
	ModeTrianglesAdjacency
	ModeTriangleStripAdjacency
	ModePatches

	numModes
)

func (m Mode) glEnum() uint32 {
	switch m {
	case ModePoints:
		return gl.POINTS
	case ModeLines:
		return gl.LINES
	case ModeLineLoop:
		return gl.LINE_LOOP
	case ModeLineStrip:
		return gl.LINE_STRIP
	case ModeTriangles:
		return gl.TRIANGLES
	case ModeTriangleStrip:
		return gl.TRIANGLE_STRIP
	case ModeTriangleFan:
		return gl.TRIANGLE_FAN
	case ModeLinesAdjacency:
		return gl.LINES_ADJACENCY
	case ModeLineStripAdjacency:
		return gl.LINE_STRIP_ADJACENCY
	case ModeTrianglesAdjacency:
		return gl.TRIANGLES_ADJACENCY
	case ModeTriangleStripAdjacency:
		return gl.TRIANGLE_STRIP_ADJACENCY
	case ModePatches:
		return gl.PATCHES
	}
	return gl.TRIANGLES
}

// Clamp bounds a mode read from persisted state to the primitive-kind
// range, falling back to triangles.
func (m Mode) Clamp() Mode {
	if m < ModePoints || m >= numModes {
		return ModeTriangles
	}
	return m
}

// Draw parameter defaults, persisted alongside the shader sources.
const (
	DefaultLineWidth = 3.0
	DefaultPointSize = 8.0
)

// FrameContext carries the per-frame values supplied by the surrounding
// display: viewport and camera state for built-in uniform setup.
type FrameContext struct {
	Viewport       [4]int32
	View           [16]float32
	Projection     [16]float32
	CameraPosition Vec3
	Time           float64
	Frame          uint64
}

// BuiltinUniform uploads one display-supplied uniform, such as a view or
// projection matrix, into the active program. The orchestrator invokes
// every registered callback in order, once per draw.
type BuiltinUniform func(program uint32, frame *FrameContext)

// Renderer sequences one draw: program validation, binding resolution,
// fixed state, mesh buffers and the draw calls themselves.
type Renderer struct {
	Program  *shader.Program
	Bindings *Bindings
	Meshes   *MeshCache

	LineWidth float32
	PointSize float32
	DrawMode  Mode

	bin      *recycle.Bin
	builtins []BuiltinUniform
}

func New(bin *recycle.Bin) *Renderer {
	return &Renderer{
		Program:   shader.NewProgram(bin),
		Bindings:  NewBindings(bin),
		Meshes:    NewMeshCache(bin),
		LineWidth: DefaultLineWidth,
		PointSize: DefaultPointSize,
		DrawMode:  ModeTriangles,
		bin:       bin,
	}
}

// AddBuiltin registers a built-in uniform setup callback. Callbacks run
// in registration order.
func (r *Renderer) AddBuiltin(fn BuiltinUniform) {
	r.builtins = append(r.builtins, fn)
}

// Draw renders the current mesh set with the current bindings. Without a
// valid linked program nothing is drawn; source edits may arrive in any
// order relative to draws, so validity is re-checked every time. The GL
// context must be current.
func (r *Renderer) Draw(frame *FrameContext) {
	r.bin.Flush()
	if !r.Program.EnsureCompiled() {
		return
	}
	program := r.Program.Handle()

	// A transient vertex array keeps all attribute state local to this
	// draw.
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.UseProgram(program)

	r.Bindings.resolveUniforms(program)

	gl.LineWidth(r.LineWidth)
	gl.PointSize(r.PointSize)
	if r.DrawMode == ModePoints {
		gl.Enable(gl.PROGRAM_POINT_SIZE)
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	for _, fn := range r.builtins {
		fn(program, frame)
	}

	mode := r.DrawMode.glEnum()
	if r.Meshes.Len() == 0 {
		r.Bindings.resolveAttributes(program)
		count := r.Bindings.drawCount(1)
		gl.DrawArrays(mode, 0, int32(count))
	} else {
		for _, mb := range r.Meshes.meshes {
			r.Bindings.resolveAttributes(program)
			mb.bind(program, r.Bindings)
			if idx, n := mb.indexBuffer(r.DrawMode); idx != 0 {
				gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, idx)
				gl.DrawElements(mode, n, gl.UNSIGNED_INT, nil)
			} else {
				count := r.Bindings.drawCount(mb.mesh.VertexCount())
				gl.DrawArrays(mode, 0, int32(count))
			}
		}
	}

	r.Bindings.finishDraw()
	gl.Disable(gl.BLEND)
	if r.DrawMode == ModePoints {
		gl.Disable(gl.PROGRAM_POINT_SIZE)
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.UseProgram(0)
	gl.BindVertexArray(0)
	gl.DeleteVertexArrays(1, &vao)
}
