package main

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glslview/glslview/renderer"
)

// The viewer supplies a fixed set of built-in uniforms. Shaders declare
// the ones they want; the rest resolve to location -1 and are skipped by
// the upload helpers.
func registerBuiltins(r *renderer.Renderer) {
	r.AddBuiltin(func(program uint32, frame *renderer.FrameContext) {
		if loc := uniformLocation(program, "view"); loc != -1 {
			gl.UniformMatrix4fv(loc, 1, false, &frame.View[0])
		}
	})
	r.AddBuiltin(func(program uint32, frame *renderer.FrameContext) {
		if loc := uniformLocation(program, "projection"); loc != -1 {
			gl.UniformMatrix4fv(loc, 1, false, &frame.Projection[0])
		}
	})
	r.AddBuiltin(func(program uint32, frame *renderer.FrameContext) {
		if loc := uniformLocation(program, "cameraPosition"); loc != -1 {
			p := frame.CameraPosition
			gl.Uniform3f(loc, p[0], p[1], p[2])
		}
	})
	r.AddBuiltin(func(program uint32, frame *renderer.FrameContext) {
		if loc := uniformLocation(program, "time"); loc != -1 {
			gl.Uniform1f(loc, float32(frame.Time))
		}
	})
	r.AddBuiltin(func(program uint32, frame *renderer.FrameContext) {
		if loc := uniformLocation(program, "resolution"); loc != -1 {
			gl.Uniform2f(loc, float32(frame.Viewport[2]), float32(frame.Viewport[3]))
		}
	})
}

func uniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func newFrame(w, h int, t float64, frameNum uint64) renderer.FrameContext {
	eye := renderer.Vec3{0, 0, 2.5}
	return renderer.FrameContext{
		Viewport:       [4]int32{0, 0, int32(w), int32(h)},
		View:           lookAt(eye, renderer.Vec3{0, 0, 0}, renderer.Vec3{0, 1, 0}),
		Projection:     perspective(math32.Pi/4, float32(w)/float32(h), 0.1, 100),
		CameraPosition: eye,
		Time:           t,
		Frame:          frameNum,
	}
}

// perspective builds a column-major perspective projection matrix.
func perspective(fovy, aspect, near, far float32) [16]float32 {
	f := 1 / math32.Tan(fovy/2)
	return [16]float32{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), -1,
		0, 0, 2 * far * near / (near - far), 0,
	}
}

// lookAt builds a column-major view matrix.
func lookAt(eye, center, up renderer.Vec3) [16]float32 {
	fwd := normalize(sub(center, eye))
	side := normalize(cross(fwd, up))
	u := cross(side, fwd)
	return [16]float32{
		side[0], u[0], -fwd[0], 0,
		side[1], u[1], -fwd[1], 0,
		side[2], u[2], -fwd[2], 0,
		-dot(side, eye), -dot(u, eye), dot(fwd, eye), 1,
	}
}

func sub(a, b renderer.Vec3) renderer.Vec3 {
	return renderer.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, b renderer.Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b renderer.Vec3) renderer.Vec3 {
	return renderer.Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v renderer.Vec3) renderer.Vec3 {
	n := math32.Sqrt(dot(v, v))
	if n == 0 {
		return v
	}
	return renderer.Vec3{v[0] / n, v[1] / n, v[2] / n}
}
