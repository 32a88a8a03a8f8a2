// Package shader manages the lifecycle of a GL program assembled from
// user-editable per-stage sources: compiling, linking, invalidation on
// edit, and the diagnostics the driver reports along the way.
//
// Compile and link failures are collected as Diagnostics rather than
// returned as errors. A broken shader is a normal interactive state, not
// a reason to stop the render loop.
package shader

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glslview/glslview/recycle"
)

// Shader is a single stage: its source text, its compiled object and the
// diagnostics of the last compile attempt. Handle 0 means not compiled.
type Shader struct {
	stage  Stage
	source string
	handle uint32
	diags  []Diagnostic
}

func (sh *Shader) Stage() Stage { return sh.stage }

func (sh *Shader) Source() string { return sh.source }

// Handle returns the compiled shader object, or 0.
func (sh *Shader) Handle() uint32 { return sh.handle }

func (sh *Shader) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), sh.diags...)
}

// invalidate drops the compiled object and diagnostics. The old handle
// goes through the bin: invalidation is typically triggered by an edit
// notification with no context current.
func (sh *Shader) invalidate(bin *recycle.Bin) {
	bin.AddShader(sh.handle)
	sh.handle = 0
	sh.diags = nil
}

// compile compiles the stage's source. An already compiled stage and an
// empty optional stage both count as success. On failure the driver log
// is recorded as a diagnostic. The GL context must be current.
func (sh *Shader) compile() bool {
	if sh.handle != 0 {
		return true
	}
	if sh.source == "" {
		return true
	}
	sh.diags = nil

	handle := gl.CreateShader(sh.stage.glEnum())
	csources, free := gl.Strs(sh.source + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(handle, logLen, nil, gl.Str(log))
		gl.DeleteShader(handle)
		sh.diags = append(sh.diags, Diagnostic{
			Stage:   sh.stage,
			Message: strings.TrimRight(log, "\x00\n"),
			Markers: ParseLogMarkers(log),
		})
		return false
	}
	sh.handle = handle
	return true
}
