package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glslview/glslview/recycle"
)

// Diagnostic is one compile, link or missing-stage failure report.
type Diagnostic struct {
	// Stage is the stage the report concerns, or StageNone for link
	// failures.
	Stage   Stage
	Message string
	// Markers are source positions parsed out of the driver log, if any.
	Markers []LogMarker
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Stage, d.Message)
}

// Program owns the linked program object built from a StageSet.
//
// Shader edits are interactive and compilation is expensive, so the
// program distinguishes three states: not yet attempted (handle 0,
// failed false), linked (handle non-zero) and failed until the next
// source change (failed true). EnsureCompiled is called every frame and
// must be a no-op in all but the first state.
type Program struct {
	// Stages holds the per-stage sources this program links.
	Stages *StageSet

	bin    *recycle.Bin
	handle uint32
	failed bool
	diags  []Diagnostic
}

func NewProgram(bin *recycle.Bin) *Program {
	p := &Program{
		Stages: NewStageSet(bin),
		bin:    bin,
	}
	p.Stages.onInvalidate = p.invalidate
	return p
}

// Handle returns the linked program object. It is 0 unless the last
// build succeeded and no source changed since.
func (p *Program) Handle() uint32 {
	if p.failed {
		return 0
	}
	return p.handle
}

// Diagnostics returns the missing-stage and link diagnostics of the last
// build attempt followed by every stage's compile diagnostics.
func (p *Program) Diagnostics() []Diagnostic {
	return append(append([]Diagnostic(nil), p.diags...), p.Stages.Diagnostics()...)
}

// invalidate resets the program to the unlinked state. Called whenever
// any stage source changes; the old program object goes through the bin.
func (p *Program) invalidate() {
	p.bin.AddProgram(p.handle)
	p.handle = 0
	p.failed = false
	p.diags = nil
}

// EnsureCompiled makes sure a linked program exists, compiling and
// linking as needed, and reports whether one is available. A cached
// handle and a recorded failure both return immediately; a failure is
// not retried until a source changes. The GL context must be current.
func (p *Program) EnsureCompiled() bool {
	if p.handle != 0 {
		return true
	}
	if p.failed {
		return false
	}
	p.diags = nil

	// Vertex and fragment are mandatory. This is checked before any GL
	// call so that the failure is reported even without a context.
	ok := true
	for _, stage := range [...]Stage{StageVertex, StageFragment} {
		if p.Stages.Source(stage) == "" {
			p.diags = append(p.diags, Diagnostic{
				Stage:   stage,
				Message: fmt.Sprintf("a %s shader is required", stage),
			})
			ok = false
		}
	}
	if !ok {
		p.failed = true
		return false
	}

	// The context is current from here on; a good moment to drop
	// whatever earlier edits queued up.
	p.bin.Flush()

	for _, stage := range allStages {
		if !p.Stages.shaders[stage].compile() {
			ok = false
		}
	}
	if !ok {
		p.failed = true
		return false
	}

	program := gl.CreateProgram()
	var attached []uint32
	for _, stage := range allStages {
		if h := p.Stages.shaders[stage].handle; h != 0 {
			gl.AttachShader(program, h)
			attached = append(attached, h)
		}
	}
	gl.LinkProgram(program)
	for _, h := range attached {
		gl.DetachShader(program, h)
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		gl.DeleteProgram(program)
		p.diags = append(p.diags, Diagnostic{
			Stage:   StageNone,
			Message: strings.TrimRight(log, "\x00\n"),
			Markers: ParseLogMarkers(log),
		})
		p.failed = true
		return false
	}

	p.handle = program
	return true
}
