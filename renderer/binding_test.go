package renderer

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glslview/glslview/recycle"
	"github.com/glslview/glslview/shader"
)

func TestSplitArrayName(t *testing.T) {
	for _, tt := range []struct {
		name    string
		base    string
		n       int
		isArray bool
	}{
		{"u", "u", 0, false},
		{"u[3]", "u", 3, true},
		{"weights[12]", "weights", 12, true},
		{"u[]", "u[]", 0, false},
		{"u[x]", "u[x]", 0, false},
		{"[3]", "[3]", 0, false},
	} {
		base, n, isArray := splitArrayName(tt.name)
		if base != tt.base || n != tt.n || isArray != tt.isArray {
			t.Errorf("splitArrayName(%q) = (%q, %d, %v), want (%q, %d, %v)",
				tt.name, base, n, isArray, tt.base, tt.n, tt.isArray)
		}
	}
}

func TestDrawCountReconciliation(t *testing.T) {
	b := NewBindings(recycle.NewBin())

	// No attribute arrays: fallback wins.
	if got := b.drawCount(7); got != 7 {
		t.Fatalf("drawCount=%d, want 7", got)
	}

	// Constant bindings do not participate.
	b.AddAttributeFloat("weight", 0.5)
	if got := b.drawCount(7); got != 7 {
		t.Fatalf("drawCount=%d, want 7", got)
	}

	// The shortest array longer than one element wins.
	b.AddAttributeVec3("pos", make([]Vec3, 5)...)
	b.AddAttributeFloat("alpha", make([]float32, 3)...)
	if got := b.drawCount(7); got != 3 {
		t.Fatalf("drawCount=%d, want 3", got)
	}
}

func TestClearAttributesRecyclesBuffers(t *testing.T) {
	bin := recycle.NewBin()
	b := NewBindings(bin)
	b.AddAttributeVec3("pos", make([]Vec3, 4)...)
	b.attribs[0].vbo = 99 // as if a draw had created it

	b.ClearAttributes()
	if len(b.attribs) != 0 {
		t.Fatalf("attributes must be cleared")
	}
	if bin.Pending() != 1 {
		t.Fatalf("vbo must be queued for deletion, pending=%d", bin.Pending())
	}
}

func TestDuplicateBindingsAccumulate(t *testing.T) {
	b := NewBindings(recycle.NewBin())
	b.AddUniformFloat("u", 1)
	b.AddUniformFloat("u", 2)
	if len(b.uniforms) != 2 {
		t.Fatalf("duplicates must coexist, got %d bindings", len(b.uniforms))
	}
	b.ClearUniforms()
	if len(b.uniforms) != 0 {
		t.Fatalf("uniforms must be cleared")
	}
}

func TestArrayUniformUpload(t *testing.T) {
	initTestGL(t)

	bin := recycle.NewBin()
	p := shader.NewProgram(bin)
	p.Stages.SetSource(shader.StageVertex,
		"uniform float u[3];\nvoid main(){gl_Position=vec4(u[0]+u[1]+u[2]);}")
	p.Stages.SetSource(shader.StageFragment, "void main(){gl_FragColor=vec4(1);}")
	if !p.EnsureCompiled() {
		t.Fatalf("link failed: %v", p.Diagnostics())
	}
	program := p.Handle()
	gl.UseProgram(program)

	readBack := func() [3]float32 {
		var vals [3]float32
		for i, name := range []string{"u[0]\x00", "u[1]\x00", "u[2]\x00"} {
			loc := gl.GetUniformLocation(program, gl.Str(name))
			if loc == -1 {
				t.Fatalf("uniform element %d not found", i)
			}
			gl.GetUniformfv(program, loc, &vals[i])
		}
		return vals
	}

	// Over-supplied payload: exactly the declared length is uploaded.
	b := NewBindings(bin)
	b.AddUniformFloat("u[3]", 1, 2, 3, 4, 5)
	b.resolveUniforms(program)
	if got := readBack(); got != [3]float32{1, 2, 3} {
		t.Fatalf("got %v, want [1 2 3]", got)
	}

	// Under-supplied payload: skipped entirely, nothing partial.
	b = NewBindings(bin)
	b.AddUniformFloat("u[3]", 9, 9)
	b.resolveUniforms(program)
	if got := readBack(); got != [3]float32{1, 2, 3} {
		t.Fatalf("under-supplied array must not upload, got %v", got)
	}

	// An unresolved name is skipped silently.
	b = NewBindings(bin)
	b.AddUniformFloat("doesNotExist", 1)
	b.resolveUniforms(program)
}

func TestEmptyArrayBindingIsSkipped(t *testing.T) {
	initTestGL(t)

	bin := recycle.NewBin()
	p := shader.NewProgram(bin)
	p.Stages.SetSource(shader.StageVertex,
		"uniform float u[3];\nvoid main(){gl_Position=vec4(u[0]+u[1]+u[2]);}")
	p.Stages.SetSource(shader.StageFragment, "void main(){gl_FragColor=vec4(1);}")
	if !p.EnsureCompiled() {
		t.Fatalf("link failed: %v", p.Diagnostics())
	}
	program := p.Handle()
	gl.UseProgram(program)

	// A zero declared length with an empty payload resolves to a real
	// location but must be skipped, for every payload kind.
	b := NewBindings(bin)
	b.AddUniformFloat("u[0]")
	b.AddUniformInt("u[0]")
	b.AddUniformVec3("u[0]")
	b.AddUniformVec4("u[0]")
	b.AddUniformFloat("u[3]")
	b.resolveUniforms(program)
}

func TestUnderSuppliedAttributeArrayIsSkipped(t *testing.T) {
	initTestGL(t)

	bin := recycle.NewBin()
	p := shader.NewProgram(bin)
	p.Stages.SetSource(shader.StageVertex,
		"attribute vec3 pos;\nvoid main(){gl_Position=vec4(pos,1);}")
	p.Stages.SetSource(shader.StageFragment, "void main(){gl_FragColor=vec4(1);}")
	if !p.EnsureCompiled() {
		t.Fatalf("link failed: %v", p.Diagnostics())
	}
	program := p.Handle()
	gl.UseProgram(program)

	b := NewBindings(bin)
	b.AddAttributeVec3("pos[4]", make([]Vec3, 2)...)
	b.resolveAttributes(program)
	if b.attribs[0].vbo != 0 {
		t.Fatalf("under-supplied attribute array must not upload")
	}

	b.ClearAttributes()
	b.AddAttributeVec3("pos[0]", make([]Vec3, 2)...)
	b.resolveAttributes(program)
	if b.attribs[0].vbo != 0 {
		t.Fatalf("zero-length attribute array must not upload")
	}

	b.ClearAttributes()
	b.AddAttributeVec3("pos[4]", make([]Vec3, 4)...)
	b.resolveAttributes(program)
	if b.attribs[0].vbo == 0 {
		t.Fatalf("fully supplied attribute array must upload")
	}
	b.finishDraw()
	b.ClearAttributes()
	bin.Flush()
}

func TestScalarUniformUpload(t *testing.T) {
	initTestGL(t)

	bin := recycle.NewBin()
	p := shader.NewProgram(bin)
	p.Stages.SetSource(shader.StageVertex,
		"uniform vec3 tint;\nvoid main(){gl_Position=vec4(tint,1);}")
	p.Stages.SetSource(shader.StageFragment, "void main(){gl_FragColor=vec4(1);}")
	if !p.EnsureCompiled() {
		t.Fatalf("link failed: %v", p.Diagnostics())
	}
	program := p.Handle()
	gl.UseProgram(program)

	b := NewBindings(bin)
	b.AddUniformVec3("tint", Vec3{0.25, 0.5, 0.75})
	b.resolveUniforms(program)

	loc := gl.GetUniformLocation(program, gl.Str("tint\x00"))
	var vals [3]float32
	gl.GetUniformfv(program, loc, &vals[0])
	if vals != [3]float32{0.25, 0.5, 0.75} {
		t.Fatalf("got %v", vals)
	}
}
