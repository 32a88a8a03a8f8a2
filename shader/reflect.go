package shader

import (
	"regexp"
	"strconv"
)

// Shader inputs are declared in user-editable source, so their names and
// types are unknown until the text is inspected. The declarations are
// scanned straight out of the source; this works on uncompilable text,
// which matters while the user is mid-edit.

type UniformDecl struct {
	Name string
	Type string
	// ArrayLen is the declared element count, or 0 for non-arrays.
	ArrayLen int
}

type AttributeDecl struct {
	Name string
	Type string
	// Location is the declared layout location, or -1 when the shader
	// leaves the assignment to the linker.
	Location int
}

var (
	uniformDeclRe = regexp.MustCompile(
		`(?m)^\s*uniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
	attributeDeclRe = regexp.MustCompile(
		`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?(?:attribute|in)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*;`)
)

// scanUniforms lists the uniform declarations of a single source text in
// order of appearance.
func scanUniforms(source string) []UniformDecl {
	matches := uniformDeclRe.FindAllStringSubmatch(source, -1)
	decls := make([]UniformDecl, 0, len(matches))
	for _, m := range matches {
		d := UniformDecl{Type: m[1], Name: m[2]}
		if m[3] != "" {
			d.ArrayLen, _ = strconv.Atoi(m[3])
		}
		decls = append(decls, d)
	}
	return decls
}

// scanAttributes lists the per-vertex input declarations of a single
// source text in order of appearance.
func scanAttributes(source string) []AttributeDecl {
	matches := attributeDeclRe.FindAllStringSubmatch(source, -1)
	decls := make([]AttributeDecl, 0, len(matches))
	for _, m := range matches {
		d := AttributeDecl{Type: m[2], Name: m[3], Location: -1}
		if m[1] != "" {
			d.Location, _ = strconv.Atoi(m[1])
		}
		decls = append(decls, d)
	}
	return decls
}

// Uniforms lists the uniform declarations of one stage.
func (ss *StageSet) Uniforms(stage Stage) []UniformDecl {
	return scanUniforms(ss.shaders[stage].source)
}

// Attributes lists the per-vertex input declarations of one stage.
func (ss *StageSet) Attributes(stage Stage) []AttributeDecl {
	return scanAttributes(ss.shaders[stage].source)
}

// UniformType looks up the declared type of a uniform by name across all
// stages. When stages disagree, the first declaration in stage order
// wins. The second return value is false when no stage declares the
// name.
func (ss *StageSet) UniformType(name string) (string, bool) {
	for _, stage := range allStages {
		for _, d := range scanUniforms(ss.shaders[stage].source) {
			if d.Name == name {
				return d.Type, true
			}
		}
	}
	return "", false
}

// AttributeInfo looks up a per-vertex input by name across all stages,
// first declaration in stage order wins. The boolean is false when no
// stage declares the name.
func (ss *StageSet) AttributeInfo(name string) (AttributeDecl, bool) {
	for _, stage := range allStages {
		for _, d := range scanAttributes(ss.shaders[stage].source) {
			if d.Name == name {
				return d, true
			}
		}
	}
	return AttributeDecl{}, false
}
