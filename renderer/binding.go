// Package renderer uploads caller-supplied named values into a linked
// shader program and issues the draw calls that consume them.
//
// Shader inputs are unknown until the user's source compiles, so every
// binding is resolved by name at draw time. A name the program does not
// declare is skipped silently: binding sets intentionally over-supply
// names so that shader variants can pick what they use.
package renderer

import (
	"regexp"
	"strconv"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glslview/glslview/recycle"
)

// Kind tags the payload type a binding carries.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindVec3
	KindVec4
	KindSampler
)

type Vec3 [3]float32

type Vec4 [4]float32

// Uniform is one named value scheduled for upload. Exactly one payload
// slice is populated, selected by Kind.
type Uniform struct {
	Name string
	Kind Kind

	Ints   []int32
	Floats []float32
	Vec3s  []Vec3
	Vec4s  []Vec4
	// Path is the image file backing a sampler binding.
	Path string
}

// Bindings accumulates the uniform and attribute values for the current
// draw cycle. Bindings do not overwrite by name: duplicates coexist in
// insertion order and are cleared in bulk between scene updates. The
// sampler texture cache survives clears so that rebuilding geometry does
// not re-decode unchanged images.
type Bindings struct {
	bin      *recycle.Bin
	uniforms []Uniform
	attribs  []Attribute
	samplers *textureCache

	// locations enabled as vertex arrays during the current draw, to be
	// disabled when the draw finishes.
	enabled []uint32
}

func NewBindings(bin *recycle.Bin) *Bindings {
	return &Bindings{
		bin:      bin,
		samplers: newTextureCache(samplerCacheSize, bin),
	}
}

func (b *Bindings) AddUniformInt(name string, values ...int32) {
	b.uniforms = append(b.uniforms, Uniform{Name: name, Kind: KindInt, Ints: values})
}

func (b *Bindings) AddUniformFloat(name string, values ...float32) {
	b.uniforms = append(b.uniforms, Uniform{Name: name, Kind: KindFloat, Floats: values})
}

func (b *Bindings) AddUniformVec3(name string, values ...Vec3) {
	b.uniforms = append(b.uniforms, Uniform{Name: name, Kind: KindVec3, Vec3s: values})
}

func (b *Bindings) AddUniformVec4(name string, values ...Vec4) {
	b.uniforms = append(b.uniforms, Uniform{Name: name, Kind: KindVec4, Vec4s: values})
}

// AddSampler binds the image at path to the named sampler uniform. The
// image is decoded and uploaded lazily at first draw.
func (b *Bindings) AddSampler(name, path string) {
	b.samplers.add(path)
	b.uniforms = append(b.uniforms, Uniform{Name: name, Kind: KindSampler, Path: path})
}

// ClearUniforms drops all uniform bindings. Cached sampler textures are
// retained.
func (b *Bindings) ClearUniforms() {
	b.uniforms = nil
}

// Array bindings declare their length with a bracketed name suffix,
// "weights[4]".
var arraySuffixRe = regexp.MustCompile(`^(.+)\[(\d+)\]$`)

// splitArrayName splits "weights[4]" into "weights" and 4. isArray is
// false for names without a bracketed length suffix.
func splitArrayName(name string) (base string, n int, isArray bool) {
	m := arraySuffixRe.FindStringSubmatch(name)
	if m == nil {
		return name, 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return name, 0, false
	}
	return m[1], n, true
}

// resolveUniforms looks up and uploads every uniform binding against the
// given program. Bound samplers occupy sequential texture units from 0
// in binding order. The program must be in use.
func (b *Bindings) resolveUniforms(program uint32) {
	var unit int32
	for i := range b.uniforms {
		u := &b.uniforms[i]
		base, count, isArray := splitArrayName(u.Name)
		loc := gl.GetUniformLocation(program, gl.Str(base+"\x00"))
		if loc == -1 {
			continue
		}

		switch u.Kind {
		case KindInt:
			switch {
			case !isArray || len(u.Ints) == 1:
				if len(u.Ints) > 0 {
					gl.Uniform1i(loc, u.Ints[0])
				}
			case count > 0 && len(u.Ints) >= count:
				gl.Uniform1iv(loc, int32(count), &u.Ints[0])
			}
		case KindFloat:
			switch {
			case !isArray || len(u.Floats) == 1:
				if len(u.Floats) > 0 {
					gl.Uniform1f(loc, u.Floats[0])
				}
			case count > 0 && len(u.Floats) >= count:
				gl.Uniform1fv(loc, int32(count), &u.Floats[0])
			}
		case KindVec3:
			switch {
			case !isArray || len(u.Vec3s) == 1:
				if len(u.Vec3s) > 0 {
					v := u.Vec3s[0]
					gl.Uniform3f(loc, v[0], v[1], v[2])
				}
			case count > 0 && len(u.Vec3s) >= count:
				flat := flattenVec3(u.Vec3s[:count])
				gl.Uniform3fv(loc, int32(count), &flat[0])
			}
		case KindVec4:
			switch {
			case !isArray || len(u.Vec4s) == 1:
				if len(u.Vec4s) > 0 {
					v := u.Vec4s[0]
					gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
				}
			case count > 0 && len(u.Vec4s) >= count:
				flat := flattenVec4(u.Vec4s[:count])
				gl.Uniform4fv(loc, int32(count), &flat[0])
			}
		case KindSampler:
			tex := b.samplers.texture(u.Path)
			if tex == 0 {
				// Decode failed; this input stays unset for the frame.
				continue
			}
			gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
			gl.BindTexture(gl.TEXTURE_2D, tex)
			gl.Uniform1i(loc, unit)
			unit++
		}
	}
}

func flattenVec3(vs []Vec3) []float32 {
	flat := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		flat = append(flat, v[0], v[1], v[2])
	}
	return flat
}

func flattenVec4(vs []Vec4) []float32 {
	flat := make([]float32, 0, len(vs)*4)
	for _, v := range vs {
		flat = append(flat, v[0], v[1], v[2], v[3])
	}
	return flat
}

func (b *Bindings) enableArray(loc uint32) {
	gl.EnableVertexAttribArray(loc)
	b.enabled = append(b.enabled, loc)
}

// finishDraw disables every vertex array enabled since the last call,
// leaving global attribute state clean for the next consumer.
func (b *Bindings) finishDraw() {
	for _, loc := range b.enabled {
		gl.DisableVertexAttribArray(loc)
	}
	b.enabled = b.enabled[:0]
}
