package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Attribute is a named per-vertex input binding. A single-element
// payload is uploaded as a constant attribute with the array disabled; a
// longer payload is uploaded once into a lazily created buffer and bound
// as a per-vertex array.
type Attribute struct {
	Name string
	Kind Kind

	Ints   []int32
	Floats []float32
	Vec3s  []Vec3
	Vec4s  []Vec4

	vbo uint32
}

func (b *Bindings) AddAttributeInt(name string, values ...int32) {
	b.attribs = append(b.attribs, Attribute{Name: name, Kind: KindInt, Ints: values})
}

func (b *Bindings) AddAttributeFloat(name string, values ...float32) {
	b.attribs = append(b.attribs, Attribute{Name: name, Kind: KindFloat, Floats: values})
}

func (b *Bindings) AddAttributeVec3(name string, values ...Vec3) {
	b.attribs = append(b.attribs, Attribute{Name: name, Kind: KindVec3, Vec3s: values})
}

func (b *Bindings) AddAttributeVec4(name string, values ...Vec4) {
	b.attribs = append(b.attribs, Attribute{Name: name, Kind: KindVec4, Vec4s: values})
}

// ClearAttributes drops all attribute bindings, routing their buffers
// through the recycle bin.
func (b *Bindings) ClearAttributes() {
	for i := range b.attribs {
		b.bin.AddBuffer(b.attribs[i].vbo)
	}
	b.attribs = nil
}

func (a *Attribute) elementCount() int {
	switch a.Kind {
	case KindInt:
		return len(a.Ints)
	case KindFloat:
		return len(a.Floats)
	case KindVec3:
		return len(a.Vec3s)
	case KindVec4:
		return len(a.Vec4s)
	}
	return 0
}

func (a *Attribute) components() int32 {
	switch a.Kind {
	case KindVec3:
		return 3
	case KindVec4:
		return 4
	}
	return 1
}

func (a *Attribute) floatData() []float32 {
	switch a.Kind {
	case KindFloat:
		return a.Floats
	case KindVec3:
		return flattenVec3(a.Vec3s)
	case KindVec4:
		return flattenVec4(a.Vec4s)
	}
	return nil
}

// resolveAttributes looks up and binds every attribute binding against
// the given program. Undeclared names are skipped, as are array bindings
// whose payload is shorter than the declared length. A vertex array
// object must be bound.
func (b *Bindings) resolveAttributes(program uint32) {
	for i := range b.attribs {
		a := &b.attribs[i]
		base, count, isArray := splitArrayName(a.Name)
		loc := gl.GetAttribLocation(program, gl.Str(base+"\x00"))
		if loc < 0 {
			continue
		}
		n := a.elementCount()
		if n == 0 {
			continue
		}
		if isArray && (count == 0 || n < count) {
			continue
		}

		if n == 1 {
			gl.DisableVertexAttribArray(uint32(loc))
			switch a.Kind {
			case KindInt:
				gl.VertexAttribI1i(uint32(loc), a.Ints[0])
			case KindFloat:
				gl.VertexAttrib1f(uint32(loc), a.Floats[0])
			case KindVec3:
				v := a.Vec3s[0]
				gl.VertexAttrib3f(uint32(loc), v[0], v[1], v[2])
			case KindVec4:
				v := a.Vec4s[0]
				gl.VertexAttrib4f(uint32(loc), v[0], v[1], v[2], v[3])
			}
			continue
		}

		if a.vbo == 0 {
			gl.GenBuffers(1, &a.vbo)
			gl.BindBuffer(gl.ARRAY_BUFFER, a.vbo)
			if a.Kind == KindInt {
				gl.BufferData(gl.ARRAY_BUFFER, 4*len(a.Ints), gl.Ptr(a.Ints), gl.STATIC_DRAW)
			} else {
				data := a.floatData()
				gl.BufferData(gl.ARRAY_BUFFER, 4*len(data), gl.Ptr(data), gl.STATIC_DRAW)
			}
		} else {
			gl.BindBuffer(gl.ARRAY_BUFFER, a.vbo)
		}
		b.enableArray(uint32(loc))
		if a.Kind == KindInt {
			gl.VertexAttribIPointer(uint32(loc), 1, gl.INT, 0, nil)
		} else {
			gl.VertexAttribPointer(uint32(loc), a.components(), gl.FLOAT, false, 0, nil)
		}
	}
}

// drawCount reconciles the element count for non-indexed draws: the
// minimum length over attribute arrays longer than one element, or
// fallback when every binding is constant.
func (b *Bindings) drawCount(fallback int) int {
	count := fallback
	found := false
	for i := range b.attribs {
		n := b.attribs[i].elementCount()
		if n <= 1 {
			continue
		}
		if !found || n < count {
			count = n
			found = true
		}
	}
	return count
}
