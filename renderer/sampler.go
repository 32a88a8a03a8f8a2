package renderer

import (
	"image"
	"image/draw"
	"os"

	// Texture images may come in whatever format the user happens to
	// have on disk.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glslview/glslview/recycle"
)

// samplerCacheSize bounds the texture cache. Scene updates clear and
// re-add bindings wholesale, so textures are cached by path across
// clears; the bound keeps an editing session from pinning every image
// ever referenced.
const samplerCacheSize = 10

type cachedTexture struct {
	path string
	id   uint32
	// loaded is set after the first decode attempt, successful or not.
	// A failed decode stays failed until the entry is evicted.
	loaded bool
}

// textureCache is a small recency cache of decoded sampler textures,
// keyed by image path. Most recently used entries are kept at the tail.
type textureCache struct {
	bin     *recycle.Bin
	maxSize int
	entries []*cachedTexture
}

func newTextureCache(maxSize int, bin *recycle.Bin) *textureCache {
	return &textureCache{bin: bin, maxSize: maxSize}
}

func (c *textureCache) len() int {
	return len(c.entries)
}

func (c *textureCache) lookup(path string) *cachedTexture {
	for i, e := range c.entries {
		if e.path == path {
			c.entries = append(append(c.entries[:i:i], c.entries[i+1:]...), e)
			return e
		}
	}
	return nil
}

// add marks path as recently used, inserting a new entry if needed. When
// the cache overflows, the least recently used entry is evicted and its
// texture queued for deletion.
func (c *textureCache) add(path string) {
	if e := c.lookup(path); e != nil {
		return
	}
	c.entries = append(c.entries, &cachedTexture{path: path})
	if len(c.entries) > c.maxSize {
		c.bin.AddTexture(c.entries[0].id)
		c.entries = c.entries[1:]
	}
}

// texture returns the GL texture for path, decoding and uploading the
// image on first use. It returns 0 when the image cannot be decoded; the
// caller skips the binding for that frame. The GL context must be
// current.
func (c *textureCache) texture(path string) uint32 {
	e := c.lookup(path)
	if e == nil {
		// Resolution without a prior add; cache it now.
		c.add(path)
		e = c.lookup(path)
	}
	if !e.loaded {
		e.loaded = true
		e.id = loadTexture(path)
	}
	return e.id
}

// loadTexture decodes the image at path into a 2D texture with mipmaps,
// repeat wrapping and linear mipmap filtering. It returns 0 on any
// decode failure.
func loadTexture(path string) uint32 {
	fd, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer fd.Close()
	img, _, err := image.Decode(fd)
	if err != nil {
		return 0
	}

	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
		draw.Draw(rgba, img.Bounds(), img, image.Point{}, draw.Over)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(img.Bounds().Dx()),
		int32(img.Bounds().Dy()),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}
