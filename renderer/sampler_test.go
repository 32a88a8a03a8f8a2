package renderer

import (
	"fmt"
	"testing"

	"github.com/glslview/glslview/recycle"
)

func (c *textureCache) contains(path string) bool {
	for _, e := range c.entries {
		if e.path == path {
			return true
		}
	}
	return false
}

func TestTextureCacheEvictsOldest(t *testing.T) {
	bin := recycle.NewBin()
	b := NewBindings(bin)

	paths := make([]string, 11)
	for i := range paths {
		paths[i] = fmt.Sprintf("tex%02d.png", i)
		b.AddSampler("tex", paths[i])
	}

	if got := b.samplers.len(); got != samplerCacheSize {
		t.Fatalf("cache holds %d entries, want %d", got, samplerCacheSize)
	}
	if b.samplers.contains(paths[0]) {
		t.Fatalf("the 11th distinct path must evict the oldest")
	}
	for _, p := range paths[1:] {
		if !b.samplers.contains(p) {
			t.Fatalf("path %q missing from cache", p)
		}
	}
}

func TestTextureCacheRefreshOnReuse(t *testing.T) {
	b := NewBindings(recycle.NewBin())

	for i := 0; i < samplerCacheSize; i++ {
		b.AddSampler("tex", fmt.Sprintf("tex%02d.png", i))
	}
	// Re-adding the oldest refreshes it; the next insert evicts the now
	// oldest entry instead.
	b.AddSampler("tex", "tex00.png")
	b.AddSampler("tex", "fresh.png")

	if !b.samplers.contains("tex00.png") {
		t.Fatalf("refreshed entry must survive")
	}
	if b.samplers.contains("tex01.png") {
		t.Fatalf("unrefreshed oldest entry must be evicted")
	}
}

func TestTextureCacheSurvivesUniformClear(t *testing.T) {
	b := NewBindings(recycle.NewBin())
	b.AddSampler("tex", "image.png")
	b.ClearUniforms()
	if !b.samplers.contains("image.png") {
		t.Fatalf("sampler cache must survive uniform clears")
	}
}

func TestEvictedTextureIsRecycled(t *testing.T) {
	bin := recycle.NewBin()
	c := newTextureCache(2, bin)
	c.add("a.png")
	c.add("b.png")
	c.entries[0].id = 7 // as if a.png had been decoded
	c.add("c.png")
	if c.contains("a.png") {
		t.Fatalf("a.png must be evicted")
	}
	if bin.Pending() != 1 {
		t.Fatalf("evicted texture must be queued for deletion, pending=%d", bin.Pending())
	}
}

func TestSamplerDecodeFailureYieldsZero(t *testing.T) {
	// The failure path never reaches GL, so no context is needed.
	c := newTextureCache(samplerCacheSize, recycle.NewBin())
	if id := c.texture("does-not-exist.png"); id != 0 {
		t.Fatalf("missing file must yield texture 0, got %d", id)
	}
	// The failure is cached, not retried.
	if id := c.texture("does-not-exist.png"); id != 0 {
		t.Fatalf("cached failure must stay 0, got %d", id)
	}
}
