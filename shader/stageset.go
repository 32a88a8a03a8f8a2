package shader

import (
	"fmt"
	"io"

	"github.com/glslview/glslview/recycle"
)

// StageSet holds one Shader per stage. Source edits invalidate the
// affected stage and notify the owning Program synchronously; there is
// exactly one listener, so no subscription machinery is needed.
type StageSet struct {
	bin     *recycle.Bin
	shaders [numStages]Shader

	onInvalidate func()
}

func NewStageSet(bin *recycle.Bin) *StageSet {
	ss := &StageSet{bin: bin}
	for i := range ss.shaders {
		ss.shaders[i].stage = Stage(i)
	}
	return ss
}

// Shader returns the stage's shader for inspection.
func (ss *StageSet) Shader(stage Stage) *Shader {
	return &ss.shaders[stage]
}

func (ss *StageSet) Source(stage Stage) string {
	return ss.shaders[stage].source
}

// SetSource replaces the stage's source text. Setting text identical to
// the current source is a no-op. Otherwise the stage's compiled object
// and diagnostics are dropped and the program is invalidated.
func (ss *StageSet) SetSource(stage Stage, text string) {
	sh := &ss.shaders[stage]
	if sh.source == text {
		return
	}
	sh.source = text
	sh.invalidate(ss.bin)
	if ss.onInvalidate != nil {
		ss.onInvalidate()
	}
}

// Diagnostics returns the compile diagnostics of all stages in stage
// order.
func (ss *StageSet) Diagnostics() []Diagnostic {
	var diags []Diagnostic
	for _, stage := range allStages {
		diags = append(diags, ss.shaders[stage].diags...)
	}
	return diags
}

// Export writes every non-empty stage to w as a labeled section. Empty
// optional stages are omitted entirely. The section order is fixed:
// transform feedback vertex, vertex, geometry, tessellation control,
// tessellation evaluation, fragment.
func (ss *StageSet) Export(w io.Writer) error {
	for _, stage := range exportOrder {
		src := ss.shaders[stage].source
		if src == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "[%s shader]\n%s\n\n", stage, src); err != nil {
			return err
		}
	}
	return nil
}
