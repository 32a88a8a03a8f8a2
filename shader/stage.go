package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Stage identifies one shader unit within a program.
type Stage int

const (
	// StageNone marks diagnostics that concern the whole program rather
	// than a single stage, such as link failures.
	StageNone Stage = iota - 1

	StageVertex
	StageTessControl
	StageTessEval
	StageGeometry
	StageFragment
	// StageTransformFeedbackVertex is compiled with the GL vertex shader
	// type but kept as its own slot so a feedback variant can coexist
	// with the regular vertex source.
	StageTransformFeedbackVertex

	numStages
)

// allStages lists the stages in the order used for compilation and for
// declaration queries.
var allStages = [numStages]Stage{
	StageVertex,
	StageTessControl,
	StageTessEval,
	StageGeometry,
	StageFragment,
	StageTransformFeedbackVertex,
}

// exportOrder is the fixed section order of exported shader files.
var exportOrder = [numStages]Stage{
	StageTransformFeedbackVertex,
	StageVertex,
	StageGeometry,
	StageTessControl,
	StageTessEval,
	StageFragment,
}

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageTessControl:
		return "tessellation control"
	case StageTessEval:
		return "tessellation evaluation"
	case StageGeometry:
		return "geometry"
	case StageFragment:
		return "fragment"
	case StageTransformFeedbackVertex:
		return "transform feedback vertex"
	}
	return "program"
}

func (s Stage) glEnum() uint32 {
	switch s {
	case StageVertex, StageTransformFeedbackVertex:
		return gl.VERTEX_SHADER
	case StageTessControl:
		return gl.TESS_CONTROL_SHADER
	case StageTessEval:
		return gl.TESS_EVALUATION_SHADER
	case StageGeometry:
		return gl.GEOMETRY_SHADER
	case StageFragment:
		return gl.FRAGMENT_SHADER
	}
	return 0
}
