// Package config persists the editable state of one shader view: the
// six stage sources and the draw parameters, as a flat TOML record.
package config

import (
	"io"

	"github.com/pelletier/go-toml/v2"
)

// Draw parameter defaults. Both values must be strictly positive;
// records carrying anything else fall back to these.
const (
	DefaultLineWidth = 3.0
	DefaultPointSize = 8.0
)

// Record is the flat key to value state of a shader view. Keys missing
// from a decoded document keep whatever value the record already holds,
// so loading on top of Default() yields defaults and loading on top of
// live state yields a partial update.
type Record struct {
	VertexShader            string `toml:"vertex_shader"`
	TessControlShader       string `toml:"tessellation_control_shader"`
	TessEvalShader          string `toml:"tessellation_evaluation_shader"`
	GeometryShader          string `toml:"geometry_shader"`
	FragmentShader          string `toml:"fragment_shader"`
	TransformFeedbackShader string `toml:"transform_feedback_shader"`

	LineWidth float64 `toml:"gl_line_width"`
	PointSize float64 `toml:"gl_point_size"`
	// DrawMode is the primitive topology as an integer. Interpretation
	// and range bounding belong to the renderer.
	DrawMode int `toml:"draw_mode"`
}

func Default() Record {
	return Record{
		LineWidth: DefaultLineWidth,
		PointSize: DefaultPointSize,
	}
}

// Read decodes a TOML document on top of the record and sanitizes the
// draw parameters.
func (rec *Record) Read(r io.Reader) error {
	if err := toml.NewDecoder(r).Decode(rec); err != nil {
		return err
	}
	if !(rec.LineWidth > 0) {
		rec.LineWidth = DefaultLineWidth
	}
	if !(rec.PointSize > 0) {
		rec.PointSize = DefaultPointSize
	}
	return nil
}

// Write encodes the record as a TOML document.
func (rec *Record) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(rec)
}
