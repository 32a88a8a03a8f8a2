package config

import (
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	rec := Record{
		VertexShader:            "void main(){gl_Position=vec4(0);}",
		TessControlShader:       "tc",
		TessEvalShader:          "te",
		GeometryShader:          "geom",
		FragmentShader:          "void main(){gl_FragColor=vec4(1);}",
		TransformFeedbackShader: "tf",
		LineWidth:               2.5,
		PointSize:               9,
		DrawMode:                4,
	}

	var buf strings.Builder
	if err := rec.Write(&buf); err != nil {
		t.Fatal(err)
	}

	got := Default()
	if err := got.Read(strings.NewReader(buf.String())); err != nil {
		t.Fatal(err)
	}
	if got != rec {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, rec)
	}
}

func TestMissingKeysKeepDefaults(t *testing.T) {
	rec := Default()
	doc := "vertex_shader = \"v\"\n"
	if err := rec.Read(strings.NewReader(doc)); err != nil {
		t.Fatal(err)
	}
	if rec.VertexShader != "v" {
		t.Fatalf("vertex_shader not applied: %+v", rec)
	}
	if rec.LineWidth != DefaultLineWidth || rec.PointSize != DefaultPointSize {
		t.Fatalf("missing draw parameters must keep defaults: %+v", rec)
	}
	if rec.FragmentShader != "" {
		t.Fatalf("missing keys must keep current values: %+v", rec)
	}
}

func TestNonPositiveDrawParametersFallBack(t *testing.T) {
	rec := Default()
	doc := "gl_line_width = -1.0\ngl_point_size = 0.0\n"
	if err := rec.Read(strings.NewReader(doc)); err != nil {
		t.Fatal(err)
	}
	if rec.LineWidth != DefaultLineWidth {
		t.Fatalf("line width %v, want default %v", rec.LineWidth, DefaultLineWidth)
	}
	if rec.PointSize != DefaultPointSize {
		t.Fatalf("point size %v, want default %v", rec.PointSize, DefaultPointSize)
	}
}

func TestReadRejectsMalformedDocument(t *testing.T) {
	rec := Default()
	if err := rec.Read(strings.NewReader("not [valid toml")); err == nil {
		t.Fatalf("expected a decode error")
	}
}
