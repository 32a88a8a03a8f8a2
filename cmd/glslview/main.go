package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/glslview/glslview/config"
	"github.com/glslview/glslview/recycle"
	"github.com/glslview/glslview/renderer"
	"github.com/glslview/glslview/shader"
)

func main() {
	log.SetOutput(os.Stderr)
	// GL contexts are bound to threads.
	runtime.LockOSThread()

	configFile := flag.String("c", "", "Load shader sources and draw parameters from a TOML record")
	vertFile := flag.String("vert", "", "Vertex shader source file")
	fragFile := flag.String("frag", "", "Fragment shader source file")
	geomFile := flag.String("geom", "", "Geometry shader source file")
	tessCtrlFile := flag.String("tessctrl", "", "Tessellation control shader source file")
	tessEvalFile := flag.String("tesseval", "", "Tessellation evaluation shader source file")
	tfFile := flag.String("tf", "", "Transform feedback vertex shader source file")
	geometry := flag.String("g", "800x600", "Window geometry in WIDTHxHEIGHT format")
	mode := flag.Int("mode", -1, "Override the draw mode")
	quad := flag.Bool("quad", true, "Draw a unit quad mesh")
	watch := flag.Bool("w", false, "Watch the shader source files for changes")
	verbose := flag.Bool("v", false, "Log OpenGL debug output")
	exportFile := flag.String("export", "", "On exit, export all stages to a single labeled text file")
	saveFile := flag.String("save", "", "On exit, save the current record to a TOML file")
	flag.Parse()

	var width, height int
	if _, err := fmt.Sscanf(*geometry, "%dx%d", &width, &height); err != nil {
		log.Fatalf("Invalid geometry %q", *geometry)
	}

	rec := config.Default()
	if *configFile != "" {
		fd, err := os.Open(*configFile)
		if err != nil {
			log.Fatalf("Could not open config: %v", err)
		}
		err = rec.Read(fd)
		fd.Close()
		if err != nil {
			log.Fatalf("Could not read config: %v", err)
		}
	}

	stageFiles := map[shader.Stage]string{}
	for stage, file := range map[shader.Stage]*string{
		shader.StageVertex:                  vertFile,
		shader.StageFragment:                fragFile,
		shader.StageGeometry:                geomFile,
		shader.StageTessControl:             tessCtrlFile,
		shader.StageTessEval:                tessEvalFile,
		shader.StageTransformFeedbackVertex: tfFile,
	} {
		if *file != "" {
			stageFiles[stage] = *file
		}
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("Could not initialize GLFW: %v", err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	win, err := glfw.CreateWindow(width, height, "glslview", nil, nil)
	if err != nil {
		log.Fatalf("Could not create window: %v", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	if err := gl.Init(); err != nil {
		log.Fatalf("Could not initialize OpenGL: %v", err)
	}

	if *verbose {
		debug := renderer.GLDebugOutput()
		go func() {
			for dm := range debug {
				if dm.Severity != gl.DEBUG_SEVERITY_NOTIFICATION {
					log.Printf("OpenGL %s: %s", dm.SeverityString(), dm.Message)
				}
			}
		}()
	}

	bin := recycle.NewBin()
	r := renderer.New(bin)
	applyRecord(r, &rec)
	if *mode >= 0 {
		r.DrawMode = renderer.Mode(*mode).Clamp()
	}

	// Sources given as files override the record.
	watched := map[string]shader.Stage{}
	for stage, file := range stageFiles {
		loadStage(r, stage, file, watched)
	}

	registerBuiltins(r)
	if *quad {
		r.Meshes.Add(unitQuad{})
	}

	var watcher *fsnotify.Watcher
	if *watch && len(watched) > 0 {
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			log.Fatalf("Could not watch files: %v", err)
		}
		defer watcher.Close()
		for file := range watched {
			if err := watcher.Add(file); err != nil {
				log.Printf("Could not watch %q: %v", file, err)
			}
		}
	}

	var lastDiags string
	start := time.Now()
	var frameNum uint64
	for !win.ShouldClose() {
		glfw.PollEvents()
		if watcher != nil {
			drainWatcher(watcher, r, stageFiles, watched)
		}

		w, h := win.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.1, 0.1, 0.1, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		frame := newFrame(w, h, time.Since(start).Seconds(), frameNum)
		r.Draw(&frame)
		frameNum++

		if diags := formatDiagnostics(r.Program.Diagnostics()); diags != lastDiags {
			lastDiags = diags
			if diags != "" {
				log.Print(diags)
			}
		}

		win.SwapBuffers()
	}

	if *exportFile != "" {
		fd, err := os.Create(*exportFile)
		if err != nil {
			log.Fatalf("Could not export shaders: %v", err)
		}
		err = r.Program.Stages.Export(fd)
		if cerr := fd.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			log.Fatalf("Could not export shaders: %v", err)
		}
	}
	if *saveFile != "" {
		snapshotRecord(r, &rec)
		fd, err := os.Create(*saveFile)
		if err != nil {
			log.Fatalf("Could not save record: %v", err)
		}
		err = rec.Write(fd)
		if cerr := fd.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			log.Fatalf("Could not save record: %v", err)
		}
	}
}

// loadStage reads a stage source file, resolving includes, and records
// every involved file for watching.
func loadStage(r *renderer.Renderer, stage shader.Stage, file string, watched map[string]shader.Stage) {
	source, files, err := loadSource(file)
	if err != nil {
		log.Printf("Could not load %s shader: %v", stage, err)
		return
	}
	r.Program.Stages.SetSource(stage, source)
	for _, f := range files {
		watched[f] = stage
	}
}

func drainWatcher(watcher *fsnotify.Watcher, r *renderer.Renderer, stageFiles map[shader.Stage]string, watched map[string]shader.Stage) {
	for {
		select {
		case ev := <-watcher.Events:
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			stage, ok := watched[ev.Name]
			if !ok {
				continue
			}
			// Reload from the stage's root file so include changes
			// propagate. SetSource is a no-op on identical text.
			loadStage(r, stage, stageFiles[stage], watched)
		case err := <-watcher.Errors:
			log.Printf("Watch error: %v", err)
		default:
			return
		}
	}
}

func applyRecord(r *renderer.Renderer, rec *config.Record) {
	ss := r.Program.Stages
	ss.SetSource(shader.StageVertex, rec.VertexShader)
	ss.SetSource(shader.StageTessControl, rec.TessControlShader)
	ss.SetSource(shader.StageTessEval, rec.TessEvalShader)
	ss.SetSource(shader.StageGeometry, rec.GeometryShader)
	ss.SetSource(shader.StageFragment, rec.FragmentShader)
	ss.SetSource(shader.StageTransformFeedbackVertex, rec.TransformFeedbackShader)
	r.LineWidth = float32(rec.LineWidth)
	r.PointSize = float32(rec.PointSize)
	r.DrawMode = renderer.Mode(rec.DrawMode).Clamp()
}

func snapshotRecord(r *renderer.Renderer, rec *config.Record) {
	ss := r.Program.Stages
	rec.VertexShader = ss.Source(shader.StageVertex)
	rec.TessControlShader = ss.Source(shader.StageTessControl)
	rec.TessEvalShader = ss.Source(shader.StageTessEval)
	rec.GeometryShader = ss.Source(shader.StageGeometry)
	rec.FragmentShader = ss.Source(shader.StageFragment)
	rec.TransformFeedbackShader = ss.Source(shader.StageTransformFeedbackVertex)
	rec.LineWidth = float64(r.LineWidth)
	rec.PointSize = float64(r.PointSize)
	rec.DrawMode = int(r.DrawMode)
}

func formatDiagnostics(diags []shader.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}
