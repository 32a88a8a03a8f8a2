package renderer

import (
	"runtime"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// initTestGL makes a GL context current for the calling test, skipping
// the test when no display or GL driver is available.
func initTestGL(t *testing.T) {
	t.Helper()
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		t.Skipf("no GLFW: %v", err)
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	win, err := glfw.CreateWindow(1, 1, "test", nil, nil)
	if err != nil {
		glfw.Terminate()
		t.Skipf("no window: %v", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		t.Skipf("no GL: %v", err)
	}
	t.Cleanup(func() {
		win.Destroy()
		glfw.Terminate()
	})
}
