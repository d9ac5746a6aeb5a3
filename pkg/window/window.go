package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowError struct {
	msg string
	err error
}

func (e *WindowError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *WindowError) Unwrap() error {
	return e.err
}

// Window is a glfw window with a current OpenGL 4.1 core context. Create it
// and call its methods from the main OS thread.
type Window struct {
	win      *glfw.Window
	onResize func(width, height int)
}

func NewWindow(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, &WindowError{"failed to initialise glfw", err}
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &WindowError{fmt.Sprintf("failed to create %dx%d window", width, height), err}
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	w := &Window{win: win}

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	win.SetKeyCallback(func(gw *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press && key == glfw.KeyEscape {
			gw.SetShouldClose(true)
		}
	})

	return w, nil
}

// SetResizeCallback registers fn for framebuffer size changes. Sizes are in
// framebuffer pixels and may be zero while the window is minimised.
func (w *Window) SetResizeCallback(fn func(width, height int)) {
	w.onResize = fn
}

// GetSize returns the framebuffer size in pixels.
func (w *Window) GetSize() (int, int) {
	return w.win.GetFramebufferSize()
}

// PixelRatio is the framebuffer to window size ratio, above 1 on HiDPI screens.
func (w *Window) PixelRatio() float32 {
	fbWidth, _ := w.win.GetFramebufferSize()
	width, _ := w.win.GetSize()
	if width == 0 || fbWidth == 0 {
		return 1
	}
	return float32(fbWidth) / float32(width)
}

func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) Destroy() {
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
	glfw.Terminate()
}
