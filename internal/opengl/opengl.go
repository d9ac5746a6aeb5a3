package opengl

import (
	"fmt"

	"github.com/ThatOtherAndrew/Tinsel/internal/models"
	"github.com/ThatOtherAndrew/Tinsel/internal/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// App holds the GL program shared by every points object.
type App struct {
	Program  uint32
	uniforms map[string]int32
}

func New() *App {
	return &App{uniforms: make(map[string]int32)}
}

// InitGL loads the GL entry points for the current context and builds the
// points program. A GL context must be current on the calling thread.
func (a *App) InitGL() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialise OpenGL: %w", err)
	}

	program, err := shaders.LinkProgram(shaders.PointsVertex, shaders.PointsFragment)
	if err != nil {
		return fmt.Errorf("points program: %w", err)
	}
	a.Program = program

	for _, name := range shaders.Uniforms {
		a.uniforms[name] = gl.GetUniformLocation(a.Program, gl.Str(name+"\x00"))
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(false)

	return nil
}

// Uniform returns the location of a points program uniform, or -1.
func (a *App) Uniform(name string) int32 {
	if loc, ok := a.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (a *App) Delete() {
	if a.Program != 0 {
		gl.DeleteProgram(a.Program)
		a.Program = 0
	}
}

// Points is the GPU side of one particle buffer. Positions live in a dynamic
// buffer so they can be re-uploaded each frame; colours are static.
type Points struct {
	VAO         uint32
	PositionVBO uint32
	ColorVBO    uint32
	Count       int32
}

func NewPoints(buf models.ParticleBuffer) *Points {
	p := &Points{Count: int32(buf.Len())}

	gl.GenVertexArrays(1, &p.VAO)
	gl.BindVertexArray(p.VAO)

	gl.GenBuffers(1, &p.PositionVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.PositionVBO)
	bufferData(buf.Positions, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	if len(buf.Colors) >= len(buf.Positions) && len(buf.Colors) > 0 {
		gl.GenBuffers(1, &p.ColorVBO)
		gl.BindBuffer(gl.ARRAY_BUFFER, p.ColorVBO)
		bufferData(buf.Colors, gl.STATIC_DRAW)
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 3*4, nil)
		gl.EnableVertexAttribArray(1)
	} else {
		gl.DisableVertexAttribArray(1)
		gl.VertexAttrib3f(1, 1, 1, 1)
	}

	gl.BindVertexArray(0)
	return p
}

// Upload replaces the position buffer contents. The slice must not grow
// past the original particle count.
func (p *Points) Upload(positions []float32) {
	if len(positions) == 0 {
		return
	}
	n := min(len(positions), int(p.Count)*3)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.PositionVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, n*4, gl.Ptr(positions[:n]))
}

func (p *Points) Draw() {
	if p.Count == 0 {
		return
	}
	gl.BindVertexArray(p.VAO)
	gl.DrawArrays(gl.POINTS, 0, p.Count)
	gl.BindVertexArray(0)
}

func (p *Points) Delete() {
	gl.DeleteBuffers(1, &p.PositionVBO)
	if p.ColorVBO != 0 {
		gl.DeleteBuffers(1, &p.ColorVBO)
	}
	gl.DeleteVertexArrays(1, &p.VAO)
}

func bufferData(data []float32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, usage)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), usage)
}
