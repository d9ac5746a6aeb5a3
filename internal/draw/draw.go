package draw

import (
	"github.com/ThatOtherAndrew/Tinsel/internal/models"
	"github.com/ThatOtherAndrew/Tinsel/internal/opengl"
	"github.com/ThatOtherAndrew/Tinsel/internal/scene"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxPixelRatio caps how many framebuffer pixels a window pixel may cover
// when sizing point sprites.
const MaxPixelRatio = 2

type object struct {
	points    *opengl.Points
	style     scene.PointStyle
	rotationY float32
	scale     mgl32.Vec3
	opacity   float32
}

// App draws points objects with the shared GL program. It implements
// scene.Adapter and must only be used on the thread owning the GL context.
type App struct {
	gl         *opengl.App
	fog        scene.Fog
	objects    []*object
	width      int
	height     int
	pixelRatio float32
}

var _ scene.Adapter = (*App)(nil)

func New(glApp *opengl.App, fog scene.Fog) *App {
	return &App{gl: glApp, fog: fog, pixelRatio: 1}
}

func (a *App) CreatePoints(buf models.ParticleBuffer, style scene.PointStyle) scene.Handle {
	a.objects = append(a.objects, &object{
		points:  opengl.NewPoints(buf),
		style:   style,
		scale:   mgl32.Vec3{1, 1, 1},
		opacity: style.Opacity,
	})
	return scene.Handle(len(a.objects) - 1)
}

func (a *App) object(h scene.Handle) *object {
	if int(h) < 0 || int(h) >= len(a.objects) {
		return nil
	}
	return a.objects[h]
}

func (a *App) SetRotationY(h scene.Handle, value float32) {
	if o := a.object(h); o != nil {
		o.rotationY = value
	}
}

func (a *App) SetScale(h scene.Handle, x, y, z float32) {
	if o := a.object(h); o != nil {
		o.scale = mgl32.Vec3{x, y, z}
	}
}

func (a *App) SetOpacity(h scene.Handle, value float32) {
	if o := a.object(h); o != nil {
		o.opacity = value
	}
}

func (a *App) UpdatePositions(h scene.Handle, positions []float32) {
	if o := a.object(h); o != nil {
		o.points.Upload(positions)
	}
}

func (a *App) SetPointSize(h scene.Handle, size float32) {
	if o := a.object(h); o != nil {
		o.style.Size = size
	}
}

// SetViewport takes the framebuffer size in pixels.
func (a *App) SetViewport(width, height int) {
	a.width, a.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// SetPixelRatio records the framebuffer to window size ratio reported by the
// host, used to keep point sprites the same apparent size on HiDPI screens.
func (a *App) SetPixelRatio(ratio float32) {
	if ratio > 0 {
		a.pixelRatio = ratio
	}
}

func (a *App) Render(camera *scene.Camera) {
	c := a.fog.Color
	gl.ClearColor(c.X(), c.Y(), c.Z(), 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := camera.View()
	projection := camera.Projection()
	pointScale := PointScale(a.height, a.pixelRatio)

	gl.UseProgram(a.gl.Program)
	gl.UniformMatrix4fv(a.gl.Uniform("view"), 1, false, &view[0])
	gl.UniformMatrix4fv(a.gl.Uniform("projection"), 1, false, &projection[0])
	gl.Uniform1f(a.gl.Uniform("viewportHeight"), pointScale)
	gl.Uniform3f(a.gl.Uniform("fogColor"), c.X(), c.Y(), c.Z())
	gl.Uniform1f(a.gl.Uniform("fogDensity"), a.fog.Density)

	for _, o := range a.objects {
		a.drawObject(o)
	}
}

func (a *App) drawObject(o *object) {
	if o.style.Additive {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	model := scene.Model(o.rotationY, o.scale)
	tint := o.style.Color
	if o.style.VertexColors {
		tint = mgl32.Vec3{1, 1, 1}
	}

	gl.UniformMatrix4fv(a.gl.Uniform("model"), 1, false, &model[0])
	gl.Uniform1f(a.gl.Uniform("pointSize"), o.style.Size)
	gl.Uniform1i(a.gl.Uniform("sizeAttenuation"), boolToInt(o.style.SizeAttenuation))
	gl.Uniform1i(a.gl.Uniform("vertexColors"), boolToInt(o.style.VertexColors))
	gl.Uniform3f(a.gl.Uniform("tint"), tint.X(), tint.Y(), tint.Z())
	gl.Uniform1f(a.gl.Uniform("opacity"), o.opacity)

	o.points.Draw()
}

func (a *App) Delete() {
	for _, o := range a.objects {
		o.points.Delete()
	}
	a.objects = nil
}

// PointScale converts a framebuffer height into the attenuation scale used by
// the points shader, with the pixel ratio capped at MaxPixelRatio.
func PointScale(framebufferHeight int, pixelRatio float32) float32 {
	if framebufferHeight <= 0 {
		return 0
	}
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	logical := float32(framebufferHeight) / pixelRatio
	return logical * min(pixelRatio, MaxPixelRatio)
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
