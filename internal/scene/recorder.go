package scene

import (
	"github.com/ThatOtherAndrew/Tinsel/internal/models"
	"github.com/go-gl/mathgl/mgl32"
)

// Object is the recorded state of one points object.
type Object struct {
	Style     PointStyle
	Count     int
	Positions []float32
	RotationY float32
	Scale     mgl32.Vec3
	Opacity   float32
	Uploads   int
}

// Recorder is an Adapter that keeps everything in memory. The headless
// simulator renders into it and tests inspect it.
type Recorder struct {
	Objects        []*Object
	Width, Height  int
	Renders        int
	LastProjection mgl32.Mat4
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) CreatePoints(buf models.ParticleBuffer, style PointStyle) Handle {
	r.Objects = append(r.Objects, &Object{
		Style:     style,
		Count:     buf.Len(),
		Positions: append([]float32(nil), buf.Positions...),
		Scale:     mgl32.Vec3{1, 1, 1},
		Opacity:   style.Opacity,
	})
	return Handle(len(r.Objects) - 1)
}

func (r *Recorder) object(h Handle) *Object {
	if int(h) < 0 || int(h) >= len(r.Objects) {
		return nil
	}
	return r.Objects[h]
}

func (r *Recorder) SetRotationY(h Handle, value float32) {
	if o := r.object(h); o != nil {
		o.RotationY = value
	}
}

func (r *Recorder) SetScale(h Handle, x, y, z float32) {
	if o := r.object(h); o != nil {
		o.Scale = mgl32.Vec3{x, y, z}
	}
}

func (r *Recorder) SetOpacity(h Handle, value float32) {
	if o := r.object(h); o != nil {
		o.Opacity = value
	}
}

func (r *Recorder) UpdatePositions(h Handle, positions []float32) {
	if o := r.object(h); o != nil {
		o.Positions = append(o.Positions[:0], positions...)
		o.Uploads++
	}
}

func (r *Recorder) SetPointSize(h Handle, size float32) {
	if o := r.object(h); o != nil {
		o.Style.Size = size
	}
}

func (r *Recorder) SetViewport(width, height int) {
	r.Width, r.Height = width, height
}

func (r *Recorder) Render(camera *Camera) {
	r.Renders++
	if camera != nil {
		r.LastProjection = camera.Projection()
	}
}
