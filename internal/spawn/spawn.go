package spawn

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/ThatOtherAndrew/Tinsel/internal/models"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ColorGreen = mgl32.Vec3{0.1, 0.26, 0.16} // 0x1a432a
	ColorGold  = mgl32.Vec3{0.83, 0.69, 0.22} // 0xd4af37
	ColorRed   = mgl32.Vec3{0.67, 0, 0}       // 0xaa0000
)

// Palette is every colour a tree particle can take.
var Palette = []mgl32.Vec3{ColorGreen, ColorGold, ColorRed}

type TreeShape struct {
	BottomY   float64
	TopY      float64
	MaxRadius float64
}

var DefaultTreeShape = TreeShape{BottomY: -7.5, TopY: 7.5, MaxRadius: 6}

// SnowBounds is the full extent of the snow box, centred on the origin.
type SnowBounds struct {
	X, Y, Z float64
}

var DefaultSnowBounds = SnowBounds{X: 45, Y: 40, Z: 25}

const (
	MinSnowSpeed = 0.02
	MaxSnowSpeed = 0.06

	treetopHeight = 0.98
	goldChance    = 0.04
	redChance     = 0.03
)

type Generator struct {
	rng *rand.Rand
}

// New returns a generator drawing from src, or from the global source when src is nil.
func New(src rand.Source) *Generator {
	if src == nil {
		return &Generator{}
	}
	return &Generator{rng: rand.New(src)}
}

func (g *Generator) float64() float64 {
	if g.rng == nil {
		return rand.Float64()
	}
	return g.rng.Float64()
}

func (g *Generator) GenerateTree(count int) models.ParticleBuffer {
	return g.GenerateTreeShape(count, DefaultTreeShape)
}

// GenerateTreeShape places count particles in a tiered cone. Each particle
// draws a normalised height h; a squared sine along h adds the branch bulges,
// and the sqrt on the radial sample keeps the cross-section evenly filled.
func (g *Generator) GenerateTreeShape(count int, shape TreeShape) models.ParticleBuffer {
	buf := models.NewParticleBuffer(count)
	height := shape.TopY - shape.BottomY

	for i := range buf.Len() {
		h := g.float64()
		radiusSpread := (1 - h) * shape.MaxRadius
		s := math.Sin(h * math.Pi * 8)
		wobble := s * s * 1.6 * (1 - h)
		r := (radiusSpread + wobble) * math.Sqrt(g.float64())
		angle := g.float64() * 2 * math.Pi

		buf.SetPosition(i, mgl32.Vec3{
			float32(math.Cos(angle) * r),
			float32(h*height + shape.BottomY),
			float32(math.Sin(angle) * r),
		})
		buf.SetColor(i, g.treeColor(h))
	}

	return buf
}

// treeColor checks in order: treetop gold, random gold, random red, green.
func (g *Generator) treeColor(h float64) mgl32.Vec3 {
	if h > treetopHeight {
		return ColorGold
	}
	if g.float64() > 1-goldChance {
		return ColorGold
	}
	if g.float64() > 1-redChance {
		return ColorRed
	}
	return ColorGreen
}

func (g *Generator) GenerateSnow(count int) models.SnowField {
	return g.GenerateSnowBounds(count, DefaultSnowBounds)
}

func (g *Generator) GenerateSnowBounds(count int, bounds SnowBounds) models.SnowField {
	if count < 0 {
		count = 0
	}
	snow := models.SnowField{
		Positions: make([]float32, count*3),
		Speeds:    make([]float32, count),
	}

	for i := range count {
		snow.Positions[i*3] = float32((g.float64() - 0.5) * bounds.X)
		snow.Positions[i*3+1] = float32((g.float64() - 0.5) * bounds.Y)
		snow.Positions[i*3+2] = float32((g.float64() - 0.5) * bounds.Z)
		snow.Speeds[i] = snowSpeed(g.float64())
	}

	return snow
}

// snowSpeed maps u in [0,1) into [MinSnowSpeed, MaxSnowSpeed). Rounding to
// float32 can land exactly on the upper bound, so that case steps down one ulp.
func snowSpeed(u float64) float32 {
	s := float32(MinSnowSpeed + u*(MaxSnowSpeed-MinSnowSpeed))
	if s >= float32(MaxSnowSpeed) {
		s = math.Nextafter32(float32(MaxSnowSpeed), 0)
	}
	if s < float32(MinSnowSpeed) {
		s = float32(MinSnowSpeed)
	}
	return s
}

// NewSession builds a fresh session with generated tree and snow buffers.
func (g *Generator) NewSession(treeCount, snowCount int) *models.Session {
	return &models.Session{
		Tree:      g.GenerateTree(treeCount),
		Snow:      g.GenerateSnow(snowCount),
		Transform: models.TreeTransform{Scale: mgl32.Vec3{1, 1, 1}, Opacity: 0.9},
		StartTime: time.Now(),
	}
}
