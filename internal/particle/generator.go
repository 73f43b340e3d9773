package particle

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/decker502/confetti/pkg/config"
)

// Generator produces particle trajectories from a burst configuration.
// It is not safe for concurrent use; each scheduler owns one.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator backed by src.
// Pass a fixed-seed source (rand.NewPCG) for reproducible bursts.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewTimeSeededGenerator creates a generator seeded from the wall clock.
func NewTimeSeededGenerator() *Generator {
	seed := uint64(time.Now().UnixNano())
	return NewGenerator(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// RandomInRange returns a random float64 in the range [min, max).
// If min >= max it returns min.
func (g *Generator) RandomInRange(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + g.rng.Float64()*(max-min)
}

// SampleAngle draws a direction in degrees from the cone [opening, closing].
//
// When opening > closing the cone crosses 0°/360°: the draw is taken from
// [opening, closing+360] and reduced modulo 360, so the result lies in
// [opening, 360) ∪ [0, closing].
func (g *Generator) SampleAngle(opening, closing float64) float64 {
	if opening <= closing {
		return g.RandomInRange(opening, closing)
	}

	hi := closing + 360
	if opening > hi {
		// 超过一整圈的输入先归一化到 [0, 360)
		opening, closing = normalizeDegrees(opening), normalizeDegrees(closing)
		if opening <= closing {
			return g.RandomInRange(opening, closing)
		}
		hi = closing + 360
	}
	return normalizeDegrees(g.RandomInRange(opening, hi))
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// spinDirection 随机返回 -1 或 +1
func (g *Generator) spinDirection() float64 {
	if g.rng.IntN(2) == 0 {
		return -1
	}
	return 1
}

// Generate draws one particle trajectory.
func (g *Generator) Generate(cfg *config.BurstConfig) Trajectory {
	angle := g.SampleAngle(cfg.OpeningAngle(), cfg.ClosingAngle())
	distance := g.RandomInRange(0.5, 1) * cfg.Radius()

	// 角度转弧度；屏幕坐标系 Y 轴向下，向上为负
	angleRad := angle * math.Pi / 180.0

	return Trajectory{
		ShapeIndex:     g.rng.IntN(cfg.ShapeCount()),
		ColorIndex:     g.rng.IntN(cfg.ColorCount()),
		SpinAxisXDir:   g.spinDirection(),
		SpinAxisZDir:   g.spinDirection(),
		SpinSpeedX:     g.RandomInRange(1, 2),
		SpinSpeedZ:     g.RandomInRange(1, 2),
		RotationAnchor: math.Round(g.rng.Float64()),
		Angle:          angle,
		Distance:       distance,
		EndX:           distance * math.Cos(angleRad),
		EndY:           -distance * math.Sin(angleRad),
	}
}

// GenerateBurst draws ParticleCount trajectories.
func (g *Generator) GenerateBurst(cfg *config.BurstConfig) []Trajectory {
	particles := make([]Trajectory, cfg.ParticleCount())
	for i := range particles {
		particles[i] = g.Generate(cfg)
	}
	return particles
}
