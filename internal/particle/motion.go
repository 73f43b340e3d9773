package particle

import (
	"math"

	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/utils"
)

const (
	// InitialOpacity is the opacity of a particle at spawn time, before
	// the explosion phase eases it to the configured maximum.
	InitialOpacity = 1.0

	// SpinRepeatsX is how many full turns a particle makes about its x axis
	// before coming to rest. The z spin never stops.
	SpinRepeatsX = 10
)

// PhaseAt returns the lifecycle phase of a burst elapsed seconds after it started.
func PhaseAt(cfg *config.BurstConfig, elapsed float64) Phase {
	switch {
	case elapsed < cfg.ExplosionDuration():
		return PhaseExploding
	case elapsed < cfg.TotalDuration():
		return PhaseRaining
	default:
		return PhaseFinished
	}
}

// Evaluate interpolates the render state of particle tr elapsed seconds after
// its burst started. Negative elapsed values are treated as zero.
//
// Explosion phase: position eases from the origin to (EndX, EndY) and opacity
// from InitialOpacity to MaxOpacity, both on utils.ExplosionCurve.
// Rain phase: y falls a further RainHeight and opacity eases to 0 (or holds at
// MaxOpacity when FadesOut is false), both on utils.RainCurve.
func Evaluate(tr Trajectory, cfg *config.BurstConfig, elapsed float64) Frame {
	if elapsed < 0 {
		elapsed = 0
	}

	f := Frame{
		RotationX: tr.SpinAxisXDir * spinAngle(elapsed, tr.SpinSpeedX, SpinRepeatsX),
		RotationZ: tr.SpinAxisZDir * spinAngle(elapsed, tr.SpinSpeedZ, 0),
		Anchor:    tr.RotationAnchor,
		Phase:     PhaseAt(cfg, elapsed),
	}

	explosion := cfg.ExplosionDuration()
	if elapsed < explosion {
		e := utils.ExplosionCurve.Ease(elapsed / explosion)
		f.X = utils.Lerp(0, tr.EndX, e)
		f.Y = utils.Lerp(0, tr.EndY, e)
		f.Opacity = utils.Lerp(InitialOpacity, cfg.MaxOpacity(), e)
		return f
	}

	// 下落阶段（结束后保持最终状态）
	progress := 1.0
	if elapsed < cfg.TotalDuration() {
		progress = (elapsed - explosion) / cfg.RainDuration()
	}
	e := utils.RainCurve.Ease(progress)
	endOpacity := cfg.MaxOpacity()
	if cfg.FadesOut() {
		endOpacity = 0
	}
	f.X = tr.EndX
	f.Y = tr.EndY + cfg.RainHeight()*e
	f.Opacity = utils.Lerp(cfg.MaxOpacity(), endOpacity, e)
	return f
}

// spinAngle returns the rotation in degrees after elapsed seconds of a linear
// spin with the given period. repeats > 0 stops the spin after that many turns.
func spinAngle(elapsed, period float64, repeats int) float64 {
	if period <= 0 {
		return 0
	}
	turns := elapsed / period
	if repeats > 0 && turns >= float64(repeats) {
		return 0
	}
	_, frac := math.Modf(turns)
	return 360 * frac
}
