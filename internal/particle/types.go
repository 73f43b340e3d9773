// Package particle generates confetti particle trajectories and evaluates
// their two-phase motion (explosion, then rain) over time.
//
// Everything here is pure: given a configuration, a trajectory and an elapsed
// time, the resulting frame is fully determined. Randomness is confined to
// Generator, which owns its own source.
package particle

import "fmt"

// Trajectory holds the randomized visual parameters of one particle.
// It is generated once when its burst spawns and never mutated afterwards.
type Trajectory struct {
	ShapeIndex int // index into the burst's shape set
	ColorIndex int // index into the burst's color set

	// Spin (旋转)
	SpinAxisXDir   float64 // -1 or +1
	SpinAxisZDir   float64 // -1 or +1
	SpinSpeedX     float64 // seconds per full turn about x, in [1, 2]
	SpinSpeedZ     float64 // seconds per full turn about z, in [1, 2]
	RotationAnchor float64 // 0 or 1, unit-space anchor of the z rotation

	// Explosion (爆炸终点，相对于发射原点；屏幕坐标系 Y 轴向下)
	Angle    float64 // sampled direction in degrees, [0, 360) when the cone wraps
	Distance float64 // sampled distance, in [0.5, 1] × radius
	EndX     float64
	EndY     float64
}

// Phase is the lifecycle stage of a burst or particle.
type Phase int

const (
	// PhaseExploding 爆炸阶段：从原点冲向终点
	PhaseExploding Phase = iota
	// PhaseRaining 下落阶段：垂直下落并淡出
	PhaseRaining
	// PhaseFinished 动画结束，等待回收
	PhaseFinished
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseExploding:
		return "exploding"
	case PhaseRaining:
		return "raining"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Frame is the interpolated render state of a particle at one instant.
// X and Y are offsets from the burst origin; rotations are in degrees.
type Frame struct {
	X, Y      float64
	Opacity   float64
	RotationX float64
	RotationZ float64
	Anchor    float64
	Phase     Phase
}
