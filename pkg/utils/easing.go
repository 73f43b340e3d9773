package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值。
//
// 参考：https://easings.net/ 与 CSS cubic-bezier() 定义

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// TimingCurve is a cubic Bézier timing function with fixed end points (0,0) and (1,1),
// defined by its two control points, as in CSS cubic-bezier(x1, y1, x2, y2).
//
// X1 and X2 must lie within [0, 1] so that x(t) is monotonic and Ease is well defined.
type TimingCurve struct {
	X1, Y1, X2, Y2 float64

	// 多项式系数（由 NewTimingCurve 预先计算）
	ax, bx, cx float64
	ay, by, cy float64
}

// Standard curves of the confetti animation.
var (
	// ExplosionCurve 爆炸阶段：快速冲出后减速（ease-out）
	ExplosionCurve = NewTimingCurve(0.61, 1, 0.88, 1)

	// RainCurve 下落阶段：缓慢开始后加速（ease-in）
	RainCurve = NewTimingCurve(0.12, 0, 0.39, 0)
)

// NewTimingCurve builds a curve from its control points.
// X coordinates are clamped to [0, 1].
func NewTimingCurve(x1, y1, x2, y2 float64) TimingCurve {
	x1 = Clamp01(x1)
	x2 = Clamp01(x2)

	c := TimingCurve{X1: x1, Y1: y1, X2: x2, Y2: y2}
	c.cx = 3 * x1
	c.bx = 3*(x2-x1) - c.cx
	c.ax = 1 - c.cx - c.bx
	c.cy = 3 * y1
	c.by = 3*(y2-y1) - c.cy
	c.ay = 1 - c.cy - c.by
	return c
}

func (c TimingCurve) sampleX(t float64) float64 {
	return ((c.ax*t+c.bx)*t + c.cx) * t
}

func (c TimingCurve) sampleY(t float64) float64 {
	return ((c.ay*t+c.by)*t + c.cy) * t
}

func (c TimingCurve) sampleDerivativeX(t float64) float64 {
	return (3*c.ax*t+2*c.bx)*t + c.cx
}

// solveX finds the curve parameter whose x equals the given progress.
func (c TimingCurve) solveX(x float64) float64 {
	const epsilon = 1e-7

	// 牛顿迭代，通常几步即可收敛
	t := x
	for i := 0; i < 8; i++ {
		dx := c.sampleX(t) - x
		if math.Abs(dx) < epsilon {
			return t
		}
		d := c.sampleDerivativeX(t)
		if math.Abs(d) < 1e-6 {
			break
		}
		t -= dx / d
	}

	// 二分法兜底
	lo, hi := 0.0, 1.0
	t = x
	for lo < hi {
		v := c.sampleX(t)
		if math.Abs(v-x) < epsilon {
			return t
		}
		if x > v {
			lo = t
		} else {
			hi = t
		}
		next := (lo + hi) / 2
		if next == t {
			break
		}
		t = next
	}
	return t
}

// Ease maps linear progress p ∈ [0, 1] to eased progress.
// p is clamped; Ease(0) == 0 and Ease(1) == 1 exactly.
func (c TimingCurve) Ease(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return c.sampleY(c.solveX(p))
}
