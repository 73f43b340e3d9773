package components

// PositionComponent 存储实体的屏幕坐标
// 对礼花爆发而言，这是粒子轨迹的原点
type PositionComponent struct {
	X float64
	Y float64
}
