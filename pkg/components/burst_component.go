package components

import (
	"github.com/decker502/confetti/internal/particle"
	"github.com/decker502/confetti/pkg/config"
)

// BurstComponent 记录一次已触发的礼花爆发
//
// Particles never change after materialization. Phase advances from
// Exploding to Raining with elapsed time; only the completion tracker sets
// Finished.
type BurstComponent struct {
	Index     int     // 触发顺序（从 0 开始）
	StartTime float64 // 调度器时间（秒）
	Particles []particle.Trajectory
	Phase     particle.Phase
	Config    *config.BurstConfig
}

// Elapsed 返回相对于 StartTime 的已用时间（秒）
func (b *BurstComponent) Elapsed(now float64) float64 {
	return now - b.StartTime
}

// EndTime 返回该爆发完全结束的时间
func (b *BurstComponent) EndTime() float64 {
	return b.StartTime + b.Config.TotalDuration()
}
