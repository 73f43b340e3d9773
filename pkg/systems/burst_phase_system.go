package systems

import (
	"github.com/decker502/confetti/internal/particle"
	"github.com/decker502/confetti/pkg/components"
	"github.com/decker502/confetti/pkg/ecs"
)

// BurstPhaseSystem 根据已用时间刷新爆发阶段（爆炸 → 下落）
// Finished 只由 CompletionTracker 设置
type BurstPhaseSystem struct {
	entityManager *ecs.EntityManager
	clock         Scheduler
}

// NewBurstPhaseSystem 创建阶段系统
func NewBurstPhaseSystem(em *ecs.EntityManager, clock Scheduler) *BurstPhaseSystem {
	return &BurstPhaseSystem{
		entityManager: em,
		clock:         clock,
	}
}

// Update 更新所有爆发实体的阶段
func (s *BurstPhaseSystem) Update(deltaTime float64) {
	now := s.clock.Now()
	for _, id := range ecs.GetEntitiesWith1[*components.BurstComponent](s.entityManager) {
		burst, ok := ecs.GetComponent[*components.BurstComponent](s.entityManager, id)
		if !ok || burst.Phase == particle.PhaseFinished {
			continue
		}

		phase := particle.PhaseAt(burst.Config, burst.Elapsed(now))
		if phase == particle.PhaseFinished {
			// 等待完成定时器
			phase = particle.PhaseRaining
		}
		burst.Phase = phase
	}
}
