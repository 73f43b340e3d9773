package systems

import (
	"log"

	"github.com/decker502/confetti/internal/particle"
	"github.com/decker502/confetti/pkg/components"
	"github.com/decker502/confetti/pkg/ecs"
)

// CompletionTracker 统计已完成的礼花爆发，并把结束的爆发实体从存储中清除
//
// Each tracked burst gets one timer at StartTime+TotalDuration. When it fires
// the burst is marked Finished, the finished count advances exactly once, and
// the entity is destroyed and compacted out of the EntityManager, so storage
// stays bounded by the number of live bursts.
type CompletionTracker struct {
	entityManager *ecs.EntityManager
	clock         Scheduler

	totalTracked  int
	finishedCount int
	listeners     []func(*components.BurstComponent)
}

// NewCompletionTracker 创建完成度追踪器
func NewCompletionTracker(em *ecs.EntityManager, clock Scheduler) *CompletionTracker {
	return &CompletionTracker{
		entityManager: em,
		clock:         clock,
	}
}

// Track 开始追踪一个已生成的爆发
func (t *CompletionTracker) Track(id ecs.EntityID, burst *components.BurstComponent) {
	t.totalTracked++
	t.clock.ScheduleAt(burst.EndTime(), func() {
		t.complete(id, burst)
	})
}

// OnFinish 注册爆发结束时的回调
func (t *CompletionTracker) OnFinish(fn func(*components.BurstComponent)) {
	t.listeners = append(t.listeners, fn)
}

func (t *CompletionTracker) complete(id ecs.EntityID, burst *components.BurstComponent) {
	if burst.Phase == particle.PhaseFinished {
		return
	}
	burst.Phase = particle.PhaseFinished
	t.finishedCount++

	t.entityManager.DestroyEntity(id)
	removed := t.entityManager.RemoveMarkedEntities()
	log.Printf("[CompletionTracker] burst #%d finished at %.3fs (finished=%d, removed=%d)",
		burst.Index, t.clock.Now(), t.finishedCount, removed)

	for _, fn := range t.listeners {
		fn(burst)
	}
}

// FinishedCount 返回已结束的爆发数量
// 所有爆发持续时间相同，因此序号小于该值的爆发都已结束
func (t *CompletionTracker) FinishedCount() int {
	return t.finishedCount
}

// TotalTracked 返回累计追踪过的爆发数量
func (t *CompletionTracker) TotalTracked() int {
	return t.totalTracked
}

// Active 返回尚未结束的爆发数量
func (t *CompletionTracker) Active() int {
	return t.totalTracked - t.finishedCount
}
