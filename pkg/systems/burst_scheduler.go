package systems

import (
	"errors"
	"fmt"
	"iter"
	"log"

	"github.com/decker502/confetti/internal/particle"
	"github.com/decker502/confetti/pkg/components"
	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/ecs"
	"github.com/decker502/confetti/pkg/entities"
)

var (
	// ErrNotMounted 在 Mount 之前触发
	ErrNotMounted = errors.New("burst scheduler not mounted")
	// ErrStaleTrigger 触发值没有超过上一次观察到的值
	ErrStaleTrigger = errors.New("trigger value not greater than last trigger")
)

// BurstListener 在每个爆发生成后被调用
type BurstListener func(id ecs.EntityID, burst *components.BurstComponent, origin components.PositionComponent)

// BurstScheduler 把触发计数器的变化转换为一组定时生成的礼花爆发
//
// A trigger with a value greater than the last one schedules
// Repetitions()+1 bursts, the i-th at now + i*RepetitionInterval(). Each
// burst becomes an entity carrying a BurstComponent and a PositionComponent
// and is handed to the CompletionTracker.
type BurstScheduler struct {
	entityManager *ecs.EntityManager
	clock         Scheduler
	tracker       *CompletionTracker
	generator     *particle.Generator
	config        *config.BurstConfig

	mounted     bool
	lastTrigger int
	nextIndex   int
	origin      components.PositionComponent
	listeners   []BurstListener
}

// NewBurstScheduler 创建调度器，初始为未挂载状态
func NewBurstScheduler(em *ecs.EntityManager, clock Scheduler, cfg *config.BurstConfig, gen *particle.Generator) *BurstScheduler {
	return &BurstScheduler{
		entityManager: em,
		clock:         clock,
		tracker:       NewCompletionTracker(em, clock),
		generator:     gen,
		config:        cfg,
	}
}

// Mount 启用触发；在此之前的触发只更新 lastTrigger
func (s *BurstScheduler) Mount() {
	s.mounted = true
	log.Printf("[BurstScheduler] mounted (lastTrigger=%d)", s.lastTrigger)
}

// Mounted 返回是否已挂载
func (s *BurstScheduler) Mounted() bool { return s.mounted }

// LastTrigger 返回最近一次观察到的触发值
func (s *BurstScheduler) LastTrigger() int { return s.lastTrigger }

// Pending 返回尚未触发的定时器数量（包括完成定时器）
func (s *BurstScheduler) Pending() int { return s.clock.Pending() }

// Config 返回爆发配置
func (s *BurstScheduler) Config() *config.BurstConfig { return s.config }

// Tracker 返回完成度追踪器
func (s *BurstScheduler) Tracker() *CompletionTracker { return s.tracker }

// SetOrigin 设置后续生成的爆发原点（已生成的爆发不受影响）
func (s *BurstScheduler) SetOrigin(x, y float64) {
	s.origin = components.PositionComponent{X: x, Y: y}
}

// Origin 返回当前原点
func (s *BurstScheduler) Origin() components.PositionComponent { return s.origin }

// OnBurst 注册爆发生成回调
func (s *BurstScheduler) OnBurst(fn BurstListener) {
	s.listeners = append(s.listeners, fn)
}

// Trigger 处理触发计数器的新值，返回本次安排的爆发数量
//
// Returns ErrNotMounted before Mount and ErrStaleTrigger when value does not
// exceed the last observed value. Both leave the scheduler unchanged apart
// from recording the value.
func (s *BurstScheduler) Trigger(value int) (int, error) {
	if value <= s.lastTrigger {
		log.Printf("[BurstScheduler] ignoring trigger %d (last=%d)", value, s.lastTrigger)
		return 0, fmt.Errorf("trigger %d: %w", value, ErrStaleTrigger)
	}
	s.lastTrigger = value

	if !s.mounted {
		log.Printf("[BurstScheduler] trigger %d before mount, ignored", value)
		return 0, fmt.Errorf("trigger %d: %w", value, ErrNotMounted)
	}

	count := s.config.Repetitions() + 1
	interval := s.config.RepetitionInterval()
	for i := 0; i < count; i++ {
		start := s.clock.Now() + float64(i)*interval
		s.clock.ScheduleAt(start, func() {
			s.materialize(start)
		})
	}
	log.Printf("[BurstScheduler] trigger %d: scheduled %d burst(s) every %.2fs", value, count, interval)
	return count, nil
}

// materialize 生成一个爆发实体
func (s *BurstScheduler) materialize(start float64) {
	burst := &components.BurstComponent{
		Index:     s.nextIndex,
		StartTime: start,
		Particles: s.generator.GenerateBurst(s.config),
		Phase:     particle.PhaseExploding,
		Config:    s.config,
	}
	s.nextIndex++

	origin := s.origin
	id := entities.CreateBurstEntity(s.entityManager, burst, origin.X, origin.Y)

	s.tracker.Track(id, burst)
	log.Printf("[BurstScheduler] burst #%d spawned at %.3fs with %d particles", burst.Index, start, len(burst.Particles))

	for _, fn := range s.listeners {
		fn(id, burst, origin)
	}
}

// ActiveBursts 按序号顺序遍历尚未结束的爆发
func (s *BurstScheduler) ActiveBursts() iter.Seq[*components.BurstComponent] {
	return func(yield func(*components.BurstComponent) bool) {
		for burst := range s.PlacedBursts() {
			if !yield(burst) {
				return
			}
		}
	}
}

// PlacedBursts 按序号顺序遍历尚未结束的爆发及其原点
func (s *BurstScheduler) PlacedBursts() iter.Seq2[*components.BurstComponent, components.PositionComponent] {
	return func(yield func(*components.BurstComponent, components.PositionComponent) bool) {
		ids := ecs.GetEntitiesWith2[*components.BurstComponent, *components.PositionComponent](s.entityManager)
		for _, id := range ids {
			burst, _ := ecs.GetComponent[*components.BurstComponent](s.entityManager, id)
			if burst == nil || burst.Phase == particle.PhaseFinished {
				continue
			}
			pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
			if !yield(burst, *pos) {
				return
			}
		}
	}
}

// Frames 计算爆发在时间 now 的所有粒子帧（相对于原点）
func (s *BurstScheduler) Frames(burst *components.BurstComponent, now float64) []particle.Frame {
	return BurstFrames(burst, now, nil)
}

// BurstFrames 计算爆发在时间 now 的粒子帧，复用 dst 的底层数组
func BurstFrames(burst *components.BurstComponent, now float64, dst []particle.Frame) []particle.Frame {
	dst = dst[:0]
	elapsed := burst.Elapsed(now)
	for _, tr := range burst.Particles {
		dst = append(dst, particle.Evaluate(tr, burst.Config, elapsed))
	}
	return dst
}
