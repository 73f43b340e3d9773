package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/confetti/internal/particle"
	"github.com/decker502/confetti/pkg/components"
	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/ecs"
	"github.com/decker502/confetti/pkg/game"
	"github.com/decker502/confetti/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// backgroundColor 场景背景色
var backgroundColor = color.RGBA{R: 24, G: 24, B: 32, A: 255}

// CannonOptions 礼花炮场景的可选参数
type CannonOptions struct {
	// AutoFire 自动触发间隔（秒），0 表示只响应按键
	AutoFire float64
	// OriginX, OriginY 初始原点，都为 0 时使用布局默认值
	OriginX, OriginY float64
	// Generator 粒子随机源，为 nil 时使用时间种子
	Generator *particle.Generator
}

// CannonScene 礼花炮场景
//
// 操作：
//   - 空格：触发计数器加一（发射一次）
//   - 鼠标左键：移动之后爆发的原点
//   - 左/右方向键：切换预设
type CannonScene struct {
	sceneManager *game.SceneManager
	audioManager *game.AudioManager
	presets      *config.PresetSet
	preset       config.Preset

	entityManager  *ecs.EntityManager
	clock          *systems.FrameScheduler
	burstScheduler *systems.BurstScheduler
	phaseSystem    *systems.BurstPhaseSystem
	renderSystem   *systems.RenderSystem

	counter  int
	autoFire float64
}

// NewCannonScene 创建指定预设的礼花炮场景
// audio 可为 nil
func NewCannonScene(sm *game.SceneManager, audio *game.AudioManager, presets *config.PresetSet, presetName string, opts CannonOptions) (*CannonScene, error) {
	preset, ok := presets.Get(presetName)
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", presetName, presets.Names())
	}

	gen := opts.Generator
	if gen == nil {
		gen = particle.NewTimeSeededGenerator()
	}

	em := ecs.NewEntityManager()
	clock := systems.NewFrameScheduler()
	renderSystem, err := systems.NewRenderSystem(em, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to create render system: %w", err)
	}

	s := &CannonScene{
		sceneManager:   sm,
		audioManager:   audio,
		presets:        presets,
		preset:         preset,
		entityManager:  em,
		clock:          clock,
		burstScheduler: systems.NewBurstScheduler(em, clock, preset.Config, gen),
		phaseSystem:    systems.NewBurstPhaseSystem(em, clock),
		renderSystem:   renderSystem,
		autoFire:       opts.AutoFire,
	}

	originX, originY := opts.OriginX, opts.OriginY
	if originX == 0 && originY == 0 {
		originX, originY = config.DefaultOriginX, config.DefaultOriginY
	}
	s.burstScheduler.SetOrigin(originX, originY)

	if audio != nil {
		s.burstScheduler.OnBurst(func(ecs.EntityID, *components.BurstComponent, components.PositionComponent) {
			audio.PlayPop()
		})
	}

	s.burstScheduler.Mount()
	if s.autoFire > 0 {
		s.scheduleAutoFire()
	}

	log.Printf("[CannonScene] preset %q ready (particles=%d, repetitions=%d)",
		preset.Name, preset.Config.ParticleCount(), preset.Config.Repetitions())
	return s, nil
}

// scheduleAutoFire 用调度器实现周期触发
func (s *CannonScene) scheduleAutoFire() {
	s.clock.ScheduleAfter(s.autoFire, func() {
		s.Fire()
		s.scheduleAutoFire()
	})
}

// Fire 触发计数器加一
func (s *CannonScene) Fire() {
	s.counter++
	if _, err := s.burstScheduler.Trigger(s.counter); err != nil {
		log.Printf("[CannonScene] trigger rejected: %v", err)
	}
}

// MoveOrigin 移动之后爆发的原点
func (s *CannonScene) MoveOrigin(x, y float64) {
	s.burstScheduler.SetOrigin(x, y)
}

// CyclePreset 切换到相邻的预设（delta 为 +1 或 -1）
// 返回目标预设名
func (s *CannonScene) CyclePreset(delta int) string {
	n := s.presets.Len()
	idx := s.presets.Index(s.preset.Name)
	next := ((idx+delta)%n + n) % n
	name := s.presets.At(next).Name

	if s.sceneManager != nil {
		s.sceneManager.LoadPreset(name)
	}
	return name
}

// Update 处理输入并推进礼花时钟
func (s *CannonScene) Update(deltaTime float64) {
	s.handleInput()
	s.step(deltaTime)
}

func (s *CannonScene) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.Fire()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		s.MoveOrigin(float64(x), float64(y))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		s.CyclePreset(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		s.CyclePreset(-1)
	}
}

// step 推进时钟（触发定时器）并刷新阶段
func (s *CannonScene) step(deltaTime float64) {
	s.clock.Update(deltaTime)
	s.phaseSystem.Update(deltaTime)
}

// Draw 绘制礼花和状态栏
func (s *CannonScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.renderSystem.Draw(screen)

	origin := s.burstScheduler.Origin()
	vector.DrawFilledCircle(screen, float32(origin.X), float32(origin.Y), 3, color.White, true)

	ebitenutil.DebugPrintAt(screen, s.statusText(), config.HUDMargin, config.HUDMargin)
}

// statusText 状态栏文本
func (s *CannonScene) statusText() string {
	tracker := s.burstScheduler.Tracker()
	return fmt.Sprintf("preset: %s (%d/%d)  [space] fire  [click] move  [<-/->] preset\ncounter: %d  active: %d  finished: %d  entities: %d",
		s.preset.Name, s.presets.Index(s.preset.Name)+1, s.presets.Len(),
		s.counter, tracker.Active(), tracker.FinishedCount(), s.entityManager.Count())
}

// PresetName 返回当前预设名
func (s *CannonScene) PresetName() string {
	return s.preset.Name
}

// Counter 返回当前触发计数
func (s *CannonScene) Counter() int {
	return s.counter
}

// BurstScheduler 返回爆发调度器
func (s *CannonScene) BurstScheduler() *systems.BurstScheduler {
	return s.burstScheduler
}
