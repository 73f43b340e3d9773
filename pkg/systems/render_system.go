package systems

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/confetti/internal/particle"
	"github.com/decker502/confetti/pkg/components"
	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// spriteKey 缓存键：形状种类 + 像素尺寸
type spriteKey struct {
	kind config.ShapeKind
	size int
}

// RenderSystem 绘制所有存活的礼花爆发
//
// Square and circle particles are drawn from white sprites tinted with the
// burst color. Glyph particles are drawn as text and keep their own color.
// The x-axis spin is projected as a vertical squash (cos of the angle); the
// z-axis spin rotates about the particle's anchor corner.
type RenderSystem struct {
	entityManager *ecs.EntityManager
	clock         Scheduler

	faceSource *text.GoTextFaceSource
	faces      map[float64]*text.GoTextFace // 按字号缓存
	sprites    map[spriteKey]*ebiten.Image
	frames     []particle.Frame // 复用，避免每帧分配
}

// NewRenderSystem 创建渲染系统并加载内置字体
func NewRenderSystem(em *ecs.EntityManager, clock Scheduler) (*RenderSystem, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create glyph font source: %w", err)
	}
	return &RenderSystem{
		entityManager: em,
		clock:         clock,
		faceSource:    source,
		faces:         make(map[float64]*text.GoTextFace),
		sprites:       make(map[spriteKey]*ebiten.Image),
		frames:        make([]particle.Frame, 0, 256),
	}, nil
}

// Draw 按触发顺序绘制所有未结束的爆发（后触发的在上层）
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	now := s.clock.Now()
	ids := ecs.GetEntitiesWith2[*components.BurstComponent, *components.PositionComponent](s.entityManager)

	for _, id := range ids {
		burst, _ := ecs.GetComponent[*components.BurstComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if burst.Phase == particle.PhaseFinished || now < burst.StartTime {
			continue
		}

		s.frames = BurstFrames(burst, now, s.frames)
		for i, f := range s.frames {
			if f.Opacity <= 0 {
				continue
			}
			tr := burst.Particles[i]
			s.drawParticle(screen, burst.Config, tr, f, pos.X, pos.Y)
		}
	}
}

func (s *RenderSystem) drawParticle(screen *ebiten.Image, cfg *config.BurstConfig, tr particle.Trajectory, f particle.Frame, originX, originY float64) {
	shape := cfg.Shape(tr.ShapeIndex)
	size := cfg.ParticleSize()

	if shape.Kind == config.ShapeGlyph {
		face := s.face(size)
		w, h := text.Measure(shape.Text, face, 0)
		op := &text.DrawOptions{}
		op.GeoM = ParticleGeoM(f, w, h, originX, originY)
		op.ColorScale.ScaleAlpha(float32(f.Opacity))
		text.Draw(screen, shape.Text, face, op)
		return
	}

	img := s.sprite(shape.Kind, size)
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM = ParticleGeoM(f, float64(b.Dx()), float64(b.Dy()), originX, originY)
	op.ColorScale.ScaleWithColor(cfg.Color(tr.ColorIndex))
	op.ColorScale.ScaleAlpha(float32(f.Opacity))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// ParticleGeoM 计算粒子的变换矩阵
//
// The w×h sprite is centered on (originX+f.X, originY+f.Y). RotationX
// squashes it vertically about its center; RotationZ rotates it about the
// corner selected by f.Anchor (0 = top-left, 1 = bottom-right).
func ParticleGeoM(f particle.Frame, w, h, originX, originY float64) ebiten.GeoM {
	var g ebiten.GeoM

	// 绕 X 轴旋转：以中心为轴纵向压缩
	g.Translate(-w/2, -h/2)
	g.Scale(1, math.Cos(f.RotationX*math.Pi/180))
	g.Translate(w/2, h/2)

	// 绕 Z 轴旋转：以锚点角为轴
	ax, ay := f.Anchor*w, f.Anchor*h
	g.Translate(-ax, -ay)
	g.Rotate(f.RotationZ * math.Pi / 180)
	g.Translate(ax, ay)

	g.Translate(originX+f.X-w/2, originY+f.Y-h/2)
	return g
}

// face 获取指定字号的字体（带缓存）
func (s *RenderSystem) face(size float64) *text.GoTextFace {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{
		Source:    s.faceSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	s.faces[size] = f
	return f
}

// sprite 获取白色的方形/圆形精灵（带缓存）
func (s *RenderSystem) sprite(kind config.ShapeKind, size float64) *ebiten.Image {
	px := int(math.Ceil(size))
	if px < 1 {
		px = 1
	}
	key := spriteKey{kind: kind, size: px}
	if img, ok := s.sprites[key]; ok {
		return img
	}

	img := ebiten.NewImage(px, px)
	fs := float32(px)
	switch kind {
	case config.ShapeCircle:
		vector.DrawFilledCircle(img, fs/2, fs/2, fs/2, color.White, true)
	default:
		vector.DrawFilledRect(img, 0, 0, fs, fs, color.White, false)
	}
	s.sprites[key] = img
	return img
}
