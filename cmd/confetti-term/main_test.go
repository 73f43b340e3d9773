package main

import (
	"math/rand/v2"
	"testing"

	"github.com/decker502/confetti/internal/particle"
	"github.com/decker502/confetti/pkg/components"
	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/ecs"
)

func TestCellAt(t *testing.T) {
	origin := components.PositionComponent{X: 80, Y: 160} // 单元 (10, 10)

	tests := []struct {
		name            string
		frame           particle.Frame
		wantCol, wantRow int
	}{
		{"原点", particle.Frame{}, 10, 10},
		{"向上一行", particle.Frame{Y: -cellHeight}, 10, 9},
		{"向右两列", particle.Frame{X: 2 * cellWidth}, 12, 10},
		{"四舍五入", particle.Frame{X: 5, Y: 9}, 11, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row := cellAt(origin, tt.frame)
			if col != tt.wantCol || row != tt.wantRow {
				t.Errorf("cellAt = (%d, %d), want (%d, %d)", col, row, tt.wantCol, tt.wantRow)
			}
		})
	}
}

func TestParticleRune(t *testing.T) {
	visible := particle.Frame{Opacity: 1}

	tests := []struct {
		name   string
		shape  config.Shape
		frame  particle.Frame
		want   rune
		wantOK bool
	}{
		{"方形", config.Square(), visible, '■', true},
		{"圆形", config.Circle(), visible, '●', true},
		{"字形", config.Glyph("♥x"), visible, '♥', true},
		{"侧面", config.Square(), particle.Frame{Opacity: 1, RotationX: -90}, '▬', true},
		{"透明", config.Circle(), particle.Frame{Opacity: 0.05}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := particleRune(tt.shape, tt.frame)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("particleRune = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestEngineLifecycle(t *testing.T) {
	cfg := config.MustBurstConfig(config.DefaultOptions())
	bursts := 0
	e := newEngine(config.Preset{Name: "classic", Config: cfg}, particle.NewGenerator(rand.NewPCG(3, 4)),
		func(ecs.EntityID, *components.BurstComponent, components.PositionComponent) { bursts++ })

	e.fire()
	e.fire()
	e.update(0.016)
	if bursts != 2 || e.counter != 2 {
		t.Fatalf("bursts = %d, counter = %d", bursts, e.counter)
	}

	e.update(cfg.TotalDuration())
	if e.scheduler.Tracker().FinishedCount() != 2 || e.em.Count() != 0 {
		t.Errorf("finished = %d, entities = %d", e.scheduler.Tracker().FinishedCount(), e.em.Count())
	}
}
