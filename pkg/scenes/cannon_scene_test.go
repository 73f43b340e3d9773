package scenes

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/decker502/confetti/internal/particle"
	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/game"
)

const scenePresets = `
presets:
  - name: classic
  - name: triple
    repetitions: 2
    repetitionInterval: 0.5
  - name: tiny
    particleCount: 3
`

func loadScenePresets(t *testing.T) *config.PresetSet {
	t.Helper()
	set, err := config.ParsePresets([]byte(scenePresets))
	if err != nil {
		t.Fatalf("ParsePresets: %v", err)
	}
	return set
}

func newTestScene(t *testing.T, sm *game.SceneManager, name string, opts CannonOptions) *CannonScene {
	t.Helper()
	if opts.Generator == nil {
		opts.Generator = particle.NewGenerator(rand.NewPCG(7, 8))
	}
	s, err := NewCannonScene(sm, nil, loadScenePresets(t), name, opts)
	if err != nil {
		t.Fatalf("NewCannonScene: %v", err)
	}
	return s
}

func TestNewCannonSceneUnknownPreset(t *testing.T) {
	_, err := NewCannonScene(nil, nil, loadScenePresets(t), "nope", CannonOptions{})
	if err == nil || !strings.Contains(err.Error(), "nope") {
		t.Errorf("expected unknown preset error, got %v", err)
	}
}

func TestCannonSceneFire(t *testing.T) {
	s := newTestScene(t, nil, "triple", CannonOptions{})

	s.Fire()
	s.step(1.0 / 60.0)
	if s.Counter() != 1 {
		t.Errorf("counter = %d, want 1", s.Counter())
	}

	tracker := s.BurstScheduler().Tracker()
	if tracker.TotalTracked() != 1 {
		t.Fatalf("expected first burst immediately, got %d", tracker.TotalTracked())
	}

	for i := 0; i < 60; i++ {
		s.step(1.0 / 60.0)
	}
	if tracker.TotalTracked() != 3 {
		t.Errorf("expected 3 bursts after 1s, got %d", tracker.TotalTracked())
	}

	// 跑完全部爆发
	for i := 0; i < 60*10; i++ {
		s.step(1.0 / 60.0)
	}
	if tracker.FinishedCount() != 3 || s.entityManager.Count() != 0 {
		t.Errorf("finished = %d, entities = %d", tracker.FinishedCount(), s.entityManager.Count())
	}
	if !strings.Contains(s.statusText(), "finished: 3") {
		t.Errorf("status text missing counts: %q", s.statusText())
	}
}

func TestCannonSceneOrigin(t *testing.T) {
	s := newTestScene(t, nil, "classic", CannonOptions{})
	origin := s.BurstScheduler().Origin()
	if origin.X != config.DefaultOriginX || origin.Y != config.DefaultOriginY {
		t.Errorf("default origin = %+v", origin)
	}

	s.MoveOrigin(10, 20)
	s.Fire()
	s.step(0)
	for _, pos := range s.BurstScheduler().PlacedBursts() {
		if pos.X != 10 || pos.Y != 20 {
			t.Errorf("burst origin = %+v, want (10, 20)", pos)
		}
	}

	custom := newTestScene(t, nil, "classic", CannonOptions{OriginX: 1, OriginY: 2})
	if o := custom.BurstScheduler().Origin(); o.X != 1 || o.Y != 2 {
		t.Errorf("custom origin = %+v", o)
	}
}

func TestCannonSceneAutoFire(t *testing.T) {
	s := newTestScene(t, nil, "tiny", CannonOptions{AutoFire: 0.5})

	for i := 0; i < 4; i++ {
		s.step(0.5)
	}
	if s.Counter() != 4 {
		t.Errorf("auto fire counter = %d, want 4", s.Counter())
	}
}

func TestCannonSceneCyclePreset(t *testing.T) {
	presets := loadScenePresets(t)
	sm := game.NewSceneManager()
	sm.SetSceneFactory(func(name string) game.Scene {
		s, err := NewCannonScene(sm, nil, presets, name, CannonOptions{
			Generator: particle.NewGenerator(rand.NewPCG(1, 1)),
		})
		if err != nil {
			return nil
		}
		return s
	})
	sm.LoadPreset("classic")

	tests := []struct {
		delta int
		want  string
	}{
		{1, "triple"},
		{1, "tiny"},
		{1, "classic"}, // 末尾回到开头
		{-1, "tiny"},   // 开头回到末尾
	}

	for _, tt := range tests {
		current := sm.GetCurrentScene().(*CannonScene)
		if got := current.CyclePreset(tt.delta); got != tt.want {
			t.Errorf("CyclePreset(%d) from %s = %s, want %s", tt.delta, current.PresetName(), got, tt.want)
		}
		if sm.CurrentPreset() != tt.want {
			t.Errorf("scene manager preset = %s, want %s", sm.CurrentPreset(), tt.want)
		}
	}
}
