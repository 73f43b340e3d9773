package systems

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/decker502/confetti/internal/particle"
	"github.com/decker502/confetti/pkg/components"
	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/ecs"
)

type burstFixture struct {
	em        *ecs.EntityManager
	clock     *FrameScheduler
	scheduler *BurstScheduler
	spawned   []*components.BurstComponent
}

func newBurstFixture(t *testing.T, mutate func(*config.Options)) *burstFixture {
	t.Helper()
	opts := config.DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	cfg, err := config.NewBurstConfig(opts)
	if err != nil {
		t.Fatalf("invalid test config: %v", err)
	}

	f := &burstFixture{
		em:    ecs.NewEntityManager(),
		clock: NewFrameScheduler(),
	}
	gen := particle.NewGenerator(rand.NewPCG(1, 2))
	f.scheduler = NewBurstScheduler(f.em, f.clock, cfg, gen)
	f.scheduler.OnBurst(func(_ ecs.EntityID, b *components.BurstComponent, _ components.PositionComponent) {
		f.spawned = append(f.spawned, b)
	})
	return f
}

func (f *burstFixture) activeIndices() []int {
	var out []int
	for b := range f.scheduler.ActiveBursts() {
		out = append(out, b.Index)
	}
	return out
}

func TestTriggerBeforeMountIsNoOp(t *testing.T) {
	f := newBurstFixture(t, nil)

	n, err := f.scheduler.Trigger(1)
	if !errors.Is(err, ErrNotMounted) || n != 0 {
		t.Fatalf("expected ErrNotMounted, got %d %v", n, err)
	}
	if f.scheduler.Pending() != 0 {
		t.Errorf("no timers should be scheduled, got %d", f.scheduler.Pending())
	}
	f.clock.Update(10)
	if len(f.spawned) != 0 {
		t.Errorf("no bursts should spawn before mount")
	}

	// 挂载前的值仍然被记录
	f.scheduler.Mount()
	if _, err := f.scheduler.Trigger(1); !errors.Is(err, ErrStaleTrigger) {
		t.Errorf("value observed before mount should be stale, got %v", err)
	}
	if _, err := f.scheduler.Trigger(2); err != nil {
		t.Errorf("fresh value after mount should trigger, got %v", err)
	}
}

func TestStaleTriggerIsNoOp(t *testing.T) {
	f := newBurstFixture(t, nil)
	f.scheduler.Mount()

	if _, err := f.scheduler.Trigger(3); err != nil {
		t.Fatalf("first trigger failed: %v", err)
	}
	pending := f.scheduler.Pending()

	for _, v := range []int{3, 2, 0, -1} {
		n, err := f.scheduler.Trigger(v)
		if !errors.Is(err, ErrStaleTrigger) || n != 0 {
			t.Errorf("Trigger(%d) = %d, %v; want ErrStaleTrigger", v, n, err)
		}
	}
	if f.scheduler.Pending() != pending {
		t.Errorf("stale triggers scheduled timers: %d -> %d", pending, f.scheduler.Pending())
	}
	if f.scheduler.LastTrigger() != 3 {
		t.Errorf("LastTrigger() = %d, want 3", f.scheduler.LastTrigger())
	}
}

func TestRepetitionsScheduleStartTimes(t *testing.T) {
	f := newBurstFixture(t, func(o *config.Options) {
		o.Repetitions = 2
		o.RepetitionInterval = 0.5
	})
	f.scheduler.Mount()

	n, err := f.scheduler.Trigger(1)
	if err != nil || n != 3 {
		t.Fatalf("Trigger = %d, %v; want 3 bursts", n, err)
	}

	f.clock.Update(0)
	if len(f.spawned) != 1 {
		t.Fatalf("first burst should spawn immediately, got %d", len(f.spawned))
	}
	f.clock.Update(0.4)
	if len(f.spawned) != 1 {
		t.Fatalf("second burst spawned early")
	}
	f.clock.Update(0.1)
	f.clock.Update(0.5)

	want := []float64{0, 0.5, 1.0}
	if len(f.spawned) != len(want) {
		t.Fatalf("expected %d bursts, got %d", len(want), len(f.spawned))
	}
	for i, b := range f.spawned {
		if math.Abs(b.StartTime-want[i]) > 0.001 {
			t.Errorf("burst %d start = %v, want %v", i, b.StartTime, want[i])
		}
		if b.Index != i {
			t.Errorf("burst %d has index %d", i, b.Index)
		}
		if len(b.Particles) != b.Config.ParticleCount() {
			t.Errorf("burst %d has %d particles, want %d", i, len(b.Particles), b.Config.ParticleCount())
		}
		if b.Phase != particle.PhaseExploding && b.Phase != particle.PhaseRaining {
			t.Errorf("burst %d unexpected phase %v", i, b.Phase)
		}
	}
}

func TestBurstsFinishAndCompact(t *testing.T) {
	f := newBurstFixture(t, func(o *config.Options) {
		o.Repetitions = 2
		o.RepetitionInterval = 0.5
	})
	f.scheduler.Mount()
	f.scheduler.Trigger(1)
	tracker := f.scheduler.Tracker()
	total := f.scheduler.Config().TotalDuration() // 4.7s

	f.clock.Update(1.0)
	if got := f.activeIndices(); len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Fatalf("active bursts = %v, want [0 1 2]", got)
	}
	if f.em.Count() != 3 {
		t.Errorf("entity count = %d, want 3", f.em.Count())
	}

	f.clock.AdvanceTo(total)
	if tracker.FinishedCount() != 1 {
		t.Fatalf("finished = %d, want 1", tracker.FinishedCount())
	}
	if got := f.activeIndices(); len(got) != 2 || got[0] != 1 {
		t.Errorf("active bursts = %v, want [1 2]", got)
	}
	if f.spawned[0].Phase != particle.PhaseFinished {
		t.Errorf("first burst phase = %v", f.spawned[0].Phase)
	}

	f.clock.AdvanceTo(total + 1.0)
	if tracker.FinishedCount() != 3 || tracker.Active() != 0 || tracker.TotalTracked() != 3 {
		t.Errorf("tracker = finished %d, active %d, total %d", tracker.FinishedCount(), tracker.Active(), tracker.TotalTracked())
	}
	if f.em.Count() != 0 {
		t.Errorf("entity store should be empty, has %d", f.em.Count())
	}
	if f.scheduler.Pending() != 0 {
		t.Errorf("pending timers = %d", f.scheduler.Pending())
	}
}

// TestOverlappingTriggers 多次触发的爆发可以重叠，序号连续
func TestOverlappingTriggers(t *testing.T) {
	f := newBurstFixture(t, func(o *config.Options) { o.Repetitions = 1 })
	f.scheduler.Mount()

	f.scheduler.Trigger(1)
	f.clock.Update(0.1)
	f.scheduler.Trigger(2)
	f.clock.Update(2)

	if len(f.spawned) != 4 {
		t.Fatalf("expected 4 bursts, got %d", len(f.spawned))
	}
	for i, b := range f.spawned {
		if b.Index != i {
			t.Errorf("spawn %d has index %d", i, b.Index)
		}
	}

	f.clock.Update(100)
	if f.scheduler.Tracker().FinishedCount() != 4 || f.em.Count() != 0 {
		t.Errorf("all bursts should finish, finished=%d entities=%d",
			f.scheduler.Tracker().FinishedCount(), f.em.Count())
	}
}

func TestOriginCapturedAtSpawn(t *testing.T) {
	f := newBurstFixture(t, func(o *config.Options) { o.Repetitions = 1 })
	f.scheduler.Mount()
	f.scheduler.SetOrigin(100, 200)
	f.scheduler.Trigger(1)
	f.clock.Update(0)

	f.scheduler.SetOrigin(-5, 7)
	f.clock.Update(1)

	var origins []components.PositionComponent
	for _, pos := range f.scheduler.PlacedBursts() {
		origins = append(origins, pos)
	}
	if len(origins) != 2 {
		t.Fatalf("expected 2 placed bursts, got %d", len(origins))
	}
	if origins[0] != (components.PositionComponent{X: 100, Y: 200}) {
		t.Errorf("first origin = %+v", origins[0])
	}
	if origins[1] != (components.PositionComponent{X: -5, Y: 7}) {
		t.Errorf("second origin = %+v", origins[1])
	}
}

func TestFramesFollowBurstClock(t *testing.T) {
	f := newBurstFixture(t, nil)
	f.scheduler.Mount()
	f.clock.Update(3) // 非零起始时间
	f.scheduler.Trigger(1)
	f.clock.Update(0)

	burst := f.spawned[0]
	frames := f.scheduler.Frames(burst, burst.StartTime)
	if len(frames) != len(burst.Particles) {
		t.Fatalf("frames = %d, want %d", len(frames), len(burst.Particles))
	}
	for i, fr := range frames {
		if fr.X != 0 || fr.Y != 0 || fr.Opacity != particle.InitialOpacity {
			t.Fatalf("frame %d at start should be at origin, got %+v", i, fr)
		}
	}

	end := f.scheduler.Frames(burst, burst.StartTime+burst.Config.ExplosionDuration())
	for i, fr := range end {
		tr := burst.Particles[i]
		if math.Abs(fr.X-tr.EndX) > 0.001 || math.Abs(fr.Y-tr.EndY) > 0.001 {
			t.Fatalf("frame %d should reach endpoint, got (%v, %v)", i, fr.X, fr.Y)
		}
	}

	// 复用缓冲区
	buf := make([]particle.Frame, 0, 64)
	out := BurstFrames(burst, burst.StartTime, buf)
	if cap(out) != 64 {
		t.Errorf("BurstFrames should reuse dst, cap = %d", cap(out))
	}
}
