// Command confetti-term renders the confetti cannon in a terminal.
//
// Usage:
//
//	go run ./cmd/confetti-term [flags]
//
// Flags:
//
//	--preset <name>    Start with a specific preset (default: first in file)
//	--presets <file>   Preset YAML file (default: data/presets.yaml)
//	--mute             Disable the burst tone
//	--verbose          Log to confetti-term.log
//
// Controls:
//
//	Space             - Fire
//	Mouse Click       - Move the cannon origin
//	Left/Right Arrow  - Switch preset
//	m                 - Toggle sound
//	q/Escape/Ctrl-C   - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/confetti/internal/particle"
	"github.com/decker502/confetti/pkg/components"
	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/ecs"
	"github.com/decker502/confetti/pkg/systems"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

var (
	presetFlag  = flag.String("preset", "", "Initial preset name")
	presetsFlag = flag.String("presets", config.DefaultPresetsPath, "Preset YAML file")
	muteFlag    = flag.Bool("mute", false, "Disable the burst tone")
	verboseFlag = flag.Bool("verbose", false, "Write logs to confetti-term.log")
)

const (
	// 每个字符单元对应的像素尺寸（粒子引擎以像素为单位）
	cellWidth  = 8.0
	cellHeight = 16.0

	frameInterval = 16 * time.Millisecond // ~60 FPS
	toneFrequency = 880
	toneDuration  = 40 * time.Millisecond
)

// engine 一个预设对应的一套调度器与实体存储
type engine struct {
	preset    config.Preset
	em        *ecs.EntityManager
	clock     *systems.FrameScheduler
	scheduler *systems.BurstScheduler
	phase     *systems.BurstPhaseSystem
	counter   int
}

func newEngine(preset config.Preset, gen *particle.Generator, onBurst systems.BurstListener) *engine {
	em := ecs.NewEntityManager()
	clock := systems.NewFrameScheduler()
	e := &engine{
		preset:    preset,
		em:        em,
		clock:     clock,
		scheduler: systems.NewBurstScheduler(em, clock, preset.Config, gen),
		phase:     systems.NewBurstPhaseSystem(em, clock),
	}
	e.scheduler.OnBurst(onBurst)
	e.scheduler.Mount()
	return e
}

func (e *engine) fire() {
	e.counter++
	if _, err := e.scheduler.Trigger(e.counter); err != nil {
		log.Printf("[Term] trigger rejected: %v", err)
	}
}

func (e *engine) update(dt float64) {
	e.clock.Update(dt)
	e.phase.Update(dt)
}

// Viewer 终端查看器
type Viewer struct {
	screen    tcell.Screen
	presets   *config.PresetSet
	generator *particle.Generator
	engine    *engine
	presetIdx int

	width, height int
	originCol     int
	originRow     int

	audioInit bool
	muted     bool
	frames    []particle.Frame
}

func NewViewer(presets *config.PresetSet, presetName string, muted bool) (*Viewer, error) {
	idx := 0
	if presetName != "" {
		idx = presets.Index(presetName)
		if idx < 0 {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", presetName, presets.Names())
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	v := &Viewer{
		screen:    screen,
		presets:   presets,
		generator: particle.NewTimeSeededGenerator(),
		presetIdx: idx,
		muted:     muted,
	}
	v.width, v.height = screen.Size()
	v.originCol, v.originRow = v.width/2, v.height*4/5

	if !muted {
		if err := v.initAudio(); err != nil {
			// 没有声音也可以运行
			log.Printf("[Term] audio initialization failed: %v", err)
		}
	}

	v.loadPreset(idx)
	return v, nil
}

func (v *Viewer) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		v.audioInit = true
	}
	return err
}

func (v *Viewer) playTone() {
	if !v.audioInit || v.muted {
		return
	}

	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, toneFrequency)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(toneDuration), sine))
}

func (v *Viewer) loadPreset(idx int) {
	n := v.presets.Len()
	v.presetIdx = ((idx % n) + n) % n
	preset := v.presets.At(v.presetIdx)
	v.engine = newEngine(preset, v.generator, func(ecs.EntityID, *components.BurstComponent, components.PositionComponent) {
		v.playTone()
	})
	v.moveOrigin(v.originCol, v.originRow)
	log.Printf("[Term] preset %s loaded", preset.Name)
}

func (v *Viewer) moveOrigin(col, row int) {
	v.originCol, v.originRow = col, row
	v.engine.scheduler.SetOrigin(float64(col)*cellWidth, float64(row)*cellHeight)
}

// handleInput 返回 false 表示退出
func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyLeft:
			v.loadPreset(v.presetIdx - 1)
		case ev.Key() == tcell.KeyRight:
			v.loadPreset(v.presetIdx + 1)
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.engine.fire()
			case 'm':
				v.muted = !v.muted
			}
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			col, row := ev.Position()
			v.moveOrigin(col, row)
		}

	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
	}

	return true
}

func (v *Viewer) draw() {
	v.screen.Clear()

	now := v.engine.clock.Now()
	for burst, origin := range v.engine.scheduler.PlacedBursts() {
		v.frames = systems.BurstFrames(burst, now, v.frames)
		for i, f := range v.frames {
			tr := burst.Particles[i]
			shape := burst.Config.Shape(tr.ShapeIndex)
			col, row := cellAt(origin, f)
			if col < 0 || row < 1 || col >= v.width || row >= v.height {
				continue
			}
			ch, ok := particleRune(shape, f)
			if !ok {
				continue
			}
			v.screen.SetContent(col, row, ch, nil, particleStyle(shape, burst.Config.Color(tr.ColorIndex), f))
		}
	}

	v.screen.SetContent(v.originCol, v.originRow, '▲', nil, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	tracker := v.engine.scheduler.Tracker()
	status := fmt.Sprintf(" %s  counter:%d active:%d finished:%d  [space] fire [←/→] preset [m] sound [q] quit",
		v.engine.preset.Name, v.engine.counter, tracker.Active(), tracker.FinishedCount())
	for i, r := range []rune(status) {
		if i >= v.width {
			break
		}
		v.screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
	}

	v.screen.Show()
}

func (v *Viewer) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			v.engine.update(now.Sub(last).Seconds())
			last = now
			v.draw()
		}
	}
}

func (v *Viewer) cleanup() {
	if v.audioInit {
		speaker.Close()
	}
	v.screen.Fini()
}

// cellAt 把粒子帧（相对原点的像素坐标）换算为字符单元坐标
func cellAt(origin components.PositionComponent, f particle.Frame) (col, row int) {
	x := (origin.X + f.X) / cellWidth
	y := (origin.Y + f.Y) / cellHeight
	return int(x + 0.5), int(y + 0.5)
}

// particleRune 选择粒子字符，几乎透明的粒子不绘制
// 绕 X 轴转到侧面时显示为横线
func particleRune(shape config.Shape, f particle.Frame) (rune, bool) {
	if f.Opacity < 0.1 {
		return 0, false
	}

	if shape.Kind == config.ShapeGlyph {
		for _, r := range shape.Text {
			return r, true
		}
		return 0, false
	}

	if edgeOn(f.RotationX) {
		return '▬', true
	}
	if shape.Kind == config.ShapeCircle {
		return '●', true
	}
	return '■', true
}

// edgeOn 粒子是否接近侧面朝向观察者（|cos| 很小）
func edgeOn(rotationX float64) bool {
	deg := rotationX
	for deg < 0 {
		deg += 360
	}
	for deg >= 180 {
		deg -= 180
	}
	return deg > 70 && deg < 110
}

func particleStyle(shape config.Shape, c config.Color, f particle.Frame) tcell.Style {
	style := tcell.StyleDefault
	if shape.Colored() {
		style = style.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	if f.Opacity < 0.5 {
		style = style.Dim(true)
	}
	return style
}

func main() {
	flag.Parse()

	// 终端被 tcell 占用，日志写入文件或丢弃
	log.SetOutput(io.Discard)
	if *verboseFlag {
		logFile, err := os.OpenFile("confetti-term.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			log.SetOutput(logFile)
			defer logFile.Close()
		}
	}

	presets, err := config.LoadPresets(*presetsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "confetti-term: %v\n", err)
		os.Exit(1)
	}

	viewer, err := NewViewer(presets, *presetFlag, *muteFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "confetti-term: %v\n", err)
		os.Exit(1)
	}

	viewer.run()
	viewer.cleanup()
}
