// Package main provides the confetti cannon viewer.
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--preset <name>       Start with a specific preset (default: first in file)
//	--presets <file>      Load presets from a YAML file instead of the built-in set
//	--auto-fire <sec>     Fire automatically every <sec> seconds (0 = off)
//	--mute                Start with sound off
//	--verbose             Enable verbose logging (default off)
//
// Controls:
//
//	Space             - Fire (increment the trigger counter)
//	Mouse Click       - Move the cannon origin
//	Left/Right Arrow  - Switch to previous/next preset
//	M                 - Toggle sound
//	F11               - Toggle fullscreen
//	Escape            - Quit
package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/confetti/pkg/app"
	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	presetFlag   = flag.String("preset", "", "Initial preset name")
	presetsFlag  = flag.String("presets", "", "Preset YAML file (default: built-in data/presets.yaml)")
	autoFireFlag = flag.Float64("auto-fire", 0, "Auto fire interval in seconds (0 = off)")
	muteFlag     = flag.Bool("mute", false, "Start muted")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	if *autoFireFlag < 0 {
		log.Printf("--auto-fire must be >= 0, got %v", *autoFireFlag)
		os.Exit(2)
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verboseFlag,
		Preset:      *presetFlag,
		PresetsPath: *presetsFlag,
		AutoFire:    *autoFireFlag,
		Mute:        *muteFlag,
	})
	if err != nil {
		// NewApp 在非 verbose 模式下关闭了日志输出
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Confetti Cannon")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
