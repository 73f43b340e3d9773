// Package app 提供礼花查看器的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：加载预设、创建音频上下文、
// 注册场景工厂，然后以固定步长驱动当前场景。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/embedded"
	"github.com/decker502/confetti/pkg/game"
	"github.com/decker502/confetti/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Preset 初始预设名，为空时使用预设文件中的第一个
	Preset string
	// PresetsPath 预设文件路径，为空时使用内嵌的 data/presets.yaml
	PresetsPath string
	// AutoFire 自动触发间隔（秒），0 表示关闭
	AutoFire float64
	// Mute 关闭音效
	Mute bool
}

// App 是查看器的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	audioManager *game.AudioManager
	verbose      bool
}

// NewApp 创建并初始化查看器
//
// 使用内嵌预设时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	presets, err := embedded.LoadPresets(cfg.PresetsPath)
	if err != nil {
		return nil, fmt.Errorf("预设加载失败: %w", err)
	}
	log.Printf("[App] Loaded %d presets: %v", presets.Len(), presets.Names())

	presetName := cfg.Preset
	if presetName == "" {
		presetName = presets.At(0).Name
	}
	if _, ok := presets.Get(presetName); !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", presetName, presets.Names())
	}

	// 初始化音频上下文
	audioManager := game.NewAudioManager(audio.NewContext(48000))
	audioManager.SetMuted(cfg.Mute)
	log.Printf("[App] AudioManager initialized")

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) game.Scene {
		scene, err := scenes.NewCannonScene(sceneManager, audioManager, presets, name, scenes.CannonOptions{
			AutoFire: cfg.AutoFire,
		})
		if err != nil {
			log.Printf("[App] failed to create scene for %s: %v", name, err)
			return nil
		}
		return scene
	})

	if !sceneManager.LoadPreset(presetName) {
		return nil, fmt.Errorf("failed to create scene for preset %q", presetName)
	}

	return &App{
		sceneManager: sceneManager,
		audioManager: audioManager,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	// M 切换静音
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.audioManager.SetMuted(!a.audioManager.IsMuted())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
