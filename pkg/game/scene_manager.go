package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 根据预设名创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(presetName string) Scene

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene  Scene
	currentPreset string
	sceneFactory  SceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or LoadPreset to set one.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentPreset 返回最近一次通过 LoadPreset 加载的预设名
func (sm *SceneManager) CurrentPreset() string {
	return sm.currentPreset
}

// LoadPreset 用工厂函数创建指定预设的场景并切换过去
// 返回是否切换成功；失败时保留当前场景
func (sm *SceneManager) LoadPreset(presetName string) bool {
	log.Printf("[SceneManager] 加载预设: %s", presetName)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}

	newScene := sm.sceneFactory(presetName)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建预设场景: %s", presetName)
		return false
	}

	sm.SwitchTo(newScene)
	sm.currentPreset = presetName
	log.Printf("[SceneManager] 成功切换到预设: %s", presetName)
	return true
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
