package config

// 布局配置常量
// 查看器窗口与大炮（发射原点）的默认位置

const (
	// WindowWidth 是查看器的逻辑屏幕宽度
	WindowWidth = 1024

	// WindowHeight 是查看器的逻辑屏幕高度
	WindowHeight = 768

	// DefaultOriginX 默认发射原点X坐标（屏幕水平居中）
	DefaultOriginX = WindowWidth / 2.0

	// DefaultOriginY 默认发射原点Y坐标
	// 默认锥形角度 60°~120° 向上发射，原点放在屏幕下半部分留出爆炸空间
	DefaultOriginY = WindowHeight * 0.6

	// HUDMargin 是左上角状态文字的边距
	HUDMargin = 8

	// DefaultPresetsPath 是内嵌预设文件的路径
	DefaultPresetsPath = "data/presets.yaml"
)
