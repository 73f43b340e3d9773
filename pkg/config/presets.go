package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a named, validated cannon configuration loaded from a preset file.
type Preset struct {
	Name    string
	Options Options
	Config  *BurstConfig
}

// PresetSet is an ordered collection of presets.
// 顺序与 YAML 文件中的声明顺序一致（查看器用左右方向键切换）
type PresetSet struct {
	presets []Preset
	byName  map[string]int
}

// presetFile is the on-disk layout:
//
//	presets:
//	  - name: classic
//	    particleCount: 20
//	  - name: party
//	    emojis: ["🎉", "✨"]
//
// Omitted keys keep their DefaultOptions value.
type presetFile struct {
	Presets []yaml.Node `yaml:"presets"`
}

type presetHeader struct {
	Name string `yaml:"name"`
}

// ErrNoPresets is returned when a preset file declares no presets.
var ErrNoPresets = errors.New("preset file contains no presets")

// LoadPresets 从文件系统加载预设配置
//
// 参数:
//   - path: YAML 文件路径（如 "data/presets.yaml"）
//
// 返回:
//   - *PresetSet: 所有预设（已验证）
//   - error: 读取、解析或验证失败
func LoadPresets(path string) (*PresetSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file %s: %w", path, err)
	}

	set, err := ParsePresets(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load presets from %s: %w", path, err)
	}
	return set, nil
}

// ParsePresets decodes and validates a preset document.
// Each preset is decoded on top of DefaultOptions, so only overridden keys need to appear.
// Validation failures are returned as a *ConfigError wrapped with the preset name.
func ParsePresets(data []byte) (*PresetSet, error) {
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}

	if len(file.Presets) == 0 {
		return nil, ErrNoPresets
	}

	set := &PresetSet{
		presets: make([]Preset, 0, len(file.Presets)),
		byName:  make(map[string]int, len(file.Presets)),
	}

	for i := range file.Presets {
		node := &file.Presets[i]

		var header presetHeader
		if err := node.Decode(&header); err != nil {
			return nil, fmt.Errorf("preset #%d (line %d): %w", i, node.Line, err)
		}
		if header.Name == "" {
			return nil, fmt.Errorf("preset #%d (line %d): missing name", i, node.Line)
		}
		if _, dup := set.byName[header.Name]; dup {
			return nil, fmt.Errorf("preset %q (line %d): duplicate name", header.Name, node.Line)
		}

		// 在默认值之上解码，未写出的字段保持默认
		opts := DefaultOptions()
		if err := node.Decode(&opts); err != nil {
			return nil, fmt.Errorf("preset %q: %w", header.Name, err)
		}

		cfg, err := NewBurstConfig(opts)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", header.Name, err)
		}

		set.byName[header.Name] = len(set.presets)
		set.presets = append(set.presets, Preset{Name: header.Name, Options: opts, Config: cfg})
	}

	return set, nil
}

// Len returns the number of presets.
func (s *PresetSet) Len() int { return len(s.presets) }

// At returns the i-th preset in declaration order.
func (s *PresetSet) At(i int) Preset { return s.presets[i] }

// Get looks a preset up by name.
func (s *PresetSet) Get(name string) (Preset, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Preset{}, false
	}
	return s.presets[i], true
}

// Index returns the position of the named preset, or -1.
func (s *PresetSet) Index(name string) int {
	if i, ok := s.byName[name]; ok {
		return i
	}
	return -1
}

// Names lists preset names in declaration order.
func (s *PresetSet) Names() []string {
	names := make([]string, len(s.presets))
	for i, p := range s.presets {
		names[i] = p.Name
	}
	return names
}
