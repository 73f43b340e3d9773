package embedded

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

const testPresets = `
presets:
  - name: classic
  - name: slow
    radius: 150
    repetitions: 2
`

func withFS(t *testing.T, files fstest.MapFS) {
	t.Helper()
	Init(files)
	t.Cleanup(func() {
		dataFS = nil
		initialized = false
	})
}

// TestNotInitialized 测试未初始化时的访问
func TestNotInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	if _, err := Open("data/presets.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open before Init: %v", err)
	}
	if _, err := ReadFile("data/presets.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile before Init: %v", err)
	}
	if Exists("data/presets.yaml") {
		t.Error("Exists should be false before Init")
	}
}

func TestReadFilePaths(t *testing.T) {
	withFS(t, fstest.MapFS{
		"data/presets.yaml": {Data: []byte(testPresets)},
		"data/extra.yaml":   {Data: []byte("x")},
	})

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"标准路径", "data/presets.yaml", false},
		{"带 ./ 前缀", "./data/presets.yaml", false},
		{"未知前缀", "assets/presets.yaml", true},
		{"不存在", "data/missing.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}

	matches, err := Glob("data/*.yaml")
	if err != nil || len(matches) != 2 {
		t.Errorf("Glob = %v, %v", matches, err)
	}
}

func TestLoadPresetsBuiltIn(t *testing.T) {
	withFS(t, fstest.MapFS{
		"data/presets.yaml": {Data: []byte(testPresets)},
	})

	set, err := LoadPresets("")
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 presets, got %d", set.Len())
	}
	slow, ok := set.Get("slow")
	if !ok || slow.Config.Repetitions() != 2 || slow.Config.Radius() != 150 {
		t.Errorf("unexpected slow preset: %+v", slow)
	}
}

func TestLoadPresetsFromDisk(t *testing.T) {
	withFS(t, fstest.MapFS{})

	path := filepath.Join(t.TempDir(), "mine.yaml")
	if err := os.WriteFile(path, []byte("presets:\n  - name: only\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets(%s): %v", path, err)
	}
	if names := set.Names(); len(names) != 1 || names[0] != "only" {
		t.Errorf("names = %v", names)
	}

	// 内置文件缺失
	if _, err := LoadPresets(""); err == nil {
		t.Error("expected error when built-in presets are missing")
	}
}
