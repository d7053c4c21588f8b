package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/blockgl/internal/mesher"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Test world defaults
	if cfg.World.ChunkSize != 16 {
		t.Errorf("expected chunk size 16, got %d", cfg.World.ChunkSize)
	}
	if cfg.World.LoadRadius != 6 {
		t.Errorf("expected load radius 6, got %d", cfg.World.LoadRadius)
	}
	if cfg.World.Generator != "turbulence" {
		t.Errorf("expected turbulence generator, got %s", cfg.World.Generator)
	}
	if cfg.World.Async {
		t.Error("expected async to be off by default")
	}

	// Test camera defaults
	if cfg.Camera.FOV != 45 || cfg.Camera.Near != 0.1 || cfg.Camera.Far != 10000 {
		t.Errorf("unexpected projection defaults: %+v", cfg.Camera)
	}
	if cfg.Camera.MouseSensitivity != 0.05 {
		t.Errorf("expected mouse sensitivity 0.05, got %f", cfg.Camera.MouseSensitivity)
	}
	if cfg.Camera.Speed != 10 || cfg.Camera.BoostSpeed != 35 {
		t.Errorf("expected speeds 10/35, got %f/%f", cfg.Camera.Speed, cfg.Camera.BoostSpeed)
	}

	// Test scene defaults
	if cfg.Scene.SkyColor != [3]float32{0.1, 0.6, 0.9} {
		t.Errorf("unexpected sky color %v", cfg.Scene.SkyColor)
	}

	// Test texture and material defaults
	if cfg.Textures.Size != 16 || len(cfg.Textures.Layers) != 4 {
		t.Errorf("expected 4 layers of 16px, got %d of %dpx", len(cfg.Textures.Layers), cfg.Textures.Size)
	}
	if len(cfg.Materials) != 2 {
		t.Errorf("expected 2 materials, got %d", len(cfg.Materials))
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

world:
  chunk_size: 32
  load_radius: 3
  generator: cosine
  seed: 42
  async: true
  workers: 4

scene:
  sky_color: [0.2, 0.3, 0.4]

camera:
  fov: 70
  speed: 20

textures:
  size: 32
  layers: ["a.png", "b.bmp"]

materials:
  - id: 7
    name: brick
    faces: [1, 1, 0, 0, 1, 1]

logging:
  level: "debug"
  log_file: "blockgl.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.World.ChunkSize != 32 || cfg.World.LoadRadius != 3 {
		t.Errorf("expected 32/3, got %d/%d", cfg.World.ChunkSize, cfg.World.LoadRadius)
	}
	if cfg.World.Generator != "cosine" || cfg.World.Seed != 42 {
		t.Errorf("expected cosine/42, got %s/%d", cfg.World.Generator, cfg.World.Seed)
	}
	if !cfg.World.Async || cfg.World.Workers != 4 {
		t.Error("expected async with 4 workers")
	}
	if cfg.Scene.SkyColor != [3]float32{0.2, 0.3, 0.4} {
		t.Errorf("unexpected sky color %v", cfg.Scene.SkyColor)
	}
	// Unset fields keep their defaults
	if cfg.Scene.LightColor != [3]float32{1, 1, 1} {
		t.Errorf("light color should keep its default, got %v", cfg.Scene.LightColor)
	}
	if cfg.Camera.FOV != 70 || cfg.Camera.Speed != 20 || cfg.Camera.BoostSpeed != 35 {
		t.Errorf("unexpected camera %+v", cfg.Camera)
	}
	if len(cfg.Textures.Layers) != 2 || cfg.Textures.Layers[1] != "b.bmp" {
		t.Errorf("unexpected layers %v", cfg.Textures.Layers)
	}
	if len(cfg.Materials) != 1 || cfg.Materials[0].ID != 7 {
		t.Errorf("materials should be replaced, got %+v", cfg.Materials)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "blockgl.log" {
		t.Errorf("expected log file 'blockgl.log', got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
world:
  chunk_size: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFileValidates(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("world:\n  generator: voronoi\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := LoadFile(configPath)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero chunk size", func(c *Config) { c.World.ChunkSize = 0 }},
		{"chunk size overflows index count", func(c *Config) { c.World.ChunkSize = mesher.MaxSize + 1 }},
		{"negative radius", func(c *Config) { c.World.LoadRadius = -1 }},
		{"negative workers", func(c *Config) { c.World.Workers = -2 }},
		{"unknown generator", func(c *Config) { c.World.Generator = "voronoi" }},
		{"zero texture size", func(c *Config) { c.Textures.Size = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"air material", func(c *Config) { c.Materials[0].ID = 0 }},
		{"id out of range", func(c *Config) { c.Materials[0].ID = 300 }},
		{"duplicate id", func(c *Config) { c.Materials[1].ID = c.Materials[0].ID }},
		{"layer out of range", func(c *Config) { c.Materials[1].Faces[2] = 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}

	t.Run("largest chunk size is valid", func(t *testing.T) {
		cfg := Default()
		cfg.World.ChunkSize = mesher.MaxSize
		if err := cfg.Validate(); err != nil {
			t.Errorf("chunk size %d should validate: %v", mesher.MaxSize, err)
		}
	})

	t.Run("zero radius is valid", func(t *testing.T) {
		cfg := Default()
		cfg.World.LoadRadius = 0
		if err := cfg.Validate(); err != nil {
			t.Errorf("radius 0 should validate: %v", err)
		}
	})
}

func TestTextureTable(t *testing.T) {
	table := Default().TextureTable()

	if l, ok := table.Layer(1, mesher.FaceTop); !ok || l != 0 {
		t.Errorf("stone top: got %d, %v", l, ok)
	}
	want := [6]uint32{3, 3, 1, 2, 3, 3}
	for f, w := range want {
		l, ok := table.Layer(2, mesher.Face(f))
		if !ok || l != w {
			t.Errorf("grass %s: got %d, want %d", mesher.Face(f), l, w)
		}
	}
	if table.Defined(3) {
		t.Error("id 3 should be undefined")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.World.LoadRadius = 2
	cfg.Materials = append(cfg.Materials, MaterialConfig{ID: 9, Name: "ore", Faces: [6]uint32{1, 1, 1, 1, 1, 1}})
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.World.LoadRadius != 2 {
		t.Errorf("expected radius 2, got %d", loaded.World.LoadRadius)
	}
	if len(loaded.Materials) != 3 || loaded.Materials[2].Name != "ore" {
		t.Errorf("materials did not survive: %+v", loaded.Materials)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	if err := os.WriteFile("config.yaml", []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "radius flag accepts zero",
			setup: func() { *flagRadius = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.World.LoadRadius != 0 {
					t.Errorf("expected radius 0, got %d", cfg.World.LoadRadius)
				}
			},
			teardown: func() { *flagRadius = -1 },
		},
		{
			name: "world flags",
			setup: func() {
				*flagGenerator = "cosine"
				*flagSeed = 7
				*flagAsync = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.World.Generator != "cosine" || cfg.World.Seed != 7 || !cfg.World.Async {
					t.Errorf("unexpected world %+v", cfg.World)
				}
			},
			teardown: func() {
				*flagGenerator = ""
				*flagSeed = 0
				*flagAsync = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
world:
  load_radius: 4
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	*flagRadius = 2
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
		*flagRadius = -1
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}

	if cfg.World.LoadRadius != 2 {
		t.Errorf("expected radius 2 from flag, got %d", cfg.World.LoadRadius)
	}
}
