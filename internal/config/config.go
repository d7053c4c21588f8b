// Package config handles blockgl configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Graphics  GraphicsConfig   `yaml:"graphics"`
	World     WorldConfig      `yaml:"world"`
	Scene     SceneConfig      `yaml:"scene"`
	Camera    CameraConfig     `yaml:"camera"`
	Textures  TexturesConfig   `yaml:"textures"`
	Materials []MaterialConfig `yaml:"materials"`
	Logging   LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	Wireframe  bool `yaml:"wireframe"`
}

// WorldConfig holds the chunk store dimensions and terrain selection.
type WorldConfig struct {
	ChunkSize  int    `yaml:"chunk_size"`
	LoadRadius int    `yaml:"load_radius"` // Chunks in each direction
	Generator  string `yaml:"generator"`
	Seed       int64  `yaml:"seed"`
	Async      bool   `yaml:"async"`
	Workers    int    `yaml:"workers"` // 0 means one per CPU
}

// SceneConfig holds sky and light parameters.
type SceneConfig struct {
	SkyColor   [3]float32 `yaml:"sky_color"`
	LightColor [3]float32 `yaml:"light_color"`
	LightPos   [3]float32 `yaml:"light_pos"`
}

// CameraConfig holds projection and fly camera settings.
type CameraConfig struct {
	FOV              float32    `yaml:"fov"` // Degrees
	Near             float32    `yaml:"near"`
	Far              float32    `yaml:"far"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity"`
	Speed            float32    `yaml:"speed"`
	BoostSpeed       float32    `yaml:"boost_speed"`
	Start            [3]float32 `yaml:"start"`
}

// TexturesConfig lists the texture array layers. Empty or missing paths
// get a generated tile.
type TexturesConfig struct {
	Size   int      `yaml:"size"`
	Layers []string `yaml:"layers"`
}

// MaterialConfig maps a block id to texture layers in face order:
// right, left, top, bottom, front, back.
type MaterialConfig struct {
	ID    int       `yaml:"id"`
	Name  string    `yaml:"name"`
	Faces [6]uint32 `yaml:"faces"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		World: WorldConfig{
			ChunkSize:  16,
			LoadRadius: 6,
			Generator:  "turbulence",
			Seed:       0,
			Async:      false,
			Workers:    0,
		},
		Scene: SceneConfig{
			SkyColor:   [3]float32{0.1, 0.6, 0.9},
			LightColor: [3]float32{1, 1, 1},
			LightPos:   [3]float32{100000, 200000, 100000},
		},
		Camera: CameraConfig{
			FOV:              45,
			Near:             0.1,
			Far:              10000,
			MouseSensitivity: 0.05,
			Speed:            10,
			BoostSpeed:       35,
			Start:            [3]float32{0, 40, 0},
		},
		Textures: TexturesConfig{
			Size: 16,
			Layers: []string{
				"textures/stone.png",
				"textures/grass_top.png",
				"textures/dirt.png",
				"textures/grass_side.png",
			},
		},
		Materials: []MaterialConfig{
			{ID: 1, Name: "stone", Faces: [6]uint32{0, 0, 0, 0, 0, 0}},
			{ID: 2, Name: "grass", Faces: [6]uint32{3, 3, 1, 2, 3, 3}},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
