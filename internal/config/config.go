package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"grass-field/core"
	"grass-field/grass"
	"grass-field/noise"
	"grass-field/playground"
	"grass-field/wind"
)

// Config holds window, field, wind and output settings.
type Config struct {
	// Window
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Title   string `json:"title"`
	Samples int    `json:"samples"`
	NoVSync bool   `json:"no_vsync"`

	// Field
	Blades      int     `json:"blades"`
	XStart      float32 `json:"x_start"`
	ZStart      float32 `json:"z_start"`
	XBound      float32 `json:"x_bound"`
	ZBound      float32 `json:"z_bound"`
	BladeHeight float32 `json:"blade_height"`
	BladeWidth  float32 `json:"blade_width"`
	Seed        int64   `json:"seed"`
	Workers     int     `json:"workers"`

	// Wind
	Wind        *wind.Params `json:"wind,omitempty"`
	NoNoise     bool         `json:"no_noise"`
	NoiseSource string       `json:"noise_source"`
	NoiseSize   int          `json:"noise_size"`

	// Output
	ScreenshotPath string `json:"screenshot_path"`
	ExportPath     string `json:"export_path"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width       int
	Height      int
	Blades      int
	Seed        int64
	Workers     int
	NoiseSource string
	NoNoise     bool
	Screenshot  string
	Export      string
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes cfg as indented JSON.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Blades > 0 {
		c.Blades = flags.Blades
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.NoiseSource != "" {
		c.NoiseSource = flags.NoiseSource
	}
	if flags.NoNoise {
		c.NoNoise = true
	}
	if flags.Screenshot != "" {
		c.ScreenshotPath = flags.Screenshot
	}
	if flags.Export != "" {
		c.ExportPath = flags.Export
	}

	win := core.DefaultWindowConfig()
	if c.Width <= 0 {
		c.Width = win.Width
	}
	if c.Height <= 0 {
		c.Height = win.Height
	}
	if c.Title == "" {
		c.Title = win.Title
	}
	if c.Samples <= 0 {
		c.Samples = win.Samples
	}

	field := grass.DefaultField()
	if c.Blades <= 0 {
		c.Blades = field.Count
	}
	if c.XBound <= 0 || c.ZBound <= 0 {
		c.XStart, c.ZStart = field.XStart, field.ZStart
		c.XBound, c.ZBound = field.XBound, field.ZBound
	}
	blade := grass.DefaultBlade()
	if c.BladeHeight <= 0 {
		c.BladeHeight = blade.Height
	}
	if c.BladeWidth <= 0 {
		c.BladeWidth = blade.Width
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	if c.Wind == nil {
		p := wind.DefaultParams()
		c.Wind = &p
	}
	if c.NoiseSource == "" {
		c.NoiseSource = noise.DefaultURL
	}
	if c.NoiseSize <= 0 {
		c.NoiseSize = 512
	}

	if c.ScreenshotPath == "" {
		c.ScreenshotPath = "grassfield.webp"
	}
	if c.ExportPath == "" {
		c.ExportPath = "grassfield.glb"
	}
}

// Window returns the window settings.
func (c Config) Window() core.WindowConfig {
	win := core.DefaultWindowConfig()
	win.Width = c.Width
	win.Height = c.Height
	win.Title = c.Title
	win.Samples = c.Samples
	win.VSync = !c.NoVSync
	return win
}

// Options returns the scene options.
func (c Config) Options() playground.Options {
	opts := playground.DefaultOptions()
	opts.Field = grass.Field{
		Count:  c.Blades,
		XStart: c.XStart,
		ZStart: c.ZStart,
		XBound: c.XBound,
		ZBound: c.ZBound,
	}
	opts.Blade = grass.Blade{Height: c.BladeHeight, Width: c.BladeWidth}
	opts.Seed = c.Seed
	opts.Workers = c.Workers
	if c.Wind != nil {
		opts.Wind = *c.Wind
	}
	opts.UseNoise = !c.NoNoise
	opts.NoiseSource = c.NoiseSource
	opts.NoiseSize = c.NoiseSize
	return opts
}
