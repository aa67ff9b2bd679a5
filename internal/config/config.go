package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"reelfx/internal/render"
	"reelfx/internal/tuning"
)

//go:embed sample_config.toml
var sampleConfig string

// Engine selects the construction profile and optional per-field overrides.
// Zero-valued overrides keep the profile's value.
type Engine struct {
	Profile                 string `toml:"profile"`
	MaxLayers               int    `toml:"max_layers"`
	MaxEffectsPerLayer      int    `toml:"max_effects_per_layer"`
	CacheSize               int    `toml:"cache_size"`
	PreviewQuality          string `toml:"preview_quality"`
	ActivityCapacity        int    `toml:"activity_capacity"`
	RenderTimeoutSeconds    int    `toml:"render_timeout_seconds"`
	AutoSaveIntervalSeconds int    `toml:"auto_save_interval_seconds"`
	DisableGPU              bool   `toml:"disable_gpu"`
}

// Render holds the default frame render options used by the CLI.
type Render struct {
	Quality      string  `toml:"quality"`
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
	FPS          float64 `toml:"fps"`
	Format       string  `toml:"format"`
	Antialiasing bool    `toml:"antialiasing"`
	MotionBlur   bool    `toml:"motion_blur"`
}

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Store configures the session journal.
type Store struct {
	Enabled  bool   `toml:"enabled"`
	Filename string `toml:"filename"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for reelfx.
//
// Configuration sections by subsystem:
//   - Engine: construction profile and limit overrides
//   - Render: default frame render options
//   - Paths: data and log directories
//   - Store: session journal database
//   - Logging: log format and level
type Config struct {
	Engine  Engine  `toml:"engine"`
	Render  Render  `toml:"render"`
	Paths   Paths   `toml:"paths"`
	Store   Store   `toml:"store"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("reelfx.toml")
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// StorePath is the session journal database location.
func (c *Config) StorePath() string {
	return filepath.Join(c.Paths.DataDir, c.Store.Filename)
}

// LockPath is the journal writer lock location.
func (c *Config) LockPath() string {
	return c.StorePath() + ".lock"
}

// EngineTuning resolves the profile and applies the overrides.
func (c *Config) EngineTuning() (tuning.Config, error) {
	base, err := tuning.Profile(c.Engine.Profile)
	if err != nil {
		return tuning.Config{}, err
	}
	var patch tuning.Patch
	if c.Engine.MaxLayers > 0 {
		patch.MaxLayers = &c.Engine.MaxLayers
	}
	if c.Engine.MaxEffectsPerLayer > 0 {
		patch.MaxEffectsPerLayer = &c.Engine.MaxEffectsPerLayer
	}
	if c.Engine.CacheSize > 0 {
		patch.CacheSize = &c.Engine.CacheSize
	}
	if c.Engine.PreviewQuality != "" {
		quality := tuning.PreviewQuality(c.Engine.PreviewQuality)
		patch.PreviewQuality = &quality
	}
	if c.Engine.ActivityCapacity > 0 {
		patch.ActivityCapacity = &c.Engine.ActivityCapacity
	}
	if c.Engine.RenderTimeoutSeconds > 0 {
		timeout := time.Duration(c.Engine.RenderTimeoutSeconds) * time.Second
		patch.RenderTimeout = &timeout
	}
	if c.Engine.AutoSaveIntervalSeconds > 0 {
		interval := time.Duration(c.Engine.AutoSaveIntervalSeconds) * time.Second
		patch.AutoSaveInterval = &interval
	}
	if c.Engine.DisableGPU {
		off := false
		patch.EnableGPUAcceleration = &off
	}
	merged := base.Merge(patch)
	if err := merged.Validate(); err != nil {
		return tuning.Config{}, err
	}
	return merged, nil
}

// RenderOptions converts the [render] section.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Quality:      render.Quality(c.Render.Quality),
		Resolution:   render.Resolution{Width: c.Render.Width, Height: c.Render.Height},
		FPS:          c.Render.FPS,
		Format:       render.Format(c.Render.Format),
		Antialiasing: c.Render.Antialiasing,
		MotionBlur:   c.Render.MotionBlur,
	}.Normalize()
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
