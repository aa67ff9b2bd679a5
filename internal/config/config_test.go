package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"reelfx/internal/config"
	"reelfx/internal/faults"
	"reelfx/internal/render"
	"reelfx/internal/tuning"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("REELFX_DATA_DIR", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "reelfx")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.StorePath() != filepath.Join(wantData, "sessions.db") {
		t.Fatalf("unexpected store path: %q", cfg.StorePath())
	}
	if cfg.Engine.Profile != "default" {
		t.Fatalf("unexpected profile: %q", cfg.Engine.Profile)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "reelfx.toml")

	type payload struct {
		Engine struct {
			Profile   string `toml:"profile"`
			MaxLayers int    `toml:"max_layers"`
		} `toml:"engine"`
		Render struct {
			Quality string `toml:"quality"`
			FPS     int    `toml:"fps"`
		} `toml:"render"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Engine.Profile = "Pro"
	custom.Engine.MaxLayers = 4
	custom.Render.Quality = "FINAL"
	custom.Render.FPS = 24
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Engine.Profile != "pro" {
		t.Fatalf("expected normalized profile, got %q", cfg.Engine.Profile)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized log format, got %q", cfg.Logging.Format)
	}

	tun, err := cfg.EngineTuning()
	if err != nil {
		t.Fatalf("EngineTuning: %v", err)
	}
	if tun.MaxLayers != 4 {
		t.Fatalf("expected max_layers override 4, got %d", tun.MaxLayers)
	}
	if tun.MaxEffectsPerLayer != 30 || tun.PreviewQuality != tuning.PreviewHigh {
		t.Fatalf("expected pro profile values, got %+v", tun)
	}

	opts := cfg.RenderOptions()
	if opts.Quality != render.QualityFinal || opts.FPS != 24 {
		t.Fatalf("unexpected render options: %+v", opts)
	}
	if opts.Resolution.Width != 1920 {
		t.Fatalf("expected default width, got %d", opts.Resolution.Width)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "reelfx.toml")
	if err := os.WriteFile(configPath, []byte("[engine]\nbogus = 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown field to fail")
	}
}

func TestEnvOverridesDataDir(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("REELFX_DATA_DIR", dataDir)
	configPath := filepath.Join(t.TempDir(), "reelfx.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\ndata_dir = \"/somewhere/else\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DataDir != dataDir {
		t.Fatalf("expected env data dir %q, got %q", dataDir, cfg.Paths.DataDir)
	}
	if cfg.LockPath() != filepath.Join(dataDir, "sessions.db.lock") {
		t.Fatalf("unexpected lock path %q", cfg.LockPath())
	}
}

func TestEngineTuningOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.Profile = "dev"
	cfg.Engine.CacheSize = 7
	cfg.Engine.RenderTimeoutSeconds = 3
	cfg.Engine.DisableGPU = true

	tun, err := cfg.EngineTuning()
	if err != nil {
		t.Fatalf("EngineTuning: %v", err)
	}
	if tun.CacheSize != 7 || tun.RenderTimeout != 3*time.Second {
		t.Fatalf("overrides not applied: %+v", tun)
	}
	if tun.MaxLayers != 3 || tun.EnableGPUAcceleration {
		t.Fatalf("expected dev profile values, got %+v", tun)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[engine]") {
		t.Fatalf("sample config missing engine section: %s", contents)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Render.Quality != "preview" {
		t.Fatalf("unexpected sample quality %q", cfg.Render.Quality)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.Profile = "studio"
	err := cfg.Validate()
	if !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error for unknown profile, got %v", err)
	}

	cfg = config.Default()
	cfg.Engine.MaxLayers = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative max_layers")
	}

	cfg = config.Default()
	cfg.Render.FPS = -5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative fps")
	}

	cfg = config.Default()
	cfg.Render.Format = "cmyk"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported format")
	}

	cfg = config.Default()
	cfg.Store.Filename = "../escape.db"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for nested store filename")
	}

	cfg = config.Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}
