// Package tuning holds the engine's tunable limits and the named
// construction profiles built from them.
package tuning

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"reelfx/internal/faults"
)

// PreviewQuality controls the fidelity of interactive previews.
type PreviewQuality string

const (
	PreviewLow    PreviewQuality = "low"
	PreviewMedium PreviewQuality = "medium"
	PreviewHigh   PreviewQuality = "high"
)

// Default limits applied when no profile is selected.
const (
	DefaultMaxEffectsPerLayer = 20
	DefaultMaxLayers          = 10
	DefaultCacheSize          = 500
	DefaultActivityCapacity   = 1000
	DefaultAutoSaveInterval   = 30 * time.Second
	DefaultRenderTimeout      = 10 * time.Second
)

// Config is the engine's tunable state. It is a value type; copies never
// alias the engine's own configuration.
type Config struct {
	MaxEffectsPerLayer    int            `json:"max_effects_per_layer"`
	MaxLayers             int            `json:"max_layers"`
	EnableGPUAcceleration bool           `json:"enable_gpu_acceleration"`
	CacheSize             int            `json:"cache_size"`
	PreviewQuality        PreviewQuality `json:"preview_quality"`
	RealTimePreview       bool           `json:"real_time_preview"`
	AutoSaveInterval      time.Duration  `json:"auto_save_interval"`
	ActivityCapacity      int            `json:"activity_capacity"`
	RenderTimeout         time.Duration  `json:"render_timeout"`
}

// Default returns the engine's baseline configuration.
func Default() Config {
	return Config{
		MaxEffectsPerLayer:    DefaultMaxEffectsPerLayer,
		MaxLayers:             DefaultMaxLayers,
		EnableGPUAcceleration: true,
		CacheSize:             DefaultCacheSize,
		PreviewQuality:        PreviewMedium,
		RealTimePreview:       true,
		AutoSaveInterval:      DefaultAutoSaveInterval,
		ActivityCapacity:      DefaultActivityCapacity,
		RenderTimeout:         DefaultRenderTimeout,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.MaxEffectsPerLayer <= 0:
		return invalid("max_effects_per_layer must be positive")
	case c.MaxLayers <= 0:
		return invalid("max_layers must be positive")
	case c.CacheSize < 0:
		return invalid("cache_size must be >= 0")
	case c.ActivityCapacity <= 0:
		return invalid("activity_capacity must be positive")
	case c.AutoSaveInterval < 0:
		return invalid("auto_save_interval must be >= 0")
	case c.RenderTimeout < 0:
		return invalid("render_timeout must be >= 0")
	}
	switch c.PreviewQuality {
	case PreviewLow, PreviewMedium, PreviewHigh:
	default:
		return invalid(fmt.Sprintf("unsupported preview_quality %q", c.PreviewQuality))
	}
	return nil
}

// Patch is a partial configuration; nil fields are left unchanged.
type Patch struct {
	MaxEffectsPerLayer    *int
	MaxLayers             *int
	EnableGPUAcceleration *bool
	CacheSize             *int
	PreviewQuality        *PreviewQuality
	RealTimePreview       *bool
	AutoSaveInterval      *time.Duration
	ActivityCapacity      *int
	RenderTimeout         *time.Duration
}

// Merge returns c with every non-nil field of p applied.
func (c Config) Merge(p Patch) Config {
	set(&c.MaxEffectsPerLayer, p.MaxEffectsPerLayer)
	set(&c.MaxLayers, p.MaxLayers)
	set(&c.EnableGPUAcceleration, p.EnableGPUAcceleration)
	set(&c.CacheSize, p.CacheSize)
	set(&c.PreviewQuality, p.PreviewQuality)
	set(&c.RealTimePreview, p.RealTimePreview)
	set(&c.AutoSaveInterval, p.AutoSaveInterval)
	set(&c.ActivityCapacity, p.ActivityCapacity)
	set(&c.RenderTimeout, p.RenderTimeout)
	return c
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Profile names.
const (
	ProfileDefault = "default"
	ProfileBasic   = "basic"
	ProfilePro     = "pro"
	ProfileDev     = "dev"
)

var profiles = map[string]func() Config{
	ProfileDefault: Default,
	ProfileBasic: func() Config {
		c := Default()
		c.MaxEffectsPerLayer = 10
		c.MaxLayers = 5
		c.CacheSize = 200
		c.AutoSaveInterval = 60 * time.Second
		return c
	},
	ProfilePro: func() Config {
		c := Default()
		c.MaxEffectsPerLayer = 30
		c.MaxLayers = 20
		c.CacheSize = 1000
		c.PreviewQuality = PreviewHigh
		return c
	},
	ProfileDev: func() Config {
		c := Default()
		c.MaxEffectsPerLayer = 5
		c.MaxLayers = 3
		c.EnableGPUAcceleration = false
		c.CacheSize = 50
		c.PreviewQuality = PreviewLow
		c.RealTimePreview = false
		c.AutoSaveInterval = 120 * time.Second
		return c
	},
}

// Profile returns the named construction profile. Names are case-insensitive;
// an empty name selects the default profile.
func Profile(name string) (Config, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = ProfileDefault
	}
	build, ok := profiles[key]
	if !ok {
		return Config{}, faults.Wrap(faults.ErrValidation, "profile", fmt.Sprintf("unknown profile %q (want one of %s)", name, strings.Join(ProfileNames(), ", ")), nil)
	}
	return build(), nil
}

// ProfileNames lists the known profiles in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func invalid(message string) error {
	return faults.Wrap(faults.ErrValidation, "config", message, nil)
}
