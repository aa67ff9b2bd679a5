package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEngine() error {
	if c.Engine.MaxLayers < 0 || c.Engine.MaxEffectsPerLayer < 0 || c.Engine.CacheSize < 0 || c.Engine.ActivityCapacity < 0 {
		return errors.New("engine limits must be >= 0 (0 keeps the profile value)")
	}
	if c.Engine.RenderTimeoutSeconds < 0 || c.Engine.AutoSaveIntervalSeconds < 0 {
		return errors.New("engine intervals must be >= 0")
	}
	if _, err := c.EngineTuning(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

func (c *Config) validateRender() error {
	if err := c.RenderOptions().Validate(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (c *Config) validateStore() error {
	if filepath.Base(c.Store.Filename) != c.Store.Filename {
		return fmt.Errorf("store.filename %q must be a bare file name", c.Store.Filename)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
