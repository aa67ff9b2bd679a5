package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEngine()
	c.normalizeRender()
	c.normalizeStore()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("REELFX_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeEngine() {
	c.Engine.Profile = strings.ToLower(strings.TrimSpace(c.Engine.Profile))
	if c.Engine.Profile == "" {
		c.Engine.Profile = defaultProfile
	}
	c.Engine.PreviewQuality = strings.ToLower(strings.TrimSpace(c.Engine.PreviewQuality))
}

func (c *Config) normalizeRender() {
	c.Render.Quality = strings.ToLower(strings.TrimSpace(c.Render.Quality))
	if c.Render.Quality == "" {
		c.Render.Quality = defaultRenderQuality
	}
	c.Render.Format = strings.ToLower(strings.TrimSpace(c.Render.Format))
	if c.Render.Format == "" {
		c.Render.Format = defaultRenderFormat
	}
	if c.Render.Width == 0 {
		c.Render.Width = defaultRenderWidth
	}
	if c.Render.Height == 0 {
		c.Render.Height = defaultRenderHeight
	}
	if c.Render.FPS == 0 {
		c.Render.FPS = defaultRenderFPS
	}
}

func (c *Config) normalizeStore() {
	c.Store.Filename = strings.TrimSpace(c.Store.Filename)
	if c.Store.Filename == "" {
		c.Store.Filename = defaultStoreFilename
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
