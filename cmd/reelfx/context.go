package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"reelfx/internal/config"
	"reelfx/internal/engine"
	"reelfx/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(c.flagPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) flagPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

// logger writes to the command's stderr. Against the real stderr the
// configured log directory also receives a copy.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if w := cmd.ErrOrStderr(); w != os.Stderr {
		return logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Writer: w,
		})
	}
	return logging.NewFromConfig(cfg)
}

// newEngine builds an engine from the configured profile and overrides.
func (c *commandContext) newEngine(cmd *cobra.Command) (*engine.Engine, *slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	tuned, err := cfg.EngineTuning()
	if err != nil {
		return nil, nil, fmt.Errorf("engine config: %w", err)
	}
	e, err := engine.New(engine.WithConfig(tuned), engine.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return e, logger, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
