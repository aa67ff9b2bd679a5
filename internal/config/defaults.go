package config

const (
	defaultConfigPath    = "~/.config/reelfx/config.toml"
	defaultDataDir       = "~/.local/share/reelfx"
	defaultLogDir        = "~/.local/share/reelfx/logs"
	defaultStoreFilename = "sessions.db"
	defaultProfile       = "default"
	defaultRenderQuality = "preview"
	defaultRenderWidth   = 1920
	defaultRenderHeight  = 1080
	defaultRenderFPS     = 30
	defaultRenderFormat  = "rgba"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Engine: Engine{
			Profile: defaultProfile,
		},
		Render: Render{
			Quality:      defaultRenderQuality,
			Width:        defaultRenderWidth,
			Height:       defaultRenderHeight,
			FPS:          defaultRenderFPS,
			Format:       defaultRenderFormat,
			Antialiasing: true,
		},
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Store: Store{
			Enabled:  true,
			Filename: defaultStoreFilename,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
