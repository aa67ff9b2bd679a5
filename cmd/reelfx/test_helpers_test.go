package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelfx/internal/config"
	"reelfx/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	scenePath  string
	baseDir    string
}

const testScene = `
name = "cli opening"

[render]
quality = "draft"
width = 640
height = 360
fps = 10.0
from = 0
to = 4

[[effects]]
key = "snow"
kind = "particle"
type = "snow"
start = 0.0
duration = 0.3

[[effects]]
key = "blur"
kind = "blur"
type = "gaussian"
amount = 6.0
start = 0.2
duration = 1.0

[[layers]]
name = "weather"
blend_mode = "screen"
effects = ["snow", "blur"]
`

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("REELFX_DATA_DIR", "")

	cfg := testsupport.NewConfig(t)
	configPath := filepath.Join(homeDir, ".config", "reelfx", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	scenePath := filepath.Join(base, "opening.toml")
	if err := os.WriteFile(scenePath, []byte(testScene), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		scenePath:  scenePath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\n\n[logging]\nlevel = \"warn\"\n",
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
