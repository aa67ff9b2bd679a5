package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"reelfx/internal/config"
	"reelfx/internal/projectstore"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckEngineProfile(cfg),
		CheckRenderDefaults(cfg),
	}
	if cfg.Store.Enabled {
		results = append(results, CheckStore(ctx, cfg))
	}
	return results
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckEngineProfile verifies that the profile and its overrides resolve.
func CheckEngineProfile(cfg *config.Config) Result {
	const name = "Engine profile"
	tuned, err := cfg.EngineTuning()
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (max layers %d, cache %d)",
		cfg.Engine.Profile, tuned.MaxLayers, tuned.CacheSize)}
}

// CheckRenderDefaults verifies the [render] defaults.
func CheckRenderDefaults(cfg *config.Config) Result {
	const name = "Render defaults"
	opts := cfg.RenderOptions()
	if err := opts.Validate(); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s %s @ %g fps", opts.Quality, opts.Resolution, opts.FPS)}
}

// CheckStore opens the session journal and lists one session. A store held by
// another process counts as healthy.
func CheckStore(ctx context.Context, cfg *config.Config) Result {
	const name = "Session store"
	store, err := projectstore.Open(cfg)
	if errors.Is(err, projectstore.ErrLocked) {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (in use by another process)", cfg.StorePath())}
	}
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	defer store.Close()
	if _, err := store.ListSessions(ctx, 1); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("query failed: %v", err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (ok)", cfg.StorePath())}
}
