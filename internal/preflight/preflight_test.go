package preflight_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"reelfx/internal/preflight"
	"reelfx/internal/projectstore"
	"reelfx/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := preflight.CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := preflight.CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := preflight.CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestRunAllHealthyConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	results := preflight.RunAll(context.Background(), cfg)
	if len(results) != 5 {
		t.Fatalf("results = %d, want 5", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Fatalf("%s failed: %s", r.Name, r.Detail)
		}
	}
}

func TestRunAllSkipsDisabledStore(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStoreDisabled())
	results := preflight.RunAll(context.Background(), cfg)
	for _, r := range results {
		if r.Name == "Session store" {
			t.Fatal("store check should be skipped when disabled")
		}
	}
}

func TestCheckEngineProfileRejectsUnknown(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithProfile("turbo"))
	if result := preflight.CheckEngineProfile(cfg); result.Passed {
		t.Fatal("expected unknown profile to fail")
	}
}

func TestCheckRenderDefaultsRejectsZeroFPS(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Render.FPS = 0
	if result := preflight.CheckRenderDefaults(cfg); result.Passed {
		t.Fatal("expected zero fps to fail")
	}
}

func TestCheckStoreLockedByOtherHolder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := projectstore.Open(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	result := preflight.CheckStore(context.Background(), cfg)
	if !result.Passed {
		t.Fatalf("expected locked store to pass, got: %s", result.Detail)
	}
}
