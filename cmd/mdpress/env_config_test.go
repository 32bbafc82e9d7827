package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdpress/internal/config"
)

// clearEnv unsets every MDPRESS_* variable so tests see a clean slate.
// t.Setenv registers the restore, so the original values come back.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDPRESS_") {
			name := strings.SplitN(env, "=", 2)[0]
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func TestLoadEnvConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("MDPRESS_CONTENT_DIR", "articles")
	t.Setenv("MDPRESS_OUTPUT_DIR", "dist")
	t.Setenv("MDPRESS_STYLE", "minimal")
	t.Setenv("MDPRESS_TIMEOUT", "45s")
	t.Setenv("MDPRESS_WORKERS", "3")

	cfg := loadEnvConfig()
	if cfg.ContentDir != "articles" {
		t.Errorf("ContentDir = %q", cfg.ContentDir)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Style != "minimal" {
		t.Errorf("Style = %q", cfg.Style)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
}

func TestLoadEnvConfigIgnoresInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("MDPRESS_TIMEOUT", "not-a-duration")
	t.Setenv("MDPRESS_WORKERS", "-2")

	cfg := loadEnvConfig()
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %v, want zero for invalid input", cfg.Timeout)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want zero for invalid input", cfg.Workers)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Content.Dir = "from-file"
	cfg.Render.Highlight = "file-theme"

	env := &envConfig{
		ContentDir: "from-env",
		Addr:       ":9999",
	}
	applyEnvConfig(env, cfg)

	if cfg.Content.Dir != "from-env" {
		t.Errorf("Content.Dir = %q, env should override file", cfg.Content.Dir)
	}
	if cfg.Serve.Addr != ":9999" {
		t.Errorf("Serve.Addr = %q", cfg.Serve.Addr)
	}
	if cfg.Render.Highlight != "file-theme" {
		t.Errorf("Highlight = %q, unset env vars must not clobber file values", cfg.Render.Highlight)
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("MDPRESS_CONTENT", "typo") // should be MDPRESS_CONTENT_DIR
	t.Setenv("MDPRESS_STYLE", "fine")

	var buf strings.Builder
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "MDPRESS_CONTENT") {
		t.Errorf("output %q should warn about the typo", out)
	}
	if strings.Contains(out, "MDPRESS_STYLE") {
		t.Errorf("output %q should not warn about known variables", out)
	}
}

func TestLoadSiteConfig(t *testing.T) {
	clearEnv(t)

	t.Run("explicit missing config fails", func(t *testing.T) {
		if _, err := loadSiteConfig(filepath.Join(t.TempDir(), "missing.yaml"), &envConfig{}); err == nil {
			t.Error("expected error for explicitly named missing config")
		}
	})

	t.Run("flag beats env", func(t *testing.T) {
		dir := t.TempDir()
		flagPath := filepath.Join(dir, "flag.yaml")
		writeConfig(t, flagPath, "site:\n  title: From Flag\n")
		envPath := filepath.Join(dir, "env.yaml")
		writeConfig(t, envPath, "site:\n  title: From Env\n")

		cfg, err := loadSiteConfig(flagPath, &envConfig{ConfigPath: envPath})
		if err != nil {
			t.Fatalf("loadSiteConfig() error = %v", err)
		}
		if cfg.Site.Title != "From Flag" {
			t.Errorf("Site.Title = %q", cfg.Site.Title)
		}
	})

	t.Run("env used when no flag", func(t *testing.T) {
		envPath := filepath.Join(t.TempDir(), "env.yaml")
		writeConfig(t, envPath, "site:\n  title: From Env\n")

		cfg, err := loadSiteConfig("", &envConfig{ConfigPath: envPath})
		if err != nil {
			t.Fatalf("loadSiteConfig() error = %v", err)
		}
		if cfg.Site.Title != "From Env" {
			t.Errorf("Site.Title = %q", cfg.Site.Title)
		}
	})

	t.Run("absent default falls back to defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := loadSiteConfig("", &envConfig{})
		if err != nil {
			t.Fatalf("loadSiteConfig() error = %v", err)
		}
		if cfg.Content.Dir != config.DefaultConfig().Content.Dir {
			t.Errorf("Content.Dir = %q, want default", cfg.Content.Dir)
		}
	})
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
