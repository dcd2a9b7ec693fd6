package main

// Notes:
// - loadEnvConfig: we test all three HTMLSPLICE_* variables.
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - applyEnvConfig and resolveConfig: we test the priority chain
//   flags > env > config file > defaults.
// - Tests use t.Setenv() which prevents t.Parallel() at parent level.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-htmlsplice/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("HTMLSPLICE_CONFIG", "band")
		t.Setenv("HTMLSPLICE_ROOT", "/srv/site")
		t.Setenv("HTMLSPLICE_LOCALE", "en-GB")

		cfg := loadEnvConfig()

		if cfg.ConfigPath != "band" {
			t.Errorf("ConfigPath = %q, want band", cfg.ConfigPath)
		}
		if cfg.Root != "/srv/site" {
			t.Errorf("Root = %q, want /srv/site", cfg.Root)
		}
		if cfg.Locale != "en-GB" {
			t.Errorf("Locale = %q, want en-GB", cfg.Locale)
		}
	})

	t.Run("unset variables are empty", func(t *testing.T) {
		t.Setenv("HTMLSPLICE_CONFIG", "")
		t.Setenv("HTMLSPLICE_ROOT", "")
		t.Setenv("HTMLSPLICE_LOCALE", "")

		cfg := loadEnvConfig()

		if *cfg != (envConfig{}) {
			t.Errorf("loadEnvConfig() = %+v, want zero value", cfg)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Run("warns on typo", func(t *testing.T) {
		t.Setenv("HTMLSPLICE_LOCAL", "fr-FR")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		if !strings.Contains(buf.String(), "HTMLSPLICE_LOCAL (typo?)") {
			t.Errorf("output = %q, want warning for HTMLSPLICE_LOCAL", buf.String())
		}
	})

	t.Run("known variables do not warn", func(t *testing.T) {
		t.Setenv("HTMLSPLICE_LOCALE", "fr-FR")
		t.Setenv("HTMLSPLICE_ROOT", ".")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		if strings.Contains(buf.String(), "HTMLSPLICE_LOCALE") || strings.Contains(buf.String(), "HTMLSPLICE_ROOT") {
			t.Errorf("unexpected warning: %q", buf.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env values over config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("env overrides config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Root = "from-file"
		applyEnvConfig(&envConfig{Root: "from-env", Locale: "de-DE"}, cfg)

		if cfg.Root != "from-env" {
			t.Errorf("Root = %q, want from-env", cfg.Root)
		}
		if cfg.Locale != "de-DE" {
			t.Errorf("Locale = %q, want de-DE", cfg.Locale)
		}
	})

	t.Run("empty env keeps config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Root = "from-file"
		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Root != "from-file" || cfg.Locale != "fr-FR" {
			t.Errorf("cfg = %+v, want file values", cfg)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveConfig - Priority chain
// ---------------------------------------------------------------------------

func TestResolveConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(configPath, []byte("root: file-root\nlocale: en-US\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name       string
		flags      commonFlags
		env        envConfig
		wantRoot   string
		wantLocale string
	}{
		{
			name:       "defaults",
			wantLocale: "fr-FR",
		},
		{
			name:       "config file",
			flags:      commonFlags{config: configPath},
			wantRoot:   "file-root",
			wantLocale: "en-US",
		},
		{
			name:       "config from env",
			env:        envConfig{ConfigPath: configPath},
			wantRoot:   "file-root",
			wantLocale: "en-US",
		},
		{
			name:       "env over config file",
			flags:      commonFlags{config: configPath},
			env:        envConfig{Root: "env-root", Locale: "de-DE"},
			wantRoot:   "env-root",
			wantLocale: "de-DE",
		},
		{
			name:       "flags over env",
			flags:      commonFlags{config: configPath, root: "flag-root", locale: "it-IT"},
			env:        envConfig{Root: "env-root", Locale: "de-DE"},
			wantRoot:   "flag-root",
			wantLocale: "it-IT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := resolveConfig(&tt.flags, &tt.env)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Root != tt.wantRoot {
				t.Errorf("Root = %q, want %q", cfg.Root, tt.wantRoot)
			}
			if cfg.Locale != tt.wantLocale {
				t.Errorf("Locale = %q, want %q", cfg.Locale, tt.wantLocale)
			}
		})
	}
}

func TestResolveConfig_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file gets a hint", func(t *testing.T) {
		t.Parallel()

		_, err := resolveConfig(&commonFlags{config: filepath.Join(t.TempDir(), "nope.yaml")}, &envConfig{})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "hint: use --config") {
			t.Errorf("error %q should carry a hint", err)
		}
	})

	t.Run("invalid locale from env", func(t *testing.T) {
		t.Parallel()

		_, err := resolveConfig(&commonFlags{}, &envConfig{Locale: "xx-XX"})
		if !errors.Is(err, config.ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})
}
