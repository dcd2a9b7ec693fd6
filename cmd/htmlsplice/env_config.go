package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-htmlsplice/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // HTMLSPLICE_CONFIG: config file name or path
	Root       string // HTMLSPLICE_ROOT: site directory
	Locale     string // HTMLSPLICE_LOCALE: date locale
}

// knownEnvVars lists valid HTMLSPLICE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTMLSPLICE_CONFIG": true,
	"HTMLSPLICE_ROOT":   true,
	"HTMLSPLICE_LOCALE": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("HTMLSPLICE_CONFIG"),
		Root:       os.Getenv("HTMLSPLICE_ROOT"),
		Locale:     os.Getenv("HTMLSPLICE_LOCALE"),
	}
}

// warnUnknownEnvVars prints warnings for unrecognized HTMLSPLICE_* variables.
// Helps catch typos like HTMLSPLICE_LOCAL instead of HTMLSPLICE_LOCALE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "HTMLSPLICE_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via applyFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Root != "" {
		cfg.Root = env.Root
	}
	if env.Locale != "" {
		cfg.Locale = env.Locale
	}
}
