package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-htmlsplice/internal/dateutil"
	"github.com/alnah/go-htmlsplice/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigTooLarge  = errors.New("config file exceeds maximum size")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// MaxConfigSize limits config input (1MB).
const MaxConfigSize = 1 << 20

// Field length limits.
const (
	MaxNameLength        = 100
	MaxPathLength        = 4096
	MaxContainerIDLength = 100
	MaxPlaceholderLength = 200
	MaxLabelLength       = 100
	MaxKeywordLength     = 50
	MaxLocaleLength      = 35 // BCP 47 tags are short in practice
)

// Target kinds.
const (
	KindArticle  = "article"
	KindTourDate = "tourdate"
)

// Body formats for article targets.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// Config holds the site description: which data files feed which pages.
type Config struct {
	Root        string            `yaml:"root"`       // Base directory for relative paths (empty = working directory)
	Locale      string            `yaml:"locale"`     // BCP 47 tag for date formatting (default: fr-FR)
	TrustInput  bool              `yaml:"trustInput"` // Copy text fields as raw HTML
	LastUpdated LastUpdatedConfig `yaml:"lastUpdated"`
	Status      StatusConfig      `yaml:"status"`
	Targets     []TargetConfig    `yaml:"targets"` // Empty = articles and tour dates defaults
}

// LastUpdatedConfig defines the last-updated stamp.
type LastUpdatedConfig struct {
	Label string `yaml:"label"` // Text before the timestamp (empty = locale default)
}

// StatusConfig defines tour date status keywords.
// Empty lists keep the built-in vocabulary.
type StatusConfig struct {
	Cancelled []string `yaml:"cancelled"`
	Confirmed []string `yaml:"confirmed"`
}

// TargetConfig defines one data file to page mapping.
type TargetConfig struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`        // "article" or "tourdate"
	Source      string `yaml:"source"`      // Flat text data file
	Document    string `yaml:"document"`    // HTML page updated in place
	ContainerID string `yaml:"containerId"` // Element id; markers are START_/END_ + upper-cased id
	Placeholder string `yaml:"placeholder"` // First-run comment, e.g. <!-- ARTICLES_CONTENT -->
	Format      string `yaml:"format"`      // Articles only: "text" (default) or "markdown"
	DateFormat  string `yaml:"dateFormat"`  // Tour dates only: token format (default: locale long date)
}

// DefaultTargets returns the articles and tour dates pages.
func DefaultTargets() []TargetConfig {
	return []TargetConfig{
		{
			Name:        "articles",
			Kind:        KindArticle,
			Source:      "articles.txt",
			Document:    "articles.html",
			ContainerID: "articles",
			Placeholder: "<!-- ARTICLES_CONTENT -->",
		},
		{
			Name:        "tourdates",
			Kind:        KindTourDate,
			Source:      "tourdates.txt",
			Document:    "tourdates.html",
			ContainerID: "tourdates",
			Placeholder: "<!-- TOURDATES_CONTENT -->",
		},
	}
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Locale:  dateutil.DefaultLocale,
		Targets: DefaultTargets(),
	}
}

// Validate checks field lengths, kinds, formats and locale.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("root", c.Root, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("locale", c.Locale, MaxLocaleLength); err != nil {
		return err
	}
	if _, err := dateutil.LookupLocale(c.Locale); err != nil {
		return fmt.Errorf("%w: locale: %v (supported: %s)", ErrInvalidConfig, err,
			strings.Join(dateutil.SupportedLocales(), ", "))
	}
	if err := validateFieldLength("lastUpdated.label", c.LastUpdated.Label, MaxLabelLength); err != nil {
		return err
	}

	for i, k := range c.Status.Cancelled {
		if err := validateFieldLength(fmt.Sprintf("status.cancelled[%d]", i), k, MaxKeywordLength); err != nil {
			return err
		}
	}
	for i, k := range c.Status.Confirmed {
		if err := validateFieldLength(fmt.Sprintf("status.confirmed[%d]", i), k, MaxKeywordLength); err != nil {
			return err
		}
	}

	if len(c.Targets) == 0 {
		return fmt.Errorf("%w: targets: at least one target is required", ErrInvalidConfig)
	}

	names := make(map[string]bool, len(c.Targets))
	injections := make(map[string]bool, len(c.Targets))
	for i := range c.Targets {
		t := &c.Targets[i]
		if err := t.validate(fmt.Sprintf("targets[%d]", i)); err != nil {
			return err
		}
		if names[t.Name] {
			return fmt.Errorf("%w: targets[%d].name: duplicate %q", ErrInvalidConfig, i, t.Name)
		}
		names[t.Name] = true

		key := filepath.Clean(t.Document) + "#" + strings.ToUpper(t.ContainerID)
		if injections[key] {
			return fmt.Errorf("%w: targets[%d]: container %q already used in %s",
				ErrInvalidConfig, i, t.ContainerID, t.Document)
		}
		injections[key] = true
	}

	return nil
}

func (t *TargetConfig) validate(field string) error {
	checks := []struct {
		name  string
		value string
		max   int
	}{
		{"name", t.Name, MaxNameLength},
		{"source", t.Source, MaxPathLength},
		{"document", t.Document, MaxPathLength},
		{"containerId", t.ContainerID, MaxContainerIDLength},
		{"placeholder", t.Placeholder, MaxPlaceholderLength},
	}
	for _, c := range checks {
		if err := validateFieldLength(field+"."+c.name, c.value, c.max); err != nil {
			return err
		}
	}

	for _, required := range []struct{ name, value string }{
		{"name", t.Name},
		{"source", t.Source},
		{"document", t.Document},
		{"containerId", t.ContainerID},
	} {
		if strings.TrimSpace(required.value) == "" {
			return fmt.Errorf("%w: %s.%s: required", ErrInvalidConfig, field, required.name)
		}
	}

	if strings.ContainsAny(t.ContainerID, " \t\r\n\"'<>") || strings.Contains(t.ContainerID, "--") {
		return fmt.Errorf("%w: %s.containerId: %q cannot contain spaces, quotes, angle brackets or \"--\"",
			ErrInvalidConfig, field, t.ContainerID)
	}

	switch t.Kind {
	case KindArticle:
		switch t.Format {
		case "", FormatText, FormatMarkdown:
		default:
			return fmt.Errorf("%w: %s.format: invalid value %q (must be text or markdown)", ErrInvalidConfig, field, t.Format)
		}
		if t.DateFormat != "" {
			return fmt.Errorf("%w: %s.dateFormat: only tourdate targets format dates", ErrInvalidConfig, field)
		}
	case KindTourDate:
		if t.Format != "" && t.Format != FormatText {
			return fmt.Errorf("%w: %s.format: only article targets accept markdown", ErrInvalidConfig, field)
		}
		if t.DateFormat != "" {
			if _, err := dateutil.ParseDateFormat(t.DateFormat); err != nil {
				return fmt.Errorf("%w: %s.dateFormat: %v", ErrInvalidConfig, field, err)
			}
		}
	default:
		return fmt.Errorf("%w: %s.kind: invalid value %q (must be %s or %s)",
			ErrInvalidConfig, field, t.Kind, KindArticle, KindTourDate)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
//
// Omitted fields take their defaults: locale fr-FR and, when the file
// lists no targets, the articles and tour dates pages.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML config data. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxConfigSize)
	}

	cfg := &Config{}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	if cfg.Locale == "" {
		cfg.Locale = dateutil.DefaultLocale
	}
	if len(cfg.Targets) == 0 {
		cfg.Targets = DefaultTargets()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// ./NAME.yaml, ./NAME.yml, then the same names under the user config
// directory (~/.config/htmlsplice/ on Linux).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "htmlsplice", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
