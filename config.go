package htmlsplice

import (
	"github.com/alnah/go-htmlsplice/internal/config"
)

// TargetsFromConfig converts configured targets to build targets.
func TargetsFromConfig(cfg *config.Config) []Target {
	targets := make([]Target, len(cfg.Targets))
	for i, tc := range cfg.Targets {
		targets[i] = Target{
			Name:        tc.Name,
			Kind:        Kind(tc.Kind),
			Source:      tc.Source,
			Document:    tc.Document,
			ContainerID: tc.ContainerID,
			Placeholder: tc.Placeholder,
			Markdown:    tc.Format == config.FormatMarkdown,
			DateFormat:  tc.DateFormat,
		}
	}
	return targets
}

// OptionsFromConfig returns the builder options a site config sets.
// Options appended after these take precedence.
func OptionsFromConfig(cfg *config.Config) []Option {
	return []Option{
		WithRoot(cfg.Root),
		WithLocale(cfg.Locale),
		WithTrustedInput(cfg.TrustInput),
		WithLabel(cfg.LastUpdated.Label),
		WithVocabulary(cfg.Status.Cancelled, cfg.Status.Confirmed),
	}
}
