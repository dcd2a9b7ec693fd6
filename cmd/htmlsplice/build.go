package main

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	htmlsplice "github.com/alnah/go-htmlsplice"
	"github.com/alnah/go-htmlsplice/internal/config"
	"github.com/alnah/go-htmlsplice/internal/dateutil"
	"github.com/alnah/go-htmlsplice/internal/fileutil"
	"github.com/alnah/go-htmlsplice/internal/hints"
)

// site is the resolved configuration of one invocation.
type site struct {
	cfg     *config.Config
	targets []htmlsplice.Target
	builder *htmlsplice.Builder
	logger  *zap.Logger
	quiet   bool
}

// runBuild builds every configured target once.
// Documents that fail are logged and do not make the command fail.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	f, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	s, err := loadSite(&f.common, env)
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	return s.build(ctx, env)
}

// loadSite resolves config, env vars and flags into a ready builder.
func loadSite(f *commonFlags, env *Environment) (*site, error) {
	if !f.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := resolveConfig(f, loadEnvConfig())
	if err != nil {
		return nil, err
	}

	logger := newLogger(env.Stderr, f.quiet, f.verbose)
	opts := append(htmlsplice.OptionsFromConfig(cfg),
		htmlsplice.WithLogger(logger),
		htmlsplice.WithClock(env.Now),
	)
	builder, err := htmlsplice.NewBuilder(opts...)
	if err != nil {
		return nil, err
	}

	logger.Debug("loaded site",
		zap.String("root", cfg.Root),
		zap.String("locale", cfg.Locale),
		zap.Int("targets", len(cfg.Targets)))

	return &site{
		cfg:     cfg,
		targets: htmlsplice.TargetsFromConfig(cfg),
		builder: builder,
		logger:  logger,
		quiet:   f.quiet,
	}, nil
}

// resolveConfig loads the config file if one is named and applies
// overrides. Priority: CLI flags > env vars > config file > defaults.
func resolveConfig(f *commonFlags, envCfg *envConfig) (*config.Config, error) {
	name := f.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				var searched []string
				if !fileutil.IsFilePath(name) {
					searched = config.SearchPaths(name)
				}
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(searched))
			}
			return nil, err
		}
	}

	applyEnvConfig(envCfg, cfg)
	applyFlags(f, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags applies explicitly set flags over config and env values.
func applyFlags(f *commonFlags, cfg *config.Config) {
	if f.root != "" {
		cfg.Root = f.root
	}
	if f.locale != "" {
		cfg.Locale = f.locale
	}
}

// build runs every target and prints a summary.
func (s *site) build(ctx context.Context, env *Environment) error {
	results, err := s.builder.BuildAll(ctx, s.targets)
	printResults(results, s.quiet, env)
	return err
}

// sourcePaths returns the resolved data file of every target.
func (s *site) sourcePaths() []string {
	var paths []string
	for _, t := range s.targets {
		p := fileutil.ResolvePath(s.cfg.Root, t.Source)
		if !slices.Contains(paths, p) {
			paths = append(paths, p)
		}
	}
	return paths
}

// printResults writes one line per updated or skipped target to stdout.
// Failures are already logged by the builder. Returns the failure count.
func printResults(results []htmlsplice.Result, quiet bool, env *Environment) int {
	var updated, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		if r.Updated() {
			updated++
		}
		if !quiet {
			fmt.Fprintln(env.Stdout, r)
		}
	}

	if !quiet && failed > 0 {
		fmt.Fprintf(env.Stdout, "%d updated, %d failed\n", updated, failed)
	}

	return failed
}

// hintFor returns a hint for errors that reach the command line.
func hintFor(err error) string {
	switch {
	case errors.Is(err, htmlsplice.ErrUnsupportedLocale):
		return hints.ForUnsupportedLocale(dateutil.SupportedLocales())
	case errors.Is(err, errWatchSetup):
		return hints.ForWatch()
	}
	return ""
}
