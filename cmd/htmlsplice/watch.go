package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-htmlsplice/internal/watch"
)

// errWatchSetup reports that file events could not be subscribed to.
var errWatchSetup = errors.New("cannot watch data files")

// runWatch builds once, then rebuilds every target whenever a data file
// changes, until interrupted.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	f, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	s, err := loadSite(&f.common, env)
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	if err := s.build(ctx, env); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	paths := s.sourcePaths()
	w, err := watch.New(paths, watch.WithDebounce(f.debounce), watch.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("%w: %v", errWatchSetup, err)
	}

	if !f.common.quiet {
		fmt.Fprintf(env.Stderr, "watching %d data files, press Ctrl-C to stop\n", len(paths))
	}

	return w.Run(ctx, func(ctx context.Context, _ []string) {
		_ = s.build(ctx, env)
	})
}
