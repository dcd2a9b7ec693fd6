package main

import (
	"errors"

	htmlsplice "github.com/alnah/go-htmlsplice"
	"github.com/alnah/go-htmlsplice/internal/config"
)

// ErrUsage reports invalid flags or arguments.
var ErrUsage = errors.New("invalid usage")

// Exit codes for htmlsplice CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage.
// A document that cannot be updated is logged and does not change the
// exit code.
const (
	ExitSuccess = 0 // Build ran; individual documents may have failed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags or config
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, errHelp) {
		return ExitSuccess
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigTooLarge) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, htmlsplice.ErrUnsupportedLocale) {
		return ExitUsage
	}

	return ExitGeneral
}
