package htmlsplice

import (
	"errors"

	"github.com/alnah/go-htmlsplice/internal/dateutil"
	"github.com/alnah/go-htmlsplice/internal/pipeline"
)

// Sentinel errors for build operations.
var (
	// ErrSourceNotFound reports a missing data file. The target is
	// skipped; this is not a failure.
	ErrSourceNotFound = errors.New("source file not found")
	ErrReadSource     = errors.New("failed to read source")
	ErrReadDocument   = errors.New("failed to read document")
	ErrWriteDocument  = errors.New("failed to write document")
	ErrRender         = errors.New("failed to render record")

	// ErrContainerNotFound reports a document with no markers,
	// placeholder or container for the target.
	ErrContainerNotFound = pipeline.ErrContainerNotFound

	// Target validation errors.
	ErrUnknownKind   = errors.New("unknown target kind")
	ErrInvalidTarget = errors.New("invalid target")

	// Builder option errors.
	ErrUnsupportedLocale = dateutil.ErrUnsupportedLocale
)
