package htmlsplice

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-htmlsplice/internal/pipeline"
)

// Kind selects the record schema of a target.
type Kind string

// Target kinds.
const (
	KindArticle  Kind = "article"
	KindTourDate Kind = "tourdate"
)

// Strategy is the injection path a build took.
type Strategy = pipeline.Strategy

// Injection strategies, in the order they are tried.
const (
	StrategyNone        = pipeline.StrategyNone
	StrategyMarkers     = pipeline.StrategyMarkers
	StrategyPlaceholder = pipeline.StrategyPlaceholder
	StrategyContainer   = pipeline.StrategyContainer
)

// Target maps one data file to one document.
type Target struct {
	Name        string
	Kind        Kind
	Source      string // data file, relative to the builder root
	Document    string // HTML page updated in place, relative to the builder root
	ContainerID string // element id; markers are START_/END_ + upper-cased id
	Placeholder string // first-run comment, e.g. <!-- ARTICLES_CONTENT -->
	Markdown    bool   // articles only: render the body as Markdown
	DateFormat  string // tour dates only: token format such as "DDDD D MMMM YYYY"
}

// DefaultTargets returns the articles and tour dates pages.
func DefaultTargets() []Target {
	return []Target{
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

// Validate checks that the target can be built.
func (t Target) Validate() error {
	switch t.Kind {
	case KindArticle:
		if t.DateFormat != "" {
			return fmt.Errorf("%w: %s: dateFormat applies to tour dates only", ErrInvalidTarget, t.Name)
		}
	case KindTourDate:
		if t.Markdown {
			return fmt.Errorf("%w: %s: markdown applies to articles only", ErrInvalidTarget, t.Name)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, t.Kind)
	}

	if strings.TrimSpace(t.Source) == "" {
		return fmt.Errorf("%w: %s: source is required", ErrInvalidTarget, t.Name)
	}
	if strings.TrimSpace(t.Document) == "" {
		return fmt.Errorf("%w: %s: document is required", ErrInvalidTarget, t.Name)
	}
	if strings.TrimSpace(t.ContainerID) == "" {
		return fmt.Errorf("%w: %s: container id is required", ErrInvalidTarget, t.Name)
	}
	return nil
}

// Result describes the outcome of building one target.
// Err is nil for a target skipped because its source is missing;
// SourceMissing is set instead.
type Result struct {
	Target        string
	Source        string
	Document      string
	Strategy      Strategy
	Fragments     int  // records rendered
	Skipped       int  // blocks dropped for having too few lines
	Stamped       bool // last-updated timestamp written
	SourceMissing bool
	Err           error
}

// Updated reports whether the document was rewritten.
func (r Result) Updated() bool {
	return r.Err == nil && r.Strategy != StrategyNone
}

// String returns a one-line summary, e.g.
// "updated articles.html via marker replacement (3 fragments)".
func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("failed %s: %v", r.Document, r.Err)
	}
	if r.SourceMissing {
		return fmt.Sprintf("skipped %s: %s not found", r.Document, r.Source)
	}
	if !r.Updated() {
		return fmt.Sprintf("skipped %s", r.Document)
	}
	noun := "fragments"
	if r.Fragments == 1 {
		noun = "fragment"
	}
	return fmt.Sprintf("updated %s via %s (%d %s)", r.Document, r.Strategy, r.Fragments, noun)
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger. Nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithClock sets the time source used for past dates and the
// last-updated timestamp. Parsed dates use the location of its result.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithLocale sets the BCP 47 tag used to display dates (default fr-FR).
func WithLocale(name string) Option {
	return func(b *Builder) {
		b.localeName = name
	}
}

// WithTrustedInput copies text fields into documents as raw HTML.
func WithTrustedInput(trusted bool) Option {
	return func(b *Builder) {
		b.trusted = trusted
	}
}

// WithVocabulary overrides the status keywords of tour dates. An empty
// list keeps the built-in keywords for that category.
func WithVocabulary(cancelled, confirmed []string) Option {
	return func(b *Builder) {
		if len(cancelled) > 0 {
			b.vocabulary.Cancelled = cancelled
		}
		if len(confirmed) > 0 {
			b.vocabulary.Confirmed = confirmed
		}
	}
}

// WithLabel sets the text placed before the last-updated timestamp.
// Empty uses the locale's wording.
func WithLabel(label string) Option {
	return func(b *Builder) {
		b.label = label
	}
}

// WithRoot sets the directory that target paths are relative to.
func WithRoot(dir string) Option {
	return func(b *Builder) {
		b.root = dir
	}
}
