package htmlsplice

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-htmlsplice/internal/blocks"
	"github.com/alnah/go-htmlsplice/internal/dateutil"
	"github.com/alnah/go-htmlsplice/internal/fileutil"
	"github.com/alnah/go-htmlsplice/internal/hints"
	"github.com/alnah/go-htmlsplice/internal/pipeline"
)

// Builder renders data files into documents. Builds are sequential; a
// Builder holds no per-build state and may be reused.
type Builder struct {
	logger     *zap.Logger
	now        func() time.Time
	localeName string
	locale     dateutil.Locale
	trusted    bool
	vocabulary pipeline.Vocabulary
	label      string
	root       string

	markdown *pipeline.MarkdownConverter
}

// NewBuilder creates a Builder with default configuration.
// Returns ErrUnsupportedLocale if WithLocale names a language without
// localized dates.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		logger:     zap.NewNop(),
		now:        time.Now,
		localeName: dateutil.DefaultLocale,
		vocabulary: pipeline.DefaultVocabulary(),
	}

	for _, opt := range opts {
		opt(b)
	}

	locale, err := dateutil.LookupLocale(b.localeName)
	if err != nil {
		return nil, err
	}
	b.locale = locale
	if b.label == "" {
		b.label = locale.Label
	}
	b.markdown = pipeline.NewMarkdownConverter(b.trusted)

	return b, nil
}

// BuildAll builds every target in order. A failing target does not stop
// the others; its Result carries the error. The returned error is only
// set when ctx is cancelled, in which case the remaining targets are
// not built.
func (b *Builder) BuildAll(ctx context.Context, targets []Target) ([]Result, error) {
	results := make([]Result, 0, len(targets))
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, _ := b.Build(ctx, t)
		results = append(results, res)
	}
	return results, nil
}

// Build renders one target and writes its document. The document is left
// untouched when anything before the write fails.
//
// A missing source returns an error wrapping ErrSourceNotFound with
// Result.SourceMissing set and Result.Err nil: the target is skipped,
// not failed. Any other error is also stored in Result.Err.
func (b *Builder) Build(ctx context.Context, t Target) (Result, error) {
	res := Result{Target: t.Name, Source: t.Source, Document: t.Document}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	err := b.build(t, &res)
	if err == nil {
		return res, nil
	}

	if errors.Is(err, ErrSourceNotFound) {
		res.SourceMissing = true
		b.logger.Info("skipping target",
			zap.String("target", t.Name),
			zap.String("source", fileutil.ResolvePath(b.root, t.Source)),
			zap.String("hint", hints.Plain(hints.ForSourceNotFound(b.root))))
		return res, err
	}

	res.Err = err
	res.Strategy = StrategyNone
	b.logFailure(t, err)
	return res, err
}

func (b *Builder) build(t Target, res *Result) error {
	if err := t.Validate(); err != nil {
		return err
	}

	now := b.now()
	renderer, err := b.renderer(t, now)
	if err != nil {
		return err
	}

	sourcePath := fileutil.ResolvePath(b.root, t.Source)
	source, err := os.ReadFile(sourcePath) // #nosec G304 -- path comes from site config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
		}
		return fmt.Errorf("%w: %s: %v", ErrReadSource, sourcePath, err)
	}

	docPath := fileutil.ResolvePath(b.root, t.Document)
	doc, err := os.ReadFile(docPath) // #nosec G304 -- path comes from site config
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadDocument, docPath, err)
	}

	content, err := b.render(t, renderer, string(source), res)
	if err != nil {
		return err
	}

	out, strategy, err := pipeline.Splice(string(doc), pipeline.Injection{
		ContainerID: t.ContainerID,
		Placeholder: t.Placeholder,
	}, content)
	if err != nil {
		return fmt.Errorf("%s: %w", docPath, err)
	}
	res.Strategy = strategy

	out, res.Stamped = pipeline.StampLastUpdated(out, b.label, b.locale.FormatTimestamp(now))

	if err := fileutil.WriteFileAtomic(docPath, []byte(out)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteDocument, docPath, err)
	}

	b.logger.Info("updated document",
		zap.String("document", docPath),
		zap.Stringer("strategy", strategy),
		zap.Int("fragments", res.Fragments),
		zap.Int("skipped", res.Skipped),
		zap.Bool("stamped", res.Stamped))
	return nil
}

// render concatenates the fragments of every block in source order.
// Blocks with too few lines are counted and dropped.
func (b *Builder) render(t Target, r pipeline.FragmentRenderer, source string, res *Result) (string, error) {
	var sb strings.Builder
	for _, block := range blocks.Split(source) {
		fragment, err := r.Render(block.Lines)
		if err != nil {
			if errors.Is(err, pipeline.ErrTooFewLines) {
				res.Skipped++
				b.logger.Debug("skipping block",
					zap.String("target", t.Name),
					zap.Int("line", block.Line),
					zap.Error(err))
				continue
			}
			return "", fmt.Errorf("%w: %s line %d: %v", ErrRender, t.Source, block.Line, err)
		}
		sb.WriteString(fragment)
		res.Fragments++
	}
	return sb.String(), nil
}

func (b *Builder) renderer(t Target, now time.Time) (pipeline.FragmentRenderer, error) {
	switch t.Kind {
	case KindArticle:
		r := &pipeline.ArticleRenderer{Trusted: b.trusted}
		if t.Markdown {
			r.Markdown = b.markdown
		}
		return r, nil

	case KindTourDate:
		var layout string
		if t.DateFormat != "" {
			var err error
			layout, err = dateutil.ParseDateFormat(t.DateFormat)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTarget, t.Name, err)
			}
		}
		return &pipeline.TourDateRenderer{
			Trusted:    b.trusted,
			Locale:     b.locale,
			DateLayout: layout,
			Location:   now.Location(),
			Now:        func() time.Time { return now },
			Vocabulary: b.vocabulary,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, t.Kind)
	}
}

func (b *Builder) logFailure(t Target, err error) {
	fields := []zap.Field{
		zap.String("target", t.Name),
		zap.String("document", fileutil.ResolvePath(b.root, t.Document)),
		zap.String("container", t.ContainerID),
		zap.Error(err),
	}

	var hint string
	switch {
	case errors.Is(err, ErrContainerNotFound):
		hint = hints.ForMissingContainer(t.ContainerID, t.Placeholder)
	case errors.Is(err, ErrWriteDocument):
		hint = hints.ForWriteDocument()
	}
	if hint != "" {
		fields = append(fields, zap.String("hint", hints.Plain(hint)))
	}

	b.logger.Error("build failed", fields...)
}
