package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-htmlsplice/internal/dateutil"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Sentinel errors for fragment rendering.
var (
	ErrTooFewLines    = errors.New("block has too few lines")
	ErrMarkdownRender = errors.New("markdown rendering failed")
)

// Minimum number of lines per record schema.
const (
	MinArticleLines  = 3
	MinTourDateLines = 5
)

// FragmentRenderer turns the lines of one block into an HTML fragment.
// Blocks that do not fit the schema return ErrTooFewLines.
type FragmentRenderer interface {
	Render(lines []string) (string, error)
}

// textEscaper escapes text placed inside element content.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string, trusted bool) string {
	if trusted {
		return s
	}
	return textEscaper.Replace(s)
}

// ---------------------------------------------------------------------------
// Articles
// ---------------------------------------------------------------------------

// Article is one news entry: a title line, body lines, and a date line.
type Article struct {
	Title string
	Body  []string
	Date  string
}

// ParseArticle reads an article from block lines: first line is the title,
// last line is the date, anything in between is the body.
func ParseArticle(lines []string) (Article, error) {
	if len(lines) < MinArticleLines {
		return Article{}, fmt.Errorf("%w: article needs %d, got %d", ErrTooFewLines, MinArticleLines, len(lines))
	}
	return Article{
		Title: strings.TrimSpace(lines[0]),
		Body:  lines[1 : len(lines)-1],
		Date:  strings.TrimSpace(lines[len(lines)-1]),
	}, nil
}

const articleTemplate = `
<article>
    <header>
        <h2>%s</h2>
    </header>
    <section>
        %s
    </section>
    <footer>
        <time>%s</time>
    </footer>
</article>`

// ArticleRenderer renders article blocks.
type ArticleRenderer struct {
	// Trusted disables escaping: fields are copied into the page as HTML.
	Trusted bool
	// Markdown, when set, renders the body as Markdown instead of
	// joining lines with <br>.
	Markdown *MarkdownConverter
}

// Render implements FragmentRenderer.
func (r *ArticleRenderer) Render(lines []string) (string, error) {
	a, err := ParseArticle(lines)
	if err != nil {
		return "", err
	}
	return r.RenderArticle(a)
}

// RenderArticle renders a parsed article.
func (r *ArticleRenderer) RenderArticle(a Article) (string, error) {
	var section string
	if r.Markdown != nil {
		body, err := r.Markdown.Convert(strings.Join(a.Body, "\n"))
		if err != nil {
			return "", err
		}
		section = strings.TrimSpace(body)
	} else {
		parts := make([]string, len(a.Body))
		for i, line := range a.Body {
			parts[i] = escapeText(strings.TrimSpace(line), r.Trusted)
		}
		section = "<p>" + strings.TrimSpace(strings.Join(parts, "<br>")) + "</p>"
	}

	return fmt.Sprintf(articleTemplate,
		escapeText(a.Title, r.Trusted),
		section,
		escapeText(a.Date, r.Trusted),
	), nil
}

// ---------------------------------------------------------------------------
// Tour dates
// ---------------------------------------------------------------------------

// TourDate is one concert listing.
type TourDate struct {
	Date    string // DD/MM/YYYY as written in the source
	Band    string
	Venue   string
	Address string
	Status  string // free text, classified by keyword
}

// ParseTourDate reads a tour date from block lines in fixed order:
// date, band, venue, address, status. Lines past the fifth are ignored.
func ParseTourDate(lines []string) (TourDate, error) {
	if len(lines) < MinTourDateLines {
		return TourDate{}, fmt.Errorf("%w: tour date needs %d, got %d", ErrTooFewLines, MinTourDateLines, len(lines))
	}
	return TourDate{
		Date:    strings.TrimSpace(lines[0]),
		Band:    strings.TrimSpace(lines[1]),
		Venue:   strings.TrimSpace(lines[2]),
		Address: strings.TrimSpace(lines[3]),
		Status:  strings.TrimSpace(lines[4]),
	}, nil
}

// Category is the display state of a tour date.
type Category int

const (
	CategoryPending Category = iota
	CategoryConfirmed
	CategoryPast
	CategoryCancelled
)

func (c Category) String() string {
	switch c {
	case CategoryConfirmed:
		return "confirmed"
	case CategoryPast:
		return "past"
	case CategoryCancelled:
		return "cancelled"
	default:
		return "pending"
	}
}

// Class returns the CSS class the site stylesheet uses for c.
func (c Category) Class() string {
	if c == CategoryPast {
		return "past-date"
	}
	return c.String()
}

// Vocabulary lists the status keywords recognized by Classify.
type Vocabulary struct {
	Cancelled []string
	Confirmed []string
}

// DefaultVocabulary returns the French status keywords plus their English
// equivalents.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Cancelled: []string{"annulé", "cancelled", "canceled"},
		Confirmed: []string{"confirmé", "confirmed"},
	}
}

// Classify decides the category of a tour date. Order matters:
// cancellation beats everything, then a date strictly before now is past,
// then confirmation, else pending. hasDate is false when the date could
// not be parsed, in which case the date never counts as past.
func (v Vocabulary) Classify(status string, date time.Time, hasDate bool, now time.Time) Category {
	folded := fold(status)
	switch {
	case containsAny(folded, v.Cancelled):
		return CategoryCancelled
	case hasDate && date.Before(now):
		return CategoryPast
	case containsAny(folded, v.Confirmed):
		return CategoryConfirmed
	default:
		return CategoryPending
	}
}

// fold normalizes s for case-insensitive comparison. NFC first so that
// decomposed accents match their precomposed keywords.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

func containsAny(folded string, keywords []string) bool {
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(folded, fold(k)) {
			return true
		}
	}
	return false
}

// TourDateRenderer renders tour date blocks.
type TourDateRenderer struct {
	Trusted    bool
	Locale     dateutil.Locale
	DateLayout string         // Go layout; empty uses Locale.LongDate
	Location   *time.Location // zone of the parsed dates; nil is Local
	Now        func() time.Time
	Vocabulary Vocabulary
}

// Render implements FragmentRenderer.
func (r *TourDateRenderer) Render(lines []string) (string, error) {
	td, err := ParseTourDate(lines)
	if err != nil {
		return "", err
	}
	return r.RenderTourDate(td), nil
}

// RenderTourDate renders a parsed tour date. An unparseable date is shown
// as written and never counts as past.
func (r *TourDateRenderer) RenderTourDate(td TourDate) string {
	date, ok := dateutil.ParseDMY(td.Date, r.Location)

	display := td.Date
	if ok {
		if r.DateLayout != "" {
			display = r.Locale.FormatLayout(date, r.DateLayout)
		} else {
			display = r.Locale.FormatLong(date)
		}
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	category := r.Vocabulary.Classify(td.Status, date, ok, now())

	return fmt.Sprintf(`<p class="%s">%s - %s - %s - %s</p>`,
		category.Class(),
		escapeText(display, r.Trusted),
		escapeText(td.Band, r.Trusted),
		escapeText(td.Venue, r.Trusted),
		escapeText(td.Address, r.Trusted),
	)
}
