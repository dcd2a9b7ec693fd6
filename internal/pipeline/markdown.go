package pipeline

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownConverter renders article bodies written in Markdown to an HTML
// fragment using goldmark.
type MarkdownConverter struct {
	md goldmark.Markdown
}

// NewMarkdownConverter creates a converter with GFM extensions and
// class-based syntax highlighting. Single newlines become <br>, matching
// plain-text bodies. Raw HTML in the source is dropped unless trusted.
func NewMarkdownConverter(trusted bool) *MarkdownConverter {
	htmlOpts := []renderer.Option{
		html.WithHardWraps(), // Treat newlines as <br>
	}
	if trusted {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(htmlOpts...),
	)
	return &MarkdownConverter{md: md}
}

// Convert renders source to an HTML fragment.
func (c *MarkdownConverter) Convert(source string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownRender, err)
	}
	return buf.String(), nil
}
