// Package blocks splits flat-text data files into records.
//
// A data file is a sequence of blocks separated by one or more blank lines
// (lines holding only whitespace). Each block is one record, one field per
// line. A block whose first line starts with an HTML comment opener is an
// authoring note and is dropped:
//
//	<!-- tour dates, newest last -->
//
//	15/03/2025
//	The Band
//	Le Venue
//	1 rue de la Paix, Paris
//	Confirmé
package blocks

import "strings"

// CommentPrefix marks a block as an authoring comment.
const CommentPrefix = "<!--"

// Block is one blank-line-delimited record.
type Block struct {
	Line  int      // 1-based line number of the first field in the source
	Lines []string // fields with trailing whitespace trimmed; inner indentation is kept
}

// Split returns the data blocks of content in source order.
// CRLF line endings are accepted. Only the block edges are trimmed, so
// indentation inside a block survives for markdown bodies.
func Split(content string) []Block {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var (
		out     []Block
		current Block
	)

	flush := func() {
		if len(current.Lines) > 0 {
			current.Lines[0] = strings.TrimLeft(current.Lines[0], " \t")
			if !isComment(current.Lines[0]) {
				out = append(out, current)
			}
		}
		current = Block{}
	}

	for i, raw := range strings.Split(content, "\n") {
		if strings.TrimSpace(raw) == "" {
			flush()
			continue
		}
		if len(current.Lines) == 0 {
			current.Line = i + 1
		}
		current.Lines = append(current.Lines, strings.TrimRight(raw, " \t"))
	}
	flush()

	return out
}

func isComment(first string) bool {
	return strings.HasPrefix(first, CommentPrefix)
}
