package pipeline

import (
	"strings"

	"golang.org/x/net/html"
)

// voidElements cannot hold content, so they are never containers.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// findContainer returns the byte span of the inner content of the first
// element whose id attribute equals id.
//
// The document is tokenized, not parsed into a tree: offsets come from the
// raw token lengths so the caller can splice the original bytes without
// reformatting anything outside the span. Elements of the same tag nested
// inside the container are balanced by depth counting. An unclosed
// container is reported as not found.
func findContainer(doc, id string) (start, end int, ok bool) {
	if id == "" {
		return 0, 0, false
	}

	z := html.NewTokenizer(strings.NewReader(doc))

	var (
		offset int
		tag    string
		depth  int
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return 0, 0, false
		}
		size := len(z.Raw())

		switch tt {
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			switch {
			case depth > 0:
				if string(name) == tag {
					depth++
				}
			case hasAttr && !voidElements[string(name)] && hasID(z, id):
				tag = string(name)
				depth = 1
				start = offset + size
			}

		case html.EndTagToken:
			if depth == 0 {
				break
			}
			name, _ := z.TagName()
			if string(name) == tag {
				depth--
				if depth == 0 {
					return start, offset, true
				}
			}
		}

		offset += size
	}
}

// hasID reports whether the current tag carries id="id".
func hasID(z *html.Tokenizer, id string) bool {
	for more := true; more; {
		var key, val []byte
		key, val, more = z.TagAttr()
		if string(key) == "id" && string(val) == id {
			return true
		}
	}
	return false
}
