package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-htmlsplice/internal/dateutil"
)

// LastUpdatedSentinel marks where the build timestamp goes.
const LastUpdatedSentinel = "<!-- LAST_UPDATED -->"

// lastUpdatedHeading matches the dedicated heading.
// Captures: 1=opening tag, 2=inner content, 3=closing tag
var lastUpdatedHeading = regexp.MustCompile(`(?s)(<h2 id="last-updated"[^>]*>)(.*?)(</h2>)`)

// StampLastUpdated writes "label timestamp <!-- LAST_UPDATED -->" into doc.
// Nothing happens unless the sentinel occurs somewhere in doc.
//
// When the last-updated heading exists, its inner content is replaced.
// Otherwise the first standalone sentinel is replaced, together with a
// previous "label ..." text sitting right before it on the same line, so
// repeated runs keep a single timestamp. The previous label may be the
// current one or any built-in locale label; a stamp left under a former
// custom label is not recognized. The sentinel is always re-emitted.
func StampLastUpdated(doc, label, timestamp string) (string, bool) {
	if !strings.Contains(doc, LastUpdatedSentinel) {
		return doc, false
	}

	text := LastUpdatedSentinel
	if label != "" {
		text = label + " " + timestamp + " " + LastUpdatedSentinel
	} else if timestamp != "" {
		text = timestamp + " " + LastUpdatedSentinel
	}

	if loc := lastUpdatedHeading.FindStringSubmatchIndex(doc); loc != nil {
		return doc[:loc[4]] + text + doc[loc[5]:], true
	}

	loc := standaloneStamp(label).FindStringIndex(doc)
	if loc == nil {
		return doc, false
	}
	return doc[:loc[0]] + text + doc[loc[1]:], true
}

// standaloneStamp matches the sentinel and the stamp text a previous run
// left before it, anchored on label or a built-in label.
func standaloneStamp(label string) *regexp.Regexp {
	labels := dateutil.Labels()
	if label != "" {
		labels = append([]string{label}, labels...)
	}
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	return regexp.MustCompile(`(?:(?:` + strings.Join(quoted, "|") + `) [^<\n]*? )?` +
		regexp.QuoteMeta(LastUpdatedSentinel))
}
