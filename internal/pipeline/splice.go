package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrContainerNotFound indicates that a document has no markers, no
// placeholder and no element with the container id.
var ErrContainerNotFound = errors.New("injection point not found")

// Strategy identifies how Splice located the injection point.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyMarkers
	StrategyPlaceholder
	StrategyContainer
)

func (s Strategy) String() string {
	switch s {
	case StrategyMarkers:
		return "marker replacement"
	case StrategyPlaceholder:
		return "placeholder replacement"
	case StrategyContainer:
		return "container injection"
	default:
		return "none"
	}
}

// Injection names the injection point of one document.
type Injection struct {
	ContainerID string // id of the element holding the content; markers derive from it
	Placeholder string // comment replaced on the first run, e.g. <!-- ARTICLES_CONTENT -->
}

// StartMarker returns the comment opening the generated region for id.
func StartMarker(containerID string) string {
	return "<!-- START_" + strings.ToUpper(containerID) + " -->"
}

// EndMarker returns the comment closing the generated region for id.
func EndMarker(containerID string) string {
	return "<!-- END_" + strings.ToUpper(containerID) + " -->"
}

// Wrap surrounds content with the start and end markers of id.
func Wrap(containerID, content string) string {
	return StartMarker(containerID) + "\n" + content + "\n" + EndMarker(containerID)
}

// Splice places content into doc. The first strategy that applies wins:
//
//  1. markers: everything from the start marker through the first end
//     marker after it is replaced by the wrapped content;
//  2. placeholder: its first occurrence is replaced by the wrapped content;
//  3. container: the inner content of the element whose id is ContainerID
//     is replaced by the wrapped content.
//
// Content is always re-emitted between markers, so after any successful
// run the next one takes the marker path. When nothing applies, doc is
// returned unchanged with ErrContainerNotFound.
func Splice(doc string, inj Injection, content string) (string, Strategy, error) {
	wrapped := Wrap(inj.ContainerID, content)

	if out, ok := replaceMarked(doc, inj.ContainerID, wrapped); ok {
		return out, StrategyMarkers, nil
	}

	if inj.Placeholder != "" {
		if idx := strings.Index(doc, inj.Placeholder); idx != -1 {
			return doc[:idx] + wrapped + doc[idx+len(inj.Placeholder):], StrategyPlaceholder, nil
		}
	}

	if start, end, ok := findContainer(doc, inj.ContainerID); ok {
		return doc[:start] + "\n" + wrapped + "\n" + doc[end:], StrategyContainer, nil
	}

	return doc, StrategyNone, fmt.Errorf("%w: no element with id %q and no placeholder %s",
		ErrContainerNotFound, inj.ContainerID, inj.Placeholder)
}

// replaceMarked replaces the first start marker and the first end marker
// following it, both included.
func replaceMarked(doc, containerID, wrapped string) (string, bool) {
	start := StartMarker(containerID)
	end := EndMarker(containerID)

	i := strings.Index(doc, start)
	if i == -1 {
		return "", false
	}
	j := strings.Index(doc[i+len(start):], end)
	if j == -1 {
		return "", false
	}
	j += i + len(start) + len(end)

	return doc[:i] + wrapped + doc[j:], true
}
