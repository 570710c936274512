// Package guide searches the topics of the VCB user guide.
package guide

import (
	"errors"
	"strings"
)

const (
	// TooManyMatches is the match count at which a query is rejected.
	TooManyMatches = 16
	// ListThreshold is the match count from which topics are listed
	// instead of sending every page.
	ListThreshold = 5
)

// ErrEmptyQuery is returned for a blank query.
var ErrEmptyQuery = errors.New("please provide a query")

// Outcome classifies a lookup.
type Outcome string

const (
	OutcomeNotFound Outcome = "not_found"
	OutcomeTooMany  Outcome = "too_many"
	OutcomeList     Outcome = "list"
	OutcomePages    Outcome = "pages"
)

// Result is the answer to a lookup. Pages holds image file names to send;
// Topics holds the matching topics when they are only listed.
type Result struct {
	Outcome Outcome  `json:"outcome"`
	Topics  []string `json:"topics,omitempty"`
	Pages   []string `json:"pages,omitempty"`
}

// Message returns the text reply for outcomes that carry no pages.
func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeNotFound:
		return "Sorry, I couldnt find anything in the user guide"
	case OutcomeTooMany:
		return "Please be more specific"
	case OutcomeList:
		return "``` " + strings.Join(r.Topics, "\n ") + " ```"
	}
	return ""
}

var topics = []string{
	"appendix blueprint specification",
	"assembly assembler",
	"assembly assembly language",
	"assembly bookmarks",
	"assembly expressions",
	"assembly external editing",
	"assembly macros 1",
	"assembly macros 2",
	"assembly origin directive",
	"assembly primitives labels",
	"assembly primitives numerics",
	"assembly primitives pointers",
	"assembly primitives symbols",
	"assembly primitives",
	"assembly review",
	"assembly statements 1",
	"assembly statements 2",
	"editing and simulating",
	"editing array tool",
	"editing blueprints",
	"editing edit mode tips",
	"editing filter",
	"editing layers",
	"editing simulation mode tips",
	"editing tools",
	"introduction editing and simulation",
	"introduction simulation engine",
	"user interface docking system",
	"user interface navigation and shortcuts",
	"user interface right click behavior",
	"virtual circuits annotation ink",
	"virtual circuits bus ink",
	"virtual circuits components and traces",
	"virtual circuits cross ink",
	"virtual circuits drawing based interface",
	"virtual circuits flow control 1",
	"virtual circuits flow control 2",
	"virtual circuits flow control 3",
	"virtual circuits flow control 4",
	"virtual circuits gate components",
	"virtual circuits general components 1",
	"virtual circuits general components 2",
	"virtual circuits mesh ink",
	"virtual circuits multiple io",
	"virtual circuits space optimization",
	"virtual circuits tunnel ink",
	"virtual circuits uncountable connection 1",
	"virtual circuits uncountable connection 2",
	"virtual devices virtual display",
	"virtual devices virtual input",
	"virtual devices virtual memory 1",
	"virtual devices virtual memory 2",
	"virtual devices virtual memory 3",
	"virtual devices",
}

// Topics returns every guide topic.
func Topics() []string {
	out := make([]string, len(topics))
	copy(out, topics)
	return out
}

// Page returns the image file name of a topic.
func Page(topic string) string {
	return strings.ReplaceAll(topic, " ", "_") + ".png"
}

// Lookup finds the topics containing the words of query.
func Lookup(words ...string) (Result, error) {
	if len(words) == 0 {
		return Result{}, ErrEmptyQuery
	}
	query := strings.ToLower(strings.Join(words, " "))

	var matches []string
	for _, t := range topics {
		if strings.Contains(t, query) {
			matches = append(matches, t)
		}
	}

	switch n := len(matches); {
	case n == 0:
		return Result{Outcome: OutcomeNotFound}, nil
	case n >= TooManyMatches:
		return Result{Outcome: OutcomeTooMany, Topics: matches}, nil
	case n >= ListThreshold:
		exact := strings.ReplaceAll(query, " ", "_")
		for _, t := range matches {
			if strings.ReplaceAll(t, " ", "_") == exact {
				return Result{Outcome: OutcomePages, Topics: []string{t}, Pages: []string{Page(t)}}, nil
			}
		}
		return Result{Outcome: OutcomeList, Topics: matches}, nil
	default:
		pages := make([]string, len(matches))
		for i, t := range matches {
			pages[i] = Page(t)
		}
		return Result{Outcome: OutcomePages, Topics: matches, Pages: pages}, nil
	}
}
