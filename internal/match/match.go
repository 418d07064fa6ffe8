// Count in how many listings each keyword appears
// Whole-word matching: "go" must not count "good"

package match

import (
	"fmt"
	"regexp"
	"strings"

	"go-jobtrends-automation/internal/source"
)

// Engine holds one compiled matcher per keyword. Compilation happens once
// per run, never per listing.
type Engine struct {
	keywords []string
	patterns []*regexp.Regexp
}

// New compiles a case-insensitive whole-word matcher for every keyword.
func New(keywords []string) *Engine {
	patterns := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		patterns[i] = regexp.MustCompile(wordPattern(kw))
	}
	return &Engine{
		keywords: keywords,
		patterns: patterns,
	}
}

// wordPattern builds the whole-word pattern for one keyword. \b only works
// when the keyword's edge is a word character; keywords like "c++", "c#" or
// ".net" need an explicit start/end-or-non-word guard since Go's regexp has
// no lookarounds.
func wordPattern(kw string) string {
	quoted := regexp.QuoteMeta(kw)

	lead := `\b`
	if !edgeIsWordChar(kw, 0) {
		lead = `(?:^|[^\w])`
	}
	trail := `\b`
	if !edgeIsWordChar(kw, len(kw)-1) {
		trail = `(?:[^\w]|$)`
	}

	return `(?i)` + lead + quoted + trail
}

func edgeIsWordChar(kw string, i int) bool {
	if kw == "" {
		return false
	}
	c := kw[i]
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// Count returns, per keyword, the number of distinct listings containing it.
// A keyword occurring five times in one listing still counts once.
func (e *Engine) Count(listings []source.Listing) map[string]int {
	counts := make(map[string]int, len(e.keywords))
	for _, listing := range listings {
		for i, pattern := range e.patterns {
			if pattern.MatchString(listing.Text) {
				counts[e.keywords[i]]++
			}
		}
	}
	return counts
}

// Keywords returns the engine's keyword list in taxonomy order.
func (e *Engine) Keywords() []string {
	return e.keywords
}

// SummarizeSources is a diagnostics helper: listings per producing source.
func SummarizeSources(listings []source.Listing) string {
	perSource := map[string]int{}
	var order []string
	for _, l := range listings {
		if _, ok := perSource[l.Source]; !ok {
			order = append(order, l.Source)
		}
		perSource[l.Source]++
	}
	parts := make([]string, 0, len(order))
	for _, name := range order {
		parts = append(parts, fmt.Sprintf("%s=%d", name, perSource[name]))
	}
	return strings.Join(parts, " ")
}
