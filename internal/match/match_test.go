package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobtrends-automation/internal/source"
)

func listings(texts ...string) []source.Listing {
	out := make([]source.Listing, len(texts))
	for i, text := range texts {
		out[i] = source.Listing{Text: text, Source: "test"}
	}
	return out
}

func TestCount_WholeWord(t *testing.T) {
	engine := New([]string{"go"})

	//"go" inside "goodbye" must not match; the standalone "go" counts once
	counts := engine.Count(listings("a goodbye to go"))
	assert.Equal(t, 1, counts["go"])
}

func TestCount_OncePerListing(t *testing.T) {
	engine := New([]string{"go"})

	counts := engine.Count(listings("go go go"))
	assert.Equal(t, 1, counts["go"], "presence count, not occurrence count")
}

func TestCount_SymbolKeywords(t *testing.T) {
	engine := New([]string{"c++", "c#", ".net", "node.js"})

	counts := engine.Count(listings(
		"we need c++ and c# experience",
		"dot net shop using .net core and node.js",
		"plain c only",
	))

	assert.Equal(t, 1, counts["c++"])
	assert.Equal(t, 1, counts["c#"])
	assert.Equal(t, 1, counts[".net"])
	assert.Equal(t, 1, counts["node.js"])
}

func TestCount_CaseInsensitive(t *testing.T) {
	engine := New([]string{"react"})

	counts := engine.Count(listings("Senior React Developer", "REACT wanted"))
	assert.Equal(t, 2, counts["react"])
}

func TestCount_NeverExceedsListingTotal(t *testing.T) {
	engine := New([]string{"react", "vue"})

	set := listings(
		"react react react and vue",
		"react again",
		"nothing relevant",
	)
	counts := engine.Count(set)

	for kw, n := range counts {
		assert.LessOrEqual(t, n, len(set), "keyword %q", kw)
	}
	assert.Equal(t, 2, counts["react"])
	assert.Equal(t, 1, counts["vue"])
}

func TestCount_Phrase(t *testing.T) {
	engine := New([]string{"ruby on rails"})

	counts := engine.Count(listings("experience with ruby on rails required"))
	assert.Equal(t, 1, counts["ruby on rails"])
}

func TestCount_NoListings(t *testing.T) {
	engine := New([]string{"react"})
	counts := engine.Count(nil)
	assert.Equal(t, 0, counts["react"])
}

func TestCount_Deterministic(t *testing.T) {
	engine := New([]string{"react", "vue", "css"})
	set := listings("react and vue", "css grid with react")

	first := engine.Count(set)
	second := engine.Count(set)
	assert.Equal(t, first, second)
}

func TestSummarizeSources(t *testing.T) {
	set := []source.Listing{
		{Text: "a", Source: "Indeed"},
		{Text: "b", Source: "Indeed"},
		{Text: "c", Source: "JSearch"},
	}
	assert.Equal(t, "Indeed=2 JSearch=1", SummarizeSources(set))
}
