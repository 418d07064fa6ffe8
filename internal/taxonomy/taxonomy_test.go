package taxonomy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc := `{
		"frameworks": ["React", "Vue", "Svelte"],
		"languages": ["JavaScript", "TypeScript", "react"],
		"styling": ["CSS", " Tailwind "]
	}`

	keywords, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	//lower-cased, deduped across categories, document order preserved
	assert.Equal(t, []string{
		"react", "vue", "svelte",
		"javascript", "typescript",
		"css", "tailwind",
	}, keywords)
}

func TestLoad_AllLowerCaseNoDuplicates(t *testing.T) {
	doc := `{"a": ["Go", "GO", "Rust"], "b": ["go", "RUST", "Zig"]}`

	keywords, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, kw := range keywords {
		assert.Equal(t, strings.ToLower(kw), kw)
		assert.False(t, seen[kw], "duplicate keyword %q", kw)
		seen[kw] = true
	}
	//6 occurrences in the document, 3 unique
	assert.Len(t, keywords, 3)
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "top level array", doc: `["react", "vue"]`},
		{name: "value not a list", doc: `{"frameworks": "react"}`},
		{name: "list of numbers", doc: `{"frameworks": [1, 2]}`},
		{name: "truncated", doc: `{"frameworks": ["react"`},
		{name: "not json", doc: `frameworks: react`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestLoad_Empty(t *testing.T) {
	keywords, err := Load(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Empty(t, keywords)
}
