// Define the capability shared by all listing sources
// Ensure consistency

package source

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Query describes one search against a source.
type Query struct {
	Title    string
	Location string
	Limit    int //max listings to collect per source, 0 = no cap
	Pages    int //index/result pages to walk per source
}

// Listing is one job posting's normalized text, ready for keyword matching.
// Listings are created by an adapter and never mutated afterwards.
type Listing struct {
	Text   string
	Source string
}

// Adapter is the interface every listing source implements.
type Adapter interface {
	//Fetch listings matching the query, or a typed failure
	Fetch(ctx context.Context, q Query) ([]Listing, error)

	//Name is the source name (JSearch, Indeed, ...)
	Name() string
}

// NewListing builds a Listing from a posting's title and description.
func NewListing(src, title, description string) Listing {
	return Listing{
		Text:   Normalize(title + " " + description),
		Source: src,
	}
}

// Normalize strips diacritics and lower-cases the text so matching is
// accent- and case-insensitive.
func Normalize(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}
