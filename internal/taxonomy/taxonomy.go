// Load the category -> keywords taxonomy
// Flatten, lower-case, dedup; keep first-seen order for tie-breaking

package taxonomy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// ErrMalformed reports a taxonomy document that is not an object of
// category name to keyword list.
var ErrMalformed = errors.New("taxonomy: malformed document")

// Load parses a JSON taxonomy ({"category": ["keyword", ...], ...}) into the
// flat keyword list used for matching. Categories are walked in document
// order (a plain map decode would lose it), every keyword is lower-cased,
// and repeats across categories are dropped.
func Load(r io.Reader) ([]string, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top level must be an object", ErrMalformed)
	}

	seen := mapset.NewSet[string]()
	var keywords []string

	for dec.More() {
		//category name; its order in the document is the tie-break order
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		var entries []string
		if err := dec.Decode(&entries); err != nil {
			return nil, fmt.Errorf("%w: category value must be a list of strings: %v", ErrMalformed, err)
		}

		for _, kw := range entries {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if seen.Add(kw) {
				keywords = append(keywords, kw)
			}
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return keywords, nil
}

// LoadFile reads and parses a taxonomy JSON file.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
