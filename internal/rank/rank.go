// Turn keyword presence counts into the final ranked frequency table

package rank

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
)

// Entry is one row of the ranked table.
type Entry struct {
	Keyword string `json:"technology"`
	Count   int    `json:"frequency"`
}

// Table drops zero-count keywords and sorts the rest by count descending.
// Ties keep the keyword's position in the original taxonomy order, so the
// output is reproducible across runs for identical inputs.
func Table(counts map[string]int, taxonomyOrder []string) []Entry {
	entries := make([]Entry, 0, len(counts))
	for _, kw := range taxonomyOrder {
		if n := counts[kw]; n > 0 {
			entries = append(entries, Entry{Keyword: kw, Count: n})
		}
	}

	//entries start in taxonomy order; a stable sort preserves it for ties
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	return entries
}

// WriteCSV serializes the table with the fixed "Technology,Frequency" header,
// one row per surviving keyword, in table order.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Technology", "Frequency"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Keyword, strconv.Itoa(e.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
