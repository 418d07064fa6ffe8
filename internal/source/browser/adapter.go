// Browser-automation source: the Indeed traversal, but every navigation
// goes through the run's single crawl session

package browser

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go-jobtrends-automation/internal/source"
	"go-jobtrends-automation/internal/source/indeed"
)

const (
	defaultBaseURL   = "https://ph.indeed.com"
	jobsPerIndexPage = 10
)

// Navigator is the slice of crawl.Session this adapter needs. The session
// paces and serializes navigation; the adapter only asks for page content.
type Navigator interface {
	Navigate(ctx context.Context, url string) (string, error)
}

type Adapter struct {
	nav     Navigator
	baseURL string
}

func New(nav Navigator, baseURL string) *Adapter {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Adapter{
		nav:     nav,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (a *Adapter) Name() string {
	return "Indeed (Browser)"
}

// Fetch mirrors the static Indeed adapter's page/listing traversal and its
// failure split: an unreachable search page is a hard adapter failure, one
// unreadable posting is skipped.
func (a *Adapter) Fetch(ctx context.Context, q source.Query) ([]source.Listing, error) {
	pages := q.Pages
	if pages < 1 {
		pages = 1
	}

	var listings []source.Listing
	skipped := 0

	for page := 0; page < pages; page++ {
		params := url.Values{}
		params.Set("q", q.Title)
		params.Set("l", q.Location)
		params.Set("start", strconv.Itoa(page*jobsPerIndexPage))

		doc, err := a.load(ctx, a.baseURL+"/jobs?"+params.Encode())
		if err != nil {
			return nil, fmt.Errorf("search page %d: %w", page+1, err)
		}

		links := indeed.JobLinks(doc)
		log.Printf("  📦 Browser page %d: found %d job cards", page+1, len(links))

		for _, link := range links {
			if q.Limit > 0 && len(listings) >= q.Limit {
				return listings, nil
			}

			detail, err := a.load(ctx, a.resolve(link.Href))
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				skipped++
				log.Printf("    ⚠️ Skipping %q: %v", link.Title, err)
				continue
			}

			desc := indeed.Description(detail)
			if desc == "" {
				skipped++
				log.Printf("    ⚠️ Skipping %q: no description found", link.Title)
				continue
			}

			listings = append(listings, source.NewListing(a.Name(), link.Title, desc))
		}
	}

	if skipped > 0 {
		log.Printf("  ℹ️ Browser: skipped %d unreadable listings", skipped)
	}
	return listings, nil
}

func (a *Adapter) load(ctx context.Context, pageURL string) (*goquery.Document, error) {
	html, err := a.nav.Navigate(ctx, pageURL)
	if err != nil {
		return nil, source.TransportError(err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &source.ParseError{Op: "html", Err: err}
	}
	return doc, nil
}

func (a *Adapter) resolve(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return a.baseURL + href
}
