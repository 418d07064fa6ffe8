// Static-HTML source: Indeed search pages fetched with plain GETs

package indeed

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"go-jobtrends-automation/internal/source"
	"go-jobtrends-automation/utils"
)

const (
	defaultBaseURL   = "https://ph.indeed.com"
	jobsPerIndexPage = 10
)

// Config wires the adapter. BaseURL and Client are overridable for tests.
type Config struct {
	BaseURL string
	Client  *http.Client
	//pause window between listing-detail requests
	DelayMin time.Duration
	DelayMax time.Duration
}

type Adapter struct {
	baseURL  string
	client   *http.Client
	delayMin time.Duration
	delayMax time.Duration
}

func New(cfg Config) *Adapter {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Adapter{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   client,
		delayMin: cfg.DelayMin,
		delayMax: cfg.DelayMax,
	}
}

func (a *Adapter) Name() string {
	return "Indeed"
}

// Fetch walks q.Pages search pages and follows every job card to its
// posting. An unreachable search page is a hard adapter failure; a single
// posting that cannot be fetched or parsed is skipped and the walk goes on.
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

		doc, err := source.GetDocument(ctx, a.client, a.baseURL+"/jobs?"+params.Encode())
		if err != nil {
			return nil, fmt.Errorf("search page %d: %w", page+1, err)
		}

		links := JobLinks(doc)
		log.Printf("  📦 Indeed page %d: found %d job cards", page+1, len(links))

		for _, link := range links {
			if q.Limit > 0 && len(listings) >= q.Limit {
				return listings, nil
			}
			if err := utils.RandomDelay(ctx, a.delayMin, a.delayMax); err != nil {
				return nil, err
			}

			detail, err := source.GetDocument(ctx, a.client, a.resolve(link.Href))
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				skipped++
				log.Printf("    ⚠️ Skipping %q: %v", link.Title, err)
				continue
			}

			desc := Description(detail)
			if desc == "" {
				skipped++
				log.Printf("    ⚠️ Skipping %q: no description found", link.Title)
				continue
			}

			listings = append(listings, source.NewListing(a.Name(), link.Title, desc))
		}
	}

	if skipped > 0 {
		log.Printf("  ℹ️ Indeed: skipped %d unreadable listings", skipped)
	}
	return listings, nil
}

func (a *Adapter) resolve(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return a.baseURL + href
}

// Link is one posting reference found on a search page.
type Link struct {
	Href  string
	Title string
}

// JobLinks extracts posting links from a search results page. Shared with
// the browser adapter, which walks the same markup through a live session.
func JobLinks(doc *goquery.Document) []Link {
	var links []Link
	doc.Find(`a.jcs-JobTitle, a[data-testid="jobTitle"]`).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		links = append(links, Link{
			Href:  href,
			Title: strings.TrimSpace(s.Text()),
		})
	})
	return links
}

// Description extracts the posting's free-text description.
func Description(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("#jobDescriptionText").Text())
}
