// Static-HTML source: JobStreet PH search pages

package jobstreet

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"go-jobtrends-automation/internal/source"
	"go-jobtrends-automation/utils"
)

const defaultBaseURL = "https://www.jobstreet.com.ph"

// Config wires the adapter. BaseURL and Client are overridable for tests.
type Config struct {
	BaseURL  string
	Client   *http.Client
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
	return "JobStreet"
}

// Fetch walks q.Pages search pages (JobStreet pages are 1-based and the
// query is a slug in the path, not a parameter). Same failure split as the
// other scrape source: unreachable search page fails the adapter, one
// unreadable posting is skipped.
func (a *Adapter) Fetch(ctx context.Context, q source.Query) ([]source.Listing, error) {
	pages := q.Pages
	if pages < 1 {
		pages = 1
	}
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(q.Title)), " ", "-")

	var listings []source.Listing
	skipped := 0

	for page := 1; page <= pages; page++ {
		indexURL := fmt.Sprintf("%s/en/job-search/%s-jobs/?page=%d", a.baseURL, slug, page)
		doc, err := source.GetDocument(ctx, a.client, indexURL)
		if err != nil {
			return nil, fmt.Errorf("search page %d: %w", page, err)
		}

		var links []link
		doc.Find(`a[data-automation="jobTitle"]`).Each(func(_ int, s *goquery.Selection) {
			href, ok := s.Attr("href")
			if !ok || !strings.HasPrefix(href, "/job/") {
				return
			}
			links = append(links, link{href: href, title: strings.TrimSpace(s.Text())})
		})
		log.Printf("  📦 JobStreet page %d: found %d job cards", page, len(links))

		for _, l := range links {
			if q.Limit > 0 && len(listings) >= q.Limit {
				return listings, nil
			}
			if err := utils.RandomDelay(ctx, a.delayMin, a.delayMax); err != nil {
				return nil, err
			}

			detail, err := source.GetDocument(ctx, a.client, a.baseURL+l.href)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				skipped++
				log.Printf("    ⚠️ Skipping %q: %v", l.title, err)
				continue
			}

			desc := description(detail)
			if desc == "" {
				skipped++
				log.Printf("    ⚠️ Skipping %q: no description found", l.title)
				continue
			}

			listings = append(listings, source.NewListing(a.Name(), l.title, desc))
		}
	}

	if skipped > 0 {
		log.Printf("  ℹ️ JobStreet: skipped %d unreadable listings", skipped)
	}
	return listings, nil
}

type link struct {
	href  string
	title string
}

func description(doc *goquery.Document) string {
	//JobStreet's description container class is obfuscated and shifts
	//between deployments, so try the automation hook first
	for _, sel := range []string{`div[data-automation="jobAdDetails"]`, "div.sx2jih0"} {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
