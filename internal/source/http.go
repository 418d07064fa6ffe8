package source

import (
	"context"
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

const defaultUserAgent = "Mozilla/5.0"

// GetDocument issues a GET and parses the body as HTML, mapping transport
// and status failures to the typed failures in this package.
func GetDocument(ctx context.Context, client *http.Client, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, TransportError(err)
	}
	defer resp.Body.Close()

	if err := StatusError(resp.StatusCode); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &ParseError{Op: "html", Err: err}
	}
	return doc, nil
}
