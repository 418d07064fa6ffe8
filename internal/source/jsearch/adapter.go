// Structured-API source: JSearch-compatible JSON endpoint behind RapidAPI

package jsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go-jobtrends-automation/internal/source"
)

const defaultBaseURL = "https://jsearch.p.rapidapi.com"

// Config wires the adapter. BaseURL and Client are overridable so tests can
// point it at a local server.
type Config struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

type Adapter struct {
	baseURL string
	host    string
	apiKey  string
	client  *http.Client
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
	host := ""
	if u, err := url.Parse(baseURL); err == nil {
		host = u.Host
	}
	return &Adapter{
		baseURL: baseURL,
		host:    host,
		apiKey:  cfg.APIKey,
		client:  client,
	}
}

func (a *Adapter) Name() string {
	return "JSearch"
}

type jobPayload struct {
	Title       string `json:"job_title"`
	Description string `json:"job_description"`
}

type searchPayload struct {
	//pointer so an absent "jobs" field is distinguishable from an empty one
	Jobs *[]jobPayload `json:"jobs"`
}

// Fetch walks result pages 1..q.Pages. Any page failure fails the whole
// attempt with no partial result; whether partials are acceptable is the
// fallback chain's policy, not this adapter's.
func (a *Adapter) Fetch(ctx context.Context, q source.Query) ([]source.Listing, error) {
	pages := q.Pages
	if pages < 1 {
		pages = 1
	}
	pageSize := q.Limit
	if pageSize <= 0 {
		pageSize = 10
	}

	query := q.Title
	if q.Location != "" {
		query = q.Title + " in " + q.Location
	}

	var listings []source.Listing
	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		params := url.Values{}
		params.Set("query", query)
		params.Set("page", strconv.Itoa(page))
		params.Set("num_pages", "1")
		params.Set("page_size", strconv.Itoa(pageSize))

		pageListings, err := a.search(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		listings = append(listings, pageListings...)

		if q.Limit > 0 && len(listings) >= q.Limit {
			return listings[:q.Limit], nil
		}
	}
	return listings, nil
}

func (a *Adapter) search(ctx context.Context, params url.Values) ([]source.Listing, error) {
	body, err := a.get(ctx, "/search", params)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var payload searchPayload
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, &source.ParseError{Op: "search response", Err: err}
	}
	if payload.Jobs == nil {
		return nil, &source.ParseError{Op: "search response", Err: errors.New(`missing "jobs" field`)}
	}

	listings := make([]source.Listing, 0, len(*payload.Jobs))
	for _, job := range *payload.Jobs {
		listings = append(listings, source.NewListing(a.Name(), job.Title, job.Description))
	}
	return listings, nil
}

// SalaryEstimate is the endpoint's yearly min/max figure.
type SalaryEstimate struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// EstimatedSalary asks the API for a salary estimate. Informational only;
// a failure here never fails a run.
func (a *Adapter) EstimatedSalary(ctx context.Context, locationType, yearsOfExperience string) (*SalaryEstimate, error) {
	if locationType == "" {
		locationType = "ANY"
	}
	if yearsOfExperience == "" {
		yearsOfExperience = "ALL"
	}

	params := url.Values{}
	params.Set("location_type", locationType)
	params.Set("years_of_experience", yearsOfExperience)

	body, err := a.get(ctx, "/estimated-salary", params)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var payload struct {
		Estimated *SalaryEstimate `json:"estimated_salary"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, &source.ParseError{Op: "salary response", Err: err}
	}
	if payload.Estimated == nil {
		return nil, &source.ParseError{Op: "salary response", Err: errors.New(`missing "estimated_salary" field`)}
	}
	return payload.Estimated, nil
}

func (a *Adapter) get(ctx context.Context, path string, params url.Values) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Host", a.host)
	req.Header.Set("X-RapidAPI-Key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, source.TransportError(err)
	}
	if err := source.StatusError(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}
