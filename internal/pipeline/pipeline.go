// Wire config, sources, matching and ranking into one run

package pipeline

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go-jobtrends-automation/internal/chain"
	"go-jobtrends-automation/internal/config"
	"go-jobtrends-automation/internal/match"
	"go-jobtrends-automation/internal/rank"
	"go-jobtrends-automation/internal/source"
	"go-jobtrends-automation/internal/source/browser"
	"go-jobtrends-automation/internal/source/indeed"
	"go-jobtrends-automation/internal/source/jobstreet"
	"go-jobtrends-automation/internal/source/jsearch"
)

// Result is one completed scan.
type Result struct {
	Table    []rank.Entry
	Listings int
	Sources  string
}

// BuildChain assembles the configured source adapters, in configured order.
// nav is the run's browsing session; required only when the "browser"
// source is configured.
func BuildChain(cfg *config.Config, nav browser.Navigator) (*chain.Chain, error) {
	policy, err := chain.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}

	delayMin, delayMax := cfg.Delay()
	httpClient := &http.Client{Timeout: 30 * time.Second}

	var adapters []source.Adapter
	for _, name := range cfg.Sources {
		switch name {
		case "jsearch":
			adapters = append(adapters, jsearch.New(jsearch.Config{
				BaseURL: cfg.JSearchBaseURL,
				APIKey:  cfg.JSearchAPIKey,
				Client:  httpClient,
			}))
		case "indeed":
			adapters = append(adapters, indeed.New(indeed.Config{
				BaseURL:  cfg.IndeedBaseURL,
				Client:   httpClient,
				DelayMin: delayMin,
				DelayMax: delayMax,
			}))
		case "jobstreet":
			adapters = append(adapters, jobstreet.New(jobstreet.Config{
				BaseURL:  cfg.JobStreetBaseURL,
				Client:   httpClient,
				DelayMin: delayMin,
				DelayMax: delayMax,
			}))
		case "browser":
			if nav == nil {
				return nil, fmt.Errorf("browser source configured but no session available")
			}
			adapters = append(adapters, browser.New(nav, cfg.IndeedBaseURL))
		default:
			return nil, fmt.Errorf("unknown source %q", name)
		}
	}
	return chain.New(policy, adapters...), nil
}

// Run drives the chain and folds the listings into the ranked table.
// An empty table is a valid result; only chain exhaustion is an error.
func Run(ctx context.Context, ch *chain.Chain, keywords []string, q source.Query) (*Result, error) {
	listings, err := ch.Run(ctx, q)
	if err != nil {
		return nil, err
	}

	log.Printf("📦 Collected %d listings (%s)", len(listings), match.SummarizeSources(listings))

	engine := match.New(keywords)
	counts := engine.Count(listings)
	table := rank.Table(counts, keywords)

	return &Result{
		Table:    table,
		Listings: len(listings),
		Sources:  match.SummarizeSources(listings),
	}, nil
}
