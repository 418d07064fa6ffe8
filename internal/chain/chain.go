// Drive an ordered list of source adapters as one logical source

package chain

import (
	"context"
	"fmt"
	"log"
	"strings"

	"go-jobtrends-automation/internal/source"
)

// Policy controls how results from the chain's adapters are combined.
type Policy int

const (
	//FirstSuccess stops at the first adapter that returns any listings
	FirstSuccess Policy = iota
	//AccumulateAll tries every adapter and concatenates everything obtained
	AccumulateAll
)

func (p Policy) String() string {
	switch p {
	case FirstSuccess:
		return "first-success"
	case AccumulateAll:
		return "accumulate-all"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy parses the configuration spelling of a policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "first-success":
		return FirstSuccess, nil
	case "accumulate-all":
		return AccumulateAll, nil
	default:
		return 0, fmt.Errorf("chain: unknown policy %q", s)
	}
}

// Failure records one adapter's hard failure for diagnostics.
type Failure struct {
	Adapter string
	Err     error
}

// Error is the single failure the chain surfaces when every adapter failed
// with zero listings. It aggregates the per-adapter failures.
type Error struct {
	Failures []Failure
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s: %v", f.Adapter, f.Err)
	}
	return "chain: all sources failed (" + strings.Join(parts, "; ") + ")"
}

// Unwrap exposes the individual failures to errors.Is/As.
func (e *Error) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// Chain tries adapters strictly in configured order, never concurrently.
// Fallback exists to spare a secondary source's quota, so the next adapter
// runs only after the current one completed or failed.
type Chain struct {
	adapters []source.Adapter
	policy   Policy
}

// New builds a chain over the given adapters.
func New(policy Policy, adapters ...source.Adapter) *Chain {
	return &Chain{adapters: adapters, policy: policy}
}

// Run executes the chain for one query.
//
// FirstSuccess returns the first adapter's non-empty result and skips the
// rest. AccumulateAll walks every adapter and concatenates all listings.
// Either way, an adapter succeeding with zero listings counts as a success:
// the chain only fails, with an aggregated *Error, when every adapter
// hard-failed.
func (c *Chain) Run(ctx context.Context, q source.Query) ([]source.Listing, error) {
	var all []source.Listing
	var failures []Failure
	succeeded := false

	for _, adapter := range c.adapters {
		if err := ctx.Err(); err != nil {
			failures = append(failures, Failure{Adapter: adapter.Name(), Err: err})
			break
		}

		log.Printf("▶️ Trying source: %s", adapter.Name())
		listings, err := adapter.Fetch(ctx, q)
		if err != nil {
			log.Printf("⚠️ Source %s failed: %v", adapter.Name(), err)
			failures = append(failures, Failure{Adapter: adapter.Name(), Err: err})
			continue
		}

		succeeded = true
		log.Printf("✅ Source %s returned %d listings", adapter.Name(), len(listings))
		all = append(all, listings...)

		if c.policy == FirstSuccess && len(listings) > 0 {
			return listings, nil
		}
	}

	if !succeeded {
		return nil, &Error{Failures: failures}
	}
	return all, nil
}
