package chain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobtrends-automation/internal/source"
)

// stubAdapter is a canned source for chain tests. It records invocation
// order into the shared calls slice.
type stubAdapter struct {
	name     string
	listings []source.Listing
	err      error
	calls    *[]string
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Fetch(ctx context.Context, q source.Query) ([]source.Listing, error) {
	if s.calls != nil {
		*s.calls = append(*s.calls, s.name)
	}
	return s.listings, s.err
}

func listings(src string, n int) []source.Listing {
	out := make([]source.Listing, n)
	for i := range out {
		out[i] = source.Listing{Text: "job", Source: src}
	}
	return out
}

func TestRun_FirstSuccessFallsBack(t *testing.T) {
	var calls []string
	a := &stubAdapter{name: "A", err: &source.HTTPError{Status: 503}, calls: &calls}
	b := &stubAdapter{name: "B", listings: listings("B", 3), calls: &calls}

	got, err := New(FirstSuccess, a, b).Run(context.Background(), source.Query{Title: "frontend developer"})

	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, []string{"A", "B"}, calls)
}

func TestRun_FirstSuccessStopsAtFirstListings(t *testing.T) {
	var calls []string
	a := &stubAdapter{name: "A", listings: listings("A", 2), calls: &calls}
	b := &stubAdapter{name: "B", listings: listings("B", 5), calls: &calls}

	got, err := New(FirstSuccess, a, b).Run(context.Background(), source.Query{})

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, []string{"A"}, calls, "secondary source must not be touched")
}

func TestRun_FirstSuccessSkipsEmptySuccess(t *testing.T) {
	var calls []string
	a := &stubAdapter{name: "A", calls: &calls} //success, zero listings
	b := &stubAdapter{name: "B", listings: listings("B", 1), calls: &calls}

	got, err := New(FirstSuccess, a, b).Run(context.Background(), source.Query{})

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, []string{"A", "B"}, calls)
}

func TestRun_AccumulateAllConcatenates(t *testing.T) {
	var calls []string
	a := &stubAdapter{name: "A", listings: listings("A", 2), calls: &calls}
	b := &stubAdapter{name: "B", err: source.ErrRateLimited, calls: &calls}
	c := &stubAdapter{name: "C", listings: listings("C", 3), calls: &calls}

	got, err := New(AccumulateAll, a, b, c).Run(context.Background(), source.Query{})

	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, []string{"A", "B", "C"}, calls, "adapters run strictly in order")
}

func TestRun_Exhausted(t *testing.T) {
	a := &stubAdapter{name: "A", err: &source.HTTPError{Status: 500}}
	b := &stubAdapter{name: "B", err: source.ErrTimeout}

	for _, policy := range []Policy{FirstSuccess, AccumulateAll} {
		got, err := New(policy, a, b).Run(context.Background(), source.Query{})

		assert.Nil(t, got)
		var chainErr *Error
		require.ErrorAs(t, err, &chainErr, "policy %s", policy)
		require.Len(t, chainErr.Failures, 2)
		assert.Equal(t, "A", chainErr.Failures[0].Adapter)
		assert.Equal(t, "B", chainErr.Failures[1].Adapter)
		assert.ErrorIs(t, err, source.ErrTimeout)
	}
}

func TestRun_EmptySuccessIsNotExhaustion(t *testing.T) {
	a := &stubAdapter{name: "A", err: source.ErrRateLimited}
	b := &stubAdapter{name: "B"} //success with zero listings

	got, err := New(AccumulateAll, a, b).Run(context.Background(), source.Query{})

	require.NoError(t, err, "an empty fetch is a valid result, not a failure")
	assert.Empty(t, got)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls []string
	a := &stubAdapter{name: "A", listings: listings("A", 1), calls: &calls}

	_, err := New(FirstSuccess, a).Run(ctx, source.Query{})

	var chainErr *Error
	require.ErrorAs(t, err, &chainErr)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calls, "no adapter runs once the context is cancelled")
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("first-success")
	require.NoError(t, err)
	assert.Equal(t, FirstSuccess, p)

	p, err = ParsePolicy("accumulate-all")
	require.NoError(t, err)
	assert.Equal(t, AccumulateAll, p)

	_, err = ParsePolicy("race-all")
	assert.Error(t, err)
}
