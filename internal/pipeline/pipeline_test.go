package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobtrends-automation/internal/chain"
	"go-jobtrends-automation/internal/config"
	"go-jobtrends-automation/internal/rank"
	"go-jobtrends-automation/internal/source"
)

type stubAdapter struct {
	name     string
	listings []source.Listing
	err      error
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Fetch(ctx context.Context, q source.Query) ([]source.Listing, error) {
	return s.listings, s.err
}

func TestRun(t *testing.T) {
	ch := chain.New(chain.AccumulateAll, &stubAdapter{
		name: "stub",
		listings: []source.Listing{
			{Text: "we want react and vue", Source: "stub"},
			{Text: "react only here", Source: "stub"},
			{Text: "nothing matching", Source: "stub"},
		},
	})

	result, err := Run(context.Background(), ch, []string{"vue", "react", "svelte"}, source.Query{})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Listings)
	assert.Equal(t, []rank.Entry{
		{Keyword: "react", Count: 2},
		{Keyword: "vue", Count: 1},
	}, result.Table)
}

func TestRun_EmptyIsValid(t *testing.T) {
	ch := chain.New(chain.AccumulateAll, &stubAdapter{name: "stub"})

	result, err := Run(context.Background(), ch, []string{"react"}, source.Query{})

	require.NoError(t, err)
	assert.Zero(t, result.Listings)
	assert.Empty(t, result.Table)
}

func TestRun_Exhausted(t *testing.T) {
	ch := chain.New(chain.FirstSuccess, &stubAdapter{name: "stub", err: source.ErrTimeout})

	_, err := Run(context.Background(), ch, []string{"react"}, source.Query{})

	var chainErr *chain.Error
	assert.ErrorAs(t, err, &chainErr)
}

func TestBuildChain(t *testing.T) {
	cfg := &config.Config{
		Sources:       []string{"jsearch", "indeed", "jobstreet"},
		Policy:        "first-success",
		JSearchAPIKey: "k",
	}

	ch, err := BuildChain(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, ch)
}

func TestBuildChain_BrowserNeedsSession(t *testing.T) {
	cfg := &config.Config{
		Sources: []string{"browser"},
		Policy:  "accumulate-all",
	}

	_, err := BuildChain(cfg, nil)
	assert.Error(t, err)
}

func TestBuildChain_BadPolicy(t *testing.T) {
	cfg := &config.Config{Sources: []string{"indeed"}, Policy: "fastest"}
	_, err := BuildChain(cfg, nil)
	assert.Error(t, err)
}
