package jobstreet

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobtrends-automation/internal/source"
)

func TestFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/en/job-search/frontend-developer-jobs/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a data-automation="jobTitle" href="/job/123">Frontend Dev</a>
			<a data-automation="jobTitle" href="https://evil.example/outside">Ignored</a>
		</body></html>`)
	})
	mux.HandleFunc("/job/123", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div data-automation="jobAdDetails">Angular and RxJS</div></body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL, Client: srv.Client()})
	listings, err := a.Fetch(context.Background(), source.Query{Title: "Frontend Developer"})

	require.NoError(t, err)
	require.Len(t, listings, 1, "only /job/ links are followed")
	assert.Equal(t, "JobStreet", listings[0].Source)
	assert.Contains(t, listings[0].Text, "angular and rxjs")
}

func TestFetch_LegacySelectorFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/en/job-search/dev-jobs/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><a data-automation="jobTitle" href="/job/9">Dev</a></body></html>`)
	})
	mux.HandleFunc("/job/9", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="sx2jih0">Ember experience</div></body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL, Client: srv.Client()})
	listings, err := a.Fetch(context.Background(), source.Query{Title: "dev"})

	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Contains(t, listings[0].Text, "ember experience")
}

func TestFetch_IndexFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL, Client: srv.Client()})
	_, err := a.Fetch(context.Background(), source.Query{Title: "dev"})

	var httpErr *source.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
}
