package brave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadgen-engine/internal/scrape/brave"
	"leadgen-engine/internal/scrape/types"
	"leadgen-engine/internal/scrape/util"
)

func TestFetch(t *testing.T) {
	var gotSource string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSource = r.URL.Query().Get("source")
		w.Write([]byte(`<div id="results">
<div class="snippet" data-type="web">
  <a class="h" href="https://acme.com">Acme Corp</a>
  <div class="snippet-description">Wholesale supplier.</div>
</div>
<div class="snippet"><a class="h" href="https://search.brave.com/x">internal</a></div>
<div class="snippet"><span>no link</span></div>
</div>`))
	}))
	defer srv.Close()

	s := brave.New(brave.Config{BaseURL: srv.URL, Unusable: []string{"brave.com"}}, util.Fetcher{Client: srv.Client()})
	got := s.Fetch(context.Background(), types.Query{Text: "acme"}, 10)

	if gotSource != "web" {
		t.Errorf("source param = %q, want web", gotSource)
	}
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(got), got)
	}
	if got[0].URL != "https://acme.com" || got[0].Title != "Acme Corp" || got[0].Snippet != "Wholesale supplier." {
		t.Errorf("result = %+v", got[0])
	}
	if s.Name() != "brave" {
		t.Errorf("Name() = %q", s.Name())
	}
}
