package startpage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadgen-engine/internal/scrape/startpage"
	"leadgen-engine/internal/scrape/types"
	"leadgen-engine/internal/scrape/util"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "law firms Denver" {
			t.Errorf("q = %q", r.URL.Query().Get("q"))
		}
		w.Write([]byte(`
<div class="w-gl__result">
  <a class="w-gl__result-title" href="https://smithlaw.com">Smith Law - Denver Attorneys</a>
  <p class="w-gl__description">Corporate law.</p>
</div>
<div class="result">
  <a class="result-link" href="https://jonesllp.com">Jones LLP</a>
  <p class="result-snippet">Commercial litigation.</p>
</div>`))
	}))
	defer srv.Close()

	s := startpage.New(startpage.Config{BaseURL: srv.URL}, util.Fetcher{Client: srv.Client()})
	got := s.Fetch(context.Background(), types.Query{Text: "law firms Denver"}, 10)

	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].URL != "https://smithlaw.com" || got[0].Snippet != "Corporate law." {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Title != "Jones LLP" {
		t.Errorf("second title = %q", got[1].Title)
	}
}
