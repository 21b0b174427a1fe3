package yellowpages_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadgen-engine/internal/scrape/types"
	"leadgen-engine/internal/scrape/util"
	"leadgen-engine/internal/scrape/yellowpages"
)

func TestFetch(t *testing.T) {
	var gotTerms, gotGeo string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTerms = r.URL.Query().Get("search_terms")
		gotGeo = r.URL.Query().Get("geo_location_terms")
		w.Write([]byte(`
<div class="result">
  <a class="business-name"><span>Rocky Plumbing</span></a>
  <a class="track-visit-website" href="https://rockyplumbing.com">Website</a>
  <div class="snippet">Residential and commercial plumbing.</div>
</div>
<div class="result">
  <a class="business-name">Mile High Builders, Inc.</a>
</div>
<div class="result">
  <a class="business-name">A&amp;B Co</a>
</div>`))
	}))
	defer srv.Close()

	s := yellowpages.New(yellowpages.Config{BaseURL: srv.URL}, util.Fetcher{Client: srv.Client()})
	got := s.Fetch(context.Background(), types.Query{Industry: "home builders", Location: "Denver CO"}, 10)

	if gotTerms != "home-builders" || gotGeo != "Denver-CO" {
		t.Errorf("terms=%q geo=%q", gotTerms, gotGeo)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(got), got)
	}
	if got[0].URL != "https://rockyplumbing.com" {
		t.Errorf("first url = %q", got[0].URL)
	}
	if got[1].URL != "https://www.milehighbuilders.com" {
		t.Errorf("guessed url = %q, want https://www.milehighbuilders.com", got[1].URL)
	}
}
