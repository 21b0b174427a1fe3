package wikipedia_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadgen-engine/internal/scrape/types"
	"leadgen-engine/internal/scrape/util"
	"leadgen-engine/internal/scrape/wikipedia"
)

func fakeWiki(t *testing.T, withWikidata bool) (*httptest.Server, *httptest.Server) {
	t.Helper()
	wd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !withWikidata {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		if r.URL.Query().Get("action") != "wbgetentities" {
			t.Errorf("wikidata action = %q", r.URL.Query().Get("action"))
		}
		w.Write([]byte(`{"entities":{
 "Q1":{"claims":{"P856":[{"mainsnak":{"datavalue":{"value":"https://www.dell.com","type":"string"}}}]}},
 "Q2":{"claims":{}}
}}`))
	}))
	wp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("list") == "search":
			w.Write([]byte(`{"query":{"search":[
 {"title":"Dell","snippet":"<span class=\"searchmatch\">Technology</span> company in Round Rock"},
 {"title":"List of companies based in Austin","snippet":"..."},
 {"title":"Austin Ventures","snippet":"venture capital"}
]}}`))
		case q.Get("prop") == "pageprops":
			w.Write([]byte(`{"query":{"pages":{
 "1":{"title":"Dell","pageprops":{"wikibase_item":"Q1"}},
 "2":{"title":"Austin Ventures","pageprops":{"wikibase_item":"Q2"}}
}}}`))
		default:
			t.Errorf("unexpected query %v", q)
		}
	}))
	t.Cleanup(wd.Close)
	t.Cleanup(wp.Close)
	return wp, wd
}

func TestFetchResolvesOfficialWebsite(t *testing.T) {
	wp, wd := fakeWiki(t, true)
	s := wikipedia.New(wikipedia.Config{
		APIURL:      wp.URL,
		WikidataURL: wd.URL,
		ArticleBase: "https://en.wikipedia.org/wiki/",
	}, util.Fetcher{Client: http.DefaultClient})

	got := s.Fetch(context.Background(), types.Query{Text: "technology companies in Austin"}, 10)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2 (list article skipped): %+v", len(got), got)
	}
	if got[0].URL != "https://www.dell.com" {
		t.Errorf("Dell url = %q, want official site", got[0].URL)
	}
	if got[0].Snippet != "Technology company in Round Rock" {
		t.Errorf("snippet = %q", got[0].Snippet)
	}
	if got[1].URL != "https://en.wikipedia.org/wiki/Austin_Ventures" {
		t.Errorf("fallback url = %q", got[1].URL)
	}
}

func TestFetchKeepsArticlesWhenWikidataFails(t *testing.T) {
	wp, wd := fakeWiki(t, false)
	s := wikipedia.New(wikipedia.Config{APIURL: wp.URL, WikidataURL: wd.URL}, util.Fetcher{Client: http.DefaultClient})

	got := s.Fetch(context.Background(), types.Query{Text: "x"}, 10)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].URL != "https://en.wikipedia.org/wiki/Dell" {
		t.Errorf("url = %q", got[0].URL)
	}
}

func TestFetchCapsSearchLimit(t *testing.T) {
	var limits []string
	wp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limits = append(limits, r.URL.Query().Get("srlimit"))
		w.Write([]byte(`{"query":{"search":[]}}`))
	}))
	defer wp.Close()
	s := wikipedia.New(wikipedia.Config{APIURL: wp.URL}, util.Fetcher{Client: http.DefaultClient})

	for _, max := range []int{10, 100} {
		s.Fetch(context.Background(), types.Query{Text: "x"}, max)
	}
	if len(limits) != 2 || limits[0] != "10" || limits[1] != "50" {
		t.Errorf("srlimit = %v, want [10 50]", limits)
	}
}
