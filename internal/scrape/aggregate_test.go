package scrape_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/scrape"
	"leadgen-engine/internal/scrape/types"
)

type fakeSource struct {
	name  string
	fn    func(q types.Query, max int) []domain.SearchResult
	mu    sync.Mutex
	calls []string
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(_ context.Context, q types.Query, max int) []domain.SearchResult {
	f.mu.Lock()
	f.calls = append(f.calls, q.Text)
	f.mu.Unlock()
	return f.fn(q, max)
}

func results(urls ...string) []domain.SearchResult {
	out := make([]domain.SearchResult, 0, len(urls))
	for _, u := range urls {
		out = append(out, domain.SearchResult{Title: u, URL: u})
	}
	return out
}

func static(name string, urls ...string) *fakeSource {
	return &fakeSource{name: name, fn: func(types.Query, int) []domain.SearchResult { return results(urls...) }}
}

type fakeGen struct{ n int }

func (g fakeGen) Generate(industry, location string, max int) []domain.SearchResult {
	var out []domain.SearchResult
	for i := 0; i < min(g.n, max); i++ {
		out = append(out, domain.SearchResult{
			Title:     fmt.Sprintf("Synth %d", i),
			URL:       fmt.Sprintf("https://synth%d.com", i),
			Synthetic: true,
		})
	}
	return out
}

var cfg = scrape.AggregatorConfig{
	QueryTemplates: []string{"{industry} companies in {location}", "{industry} businesses {location}", "top {industry} firms {location}"},
	MinReal:        5,
	HardFloor:      3,
}

func TestAggregateDedupesAcrossSources(t *testing.T) {
	a := scrape.NewAggregator(cfg, []types.Source{
		static("a", "https://acme.com", "https://globex.com", "https://initech.com"),
		static("b", "https://www.acme.com/", "https://umbrella.com", "https://hooli.com"),
		static("c"),
	}, nil, fakeGen{n: 5})

	got := a.Aggregate(context.Background(), "software", "Austin", 10)
	if len(got) != 5 {
		t.Fatalf("got %d results, want 5: %+v", len(got), got)
	}
	seen := map[string]bool{}
	for _, r := range got {
		if r.Synthetic {
			t.Errorf("synthetic result %s merged above floor", r.URL)
		}
		if seen[r.Title] {
			t.Errorf("duplicate %s", r.URL)
		}
		seen[r.Title] = true
	}
}

func TestAggregateRetriesVariantsWhenThin(t *testing.T) {
	cheap := &fakeSource{name: "cheap", fn: func(q types.Query, max int) []domain.SearchResult {
		return results(fmt.Sprintf("https://%d.example.org", len(q.Text)))
	}}
	a := scrape.NewAggregator(cfg, []types.Source{static("a", "https://acme.com")}, []types.Source{cheap}, fakeGen{n: 5})

	got := a.Aggregate(context.Background(), "software", "Austin", 10)

	if len(cheap.calls) != 2 {
		t.Fatalf("retry source called %d times, want 2 (one per remaining variant): %v", len(cheap.calls), cheap.calls)
	}
	if cheap.calls[0] != "software businesses Austin" {
		t.Errorf("first variant = %q", cheap.calls[0])
	}
	// 1 primary + 2 variants = 3, which meets the floor
	for _, r := range got {
		if r.Synthetic {
			t.Errorf("synthetic merged at floor: %s", r.URL)
		}
	}
}

func TestAggregateStopsRetryingAtMax(t *testing.T) {
	cheap := static("cheap", "https://one.com", "https://two.com")
	a := scrape.NewAggregator(cfg, []types.Source{static("a", "https://acme.com")}, []types.Source{cheap}, nil)

	got := a.Aggregate(context.Background(), "software", "Austin", 3)
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	if len(cheap.calls) != 1 {
		t.Errorf("retry source called %d times, want 1", len(cheap.calls))
	}
}

func TestAggregateFallsBackToSynthetic(t *testing.T) {
	a := scrape.NewAggregator(cfg, []types.Source{static("dead"), static("dead2")}, []types.Source{static("cheap")}, fakeGen{n: 10})

	got := a.Aggregate(context.Background(), "software", "Austin", 4)
	if len(got) != 4 {
		t.Fatalf("got %d results, want 4", len(got))
	}
	for _, r := range got {
		if !r.Synthetic {
			t.Errorf("expected synthetic result, got %s", r.URL)
		}
	}
}

func TestAggregateRecordsStatus(t *testing.T) {
	a := scrape.NewAggregator(cfg, []types.Source{
		static("a", "https://1.com", "https://2.com", "https://3.com", "https://4.com", "https://5.com"),
		static("b"),
	}, nil, nil)
	a.Aggregate(context.Background(), "x", "y", 10)

	st := a.Status()
	if st["a"].LastResults != 5 || st["a"].LastOkAt == "" {
		t.Errorf("status[a] = %+v", st["a"])
	}
	if st["b"].Runs != 1 || st["b"].LastOkAt != "" {
		t.Errorf("status[b] = %+v", st["b"])
	}
}

func TestAggregateCancelledContextSkipsRetries(t *testing.T) {
	cheap := static("cheap", "https://one.com")
	a := scrape.NewAggregator(cfg, []types.Source{static("a")}, []types.Source{cheap}, fakeGen{n: 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := a.Aggregate(ctx, "software", "Austin", 10)

	if len(cheap.calls) != 0 {
		t.Errorf("retry source called %d times after cancel", len(cheap.calls))
	}
	if len(got) != 3 {
		t.Errorf("got %d results, want synthetic backstop of 3", len(got))
	}
}

func TestAggregatorSourcesSorted(t *testing.T) {
	a := scrape.NewAggregator(cfg, []types.Source{static("yahoo"), static("bing"), static("duckduckgo")}, nil, nil)
	if got := fmt.Sprint(a.Sources()); got != "[bing duckduckgo yahoo]" {
		t.Errorf("Sources() = %s, want [bing duckduckgo yahoo]", got)
	}
}
