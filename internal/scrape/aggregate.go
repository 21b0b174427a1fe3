package scrape

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/scrape/types"
	"leadgen-engine/internal/scrape/util"
)

// Generator fabricates results when real sources come back thin.
type Generator interface {
	Generate(industry, location string, max int) []domain.SearchResult
}

type AggregatorConfig struct {
	QueryTemplates []string
	MinReal        int // below this, retry query variants on cheap sources
	HardFloor      int // below this, merge synthetic results
	VariantDelay   time.Duration
}

// Aggregator fans a query out to every primary source, then tops up with
// query variants and finally synthetic results.
type Aggregator struct {
	cfg     AggregatorConfig
	primary []types.Source
	retry   []types.Source
	synth   Generator

	mu     sync.Mutex
	status map[string]types.SourceStatus
}

func NewAggregator(cfg AggregatorConfig, primary, retry []types.Source, synth Generator) *Aggregator {
	if len(cfg.QueryTemplates) == 0 {
		cfg.QueryTemplates = []string{"{industry} companies in {location}"}
	}
	return &Aggregator{
		cfg:     cfg,
		primary: primary,
		retry:   retry,
		synth:   synth,
		status:  map[string]types.SourceStatus{},
	}
}

// merged is owned by the coordinating goroutine only.
type merged struct {
	seen map[string]bool
	out  []domain.SearchResult
}

func (m *merged) add(rs []domain.SearchResult) int {
	added := 0
	for _, r := range rs {
		key := util.CanonicalizeURL(r.URL)
		if key == "" || m.seen[key] {
			continue
		}
		m.seen[key] = true
		m.out = append(m.out, r)
		added++
	}
	return added
}

// Aggregate returns at most max results, unique by canonical URL. It never
// fails; a run where every source is down still yields synthetic results.
func (a *Aggregator) Aggregate(ctx context.Context, industry, location string, max int) []domain.SearchResult {
	if max <= 0 {
		return nil
	}
	m := &merged{seen: map[string]bool{}}
	queries := make([]types.Query, 0, len(a.cfg.QueryTemplates))
	for _, t := range a.cfg.QueryTemplates {
		queries = append(queries, types.NewQuery(t, industry, location))
	}

	// 1) primary variant against every source, wait for all to settle
	type batch struct {
		source string
		items  []domain.SearchResult
	}
	results := make(chan batch, len(a.primary))
	var g errgroup.Group
	for _, src := range a.primary {
		g.Go(func() error {
			items := src.Fetch(ctx, queries[0], max)
			a.record(src.Name(), len(items))
			results <- batch{source: src.Name(), items: items}
			return nil
		})
	}
	_ = g.Wait()
	close(results)

	for b := range results {
		n := m.add(b.items)
		log.Printf("[aggregate] source=%s got=%d new=%d", b.source, len(b.items), n)
	}

	// 2) thin yield: walk remaining variants on the cheap sources
	if len(m.out) < a.cfg.MinReal {
	variants:
		for _, q := range queries[1:] {
			for _, src := range a.retry {
				if len(m.out) >= max {
					break variants
				}
				if !sleepCtx(ctx, a.cfg.VariantDelay) {
					break variants
				}
				items := src.Fetch(ctx, q, max-len(m.out))
				a.record(src.Name(), len(items))
				if n := m.add(items); n > 0 {
					log.Printf("[aggregate] variant=%q source=%s new=%d", q.Text, src.Name(), n)
				}
			}
		}
	}

	// 3) backstop
	if len(m.out) < a.cfg.HardFloor && a.synth != nil {
		n := m.add(a.synth.Generate(industry, location, max))
		log.Printf("[aggregate] real=%d below floor=%d, merged synthetic=%d", len(m.out)-n, a.cfg.HardFloor, n)
	}

	if len(m.out) > max {
		m.out = m.out[:max]
	}
	return m.out
}

func (a *Aggregator) record(source string, n int) {
	now := time.Now().Format(time.RFC3339)
	a.mu.Lock()
	defer a.mu.Unlock()
	st := a.status[source]
	st.LastRunAt = now
	st.LastResults = n
	st.Runs++
	if n > 0 {
		st.LastOkAt = now
	}
	a.status[source] = st
}

// Status returns a snapshot of per-source bookkeeping, keyed by source name.
func (a *Aggregator) Status() map[string]types.SourceStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]types.SourceStatus, len(a.status))
	for k, v := range a.status {
		out[k] = v
	}
	return out
}

// Sources lists the configured primary source names, sorted.
func (a *Aggregator) Sources() []string {
	names := make([]string, 0, len(a.primary))
	for _, s := range a.primary {
		names = append(names, s.Name())
	}
	sort.Strings(names)
	return names
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
