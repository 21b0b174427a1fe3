package scrape

import (
	"log"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/scrape/bing"
	"leadgen-engine/internal/scrape/brave"
	"leadgen-engine/internal/scrape/duckduckgo"
	"leadgen-engine/internal/scrape/qwant"
	"leadgen-engine/internal/scrape/startpage"
	"leadgen-engine/internal/scrape/synthetic"
	"leadgen-engine/internal/scrape/types"
	"leadgen-engine/internal/scrape/util"
	"leadgen-engine/internal/scrape/wikipedia"
	"leadgen-engine/internal/scrape/yellowpages"
	"leadgen-engine/internal/scrape/yelp"
)

// NewSource builds the adapter registered under name, or nil.
func NewSource(name string, cfg config.SourcesConfig, f util.Fetcher) types.Source {
	timeout := cfg.Timeout()
	switch name {
	case "duckduckgo":
		return duckduckgo.New(duckduckgo.Config{Timeout: timeout, Unusable: cfg.UnusableURLs}, f)
	case "brave":
		return brave.New(brave.Config{Timeout: timeout, Unusable: cfg.UnusableURLs}, f)
	case "startpage":
		return startpage.New(startpage.Config{Timeout: timeout, Unusable: cfg.UnusableURLs}, f)
	case "qwant":
		return qwant.New(qwant.Config{Timeout: timeout, Unusable: cfg.UnusableURLs}, f)
	case "bing":
		return bing.New(bing.Config{Timeout: timeout, Unusable: cfg.UnusableURLs}, f)
	case "yellowpages":
		return yellowpages.New(yellowpages.Config{Timeout: timeout, Unusable: cfg.UnusableURLs}, f)
	case "yelp":
		return yelp.New(yelp.Config{Timeout: timeout, Unusable: cfg.UnusableURLs}, f)
	case "wikipedia":
		return wikipedia.New(wikipedia.Config{Timeout: timeout}, f)
	}
	return nil
}

// BuildAggregator wires the enabled sources, retry sources and synthetic
// generator from cfg.
func BuildAggregator(cfg config.Config, f util.Fetcher) *Aggregator {
	build := func(names []string) []types.Source {
		var out []types.Source
		for _, n := range names {
			src := NewSource(n, cfg.Sources, f)
			if src == nil {
				log.Printf("[aggregate] unknown source %q ignored", n)
				continue
			}
			out = append(out, src)
		}
		return out
	}

	gen := synthetic.New(synthetic.Config{
		Max:            cfg.Synthetic.Max,
		Prefixes:       cfg.Synthetic.Prefixes,
		Patterns:       cfg.Synthetic.Patterns,
		DefaultPattern: cfg.Synthetic.DefaultPattern,
	})

	return NewAggregator(AggregatorConfig{
		QueryTemplates: cfg.Sources.QueryTemplates,
		MinReal:        cfg.Aggregate.MinReal,
		HardFloor:      cfg.Aggregate.HardFloor,
		VariantDelay:   cfg.Aggregate.VariantDelay(),
	}, build(cfg.Sources.Enabled), build(cfg.Sources.Retry), gen)
}
