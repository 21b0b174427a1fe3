// Package synthetic fabricates plausible company results when every real
// source came back (nearly) empty. Results are always flagged Synthetic.
package synthetic

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/scrape/util"
)

type Config struct {
	Max            int
	Prefixes       []string
	Patterns       map[string][]string // industry keyword -> name suffix words
	DefaultPattern []string
}

type Generator struct {
	cfg  Config
	keys []string // pattern keys, longest first so "real estate" beats "estate"
}

var (
	locationSplitRe = regexp.MustCompile(`[,\s]+`)
	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9]+`)
)

func New(cfg Config) *Generator {
	keys := make([]string, 0, len(cfg.Patterns))
	for k := range cfg.Patterns {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	if cfg.Max <= 0 {
		cfg.Max = 10
	}
	return &Generator{cfg: cfg, keys: keys}
}

func (g *Generator) Name() string { return "synthetic" }

// Generate returns up to min(max, cfg.Max) fabricated results with
// distinct domains. Output is a pure function of its inputs.
func (g *Generator) Generate(industry, location string, max int) []domain.SearchResult {
	n := min(max, g.cfg.Max)
	if n <= 0 || len(g.cfg.Prefixes) == 0 {
		return nil
	}
	patterns := g.patternsFor(industry)
	if len(patterns) == 0 {
		return nil
	}
	place := locationWord(location)

	out := make([]domain.SearchResult, 0, n)
	for i := 0; i < n; i++ {
		prefix := g.cfg.Prefixes[i%len(g.cfg.Prefixes)]
		word := patterns[i%len(patterns)]
		name := fmt.Sprintf("%s %s %s", prefix, place, util.TitleWord(word))
		stem := nonAlnumRe.ReplaceAllString(strings.ToLower(prefix+place+word), "")
		if round := i / len(g.cfg.Prefixes); round > 0 {
			stem = fmt.Sprintf("%s%d", stem, round+1)
		}
		out = append(out, domain.SearchResult{
			Title:     name + " - " + location,
			URL:       "https://www." + stem + ".com",
			Snippet:   fmt.Sprintf("%s - %s %s serving %s", name, industry, word, location),
			Source:    g.Name(),
			Synthetic: true,
		})
	}
	return out
}

func (g *Generator) patternsFor(industry string) []string {
	li := strings.ToLower(industry)
	for _, k := range g.keys {
		if strings.Contains(li, k) {
			return g.cfg.Patterns[k]
		}
	}
	return g.cfg.DefaultPattern
}

// locationWord picks the first location token longer than two letters,
// so "Austin, TX" gives "Austin" and "NY" gives "Metro".
func locationWord(location string) string {
	for _, p := range locationSplitRe.Split(location, -1) {
		p = nonAlnumRe.ReplaceAllString(strings.ToLower(p), "")
		if len(p) > 2 {
			return util.TitleWord(p)
		}
	}
	return "Metro"
}
