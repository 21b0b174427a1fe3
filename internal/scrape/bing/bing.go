package bing

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/scrape/types"
	"leadgen-engine/internal/scrape/util"
)

const defaultBaseURL = "https://www.bing.com/search"

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Unusable []string
}

// Scraper uses Bing's RSS rendering of a results page, which is far
// more stable than its HTML.
type Scraper struct {
	cfg    Config
	f      util.Fetcher
	parser *gofeed.Parser
}

func New(cfg Config, f util.Fetcher) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	return &Scraper{cfg: cfg, f: f, parser: gofeed.NewParser()}
}

func (s *Scraper) Name() string { return "bing" }

func (s *Scraper) Fetch(ctx context.Context, q types.Query, max int) []domain.SearchResult {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	out, err := s.fetch(cctx, q, max)
	if err != nil {
		log.Printf("[bing] query=%q err=%v", q.Text, err)
	}
	return out
}

func (s *Scraper) fetch(ctx context.Context, q types.Query, max int) ([]domain.SearchResult, error) {
	u := s.cfg.BaseURL + "?" + url.Values{"q": {q.Text}, "format": {"rss"}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9")

	res, err := s.f.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	feed, err := s.parser.Parse(res.Body)
	if err != nil {
		return nil, err
	}

	var out []domain.SearchResult
	for _, it := range feed.Items {
		if len(out) >= max {
			break
		}
		title := util.CleanText(it.Title)
		if title == "" || !util.IsUsableURL(it.Link, s.cfg.Unusable) {
			continue
		}
		out = append(out, domain.SearchResult{
			Title:   title,
			URL:     it.Link,
			Snippet: stripTags(it.Description),
			Source:  s.Name(),
		})
	}
	return out, nil
}

// stripTags flattens the occasional HTML fragment in an item description.
func stripTags(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return util.CleanText(s)
	}
	return util.CleanText(doc.Text())
}
