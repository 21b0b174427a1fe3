package duckduckgo

import (
	"context"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/scrape/types"
	"leadgen-engine/internal/scrape/util"
)

const defaultBaseURL = "https://html.duckduckgo.com/html/"

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Unusable []string // URL fragments that disqualify a result
}

// Scraper queries the JavaScript-free DuckDuckGo endpoint.
type Scraper struct {
	cfg Config
	f   util.Fetcher
}

func New(cfg Config, f util.Fetcher) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	return &Scraper{cfg: cfg, f: f}
}

func (s *Scraper) Name() string { return "duckduckgo" }

func (s *Scraper) Fetch(ctx context.Context, q types.Query, max int) []domain.SearchResult {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	out, err := s.fetch(cctx, q, max)
	if err != nil {
		log.Printf("[ddg] query=%q err=%v", q.Text, err)
	}
	return out
}

func (s *Scraper) fetch(ctx context.Context, q types.Query, max int) ([]domain.SearchResult, error) {
	form := url.Values{"q": {q.Text}, "b": {""}}.Encode()
	doc, err := s.f.Document(ctx, s.cfg.BaseURL, form)
	if err != nil {
		return nil, err
	}
	return s.parse(doc, max), nil
}

func (s *Scraper) parse(doc *goquery.Document, max int) []domain.SearchResult {
	var out []domain.SearchResult

	doc.Find(".result, .web-result").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if len(out) >= max {
			return false
		}
		href, linkText := util.FirstLink(item, ".result__a", "a.result__url", "a")
		title := util.FirstText(item, ".result__title", ".result__a")
		if title == "" {
			title = linkText
		}
		target := util.DecodeDDGRedirect(href)
		if len([]rune(title)) <= 2 || !util.IsUsableURL(target, s.cfg.Unusable) {
			return true
		}
		out = append(out, domain.SearchResult{
			Title:   title,
			URL:     target,
			Snippet: util.CleanText(item.Find(".result__snippet").Text()),
			Source:  s.Name(),
		})
		return true
	})

	// Some layouts only expose bare links tagged with the target host.
	doc.Find("a[data-hostname]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if len(out) >= max {
			return false
		}
		title := util.CleanText(a.Text())
		href, _ := a.Attr("href")
		target := util.DecodeDDGRedirect(strings.TrimSpace(href))
		if target == "" {
			host, _ := a.Attr("data-hostname")
			target = "https://" + strings.TrimSpace(host)
		}
		if title == "" || !util.IsUsableURL(target, s.cfg.Unusable) {
			return true
		}
		out = append(out, domain.SearchResult{Title: title, URL: target, Source: s.Name()})
		return true
	})

	return out
}
