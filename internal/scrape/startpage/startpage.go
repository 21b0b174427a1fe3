package startpage

import (
	"context"
	"log"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/scrape/types"
	"leadgen-engine/internal/scrape/util"
)

const defaultBaseURL = "https://www.startpage.com/sp/search"

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Unusable []string
}

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

func (s *Scraper) Name() string { return "startpage" }

func (s *Scraper) Fetch(ctx context.Context, q types.Query, max int) []domain.SearchResult {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	out, err := s.fetch(cctx, q, max)
	if err != nil {
		log.Printf("[startpage] query=%q err=%v", q.Text, err)
	}
	return out
}

func (s *Scraper) fetch(ctx context.Context, q types.Query, max int) ([]domain.SearchResult, error) {
	u := s.cfg.BaseURL + "?" + url.Values{"q": {q.Text}}.Encode()
	doc, err := s.f.Document(ctx, u, "")
	if err != nil {
		return nil, err
	}

	var out []domain.SearchResult
	doc.Find(".w-gl__result, .result").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if len(out) >= max {
			return false
		}
		href, title := util.FirstLink(item, "a.w-gl__result-title", "a.result-link")
		if title == "" || !util.IsUsableURL(href, s.cfg.Unusable) {
			return true
		}
		out = append(out, domain.SearchResult{
			Title:   title,
			URL:     href,
			Snippet: util.FirstText(item, ".w-gl__description", ".result-snippet"),
			Source:  s.Name(),
		})
		return true
	})
	return out, nil
}
