package yellowpages

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

const defaultBaseURL = "https://www.yellowpages.com/search"

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Unusable []string
}

// Scraper reads YellowPages listing pages. Listings without an outbound
// website link get a guessed domain derived from the business name.
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

func (s *Scraper) Name() string { return "yellowpages" }

func (s *Scraper) Fetch(ctx context.Context, q types.Query, max int) []domain.SearchResult {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	out, err := s.fetch(cctx, q, max)
	if err != nil {
		log.Printf("[yellowpages] industry=%q location=%q err=%v", q.Industry, q.Location, err)
	}
	return out
}

func (s *Scraper) fetch(ctx context.Context, q types.Query, max int) ([]domain.SearchResult, error) {
	params := url.Values{
		"search_terms":       {hyphenate(q.Industry)},
		"geo_location_terms": {hyphenate(q.Location)},
	}
	doc, err := s.f.Document(ctx, s.cfg.BaseURL+"?"+params.Encode(), "")
	if err != nil {
		return nil, err
	}

	var out []domain.SearchResult
	doc.Find(".result").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if len(out) >= max {
			return false
		}
		name := util.CleanText(item.Find(".business-name").First().Text())
		if name == "" {
			return true
		}
		site, _ := item.Find("a.track-visit-website").First().Attr("href")
		site = strings.TrimSpace(site)
		if !util.IsUsableURL(site, s.cfg.Unusable) {
			guess := util.GuessDomain(name)
			if guess == "" {
				return true
			}
			site = "https://www." + guess
		}
		out = append(out, domain.SearchResult{
			Title:   name,
			URL:     site,
			Snippet: util.CleanText(item.Find(".snippet").First().Text()),
			Source:  s.Name(),
		})
		return true
	})
	return out, nil
}

func hyphenate(s string) string {
	return strings.Join(strings.Fields(s), "-")
}
