package yelp

import (
	"context"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/scrape/types"
	"leadgen-engine/internal/scrape/util"
)

const defaultBaseURL = "https://www.yelp.com/search"

// Yelp renders client-side; listings live as JSON blobs inside <script>.
var businessRe = regexp.MustCompile(`"businessUrl":"([^"]+)".*?"name":"([^"]+)"`)

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

func (s *Scraper) Name() string { return "yelp" }

func (s *Scraper) Fetch(ctx context.Context, q types.Query, max int) []domain.SearchResult {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	out, err := s.fetch(cctx, q, max)
	if err != nil {
		log.Printf("[yelp] industry=%q location=%q err=%v", q.Industry, q.Location, err)
	}
	return out
}

func (s *Scraper) fetch(ctx context.Context, q types.Query, max int) ([]domain.SearchResult, error) {
	params := url.Values{"find_desc": {q.Industry}, "find_loc": {q.Location}}
	doc, err := s.f.Document(ctx, s.cfg.BaseURL+"?"+params.Encode(), "")
	if err != nil {
		return nil, err
	}

	unescape := strings.NewReplacer(`\/`, "/", `\u002F`, "/", `\u0026`, "&")
	var out []domain.SearchResult
	doc.Find("script").EachWithBreak(func(_ int, sc *goquery.Selection) bool {
		body := sc.Text()
		if !strings.Contains(body, "businessUrl") {
			return true
		}
		for _, m := range businessRe.FindAllStringSubmatch(body, -1) {
			if len(out) >= max {
				return false
			}
			site := unescape.Replace(m[1])
			name := util.CleanText(unescape.Replace(m[2]))
			if name == "" || strings.Contains(site, "yelp.com") || !util.IsUsableURL(site, s.cfg.Unusable) {
				continue
			}
			out = append(out, domain.SearchResult{Title: name, URL: site, Source: s.Name()})
		}
		return true
	})
	return out, nil
}
