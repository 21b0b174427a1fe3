package qwant

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/scrape/types"
	"leadgen-engine/internal/scrape/util"
)

const defaultBaseURL = "https://api.qwant.com/v3/search/web"

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Unusable []string
}

// Scraper reads Qwant's public JSON search API.
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

func (s *Scraper) Name() string { return "qwant" }

type qwantResponse struct {
	Data struct {
		Result struct {
			Items struct {
				Mainline []struct {
					Type  string `json:"type"`
					Items []struct {
						Title string `json:"title"`
						URL   string `json:"url"`
						Desc  string `json:"desc"`
					} `json:"items"`
				} `json:"mainline"`
			} `json:"items"`
		} `json:"result"`
	} `json:"data"`
}

func (s *Scraper) Fetch(ctx context.Context, q types.Query, max int) []domain.SearchResult {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	out, err := s.fetch(cctx, q, max)
	if err != nil {
		log.Printf("[qwant] query=%q err=%v", q.Text, err)
	}
	return out
}

func (s *Scraper) fetch(ctx context.Context, q types.Query, max int) ([]domain.SearchResult, error) {
	params := url.Values{
		"q":      {q.Text},
		"count":  {strconv.Itoa(max)},
		"locale": {"en_US"},
		"offset": {"0"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Origin", "https://www.qwant.com")
	req.Header.Set("Referer", "https://www.qwant.com/")

	var body qwantResponse
	if err := s.f.DecodeJSON(ctx, req, &body); err != nil {
		return nil, err
	}

	var out []domain.SearchResult
	for _, group := range body.Data.Result.Items.Mainline {
		if group.Type != "web" {
			continue
		}
		for _, it := range group.Items {
			if len(out) >= max {
				return out, nil
			}
			title := util.CleanText(it.Title)
			if title == "" || !util.IsUsableURL(it.URL, s.cfg.Unusable) {
				continue
			}
			out = append(out, domain.SearchResult{
				Title:   title,
				URL:     it.URL,
				Snippet: util.CleanText(it.Desc),
				Source:  s.Name(),
			})
		}
	}
	return out, nil
}
