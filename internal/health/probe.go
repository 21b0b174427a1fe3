package health

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/scrape/util"
)

type Config struct {
	Client        *http.Client
	Timeout       time.Duration // per attempt
	Concurrency   int           // batch size
	MaxBodyBytes  int64
	BusinessTerms []string // lower-case

	// URLFor builds the probe URL; tests point it at httptest servers.
	URLFor func(scheme, domain string) string
}

// Prober checks whether candidate sites are up, served over TLS and look
// like a business.
type Prober struct {
	cfg Config
}

func New(cfg Config) *Prober {
	if cfg.Client == nil {
		cfg.Client = &http.Client{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	if cfg.URLFor == nil {
		cfg.URLFor = func(scheme, d string) string { return scheme + "://" + d }
	}
	return &Prober{cfg: cfg}
}

// ProbeAll probes domains in sequential batches of concurrency (the
// configured default when <= 0). Every input domain gets an entry; once ctx
// is done the domains not yet settled are reported unknown, not down.
func (p *Prober) ProbeAll(ctx context.Context, domains []string, concurrency int) map[string]domain.WebsiteHealth {
	if concurrency <= 0 {
		concurrency = p.cfg.Concurrency
	}
	out := make(map[string]domain.WebsiteHealth, len(domains))

	for start := 0; start < len(domains); start += concurrency {
		batch := domains[start:min(start+concurrency, len(domains))]
		if ctx.Err() != nil {
			for _, d := range batch {
				out[d] = domain.UnknownHealth()
			}
			continue
		}
		res := make([]domain.WebsiteHealth, len(batch))

		var g errgroup.Group
		for i, d := range batch {
			g.Go(func() error {
				res[i] = p.Probe(ctx, d)
				return nil
			})
		}
		_ = g.Wait()

		for i, d := range batch {
			out[d] = res[i]
		}
	}

	live := 0
	for _, h := range out {
		if h.Status == domain.StatusLive {
			live++
		}
	}
	log.Printf("[probe] domains=%d live=%d batch=%d ctx_done=%t", len(domains), live, concurrency, ctx.Err() != nil)
	return out
}

// Probe tries HTTPS, then plain HTTP. Both failing marks the site down,
// unless ctx ended first: then nothing is known about the site.
func (p *Prober) Probe(ctx context.Context, d string) domain.WebsiteHealth {
	body, ms, err := p.attempt(ctx, "https", d)
	if err == nil {
		return p.healthFrom(true, ms, body)
	}
	if ctx.Err() != nil {
		return domain.UnknownHealth()
	}
	log.Printf("[probe] domain=%s https err=%v", d, err)

	body, ms, err = p.attempt(ctx, "http", d)
	if err != nil {
		if ctx.Err() != nil {
			return domain.UnknownHealth()
		}
		log.Printf("[probe] domain=%s http err=%v", d, err)
		return domain.WebsiteHealth{Status: domain.StatusDown}
	}
	return p.healthFrom(false, ms, body)
}

func (p *Prober) healthFrom(isHTTPS bool, ms int, body string) domain.WebsiteHealth {
	return domain.WebsiteHealth{
		Status:              domain.StatusLive,
		ResponseTimeMs:      &ms,
		IsHTTPS:             isHTTPS,
		HasBusinessKeywords: p.hasBusinessTerms(body),
	}
}

// attempt does one GET under its own timeout. Only 2xx counts as success;
// the body is decoded to UTF-8 and lower-cased.
func (p *Prober) attempt(ctx context.Context, scheme, d string) (string, int, error) {
	cctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, p.cfg.URLFor(scheme, d), nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", util.UserAgent())
	req.Header.Set("Accept", "text/html")

	start := time.Now()
	res, err := p.cfg.Client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer res.Body.Close()
	elapsed := int(time.Since(start).Milliseconds())

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", elapsed, fmt.Errorf("status %d", res.StatusCode)
	}

	r, err := charset.NewReader(io.LimitReader(res.Body, p.cfg.MaxBodyBytes), res.Header.Get("Content-Type"))
	if err != nil {
		r = io.LimitReader(res.Body, p.cfg.MaxBodyBytes)
	}
	b, err := io.ReadAll(r)
	if err != nil && len(b) == 0 {
		// a live site with an unreadable body is still live
		log.Printf("[probe] domain=%s read err=%v", d, err)
	}
	return strings.ToLower(string(b)), elapsed, nil
}

func (p *Prober) hasBusinessTerms(lowerBody string) bool {
	if lowerBody == "" {
		return false
	}
	for _, t := range p.cfg.BusinessTerms {
		if strings.Contains(lowerBody, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
