package util

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher bundles the shared client and host limiter every source adapter
// uses.
type Fetcher struct {
	Client  *http.Client
	Limiter *HostLimiter
}

// Do paces and sends req with browser-like headers. Non-2xx statuses are
// returned as errors and the body is closed.
func (f Fetcher) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", UserAgent())
	}
	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	}
	if err := f.Limiter.WaitURL(ctx, req.URL.String()); err != nil {
		return nil, err
	}
	hc := f.Client
	if hc == nil {
		hc = http.DefaultClient
	}
	res, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(res.Body, 4<<10))
		res.Body.Close()
		return nil, fmt.Errorf("%s %s: status %d", req.Method, req.URL.Host, res.StatusCode)
	}
	return res, nil
}

// Document GETs (or POSTs, when form is non-empty) rawURL and parses the
// HTML response.
func (f Fetcher) Document(ctx context.Context, rawURL string, form string) (*goquery.Document, error) {
	var req *http.Request
	var err error
	if form != "" {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	res, err := f.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	return goquery.NewDocumentFromReader(res.Body)
}

// JSON GETs rawURL and decodes the body into v.
func (f Fetcher) JSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	return f.DecodeJSON(ctx, req, v)
}

// DecodeJSON sends a prepared request and decodes the body into v.
func (f Fetcher) DecodeJSON(ctx context.Context, req *http.Request, v any) error {
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	res, err := f.Do(ctx, req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Host, err)
	}
	return nil
}
