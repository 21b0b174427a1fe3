package health_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/health"
)

// sites maps a fake domain to the handler serving it over each scheme.
type sites map[string]struct{ tls, plain http.HandlerFunc }

func newProber(t *testing.T, s sites, timeout time.Duration) *health.Prober {
	t.Helper()
	tlsSrv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := s[r.URL.Query().Get("d")].tls
		if h == nil {
			http.Error(w, "no site", http.StatusNotFound)
			return
		}
		h(w, r)
	}))
	plainSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := s[r.URL.Query().Get("d")].plain
		if h == nil {
			http.Error(w, "no site", http.StatusNotFound)
			return
		}
		h(w, r)
	}))
	t.Cleanup(tlsSrv.Close)
	t.Cleanup(plainSrv.Close)

	return health.New(health.Config{
		Client:        tlsSrv.Client(),
		Timeout:       timeout,
		Concurrency:   3,
		BusinessTerms: []string{"enterprise", "b2b", "distribution"},
		URLFor: func(scheme, d string) string {
			if scheme == "https" {
				return tlsSrv.URL + "/?d=" + d
			}
			return plainSrv.URL + "/?d=" + d
		},
	})
}

func page(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	}
}

func hang(w http.ResponseWriter, r *http.Request) {
	select {
	case <-r.Context().Done():
	case <-time.After(2 * time.Second):
	}
}

func TestProbeHTTPS(t *testing.T) {
	p := newProber(t, sites{"acme.com": {tls: page("<h1>Enterprise Distribution</h1>")}}, time.Second)

	h := p.Probe(context.Background(), "acme.com")
	if h.Status != domain.StatusLive || !h.IsHTTPS || !h.HasBusinessKeywords {
		t.Errorf("health = %+v, want live https with keywords", h)
	}
	if h.ResponseTimeMs == nil {
		t.Error("response time not recorded")
	}
}

func TestProbeFallsBackToHTTPOnTimeout(t *testing.T) {
	p := newProber(t, sites{"slow.com": {tls: hang, plain: page("hello")}}, 150*time.Millisecond)

	h := p.Probe(context.Background(), "slow.com")
	if h.Status != domain.StatusLive || h.IsHTTPS {
		t.Errorf("health = %+v, want live, isHttps=false", h)
	}
	if h.HasBusinessKeywords {
		t.Error("keywords reported for plain page")
	}
}

func TestProbeFallsBackOnNon2xx(t *testing.T) {
	forbidden := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusForbidden) }
	p := newProber(t, sites{"legacy.com": {tls: forbidden, plain: page("b2b")}}, time.Second)

	h := p.Probe(context.Background(), "legacy.com")
	if h.Status != domain.StatusLive || h.IsHTTPS || !h.HasBusinessKeywords {
		t.Errorf("health = %+v", h)
	}
}

func TestProbeBothFail(t *testing.T) {
	p := newProber(t, sites{"dead.com": {tls: hang, plain: func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}}}, 100*time.Millisecond)

	h := p.Probe(context.Background(), "dead.com")
	if h.Status != domain.StatusDown {
		t.Errorf("status = %s, want down", h.Status)
	}
	if h.IsHTTPS || h.HasBusinessKeywords || h.ResponseTimeMs != nil {
		t.Errorf("down site carries data: %+v", h)
	}
}

func TestProbeDecodesCharset(t *testing.T) {
	latin1 := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "Caf\xe9 Enterprise"
		w.Write([]byte("Caf\xe9 ENTERPRISE"))
	}
	p := newProber(t, sites{"cafe.fr": {tls: latin1}}, time.Second)

	if h := p.Probe(context.Background(), "cafe.fr"); !h.HasBusinessKeywords {
		t.Errorf("health = %+v, want keywords found", h)
	}
}

func TestProbeAllBoundsConcurrency(t *testing.T) {
	var inflight, peak atomic.Int32
	tracked := func(w http.ResponseWriter, r *http.Request) {
		n := inflight.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		inflight.Add(-1)
		w.Write([]byte("ok"))
	}
	s := sites{}
	var domains []string
	for _, d := range strings.Fields("a.com b.com c.com d.com e.com f.com g.com") {
		s[d] = struct{ tls, plain http.HandlerFunc }{tls: tracked}
		domains = append(domains, d)
	}
	p := newProber(t, s, time.Second)

	got := p.ProbeAll(context.Background(), domains, 2)

	if len(got) != len(domains) {
		t.Fatalf("got %d entries, want %d", len(got), len(domains))
	}
	for _, d := range domains {
		if got[d].Status != domain.StatusLive {
			t.Errorf("%s status = %s", d, got[d].Status)
		}
	}
	if peak.Load() > 2 {
		t.Errorf("peak concurrent probes = %d, want <= 2", peak.Load())
	}
}

func TestProbeAllEmpty(t *testing.T) {
	p := newProber(t, sites{}, time.Second)
	if got := p.ProbeAll(context.Background(), nil, 3); len(got) != 0 {
		t.Errorf("got %d entries for no domains", len(got))
	}
}

func TestProbeAllAfterDeadlineReportsUnknown(t *testing.T) {
	p := newProber(t, sites{
		"slow.com": {tls: hang, plain: hang},
		"late.com": {tls: page("<p>b2b</p>")},
	}, 2*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	// Concurrency 1 puts late.com in a batch that starts after the deadline.
	got := p.ProbeAll(ctx, []string{"slow.com", "late.com"}, 1)

	for _, d := range []string{"slow.com", "late.com"} {
		if got[d].Status != domain.StatusUnknown {
			t.Errorf("%s status = %q, want %q", d, got[d].Status, domain.StatusUnknown)
		}
	}
}

func TestProbePerAttemptTimeoutIsStillDown(t *testing.T) {
	p := newProber(t, sites{"slow.com": {tls: hang, plain: hang}}, 50*time.Millisecond)

	if h := p.Probe(context.Background(), "slow.com"); h.Status != domain.StatusDown {
		t.Errorf("status = %q, want %q", h.Status, domain.StatusDown)
	}
}
