package pipeline

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/health"
	"leadgen-engine/internal/scrape"
	"leadgen-engine/internal/scrape/types"
	"leadgen-engine/internal/scrape/util"
)

// Engine owns the live orchestrator and rebuilds it when config changes.
// The HTTP client and per-host limiter survive reloads so pacing state is
// not reset by a config save.
type Engine struct {
	client  *http.Client
	limiter *util.HostLimiter
	cur     atomic.Pointer[built]
}

type built struct {
	orch *Orchestrator
	agg  *scrape.Aggregator
}

func NewEngine(cfg config.Config) *Engine {
	e := &Engine{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
		limiter: util.NewHostLimiter(cfg.Sources.HostRatePerSec, cfg.Sources.HostBurst),
	}
	e.Reload(cfg)
	return e
}

func (e *Engine) Reload(cfg config.Config) {
	e.limiter.SetRate(cfg.Sources.HostRatePerSec, cfg.Sources.HostBurst)
	agg := scrape.BuildAggregator(cfg, util.Fetcher{Client: e.client, Limiter: e.limiter})
	prober := health.New(health.Config{
		Client:        e.client,
		Timeout:       cfg.Probe.Timeout(),
		Concurrency:   cfg.Probe.Concurrency,
		MaxBodyBytes:  cfg.Probe.MaxBodyBytes,
		BusinessTerms: cfg.Probe.BusinessTerms,
	})
	e.cur.Store(&built{orch: FromConfig(cfg, agg, prober), agg: agg})
}

func (e *Engine) Run(ctx context.Context, req domain.LeadRequest) (Result, error) {
	return e.cur.Load().orch.Run(ctx, req)
}

// SourceStatus reports per-source bookkeeping since the last reload.
func (e *Engine) SourceStatus() map[string]types.SourceStatus {
	return e.cur.Load().agg.Status()
}

func (e *Engine) Sources() []string {
	return e.cur.Load().agg.Sources()
}
