package httpapi

import (
	"context"
	"sync/atomic"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/events"
	"leadgen-engine/internal/input"
	"leadgen-engine/internal/pipeline"
	"leadgen-engine/internal/ratelimit"
	"leadgen-engine/internal/scrape/types"
)

// LeadRunner runs one pipeline pass. *pipeline.Engine implements it.
type LeadRunner interface {
	Run(ctx context.Context, req domain.LeadRequest) (pipeline.Result, error)
}

type Deps struct {
	Hub *events.Hub

	// Atomic store
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
	OnConfig    func(config.Config) // called after a successful PUT /config

	Runner    LeadRunner
	Limiter   ratelimit.Limiter
	Validator *input.Validator

	// SourceStatus feeds GET /health; may be nil.
	SourceStatus func() map[string]types.SourceStatus
}
