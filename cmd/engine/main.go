package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/events"
	"leadgen-engine/internal/httpapi"
	"leadgen-engine/internal/input"
	"leadgen-engine/internal/pipeline"
	"leadgen-engine/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	// .env first so LEADGEN_DATA_DIR can come from it
	boot := config.Default()
	if err := config.OverlayEnvFile(&boot, ".env"); err != nil {
		log.Fatalf(".env load failed: %v", err)
	}
	dataDir := boot.App.DataDir
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		cfg, vr := config.NormalizeAndValidate(cfg)
		for _, w := range vr.Warnings {
			log.Printf("[config] warning: %s", w)
		}
		if !vr.OK() {
			return cfg, errors.New("invalid config: " + vr.Errors[0])
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter, sweep, closeLimiter, err := newRateLimiter(ctx, cfg.RateLimit)
	if err != nil {
		log.Fatalf("rate limiter: %v", err)
	}
	defer closeLimiter()
	if sweep != nil {
		scheduler.Go(ctx, cfg.RateLimit.SweepInterval(), "ratelimit-sweep", sweep)
	}

	engine := pipeline.NewEngine(cfg)
	log.Printf("[leadgen] sources=%v", engine.Sources())
	validator := input.NewValidator(cfg.Input)
	onConfig := func(c config.Config) {
		engine.Reload(c)
		validator.SetTables(c.Input)
	}

	deps := httpapi.Deps{
		Hub:          events.NewHub(),
		CfgVal:       &cfgVal,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		OnConfig:     onConfig,
		Runner:       engine,
		Limiter:      limiter,
		Validator:    validator,
		SourceStatus: engine.SourceStatus,
	}

	ln, err := net.Listen("tcp", cfg.App.Addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (config=%s rate_limit=%s)", ln.Addr(), userCfgPath, cfg.RateLimit.Backend)

	srv := &http.Server{
		Handler:           httpapi.Handler(deps),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	case <-ctx.Done():
		log.Printf("[leadgen] shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Printf("[leadgen] shutdown: %v", err)
		}
	}
}
