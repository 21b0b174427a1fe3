// engine/internal/config/config.go
package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Addr    string `yaml:"addr"`
	DataDir string `yaml:"data_dir"`
}

type SourcesConfig struct {
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	HostRatePerSec float64  `yaml:"host_rate_per_sec"`
	HostBurst      int      `yaml:"host_burst"`
	Enabled        []string `yaml:"enabled"`
	Retry          []string `yaml:"retry"`
	QueryTemplates []string `yaml:"query_templates"`
	UnusableURLs   []string `yaml:"unusable_urls"`
}

type AggregateConfig struct {
	MinReal         int `yaml:"min_real"`
	HardFloor       int `yaml:"hard_floor"`
	VariantDelayMs  int `yaml:"variant_delay_ms"`
	CandidateFactor int `yaml:"candidate_factor"`

	// RunBudgetSeconds caps a whole pipeline run; 0 disables the cap.
	RunBudgetSeconds int `yaml:"run_budget_seconds"`
}

type ProbeConfig struct {
	Concurrency    int      `yaml:"concurrency"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	MaxBodyBytes   int64    `yaml:"max_body_bytes"`
	BusinessTerms  []string `yaml:"business_terms"`
}

type ClassifyConfig struct {
	B2B []string `yaml:"b2b"`
	B2C []string `yaml:"b2c"`
}

type EmailsConfig struct {
	LocalParts []string `yaml:"local_parts"`
	Count      int      `yaml:"count"`
}

type ExtractConfig struct {
	ExcludedDomains []string `yaml:"excluded_domains"`
}

// InputConfig holds the tables behind industry/location validation.
type InputConfig struct {
	PlaceholderWords []string `yaml:"placeholder_words"`
	IndustryKeywords []string `yaml:"industry_keywords"`
}

type SyntheticConfig struct {
	Max            int                 `yaml:"max"`
	Prefixes       []string            `yaml:"prefixes"`
	Patterns       map[string][]string `yaml:"patterns"`
	DefaultPattern []string            `yaml:"default_pattern"`
}

type RateLimitConfig struct {
	Backend       string `yaml:"backend"` // memory | redis
	WindowSeconds int    `yaml:"window_seconds"`
	MaxRequests   int    `yaml:"max_requests"`
	SweepSeconds  int    `yaml:"sweep_seconds"`
	RedisURL      string `yaml:"redis_url"`
}

type Config struct {
	App       AppConfig       `yaml:"app"`
	Sources   SourcesConfig   `yaml:"sources"`
	Aggregate AggregateConfig `yaml:"aggregate"`
	Probe     ProbeConfig     `yaml:"probe"`
	Classify  ClassifyConfig  `yaml:"classify"`
	Emails    EmailsConfig    `yaml:"emails"`
	Extract   ExtractConfig   `yaml:"extract"`
	Input     InputConfig     `yaml:"input"`
	Synthetic SyntheticConfig `yaml:"synthetic"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Load reads a YAML file over the compiled-in defaults, so a partial
// file only overrides what it names.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)
	return cfg, nil
}

// ApplyEnv overlays LEADGEN_* environment variables.
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("LEADGEN_ADDR")); v != "" {
		cfg.App.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("LEADGEN_DATA_DIR")); v != "" {
		cfg.App.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("LEADGEN_REDIS_URL")); v != "" {
		cfg.RateLimit.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv("LEADGEN_RATE_LIMIT_BACKEND")); v != "" {
		cfg.RateLimit.Backend = strings.ToLower(v)
	}
}

func (c SourcesConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c AggregateConfig) VariantDelay() time.Duration {
	return time.Duration(c.VariantDelayMs) * time.Millisecond
}

func (c AggregateConfig) RunBudget() time.Duration {
	return time.Duration(c.RunBudgetSeconds) * time.Second
}

func (c ProbeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

func (c RateLimitConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepSeconds) * time.Second
}
