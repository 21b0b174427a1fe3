package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

var knownSources = map[string]bool{
	"wikipedia": true, "duckduckgo": true, "brave": true, "startpage": true,
	"qwant": true, "bing": true, "yellowpages": true, "yelp": true,
}

// NormalizeAndValidate returns a normalized copy of cfg plus any problems.
// Keyword lists are lower-cased and de-duplicated since every matcher
// compares against lower-cased text.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string, lower bool) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			if lower {
				x = key
			}
			ys = append(ys, x)
		}
		return ys
	}

	out.Sources.Enabled = trimList(out.Sources.Enabled, true)
	out.Sources.Retry = trimList(out.Sources.Retry, true)
	out.Sources.QueryTemplates = trimList(out.Sources.QueryTemplates, false)
	out.Sources.UnusableURLs = trimList(out.Sources.UnusableURLs, true)
	out.Probe.BusinessTerms = trimList(out.Probe.BusinessTerms, true)
	out.Classify.B2B = trimList(out.Classify.B2B, true)
	out.Classify.B2C = trimList(out.Classify.B2C, true)
	out.Input.PlaceholderWords = trimList(out.Input.PlaceholderWords, true)
	out.Input.IndustryKeywords = trimList(out.Input.IndustryKeywords, true)
	out.Emails.LocalParts = trimList(out.Emails.LocalParts, true)
	out.Extract.ExcludedDomains = trimList(out.Extract.ExcludedDomains, true)
	out.Synthetic.Prefixes = trimList(out.Synthetic.Prefixes, false)
	out.Synthetic.DefaultPattern = trimList(out.Synthetic.DefaultPattern, true)
	out.RateLimit.Backend = strings.ToLower(strings.TrimSpace(out.RateLimit.Backend))

	// ---- Validation rules ----

	if strings.TrimSpace(out.App.Addr) == "" {
		res.addErr("app.addr is required")
	}

	if len(out.Sources.Enabled) == 0 {
		res.addWarn("sources.enabled is empty; every run will fall back to synthetic results.")
	}
	for _, s := range out.Sources.Enabled {
		if !knownSources[s] {
			res.addErr("sources.enabled: unknown source %q", s)
		}
	}
	for _, s := range out.Sources.Retry {
		if !knownSources[s] {
			res.addErr("sources.retry: unknown source %q", s)
		}
	}
	if out.Sources.TimeoutSeconds <= 0 {
		res.addErr("sources.timeout_seconds must be > 0")
	}
	if out.Sources.HostRatePerSec <= 0 {
		res.addErr("sources.host_rate_per_sec must be > 0")
	}
	if out.Sources.HostBurst <= 0 {
		res.addErr("sources.host_burst must be > 0")
	}
	if len(out.Sources.QueryTemplates) == 0 {
		res.addErr("sources.query_templates must have at least 1 entry")
	}
	for i, t := range out.Sources.QueryTemplates {
		if !strings.Contains(t, "{industry}") {
			res.addWarn("sources.query_templates[%d] has no {industry} placeholder", i)
		}
	}

	if out.Aggregate.HardFloor < 0 || out.Aggregate.MinReal < 0 {
		res.addErr("aggregate.min_real and aggregate.hard_floor must be >= 0")
	}
	if out.Aggregate.HardFloor > out.Aggregate.MinReal {
		res.addWarn("aggregate.hard_floor (%d) exceeds min_real (%d)", out.Aggregate.HardFloor, out.Aggregate.MinReal)
	}
	if out.Aggregate.RunBudgetSeconds < 0 {
		res.addErr("aggregate.run_budget_seconds must be >= 0")
	} else if out.Aggregate.RunBudgetSeconds == 0 {
		res.addWarn("aggregate.run_budget_seconds is 0: runs are not time-capped")
	}
	if out.Aggregate.CandidateFactor < 1 {
		res.addErr("aggregate.candidate_factor must be >= 1")
	}

	if out.Probe.Concurrency <= 0 {
		res.addErr("probe.concurrency must be > 0")
	} else if out.Probe.Concurrency > 20 {
		res.addWarn("probe.concurrency is high (%d) and may trip remote rate limits.", out.Probe.Concurrency)
	}
	if out.Probe.TimeoutSeconds <= 0 {
		res.addErr("probe.timeout_seconds must be > 0")
	}
	if out.Probe.MaxBodyBytes <= 0 {
		res.addErr("probe.max_body_bytes must be > 0")
	}

	if len(out.Classify.B2B) == 0 || len(out.Classify.B2C) == 0 {
		res.addWarn("classify keyword lists are empty; every lead will be Unknown.")
	}

	if out.Emails.Count <= 0 {
		res.addErr("emails.count must be > 0")
	}
	if out.Emails.Count > len(out.Emails.LocalParts) {
		res.addErr("emails.count (%d) exceeds emails.local_parts (%d)", out.Emails.Count, len(out.Emails.LocalParts))
	}

	if len(out.Synthetic.Prefixes) == 0 || len(out.Synthetic.DefaultPattern) == 0 {
		res.addErr("synthetic.prefixes and synthetic.default_pattern must not be empty")
	}

	switch out.RateLimit.Backend {
	case "memory":
	case "redis":
		if strings.TrimSpace(out.RateLimit.RedisURL) == "" {
			res.addErr("rate_limit.redis_url is required when rate_limit.backend=redis")
		}
	default:
		res.addErr("rate_limit.backend must be memory or redis, got %q", out.RateLimit.Backend)
	}
	if out.RateLimit.WindowSeconds <= 0 {
		res.addErr("rate_limit.window_seconds must be > 0")
	}
	if out.RateLimit.MaxRequests <= 0 {
		res.addErr("rate_limit.max_requests must be > 0")
	}
	if out.RateLimit.SweepSeconds <= 0 {
		res.addErr("rate_limit.sweep_seconds must be > 0")
	}

	return out, res
}
