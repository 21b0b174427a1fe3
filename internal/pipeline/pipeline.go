// Package pipeline sequences one lead-generation run: aggregate, extract,
// probe, classify, score, guess emails, sort.
package pipeline

import (
	"context"
	"log"
	"sort"
	"time"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/enrich"
	"leadgen-engine/internal/rank"
	"leadgen-engine/internal/scrape"
)

const (
	ReasonNoResults = "No results found. Try different search terms or a broader location."
	ReasonNoDomains = "No valid company websites found. Try different search terms."
)

type Aggregator interface {
	Aggregate(ctx context.Context, industry, location string, max int) []domain.SearchResult
}

type Prober interface {
	ProbeAll(ctx context.Context, domains []string, concurrency int) map[string]domain.WebsiteHealth
}

type Options struct {
	CandidateFactor  int           // aggregator budget is MaxResults * CandidateFactor
	ProbeConcurrency int
	RunBudget        time.Duration // 0 means no cap
}

// Result is the outcome of a run. Reason is set, and Leads empty, when the
// run found nothing usable; that is not an error. TimedOut marks a run cut
// short by its budget: leads are whatever the stages finished in time.
type Result struct {
	Leads      []domain.Lead
	Reason     string
	Candidates int
	Synthetic  int
	TimedOut   bool
}

type Orchestrator struct {
	agg       Aggregator
	extractor *scrape.Extractor
	prober    Prober
	cls       rank.Classifier
	scorer    rank.Scorer
	emails    enrich.EmailGuesser
	opts      Options
}

func New(agg Aggregator, extractor *scrape.Extractor, prober Prober, cls rank.Classifier, scorer rank.Scorer, emails enrich.EmailGuesser, opts Options) *Orchestrator {
	if opts.CandidateFactor <= 0 {
		opts.CandidateFactor = 1
	}
	return &Orchestrator{
		agg:       agg,
		extractor: extractor,
		prober:    prober,
		cls:       cls,
		scorer:    scorer,
		emails:    emails,
		opts:      opts,
	}
}

// FromConfig wires the keyword classifier, points scorer, email guesser and
// extractor from cfg around the given network stages.
func FromConfig(cfg config.Config, agg Aggregator, prober Prober) *Orchestrator {
	return New(
		agg,
		scrape.NewExtractor(cfg.Extract.ExcludedDomains),
		prober,
		rank.NewKeywordClassifier(cfg.Classify),
		rank.PointsScorer{},
		enrich.NewEmailGuesser(cfg.Emails),
		Options{
			CandidateFactor:  cfg.Aggregate.CandidateFactor,
			ProbeConcurrency: cfg.Probe.Concurrency,
			RunBudget:        cfg.Aggregate.RunBudget(),
		},
	)
}

// Run never fails on source or probe errors; it only returns an error when
// ctx is done before the run completes. Running out of RunBudget is not an
// error: later stages see an expired context and the run returns what it has.
func (o *Orchestrator) Run(ctx context.Context, req domain.LeadRequest) (Result, error) {
	start := time.Now()

	runCtx := ctx
	if o.opts.RunBudget > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, o.opts.RunBudget)
		defer cancel()
	}

	results := o.agg.Aggregate(runCtx, req.Industry, req.Location, req.MaxResults*o.opts.CandidateFactor)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(results) == 0 {
		log.Printf("[leadgen] industry=%q location=%q no candidates", req.Industry, req.Location)
		return Result{Leads: []domain.Lead{}, Reason: ReasonNoResults, TimedOut: runCtx.Err() != nil}, nil
	}

	byURL := make(map[string]domain.SearchResult, len(results))
	for _, r := range results {
		if _, ok := byURL[r.URL]; !ok {
			byURL[r.URL] = r
		}
	}

	extracted := o.extractor.Extract(results)
	if len(extracted) > req.MaxResults {
		extracted = extracted[:req.MaxResults]
	}
	if len(extracted) == 0 {
		log.Printf("[leadgen] candidates=%d no usable domains", len(results))
		return Result{Leads: []domain.Lead{}, Reason: ReasonNoDomains, Candidates: len(results), TimedOut: runCtx.Err() != nil}, nil
	}

	domains := make([]string, 0, len(extracted))
	for _, e := range extracted {
		domains = append(domains, e.Domain)
	}
	healthy := o.prober.ProbeAll(runCtx, domains, o.opts.ProbeConcurrency)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{
		Leads:      make([]domain.Lead, 0, len(extracted)),
		Candidates: len(results),
		TimedOut:   runCtx.Err() != nil,
	}
	for _, e := range extracted {
		h, ok := healthy[e.Domain]
		if !ok {
			h = domain.UnknownHealth()
		}
		src := byURL[e.Website]
		lead := domain.Lead{
			CompanyName:   e.CompanyName,
			Website:       e.Website,
			Domain:        e.Domain,
			Emails:        o.emails.Guess(e.Domain),
			WebsiteStatus: h.Status,
			ResponseTime:  h.ResponseTimeMs,
			BusinessModel: o.cls.Classify(e.Domain, e.CompanyName, src.Snippet),
			Score:         o.scorer.Score(h),
			Synthetic:     src.Synthetic,
		}
		if lead.Synthetic {
			res.Synthetic++
		}
		res.Leads = append(res.Leads, lead)
	}

	sort.SliceStable(res.Leads, func(i, j int) bool {
		return res.Leads[i].Score > res.Leads[j].Score
	})

	log.Printf("[leadgen] industry=%q location=%q candidates=%d leads=%d synthetic=%d timed_out=%t took=%s",
		req.Industry, req.Location, res.Candidates, len(res.Leads), res.Synthetic, res.TimedOut, time.Since(start).Round(time.Millisecond))
	return res, nil
}
