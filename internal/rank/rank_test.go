package rank_test

import (
	"strings"
	"testing"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/rank"
)

func ms(v int) *int { return &v }

func TestLeadScore(t *testing.T) {
	cases := []struct {
		name             string
		alive, https, kw bool
		rt               *int
		want             int
	}{
		{"dead", false, false, false, nil, 0},
		{"everything fast", true, true, true, ms(120), 100},
		{"alive slow", true, false, false, ms(2500), 40},
		{"alive 1.5s", true, true, false, ms(1500), 65},
		{"alive 700ms", true, false, true, ms(700), 75},
		{"alive unknown time", true, true, true, nil, 85},
		{"time ignored when down", false, false, true, ms(10), 25},
	}
	for _, c := range cases {
		if got := rank.LeadScore(c.alive, c.https, c.kw, c.rt); got != c.want {
			t.Errorf("%s: LeadScore = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestLeadScoreMonotonic(t *testing.T) {
	times := []*int{nil, ms(100), ms(600), ms(1200), ms(3000)}
	bools := []bool{false, true}
	for _, alive := range bools {
		for _, https := range bools {
			for _, kw := range bools {
				for _, rt := range times {
					s := rank.LeadScore(alive, https, kw, rt)
					if s < 0 || s > 100 {
						t.Fatalf("score %d out of range", s)
					}
					if !alive && rank.LeadScore(true, https, kw, rt) < s {
						t.Errorf("alive lowered score")
					}
					if !https && rank.LeadScore(alive, true, kw, rt) < s {
						t.Errorf("https lowered score")
					}
					if !kw && rank.LeadScore(alive, https, true, rt) < s {
						t.Errorf("keywords lowered score")
					}
				}
			}
		}
	}
	for i := 1; i < len(times)-1; i++ {
		faster := rank.LeadScore(true, false, false, times[i])
		slower := rank.LeadScore(true, false, false, times[i+1])
		if faster < slower {
			t.Errorf("%dms scored %d below %dms at %d", *times[i], faster, *times[i+1], slower)
		}
	}
}

func TestPointsScorer(t *testing.T) {
	h := domain.WebsiteHealth{Status: domain.StatusLive, IsHTTPS: true, ResponseTimeMs: ms(300)}
	if got := (rank.PointsScorer{}).Score(h); got != 75 {
		t.Errorf("Score = %d, want 75", got)
	}
}

func TestClassify(t *testing.T) {
	c := rank.NewKeywordClassifier(config.Default().Classify)
	cases := []struct {
		domain, name, snippet string
		want                  domain.BusinessModel
	}{
		{"acmesaas.com", "Acme", "Enterprise analytics platform", domain.ModelB2B},
		{"bellas.com", "Bella's Salon", "Beauty and wellness spa", domain.ModelB2C},
		{"zzz.com", "Zzz", "nothing to see", domain.ModelUnknown},
		// enterprise, software, platform vs shop, store
		{"x.com", "X", "enterprise software platform with a shop and store", domain.ModelB2B},
		// "wholesale" also contains "sale": one B2B hit against two B2C
		{"x.com", "X", "wholesale fashion", domain.ModelUnknown},
		{"x.com", "X", "saas vendor for retail stores and customer", domain.ModelB2C},
		// tie at two each
		{"x.com", "X", "saas vendor for a retail store", domain.ModelUnknown},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.domain, tc.name, tc.snippet); got != tc.want {
			t.Errorf("Classify(%q, %q, %q) = %s, want %s", tc.domain, tc.name, tc.snippet, got, tc.want)
		}
	}
}

func TestClassifyIgnoresCase(t *testing.T) {
	c := rank.NewKeywordClassifier(config.Default().Classify)
	in := []string{"globex.com", "Globex Logistics", "Wholesale supplier to industrial OEMs"}
	want := c.Classify(in[0], in[1], in[2])
	got := c.Classify(strings.ToUpper(in[0]), strings.ToUpper(in[1]), strings.ToUpper(in[2]))
	if got != want {
		t.Errorf("upper-case input gave %s, lower gave %s", got, want)
	}
}
