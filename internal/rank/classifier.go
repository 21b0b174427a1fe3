package rank

import (
	"strings"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/domain"
)

type Classifier interface {
	Classify(domainName, companyName, snippet string) domain.BusinessModel
}

// KeywordClassifier labels a lead B2B or B2C by counting keyword hits
// from the configured lists.
type KeywordClassifier struct {
	B2B []string
	B2C []string
}

func NewKeywordClassifier(cfg config.ClassifyConfig) KeywordClassifier {
	lower := func(xs []string) []string {
		out := make([]string, 0, len(xs))
		for _, x := range xs {
			if x = strings.ToLower(strings.TrimSpace(x)); x != "" {
				out = append(out, x)
			}
		}
		return out
	}
	return KeywordClassifier{B2B: lower(cfg.B2B), B2C: lower(cfg.B2C)}
}

func (c KeywordClassifier) Classify(domainName, companyName, snippet string) domain.BusinessModel {
	text := strings.ToLower(domainName + " " + companyName + " " + snippet)
	b2b := countHits(text, c.B2B)
	b2c := countHits(text, c.B2C)

	switch {
	case b2b >= 2 && b2c >= 2 && b2b > b2c:
		return domain.ModelB2B
	case b2b >= 2 && b2c >= 2 && b2c > b2b:
		return domain.ModelB2C
	case b2b > 0 && b2c == 0:
		return domain.ModelB2B
	case b2c > 0 && b2b == 0:
		return domain.ModelB2C
	}
	return domain.ModelUnknown
}

func countHits(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}
