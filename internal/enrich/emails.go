package enrich

import (
	"strings"

	"leadgen-engine/internal/config"
)

var fallbackLocalParts = []string{"info", "contact", "hello", "sales", "support"}

// EmailGuesser produces unverified role-mailbox guesses for a domain.
type EmailGuesser struct {
	localParts []string
}

func NewEmailGuesser(cfg config.EmailsConfig) EmailGuesser {
	parts := cfg.LocalParts
	n := cfg.Count
	if n <= 0 {
		n = 5
	}
	if len(parts) == 0 {
		parts = fallbackLocalParts
	}
	return EmailGuesser{localParts: parts[:min(n, len(parts))]}
}

// Guess returns the configured local-parts in order, each @d.
func (g EmailGuesser) Guess(d string) []string {
	d = strings.ToLower(strings.TrimSpace(d))
	out := make([]string, 0, len(g.localParts))
	for _, lp := range g.localParts {
		out = append(out, lp+"@"+d)
	}
	return out
}
