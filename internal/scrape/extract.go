package scrape

import (
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/scrape/util"
)

var (
	titleSepRe      = regexp.MustCompile(`[|\-–—:]`)
	domainPartSepRe = regexp.MustCompile(`[.\-]+`)
)

// Extractor turns search results into unique company domains, skipping
// social networks, directories, government and education hosts.
type Extractor struct {
	blocklist []string
}

func NewExtractor(excluded []string) *Extractor {
	bl := make([]string, 0, len(excluded))
	for _, d := range excluded {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			bl = append(bl, d)
		}
	}
	return &Extractor{blocklist: bl}
}

// Extract is order-preserving; the first result for a domain wins.
func (e *Extractor) Extract(results []domain.SearchResult) []domain.ExtractedDomain {
	seen := map[string]bool{}
	var out []domain.ExtractedDomain
	for _, r := range results {
		host := util.HostOf(r.URL)
		if host == "" || !strings.Contains(host, ".") || seen[host] || e.IsBlocked(host) {
			continue
		}
		seen[host] = true
		out = append(out, domain.ExtractedDomain{
			CompanyName: CompanyName(r.Title, host),
			Website:     r.URL,
			Domain:      host,
		})
	}
	return out
}

// IsBlocked matches host exactly or as a subdomain of a blocklist entry.
func (e *Extractor) IsBlocked(host string) bool {
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") {
		return true
	}
	for _, b := range e.blocklist {
		if host == b || strings.HasSuffix(host, "."+b) {
			return true
		}
	}
	return false
}

// CompanyName takes the title up to its first separator, minus any
// trailing legal suffix, or derives a name from host when that leaves
// fewer than two characters.
func CompanyName(title, host string) string {
	name := util.StripLegalSuffix(titleSepRe.Split(title, 2)[0])
	if len([]rune(name)) >= 2 {
		return name
	}
	return NameFromDomain(host)
}

// NameFromDomain drops the public suffix and title-cases what is left:
// "acme-widgets.co.uk" -> "Acme Widgets".
func NameFromDomain(host string) string {
	stem := host
	if suffix, _ := publicsuffix.PublicSuffix(host); suffix != "" && suffix != host {
		stem = strings.TrimSuffix(host, "."+suffix)
	}
	parts := domainPartSepRe.Split(stem, -1)
	words := parts[:0]
	for _, p := range parts {
		if p != "" {
			words = append(words, util.TitleWord(p))
		}
	}
	return strings.Join(words, " ")
}
