package util

import (
	"regexp"
	"strings"
	"unicode"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// TitleWord upper-cases the first letter of w and lower-cases the rest.
func TitleWord(w string) string {
	if w == "" {
		return ""
	}
	r := []rune(strings.ToLower(w))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var legalSuffixRe = regexp.MustCompile(`(?i)[\s,]+(inc|incorporated|llc|ltd|limited|corp|corporation|company|co|plc)\.?$`)

// StripLegalSuffix drops trailing entity words, repeatedly, along with
// the comma before them: "Acme Co., Inc." -> "Acme".
func StripLegalSuffix(s string) string {
	s = CleanText(s)
	for {
		next := strings.TrimRight(legalSuffixRe.ReplaceAllString(s, ""), " ,")
		if next == s {
			return s
		}
		s = next
	}
}

var (
	entitySuffixRe = regexp.MustCompile(`(?i)\b(inc|llc|ltd|corp|corporation|co|company|plc|llp|lp|pllc|gmbh)\b\.?`)
	nonAlnumRe     = regexp.MustCompile(`[^a-z0-9]+`)
)

// GuessDomain turns a business name into a plausible ".com" domain, or ""
// when the remaining stem is too short to be meaningful.
func GuessDomain(name string) string {
	stem := strings.ToLower(name)
	stem = entitySuffixRe.ReplaceAllString(stem, "")
	stem = nonAlnumRe.ReplaceAllString(stem, "")
	stem = Truncate(stem, 30)
	if len(stem) <= 3 {
		return ""
	}
	return stem + ".com"
}
