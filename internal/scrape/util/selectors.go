package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FirstText returns the cleaned text of the first selector that matches
// something non-empty under s.
func FirstText(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if t := CleanText(s.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

// FirstLink returns the first anchor under s, trying selectors in order,
// whose href is non-empty. The anchor text is returned alongside.
func FirstLink(s *goquery.Selection, selectors ...string) (href, text string) {
	for _, sel := range selectors {
		a := s.Find(sel).First()
		if h, ok := a.Attr("href"); ok && strings.TrimSpace(h) != "" {
			return strings.TrimSpace(h), CleanText(a.Text())
		}
	}
	return "", ""
}
