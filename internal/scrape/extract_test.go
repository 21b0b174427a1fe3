package scrape_test

import (
	"testing"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/scrape"
)

func TestExtract(t *testing.T) {
	e := scrape.NewExtractor(config.Default().Extract.ExcludedDomains)
	in := []domain.SearchResult{
		{Title: "Acme Software Inc. | Austin, TX", URL: "https://www.acme.com/about"},
		{Title: "Acme again", URL: "http://acme.com"},
		{Title: "Acme on LinkedIn", URL: "https://www.linkedin.com/company/acme"},
		{Title: "City of Austin", URL: "https://austintexas.gov"},
		{Title: "UT Austin", URL: "https://www.utexas.edu"},
		{Title: "Yelp listing", URL: "https://m.yelp.com/biz/acme"},
		{Title: "| ", URL: "https://globex-systems.co.uk"},
		{Title: "not a url", URL: "::::"},
		{Title: "Bookface: the network", URL: "https://notfacebook.com"},
	}

	got := e.Extract(in)
	want := []domain.ExtractedDomain{
		{CompanyName: "Acme Software", Website: "https://www.acme.com/about", Domain: "acme.com"},
		{CompanyName: "Globex Systems", Website: "https://globex-systems.co.uk", Domain: "globex-systems.co.uk"},
		{CompanyName: "Bookface", Website: "https://notfacebook.com", Domain: "notfacebook.com"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d domains, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("domain[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCompanyName(t *testing.T) {
	cases := []struct{ title, host, want string }{
		{"Initech LLC - Home", "initech.com", "Initech"},
		{"Hooli — Search", "hooli.xyz", "Hooli"},
		{"Pied Piper: Compression", "piedpiper.com", "Pied Piper"},
		{"Vandelay Industries Co.", "vandelay.com", "Vandelay Industries"},
		{"Acme Widgets, Inc.", "acmewidgets.com", "Acme Widgets"},
		{"Globex Co., Ltd. | About", "globex.com", "Globex"},
		{"", "blue-sky.consulting.io", "Blue Sky Consulting"},
		{"X", "x-corp.com", "X Corp"},
	}
	for _, c := range cases {
		if got := scrape.CompanyName(c.title, c.host); got != c.want {
			t.Errorf("CompanyName(%q, %q) = %q, want %q", c.title, c.host, got, c.want)
		}
	}
}
