package wikipedia

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/scrape/types"
	"leadgen-engine/internal/scrape/util"
)

const (
	defaultAPIURL      = "https://en.wikipedia.org/w/api.php"
	defaultWikidataURL = "https://www.wikidata.org/w/api.php"
	defaultArticleBase = "https://en.wikipedia.org/wiki/"

	// Wikidata property "official website".
	propOfficialWebsite = "P856"
)

type Config struct {
	APIURL      string
	WikidataURL string
	ArticleBase string
	Timeout     time.Duration
}

// Scraper searches Wikipedia for company articles and resolves each hit
// to the company's own site through Wikidata. Articles without an
// official website fall back to the article URL, which the extractor
// later discards.
type Scraper struct {
	cfg Config
	f   util.Fetcher
}

func New(cfg Config, f util.Fetcher) *Scraper {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.WikidataURL == "" {
		cfg.WikidataURL = defaultWikidataURL
	}
	if cfg.ArticleBase == "" {
		cfg.ArticleBase = defaultArticleBase
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Scraper{cfg: cfg, f: f}
}

func (s *Scraper) Name() string { return "wikipedia" }

type searchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

type pagePropsResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			PageProps struct {
				WikibaseItem string `json:"wikibase_item"`
			} `json:"pageprops"`
		} `json:"pages"`
	} `json:"query"`
}

type entitiesResponse struct {
	Entities map[string]struct {
		Claims map[string][]struct {
			MainSnak struct {
				DataValue struct {
					Value json.RawMessage `json:"value"`
				} `json:"datavalue"`
			} `json:"mainsnak"`
		} `json:"claims"`
	} `json:"entities"`
}

func (s *Scraper) Fetch(ctx context.Context, q types.Query, max int) []domain.SearchResult {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	out, err := s.fetch(cctx, q, max)
	if err != nil {
		log.Printf("[wikipedia] query=%q err=%v", q.Text, err)
	}
	return out
}

// MediaWiki and Wikidata reject more than 50 values in one multi-value
// parameter, and the titles/ids of one search feed a single follow-up call.
const maxValuesPerParam = 50

func (s *Scraper) fetch(ctx context.Context, q types.Query, max int) ([]domain.SearchResult, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {q.Text},
		"format":   {"json"},
		"srlimit":  {strconv.Itoa(min(max, maxValuesPerParam))},
	}
	var sr searchResponse
	if err := s.f.JSON(ctx, s.cfg.APIURL+"?"+params.Encode(), &sr); err != nil {
		return nil, err
	}

	var out []domain.SearchResult
	var titles []string
	for _, hit := range sr.Query.Search {
		lt := strings.ToLower(hit.Title)
		if strings.Contains(lt, "list of") || strings.Contains(lt, "category:") {
			continue
		}
		titles = append(titles, hit.Title)
		out = append(out, domain.SearchResult{
			Title:   hit.Title,
			URL:     s.cfg.ArticleBase + url.PathEscape(strings.ReplaceAll(hit.Title, " ", "_")),
			Snippet: stripTags(hit.Snippet),
			Source:  s.Name(),
		})
	}
	if len(titles) == 0 {
		return out, nil
	}

	sites, err := s.officialSites(ctx, titles)
	if err != nil {
		log.Printf("[wikipedia] wikidata lookup failed, keeping article urls: %v", err)
		return out, nil
	}
	for i := range out {
		if site, ok := sites[out[i].Title]; ok {
			out[i].URL = site
		}
	}
	return out, nil
}

// officialSites maps article title -> official website for titles whose
// Wikidata item carries one.
func (s *Scraper) officialSites(ctx context.Context, titles []string) (map[string]string, error) {
	params := url.Values{
		"action": {"query"},
		"prop":   {"pageprops"},
		"ppprop": {"wikibase_item"},
		"titles": {strings.Join(titles, "|")},
		"format": {"json"},
	}
	var pr pagePropsResponse
	if err := s.f.JSON(ctx, s.cfg.APIURL+"?"+params.Encode(), &pr); err != nil {
		return nil, err
	}

	titleByItem := map[string]string{}
	var ids []string
	for _, p := range pr.Query.Pages {
		if id := p.PageProps.WikibaseItem; id != "" {
			titleByItem[id] = p.Title
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	params = url.Values{
		"action": {"wbgetentities"},
		"ids":    {strings.Join(ids, "|")},
		"props":  {"claims"},
		"format": {"json"},
	}
	var er entitiesResponse
	if err := s.f.JSON(ctx, s.cfg.WikidataURL+"?"+params.Encode(), &er); err != nil {
		return nil, err
	}

	out := map[string]string{}
	for id, ent := range er.Entities {
		for _, claim := range ent.Claims[propOfficialWebsite] {
			var site string
			if json.Unmarshal(claim.MainSnak.DataValue.Value, &site) != nil || site == "" {
				continue
			}
			out[titleByItem[id]] = site
			break
		}
	}
	return out, nil
}

// stripTags removes the <span class="searchmatch"> markup from snippets.
func stripTags(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return util.CleanText(s)
	}
	return util.CleanText(doc.Text())
}
