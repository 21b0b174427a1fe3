package domain

// LeadRequest is one sanitized request for a pipeline run.
type LeadRequest struct {
	Industry   string
	Location   string
	MaxResults int // 1..50
}

// SearchResult is the raw output of one source adapter.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
	Source  string // adapter name, for logs only

	// Synthetic marks fabricated fallback results.
	Synthetic bool
}

type ExtractedDomain struct {
	CompanyName string
	Website     string
	Domain      string
}

type SiteStatus string

const (
	StatusLive    SiteStatus = "live"
	StatusDown    SiteStatus = "down"
	StatusUnknown SiteStatus = "unknown"
)

type WebsiteHealth struct {
	Status              SiteStatus
	ResponseTimeMs      *int
	IsHTTPS             bool
	HasBusinessKeywords bool
}

// UnknownHealth is used for domains that were never probed.
func UnknownHealth() WebsiteHealth {
	return WebsiteHealth{Status: StatusUnknown}
}

type BusinessModel string

const (
	ModelB2B     BusinessModel = "B2B"
	ModelB2C     BusinessModel = "B2C"
	ModelUnknown BusinessModel = "Unknown"
)

// Lead is the final output unit of a pipeline run.
type Lead struct {
	CompanyName   string        `json:"companyName"`
	Website       string        `json:"website"`
	Domain        string        `json:"domain"`
	Emails        []string      `json:"emails"`
	WebsiteStatus SiteStatus    `json:"websiteStatus"`
	ResponseTime  *int          `json:"responseTime"`
	BusinessModel BusinessModel `json:"businessModel"`
	Score         int           `json:"score"`
	Synthetic     bool          `json:"synthetic"`
}
