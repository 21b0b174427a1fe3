package config

// Default returns the built-in configuration. Every heuristic table the
// pipeline uses lives here as data so it can be tuned from config.yml.
func Default() Config {
	return Config{
		App: AppConfig{
			Addr:    "127.0.0.1:38471",
			DataDir: ".",
		},
		Sources: SourcesConfig{
			TimeoutSeconds: 8,
			HostRatePerSec: 2,
			HostBurst:      4,
			Enabled: []string{
				"wikipedia", "duckduckgo", "brave", "startpage", "qwant", "bing",
				"yellowpages", "yelp",
			},
			Retry: []string{"duckduckgo", "bing"},
			QueryTemplates: []string{
				"{industry} companies in {location}",
				"{industry} businesses {location}",
				"top {industry} firms {location}",
				"{industry} agencies {location}",
				"best {industry} services {location}",
			},
			UnusableURLs: []string{
				"google.com", "bing.com", "duckduckgo.com", "yahoo.com",
				"facebook.com", "twitter.com", "linkedin.com/search", "linkedin.com/in/",
				"instagram.com", "youtube.com", "tiktok.com",
				"pinterest.com", "reddit.com/search", "reddit.com/r/",
				"wikipedia.org/wiki/List", "wikipedia.org/wiki/Category",
				"amazon.com", "ebay.com", "webcache.googleusercontent.com",
				"brave.com", "startpage.com", "qwant.com",
			},
		},
		Aggregate: AggregateConfig{
			MinReal:          5,
			HardFloor:        3,
			VariantDelayMs:   200,
			CandidateFactor:  2,
			RunBudgetSeconds: 45,
		},
		Probe: ProbeConfig{
			Concurrency:    5,
			TimeoutSeconds: 5,
			MaxBodyBytes:   1 << 20,
			BusinessTerms: []string{
				"services", "solutions", "products", "enterprise", "business",
				"professional", "consulting", "agency", "company", "corporation",
				"industries", "manufacturing", "technology", "software", "digital",
				"marketing", "management", "logistics", "wholesale", "distribution",
				"b2b", "commercial", "corporate", "partner", "vendor", "supplier",
				"contractor", "developer", "provider",
			},
		},
		Classify: ClassifyConfig{
			B2B: []string{
				"enterprise", "business solutions", "b2b", "wholesale", "corporate",
				"commercial", "industrial", "manufacturing", "supplier", "vendor",
				"distributor", "logistics", "procurement", "consulting",
				"professional services", "saas", "software", "api", "platform",
				"integration", "analytics", "data services", "cloud services",
				"it services", "managed services", "outsourcing", "staffing",
				"recruitment agency", "trade", "oem", "bulk", "fleet", "contractor",
			},
			B2C: []string{
				"shop", "store", "buy now", "add to cart", "free shipping", "sale",
				"discount", "retail", "customer", "consumer", "personal", "family",
				"home", "lifestyle", "fashion", "beauty", "food", "restaurant", "cafe",
				"hotel", "travel", "vacation", "entertainment", "gaming", "fitness",
				"health", "wellness", "spa", "salon", "pet", "kids", "baby", "gifts",
				"jewelry", "clothing", "shoes", "electronics", "furniture", "decor",
			},
		},
		Emails: EmailsConfig{
			LocalParts: []string{
				"info", "contact", "hello", "sales", "support",
				"admin", "office", "enquiries", "inquiries", "team",
			},
			Count: 5,
		},
		Extract: ExtractConfig{
			ExcludedDomains: []string{
				"facebook.com", "twitter.com", "x.com", "linkedin.com", "instagram.com",
				"youtube.com", "tiktok.com", "pinterest.com", "reddit.com",
				"wikipedia.org", "wikidata.org", "yelp.com", "yellowpages.com", "bbb.org",
				"indeed.com", "glassdoor.com", "crunchbase.com", "bloomberg.com",
				"forbes.com", "google.com", "apple.com", "amazon.com", "microsoft.com",
			},
		},
		Input: InputConfig{
			PlaceholderWords: []string{
				"test", "asdf", "qwerty", "abc", "xyz", "xxx", "aaa", "bbb", "123",
				"hello", "hi", "bye", "null", "undefined", "none", "na", "n/a",
			},
			IndustryKeywords: []string{
				"software", "technology", "tech", "it", "healthcare", "medical", "health", "finance", "financial",
				"banking", "insurance", "real estate", "construction", "manufacturing", "retail", "marketing",
				"advertising", "consulting", "legal", "education", "hospitality", "automotive", "logistics",
				"transportation", "travel", "energy", "telecom", "pharma", "biotech", "agriculture", "textile",
				"fashion", "beauty", "entertainment", "gaming", "sports", "fitness", "saas", "cloud", "security",
				"data", "analytics", "hr", "staffing", "accounting", "architecture", "design", "engineering",
				"aerospace", "defense", "publishing", "chemicals", "electronics", "furniture", "dental", "cleaning",
				"plumbing", "electrical", "hvac", "photography", "video", "music", "art", "jewelry", "food",
				"restaurant", "agency", "services", "solutions", "development", "web", "mobile", "app", "digital",
			},
		},
		Synthetic: SyntheticConfig{
			Max: 10,
			Prefixes: []string{
				"Global", "Premier", "Elite", "Pro", "Advanced", "United", "First",
				"Prime", "Peak", "Apex", "Metro", "Smart", "Modern",
			},
			Patterns: map[string][]string{
				"software":      {"tech", "solutions", "systems", "digital", "labs"},
				"marketing":     {"media", "creative", "agency", "digital", "group"},
				"consulting":    {"advisors", "partners", "group", "consulting", "solutions"},
				"healthcare":    {"medical", "health", "care", "clinic", "wellness"},
				"finance":       {"financial", "capital", "investments", "advisors", "wealth"},
				"legal":         {"law", "legal", "attorneys", "lawyers", "associates"},
				"real estate":   {"realty", "properties", "homes", "estates", "group"},
				"construction":  {"builders", "construction", "contractors", "building", "development"},
				"manufacturing": {"industries", "manufacturing", "products", "corp", "works"},
				"retail":        {"store", "shop", "outlet", "mart", "supply"},
			},
			DefaultPattern: []string{"company", "group", "services", "solutions", "partners"},
		},
		RateLimit: RateLimitConfig{
			Backend:       "memory",
			WindowSeconds: 60,
			MaxRequests:   10,
			SweepSeconds:  60,
		},
	}
}
