package rank

import "leadgen-engine/internal/domain"

type Scorer interface {
	Score(h domain.WebsiteHealth) int
}

// PointsScorer is the additive 0..100 lead score.
type PointsScorer struct{}

func (PointsScorer) Score(h domain.WebsiteHealth) int {
	return LeadScore(h.Status == domain.StatusLive, h.IsHTTPS, h.HasBusinessKeywords, h.ResponseTimeMs)
}

// LeadScore: +40 alive, +20 https, +25 business keywords, and a speed
// bonus (15/10/5 under 500/1000/2000ms) that only applies to live sites.
func LeadScore(alive, isHTTPS, hasKeywords bool, responseTimeMs *int) int {
	score := 0
	if alive {
		score += 40
	}
	if isHTTPS {
		score += 20
	}
	if hasKeywords {
		score += 25
	}
	if alive && responseTimeMs != nil {
		switch ms := *responseTimeMs; {
		case ms < 500:
			score += 15
		case ms < 1000:
			score += 10
		case ms < 2000:
			score += 5
		}
	}
	return min(max(score, 0), 100)
}
