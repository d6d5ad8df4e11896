package analyzer

import (
	"strings"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
)

const (
	verdictRecommended = "Highly Recommended!"
	verdictAlternative = "Good Alternative"
)

// scoreRange is a half-open [base, base+span) interval of scores
type scoreRange struct {
	base int
	span int
}

var (
	recommendedRange = scoreRange{base: 85, span: 10}
	galleryRange     = scoreRange{base: 60, span: 20}
	alternativeRange = scoreRange{base: 50, span: 30}
)

// Compatibility is the score of one hairstyle against the current analysis
type Compatibility struct {
	Style       string `json:"style"`
	Score       int    `json:"score"`
	Recommended bool   `json:"recommended"`
	Verdict     string `json:"verdict"`
}

// IsRecommended matches a style name against the recommendations, ignoring
// case, in either direction of containment ("Bob" matches "Classic Bob" and
// "Classic Bob Deluxe" matches "Classic Bob").
func IsRecommended(style string, result domain.RecommendationResult) bool {
	s := strings.ToLower(style)
	for _, rec := range result.Recommended {
		r := strings.ToLower(rec)
		if strings.Contains(s, r) || strings.Contains(r, s) {
			return true
		}
	}
	return false
}

// GalleryScore scores a style card shown in the hairstyle gallery
func (e *Engine) GalleryScore(style string, result domain.RecommendationResult) Compatibility {
	return e.score(style, result, galleryRange)
}

// Compatibility scores a single style the user selected
func (e *Engine) Compatibility(style string, result domain.RecommendationResult) Compatibility {
	return e.score(style, result, alternativeRange)
}

func (e *Engine) score(style string, result domain.RecommendationResult, otherwise scoreRange) Compatibility {
	recommended := IsRecommended(style, result)

	r, verdict := otherwise, verdictAlternative
	if recommended {
		r, verdict = recommendedRange, verdictRecommended
	}

	return Compatibility{
		Style:       style,
		Score:       r.base + e.rng.IntN(r.span),
		Recommended: recommended,
		Verdict:     verdict,
	}
}
