package analyzer

import (
	"slices"
	"strings"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
)

const (
	baseConfidence  = 75
	ovalBonus       = 15
	definedJawBonus = 10
	maxConfidence   = 95
)

// GenerateRecommendations personalizes the catalog entry for shape with the
// feature profile. The result never contains a style twice.
func (e *Engine) GenerateRecommendations(shape domain.FaceShape, features domain.FeatureProfile) domain.RecommendationResult {
	entry := e.catalog.Lookup(shape)
	recs := entry.Recommended

	if features.Forehead == domain.ForeheadWide {
		recs = withoutSubstring(recs, "Pixie")
		recs = append(recs, "Side Bangs", "Layered Fringe")
	}

	if features.Jawline == domain.JawlineAngular {
		recs = withoutSubstring(recs, "Blunt")
		recs = append(recs, "Soft Waves", "Textured Layers")
	}

	return domain.RecommendationResult{
		Recommended: dedupe(recs),
		Reasoning:   entry.Reasoning,
		Confidence:  Confidence(shape, features),
	}
}

// Confidence scores how reliable the analysis is, between 75 and 95
func Confidence(shape domain.FaceShape, features domain.FeatureProfile) int {
	confidence := baseConfidence
	if shape == domain.FaceShapeOval {
		confidence += ovalBonus
	}
	if features.Jawline == domain.JawlineDefined {
		confidence += definedJawBonus
	}
	return min(confidence, maxConfidence)
}

func withoutSubstring(styles []string, substr string) []string {
	return slices.DeleteFunc(styles, func(style string) bool {
		return strings.Contains(style, substr)
	})
}

// dedupe keeps the first occurrence of every style
func dedupe(styles []string) []string {
	seen := make(map[string]struct{}, len(styles))
	out := make([]string, 0, len(styles))
	for _, s := range styles {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
