package analyzer

import "github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"

const (
	wideForeheadRatio   = 0.8
	narrowForeheadRatio = 0.6
)

// AnalyzeFeatures builds a feature profile for the detected face. Only the
// forehead is derived from geometry; jawline and cheekbones are drawn from
// the random source until a landmark-based analysis exists.
func (e *Engine) AnalyzeFeatures(box domain.BoundingBox) domain.FeatureProfile {
	return domain.FeatureProfile{
		Forehead:   AnalyzeForehead(box.Width(), box.Height()),
		Jawline:    e.randomJawline(),
		Cheekbones: e.randomCheekbones(),
	}
}

// AnalyzeForehead classifies the forehead from the width/height ratio of the
// face region. A non-positive height yields Medium.
func AnalyzeForehead(width, height float64) domain.Forehead {
	if height <= 0 {
		return domain.ForeheadMedium
	}

	ratio := width / height
	switch {
	case ratio > wideForeheadRatio:
		return domain.ForeheadWide
	case ratio < narrowForeheadRatio:
		return domain.ForeheadNarrow
	default:
		return domain.ForeheadMedium
	}
}

func (e *Engine) randomJawline() domain.Jawline {
	return pick(e.rng, domain.Jawlines)
}

func (e *Engine) randomCheekbones() domain.Cheekbones {
	return pick(e.rng, domain.CheekboneTypes)
}
