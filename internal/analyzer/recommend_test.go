package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
)

func TestEngine_GenerateRecommendations(t *testing.T) {
	tests := []struct {
		name           string
		shape          domain.FaceShape
		features       domain.FeatureProfile
		wantStyles     []string
		wantReasoning  string
		wantConfidence int
	}{
		{
			name:           "heart with wide forehead",
			shape:          domain.FaceShapeHeart,
			features:       domain.FeatureProfile{Forehead: domain.ForeheadWide, Jawline: domain.JawlineSoft},
			wantStyles:     []string{"Classic Bob", "Side-swept Bangs", "Chin-length Cut", "Side Bangs", "Layered Fringe"},
			wantReasoning:  "Chin-length cuts balance a wider forehead",
			wantConfidence: 75,
		},
		{
			name:           "oval with wide forehead drops pixie",
			shape:          domain.FaceShapeOval,
			features:       domain.FeatureProfile{Forehead: domain.ForeheadWide, Jawline: domain.JawlineRounded},
			wantStyles:     []string{"Classic Bob", "Beach Waves", "Layered Style", "Side Bangs", "Layered Fringe"},
			wantReasoning:  "Oval faces suit almost any hairstyle",
			wantConfidence: 90,
		},
		{
			name:           "oval with defined jawline keeps catalog order",
			shape:          domain.FaceShapeOval,
			features:       domain.FeatureProfile{Forehead: domain.ForeheadMedium, Jawline: domain.JawlineDefined},
			wantStyles:     []string{"Classic Bob", "Pixie Cut", "Beach Waves", "Layered Style"},
			wantReasoning:  "Oval faces suit almost any hairstyle",
			wantConfidence: 95,
		},
		{
			name:           "oblong with wide forehead deduplicates side bangs",
			shape:          domain.FaceShapeOblong,
			features:       domain.FeatureProfile{Forehead: domain.ForeheadWide, Jawline: domain.JawlineSoft},
			wantStyles:     []string{"Beach Waves", "Layered Bob", "Side Bangs", "Layered Fringe"},
			wantReasoning:  "Width-adding styles balance longer face shapes",
			wantConfidence: 75,
		},
		{
			name:           "round with angular jawline",
			shape:          domain.FaceShapeRound,
			features:       domain.FeatureProfile{Forehead: domain.ForeheadNarrow, Jawline: domain.JawlineAngular},
			wantStyles:     []string{"Layered Style", "Beach Waves", "Long Bob", "Soft Waves", "Textured Layers"},
			wantReasoning:  "Layered cuts add height and reduce width for round faces",
			wantConfidence: 75,
		},
		{
			name:           "square with wide forehead and angular jawline",
			shape:          domain.FaceShapeSquare,
			features:       domain.FeatureProfile{Forehead: domain.ForeheadWide, Jawline: domain.JawlineAngular},
			wantStyles:     []string{"Beach Waves", "Layered Style", "Soft Bob", "Side Bangs", "Layered Fringe", "Soft Waves", "Textured Layers"},
			wantReasoning:  "Soft, layered cuts balance angular jawlines",
			wantConfidence: 75,
		},
		{
			name:           "unknown shape uses oval entry",
			shape:          domain.FaceShape("Diamond"),
			features:       domain.FeatureProfile{Forehead: domain.ForeheadMedium, Jawline: domain.JawlineDefined},
			wantStyles:     []string{"Classic Bob", "Pixie Cut", "Beach Waves", "Layered Style"},
			wantReasoning:  "Oval faces suit almost any hairstyle",
			wantConfidence: 85,
		},
	}

	engine := newTestEngine()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.GenerateRecommendations(tt.shape, tt.features)
			assert.Equal(t, tt.wantStyles, got.Recommended)
			assert.Equal(t, tt.wantReasoning, got.Reasoning)
			assert.Equal(t, tt.wantConfidence, got.Confidence)
		})
	}
}

func TestEngine_GenerateRecommendations_RemovesBluntStyles(t *testing.T) {
	catalog, err := LoadCatalog([]byte(customCatalog))
	require.NoError(t, err)

	engine := New(WithCatalog(catalog), WithRandomSource(NewSeededSource(1)))

	got := engine.GenerateRecommendations(domain.FaceShapeSquare, domain.FeatureProfile{
		Forehead: domain.ForeheadWide,
		Jawline:  domain.JawlineAngular,
	})

	assert.Equal(t, []string{"Soft Bob", "Side Bangs", "Layered Fringe", "Soft Waves", "Textured Layers"}, got.Recommended)
}

func TestEngine_GenerateRecommendations_NoDuplicates(t *testing.T) {
	engine := newTestEngine()
	foreheads := []domain.Forehead{domain.ForeheadWide, domain.ForeheadNarrow, domain.ForeheadMedium}

	for _, shape := range domain.FaceShapes {
		for _, forehead := range foreheads {
			for _, jawline := range domain.Jawlines {
				got := engine.GenerateRecommendations(shape, domain.FeatureProfile{Forehead: forehead, Jawline: jawline})

				seen := map[string]bool{}
				for _, style := range got.Recommended {
					assert.False(t, seen[style], "%s/%s/%s repeats %q", shape, forehead, jawline, style)
					seen[style] = true
				}
				assert.GreaterOrEqual(t, got.Confidence, 75)
				assert.LessOrEqual(t, got.Confidence, 95)
			}
		}
	}
}

func TestEngine_GenerateRecommendations_DoesNotMutateCatalog(t *testing.T) {
	engine := newTestEngine()

	engine.GenerateRecommendations(domain.FaceShapeOval, domain.FeatureProfile{
		Forehead: domain.ForeheadWide,
		Jawline:  domain.JawlineAngular,
	})

	assert.Equal(t, []string{"Classic Bob", "Pixie Cut", "Beach Waves", "Layered Style"},
		engine.Catalog().Lookup(domain.FaceShapeOval).Recommended)
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name    string
		shape   domain.FaceShape
		jawline domain.Jawline
		want    int
	}{
		{"base", domain.FaceShapeRound, domain.JawlineSoft, 75},
		{"oval bonus", domain.FaceShapeOval, domain.JawlineRounded, 90},
		{"defined jaw bonus", domain.FaceShapeHeart, domain.JawlineDefined, 85},
		{"both bonuses clamp", domain.FaceShapeOval, domain.JawlineDefined, 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confidence(tt.shape, domain.FeatureProfile{Jawline: tt.jawline})
			assert.Equal(t, tt.want, got)
		})
	}
}

const customCatalog = `
Round:
  recommended: ["Layered Style"]
  avoid: []
  reasoning: "round"
Oval:
  recommended: ["Classic Bob"]
  avoid: []
  reasoning: "oval"
Square:
  recommended: ["Blunt Bob", "Soft Bob", "Pixie Blunt Cut"]
  avoid: []
  reasoning: "square"
Heart:
  recommended: ["Chin-length Cut"]
  avoid: []
  reasoning: "heart"
Oblong:
  recommended: ["Side Bangs"]
  avoid: []
  reasoning: "oblong"
`
