// Package analyzer classifies face shapes from landmark geometry and turns
// them into personalized hairstyle recommendations.
package analyzer

import (
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
)

// uploadForeheadRatio stands in for the face region of an uploaded photo,
// which is not measured.
const uploadForeheadRatio = 0.75

// Engine runs the classification and recommendation pipeline. It holds no
// per-analysis state and is safe for concurrent use when its RandomSource is.
type Engine struct {
	catalog *Catalog
	rng     RandomSource
}

// Option configures an Engine
type Option func(*Engine)

// WithCatalog replaces the built-in catalog
func WithCatalog(c *Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithRandomSource replaces the default uniform generator
func WithRandomSource(rng RandomSource) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	if e.catalog == nil {
		e.catalog = DefaultCatalog()
	}
	if e.rng == nil {
		e.rng = NewRandomSource()
	}

	return e
}

func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Analyze runs the full pipeline for one detected face. Invalid geometry
// falls back to a random shape; the returned Analysis is marked Fallback.
func (e *Engine) Analyze(source domain.AnalysisSource, landmarks domain.Landmarks, box domain.BoundingBox) *domain.Analysis {
	fallback := !landmarks.Complete()

	shape, err := e.ClassifyShape(landmarks)
	if err != nil {
		// the classifier only fails on degenerate geometry
		shape = e.RandomShape()
		fallback = true
	}

	features := e.AnalyzeFeatures(box)

	return newAnalysis(source, shape, features, e.GenerateRecommendations(shape, features), fallback)
}

// AnalyzeUpload produces an analysis for an uploaded photo. No landmarks are
// available, so the shape is random and the forehead uses a fixed ratio.
func (e *Engine) AnalyzeUpload() *domain.Analysis {
	shape := e.RandomShape()
	features := domain.FeatureProfile{
		Forehead:   AnalyzeForehead(uploadForeheadRatio, 1),
		Jawline:    e.randomJawline(),
		Cheekbones: e.randomCheekbones(),
	}

	return newAnalysis(domain.SourceUpload, shape, features, e.GenerateRecommendations(shape, features), true)
}

func newAnalysis(source domain.AnalysisSource, shape domain.FaceShape, features domain.FeatureProfile, recs domain.RecommendationResult, fallback bool) *domain.Analysis {
	return &domain.Analysis{
		ID:              uuid.New(),
		Source:          source,
		FaceShape:       shape,
		Features:        features,
		Recommendations: recs,
		Fallback:        fallback,
		CreatedAt:       time.Now().UTC(),
	}
}
