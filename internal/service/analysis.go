package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/analyzer"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/audit"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/provider"
)

const defaultMaxScanAttempts = 20

// Event names pushed through the Notifier
const (
	EventNotification      = "notification"
	EventAnalysisCompleted = "analysis.completed"
	EventPreviewChanged    = "preview.changed"
)

// Notifier delivers user-facing events to connected clients
type Notifier interface {
	Broadcast(eventType string, data interface{})
}

// HairCarousel hands out the hair meshes for the 3D preview
type HairCarousel interface {
	HeadModel() (string, error)
	Next() (string, error)
}

// Preview is the payload shown next to a selected hairstyle
type Preview struct {
	Style      string `json:"style"`
	Reasoning  string `json:"reasoning"`
	FaceShape  string `json:"face_shape"`
	Confidence *int   `json:"confidence"`
}

// HairModel is the pair of meshes the 3D viewer renders
type HairModel struct {
	HeadModel string `json:"head_model"`
	HairModel string `json:"hair_model"`
}

type Notification struct {
	Message string `json:"message"`
}

// AnalysisService drives detection and keeps the latest analysis.
// Concurrent analyses overwrite each other; the last one to finish wins.
type AnalysisService struct {
	engine      *analyzer.Engine
	provider    provider.LandmarkProvider
	carousel    HairCarousel
	notifier    Notifier
	logger      *slog.Logger
	auditLogger audit.Logger
	maxAttempts int

	mu      sync.RWMutex
	current *domain.Analysis
}

func NewAnalysisService(
	engine *analyzer.Engine,
	landmarkProvider provider.LandmarkProvider,
	carousel HairCarousel,
	notifier Notifier,
	logger *slog.Logger,
) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AnalysisService{
		engine:      engine,
		provider:    landmarkProvider,
		carousel:    carousel,
		notifier:    notifier,
		logger:      logger,
		auditLogger: &audit.NoOpLogger{},
		maxAttempts: defaultMaxScanAttempts,
	}
}

// WithAuditLogger sets the audit trail for detections and analyses
func (s *AnalysisService) WithAuditLogger(auditLogger audit.Logger) *AnalysisService {
	if auditLogger != nil {
		s.auditLogger = auditLogger
	}
	return s
}

func (s *AnalysisService) WithMaxAttempts(attempts int) *AnalysisService {
	if attempts > 0 {
		s.maxAttempts = attempts
	}
	return s
}

// Scan runs detection over camera frames in order and analyzes the first one
// that contains a face. At most maxAttempts frames are tried.
func (s *AnalysisService) Scan(ctx context.Context, frames [][]byte) (*domain.Analysis, error) {
	if len(frames) == 0 {
		return nil, domain.ErrBadRequest.WithError(fmt.Errorf("no frames provided"))
	}

	s.notify("Running facial analysis...")

	for attempt, frame := range frames {
		if attempt >= s.maxAttempts {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		faces, err := s.provider.DetectFaces(ctx, frame)
		if err != nil {
			return nil, fmt.Errorf("%s: detect faces on frame %d: %w", s.provider.Name(), attempt, err)
		}
		if len(faces) == 0 {
			continue
		}

		s.logger.Debug("face detected",
			slog.Int("attempt", attempt+1),
			slog.Float64("confidence", faces[0].Confidence),
		)
		s.audit(ctx, audit.Event{
			EventType: audit.EventFaceDetected,
			Source:    string(domain.SourceCamera),
			Provider:  s.provider.Name(),
			Success:   true,
			Metadata: map[string]string{
				"attempt":    strconv.Itoa(attempt + 1),
				"faces":      strconv.Itoa(len(faces)),
				"confidence": strconv.FormatFloat(faces[0].Confidence, 'f', 1, 64),
			},
		})

		analysis := s.engine.Analyze(domain.SourceCamera, faces[0].Landmarks, faces[0].BoundingBox)
		s.complete(ctx, analysis)
		return analysis, nil
	}

	s.audit(ctx, audit.Event{
		EventType: audit.EventNoFaceDetected,
		Source:    string(domain.SourceCamera),
		Provider:  s.provider.Name(),
		Error:     domain.ErrNoFaceDetected.Message,
		Metadata: map[string]string{
			"frames": strconv.Itoa(min(len(frames), s.maxAttempts)),
		},
	})
	s.notify(domain.ErrNoFaceDetected.Message)
	return nil, domain.ErrNoFaceDetected
}

// AnalyzeLandmarks analyzes geometry measured by the client
func (s *AnalysisService) AnalyzeLandmarks(ctx context.Context, landmarks domain.Landmarks, box domain.BoundingBox) (*domain.Analysis, error) {
	s.notify("Running facial analysis...")

	analysis := s.engine.Analyze(domain.SourceLandmarks, landmarks, box)
	s.complete(ctx, analysis)
	return analysis, nil
}

// AnalyzeUpload analyzes an uploaded photo. The image only has to decode;
// its contents do not influence the result.
func (s *AnalysisService) AnalyzeUpload(ctx context.Context, image []byte) (*domain.Analysis, error) {
	size, err := provider.DecodeSize(image)
	if err != nil {
		s.audit(ctx, audit.Event{
			EventType: audit.EventImageRejected,
			Source:    string(domain.SourceUpload),
			Error:     err.Error(),
			Metadata: map[string]string{
				"bytes": strconv.Itoa(len(image)),
			},
		})
		return nil, err
	}

	s.logger.Debug("upload accepted",
		slog.String("format", size.Format),
		slog.Int("width", size.Width),
		slog.Int("height", size.Height),
	)

	s.notify("Running facial analysis...")

	analysis := s.engine.AnalyzeUpload()
	s.complete(ctx, analysis)
	return analysis, nil
}

// Current returns the latest analysis or ErrNoAnalysis
func (s *AnalysisService) Current() (*domain.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, domain.ErrNoAnalysis
	}
	return s.current, nil
}

// Gallery scores every catalog hairstyle against the latest analysis
func (s *AnalysisService) Gallery() ([]analyzer.Compatibility, error) {
	current, err := s.Current()
	if err != nil {
		return nil, err
	}

	styles := s.engine.Catalog().Styles()
	scores := make([]analyzer.Compatibility, 0, len(styles))
	for _, style := range styles {
		scores = append(scores, s.engine.GalleryScore(style, current.Recommendations))
	}

	return scores, nil
}

func (s *AnalysisService) Compatibility(style string) (analyzer.Compatibility, error) {
	current, err := s.Current()
	if err != nil {
		return analyzer.Compatibility{}, err
	}

	result := s.engine.Compatibility(style, current.Recommendations)
	s.notify(fmt.Sprintf("AI Compatibility: %d%% - %s", result.Score, result.Verdict))
	return result, nil
}

// Preview works with or without an analysis
func (s *AnalysisService) Preview(style string) Preview {
	p := Preview{
		Style:     style,
		Reasoning: "Perfect choice for your features",
		FaceShape: "Analyzing...",
	}

	current, err := s.Current()
	if err != nil {
		return p
	}

	confidence := current.Recommendations.Confidence
	p.Reasoning = current.Recommendations.Reasoning
	p.FaceShape = string(current.FaceShape)
	p.Confidence = &confidence
	return p
}

func (s *AnalysisService) NextHairModel() (HairModel, error) {
	head, err := s.carousel.HeadModel()
	if err != nil {
		return HairModel{}, err
	}

	hair, err := s.carousel.Next()
	if err != nil {
		return HairModel{}, err
	}

	model := HairModel{HeadModel: head, HairModel: hair}
	s.broadcast(EventPreviewChanged, model)
	return model, nil
}

func (s *AnalysisService) complete(ctx context.Context, analysis *domain.Analysis) {
	s.mu.Lock()
	s.current = analysis
	s.mu.Unlock()

	s.logger.Info("analysis completed",
		slog.String("id", analysis.ID.String()),
		slog.String("source", string(analysis.Source)),
		slog.String("face_shape", string(analysis.FaceShape)),
		slog.Int("confidence", analysis.Recommendations.Confidence),
		slog.Bool("fallback", analysis.Fallback),
	)
	s.audit(ctx, audit.Event{
		EventType:  audit.EventAnalysisCompleted,
		AnalysisID: analysis.ID.String(),
		Source:     string(analysis.Source),
		Success:    true,
		Metadata: map[string]string{
			"face_shape": string(analysis.FaceShape),
			"confidence": strconv.Itoa(analysis.Recommendations.Confidence),
			"fallback":   strconv.FormatBool(analysis.Fallback),
		},
	})

	s.broadcast(EventAnalysisCompleted, analysis)
	s.notify(fmt.Sprintf("Analysis complete! Confidence: %d%%", analysis.Recommendations.Confidence))
	s.notify(fmt.Sprintf("Found %d matches for your %s face!", len(analysis.Recommendations.Recommended), analysis.FaceShape))
}

// audit failures never fail the request
func (s *AnalysisService) audit(ctx context.Context, event audit.Event) {
	if err := s.auditLogger.Log(ctx, event); err != nil {
		s.logger.Warn("failed to record audit event",
			slog.String("event_type", string(event.EventType)),
			slog.Any("error", err),
		)
	}
}

func (s *AnalysisService) notify(message string) {
	s.broadcast(EventNotification, Notification{Message: message})
}

func (s *AnalysisService) broadcast(eventType string, data interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Broadcast(eventType, data)
}
