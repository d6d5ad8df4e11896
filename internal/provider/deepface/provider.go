package deepface

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/provider"
)

const (
	// minFaceArea is the minimum face area (in pixels²) for reliable detection
	minFaceArea = 2500 // 50x50 pixels
	// maxFaceArea is used for confidence scaling
	maxFaceArea = 250000 // 500x500 pixels

	// noFaceMessage is how DeepFace reports enforce_detection failures
	noFaceMessage = "Face could not be detected"
)

// Provider implements provider.LandmarkProvider on a self-hosted DeepFace
// server. DeepFace reports face regions only, so detected faces carry no
// landmarks and their shape is picked by the fallback path.
type Provider struct {
	client        *Client
	minConfidence float64
}

// NewProvider creates a new DeepFace provider
func NewProvider(config Config) *Provider {
	return &Provider{
		client:        NewClient(config),
		minConfidence: config.MinConfidence,
	}
}

func (p *Provider) Name() string {
	return "deepface"
}

// Ping reports whether the DeepFace server is reachable
func (p *Provider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

// DetectFaces detects faces in the image, largest first
func (p *Provider) DetectFaces(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	size, err := provider.DecodeSize(image)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Represent(ctx, base64.StdEncoding.EncodeToString(image))
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.ClientError() {
			if strings.Contains(statusErr.Message, noFaceMessage) {
				return []provider.DetectedFace{}, nil
			}
			return nil, domain.ErrInvalidImage.WithError(err)
		}
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	faces := make([]provider.DetectedFace, 0, len(resp.Results))
	for _, result := range resp.Results {
		area := result.FacialArea
		if area.W <= 0 || area.H <= 0 {
			continue
		}

		var confidence float64
		if result.FaceConfidence > 0 {
			confidence = result.FaceConfidence * 100
			if confidence < p.minConfidence {
				continue
			}
		} else {
			confidence = estimateConfidence(float64(area.W * area.H))
		}

		faces = append(faces, provider.DetectedFace{
			BoundingBox: domain.BoundingBox{
				TopLeft: domain.Point{X: float64(area.X), Y: float64(area.Y)},
				BottomRight: domain.Point{
					X: math.Min(float64(area.X+area.W), float64(size.Width)),
					Y: math.Min(float64(area.Y+area.H), float64(size.Height)),
				},
			},
			Confidence: confidence,
		})
	}

	slices.SortStableFunc(faces, func(a, b provider.DetectedFace) int {
		areaA := a.BoundingBox.Width() * a.BoundingBox.Height()
		areaB := b.BoundingBox.Width() * b.BoundingBox.Height()
		switch {
		case areaA > areaB:
			return -1
		case areaA < areaB:
			return 1
		}
		return 0
	})

	return faces, nil
}

// estimateConfidence derives a percentage from the face area for servers that
// do not report face_confidence. Larger faces are detected more reliably.
func estimateConfidence(faceArea float64) float64 {
	if faceArea < minFaceArea {
		return 50
	}
	// Scale from 70 to 99 based on face area
	normalized := math.Min(1.0, (faceArea-minFaceArea)/(maxFaceArea-minFaceArea))
	return 70 + (normalized * 29)
}

// Ensure Provider implements provider.LandmarkProvider
var _ provider.LandmarkProvider = (*Provider)(nil)
