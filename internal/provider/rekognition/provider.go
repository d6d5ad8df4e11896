package rekognition

import (
	"context"
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/provider"
)

const (
	// maxImageSize is the maximum image size supported by AWS Rekognition (5MB)
	maxImageSize = 5 * 1024 * 1024
	// minImageSize is the minimum image size for valid processing
	minImageSize = 100
)

// landmarkOrder lists the Rekognition points standing in for each index of
// the domain landmark layout: forehead corners (outer brow ends), jaw
// corners, rightmost face edge, chin.
var landmarkOrder = []types.LandmarkType{
	types.LandmarkTypeLeftEyeBrowLeft,
	types.LandmarkTypeRightEyeBrowRight,
	types.LandmarkTypeMidJawlineLeft,
	types.LandmarkTypeMidJawlineRight,
	types.LandmarkTypeUpperJawlineRight,
	types.LandmarkTypeChinBottom,
}

// Provider implements provider.LandmarkProvider using AWS Rekognition DetectFaces
type Provider struct {
	api    API
	config Config
}

// Ensure Provider implements provider.LandmarkProvider interface at compile time
var _ provider.LandmarkProvider = (*Provider)(nil)

// NewProvider creates a Rekognition provider backed by the AWS SDK client
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	api, err := NewAPI(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create rekognition client: %w", err)
	}

	return NewProviderWithAPI(api, cfg), nil
}

// NewProviderWithAPI creates a provider around an existing client
func NewProviderWithAPI(api API, cfg Config) *Provider {
	return &Provider{
		api:    api,
		config: cfg,
	}
}

func (p *Provider) Name() string {
	return "rekognition"
}

// validateImage checks if image data is valid for Rekognition processing
func validateImage(image []byte) error {
	if len(image) < minImageSize {
		return domain.ErrInvalidImage.WithError(fmt.Errorf("image too small (%d bytes, minimum %d)", len(image), minImageSize))
	}
	if len(image) > maxImageSize {
		return domain.ErrInvalidImage.WithError(fmt.Errorf("image too large (%d bytes, maximum %d)", len(image), maxImageSize))
	}
	return nil
}

// DetectFaces detects faces in an image using AWS Rekognition DetectFaces API.
// Rekognition reports coordinates as ratios of the image size; they are
// converted to pixels so width and height ratios stay comparable.
// Returns an empty slice if no faces are detected (not an error)
func (p *Provider) DetectFaces(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	if err := validateImage(image); err != nil {
		return nil, err
	}

	size, err := provider.DecodeSize(image)
	if err != nil {
		return nil, err
	}

	output, err := p.api.DetectFaces(ctx, &rekognition.DetectFacesInput{
		Image: &types.Image{
			Bytes: image,
		},
		Attributes: []types.Attribute{types.AttributeDefault},
	})
	if err != nil {
		return nil, parseAPIError(err)
	}

	w, h := float64(size.Width), float64(size.Height)

	faces := make([]provider.DetectedFace, 0, len(output.FaceDetails))
	for _, detail := range output.FaceDetails {
		if detail.BoundingBox == nil {
			continue
		}

		confidence := float64(aws.ToFloat32(detail.Confidence))
		if confidence < p.config.MinConfidence {
			continue
		}

		left := float64(aws.ToFloat32(detail.BoundingBox.Left)) * w
		top := float64(aws.ToFloat32(detail.BoundingBox.Top)) * h

		faces = append(faces, provider.DetectedFace{
			BoundingBox: domain.BoundingBox{
				TopLeft: domain.Point{X: left, Y: top},
				BottomRight: domain.Point{
					X: left + float64(aws.ToFloat32(detail.BoundingBox.Width))*w,
					Y: top + float64(aws.ToFloat32(detail.BoundingBox.Height))*h,
				},
			},
			Landmarks:  mapLandmarks(detail.Landmarks, w, h),
			Confidence: confidence,
		})
	}

	// largest face first
	slices.SortStableFunc(faces, func(a, b provider.DetectedFace) int {
		areaA := a.BoundingBox.Width() * a.BoundingBox.Height()
		areaB := b.BoundingBox.Width() * b.BoundingBox.Height()
		switch {
		case areaA > areaB:
			return -1
		case areaA < areaB:
			return 1
		default:
			return 0
		}
	})

	return faces, nil
}

// mapLandmarks returns nil unless every point in landmarkOrder is present
func mapLandmarks(landmarks []types.Landmark, w, h float64) domain.Landmarks {
	byType := make(map[types.LandmarkType]types.Landmark, len(landmarks))
	for _, l := range landmarks {
		if l.X == nil || l.Y == nil {
			continue
		}
		byType[l.Type] = l
	}

	out := make(domain.Landmarks, 0, len(landmarkOrder))
	for _, t := range landmarkOrder {
		l, ok := byType[t]
		if !ok {
			return nil
		}
		out = append(out, domain.Point{
			X: float64(aws.ToFloat32(l.X)) * w,
			Y: float64(aws.ToFloat32(l.Y)) * h,
		})
	}

	return out
}
