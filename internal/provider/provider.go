package provider

import (
	"context"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
)

// LandmarkProvider detects faces and their reference points in an image.
// Landmark computation lives entirely behind this interface.
type LandmarkProvider interface {
	// DetectFaces returns every face found in the image, most prominent first.
	// An image without faces yields an empty slice, not an error.
	DetectFaces(ctx context.Context, image []byte) ([]DetectedFace, error)

	// Name identifies the provider in logs
	Name() string
}

// DetectedFace represents a detected face in the image, in pixel coordinates
type DetectedFace struct {
	BoundingBox domain.BoundingBox `json:"bounding_box"`
	// Landmarks follows the domain.MinLandmarks index layout. It is nil when
	// the provider could not locate every required point.
	Landmarks domain.Landmarks `json:"landmarks,omitempty"`
	// Confidence is a percentage in [0, 100]
	Confidence float64 `json:"confidence"`
}

// Pinger is implemented by providers backed by a remote service that can be
// probed for readiness
type Pinger interface {
	Ping(ctx context.Context) error
}
