package face

import (
	"context"
	"fmt"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/config"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/provider"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/provider/mock"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/provider/rekognition"
)

// ProviderType defines supported landmark provider types
type ProviderType string

const (
	// ProviderTypeMock is the deterministic provider (local, for dev/test)
	ProviderTypeMock ProviderType = "mock"
	// ProviderTypeRekognition is the AWS Rekognition provider (cloud, for prod)
	ProviderTypeRekognition ProviderType = "rekognition"
	// ProviderTypeDeepFace is a self-hosted DeepFace server (detection only)
	ProviderTypeDeepFace ProviderType = "deepface"
)

// NewLandmarkProvider creates a LandmarkProvider instance based on configuration
//
// Environment variables:
//   - PROVIDER_TYPE: "mock", "rekognition" or "deepface" (default: "mock")
//   - AWS_REGION: AWS region for Rekognition (default: "us-east-1")
//   - REKOGNITION_MIN_CONFIDENCE: minimum detection confidence (default: 90)
//   - AWS_ACCESS_KEY_ID: AWS credentials (via AWS SDK credential chain)
//   - AWS_SECRET_ACCESS_KEY: AWS credentials (via AWS SDK credential chain)
//   - DEEPFACE_URL: DeepFace server base URL (default: "http://localhost:5005")
func NewLandmarkProvider(ctx context.Context, cfg *config.Config) (provider.LandmarkProvider, error) {
	providerType := ProviderType(cfg.ProviderType)

	switch providerType {
	case ProviderTypeRekognition:
		return createRekognitionProvider(ctx, cfg)

	case ProviderTypeDeepFace:
		return createDeepFaceProvider(cfg), nil

	case ProviderTypeMock, "":
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s, %s)",
			cfg.ProviderType, ProviderTypeMock, ProviderTypeRekognition, ProviderTypeDeepFace)
	}
}

// createRekognitionProvider creates an AWS Rekognition provider instance
func createRekognitionProvider(ctx context.Context, cfg *config.Config) (provider.LandmarkProvider, error) {
	rekogConfig := rekognition.DefaultConfig()
	if cfg.AWSRegion != "" {
		rekogConfig.Region = cfg.AWSRegion
	}
	if cfg.MinConfidence > 0 {
		rekogConfig.MinConfidence = cfg.MinConfidence
	}

	prov, err := rekognition.NewProvider(ctx, rekogConfig)
	if err != nil {
		return nil, fmt.Errorf("create rekognition provider: %w", err)
	}

	return prov, nil
}

// createDeepFaceProvider creates a DeepFace provider instance
func createDeepFaceProvider(cfg *config.Config) provider.LandmarkProvider {
	dfConfig := deepface.DefaultConfig()
	if cfg.DeepFaceURL != "" {
		dfConfig.BaseURL = cfg.DeepFaceURL
	}
	if cfg.DeepFaceTimeout > 0 {
		dfConfig.Timeout = cfg.DeepFaceTimeout
	}
	if cfg.MinConfidence > 0 {
		dfConfig.MinConfidence = cfg.MinConfidence
	}

	return deepface.NewProvider(dfConfig)
}
