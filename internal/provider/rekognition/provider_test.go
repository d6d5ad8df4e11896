package rekognition

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/provider"
)

// TestProviderImplementsInterface verifies that Provider implements LandmarkProvider
func TestProviderImplementsInterface(t *testing.T) {
	var _ provider.LandmarkProvider = (*Provider)(nil)
}

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, 90.0, cfg.MinConfidence)
}

// testImage returns a 200x100 PNG large enough to pass size validation
func testImage(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for x := 0; x < 200; x++ {
		for y := 0; y < 100; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * y), G: uint8(x + y), B: uint8(x ^ y), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func landmark(t types.LandmarkType, x, y float32) types.Landmark {
	return types.Landmark{Type: t, X: aws.Float32(x), Y: aws.Float32(y)}
}

func faceDetail(confidence float32, box types.BoundingBox, landmarks ...types.Landmark) types.FaceDetail {
	return types.FaceDetail{
		BoundingBox: &box,
		Confidence:  aws.Float32(confidence),
		Landmarks:   landmarks,
	}
}

func fullLandmarks() []types.Landmark {
	return []types.Landmark{
		landmark(types.LandmarkTypeEyeLeft, 0.375, 0.375),
		landmark(types.LandmarkTypeLeftEyeBrowLeft, 0.25, 0.25),
		landmark(types.LandmarkTypeRightEyeBrowRight, 0.75, 0.25),
		landmark(types.LandmarkTypeMidJawlineLeft, 0.25, 0.75),
		landmark(types.LandmarkTypeMidJawlineRight, 0.75, 0.75),
		landmark(types.LandmarkTypeUpperJawlineRight, 0.875, 0.5),
		landmark(types.LandmarkTypeChinBottom, 0.5, 0.875),
	}
}

func TestProvider_DetectFaces(t *testing.T) {
	img := testImage(t)

	api := &mockRekognitionAPI{
		detectFacesFunc: func(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error) {
			assert.Equal(t, img, params.Image.Bytes)
			assert.Equal(t, []types.Attribute{types.AttributeDefault}, params.Attributes)

			return &rekognition.DetectFacesOutput{
				FaceDetails: []types.FaceDetail{
					faceDetail(99.5, types.BoundingBox{Left: aws.Float32(0.25), Top: aws.Float32(0.25), Width: aws.Float32(0.5), Height: aws.Float32(0.5)}, fullLandmarks()...),
				},
			}, nil
		},
	}

	p := NewProviderWithAPI(api, DefaultConfig())
	faces, err := p.DetectFaces(context.Background(), img)
	require.NoError(t, err)
	require.Len(t, faces, 1)

	face := faces[0]
	assert.InDelta(t, 99.5, face.Confidence, 1e-4)
	assert.Equal(t, domain.BoundingBox{
		TopLeft:     domain.Point{X: 50, Y: 25},
		BottomRight: domain.Point{X: 150, Y: 75},
	}, face.BoundingBox)

	assert.Equal(t, domain.Landmarks{
		{X: 50, Y: 25},
		{X: 150, Y: 25},
		{X: 50, Y: 75},
		{X: 150, Y: 75},
		{X: 175, Y: 50},
		{X: 100, Y: 87.5},
	}, face.Landmarks)
}

func TestProvider_DetectFaces_MissingLandmarks(t *testing.T) {
	api := &mockRekognitionAPI{
		detectFacesFunc: func(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error) {
			lm := fullLandmarks()
			return &rekognition.DetectFacesOutput{
				FaceDetails: []types.FaceDetail{
					faceDetail(95, types.BoundingBox{Left: aws.Float32(0), Top: aws.Float32(0), Width: aws.Float32(0.5), Height: aws.Float32(0.5)}, lm[:len(lm)-1]...),
				},
			}, nil
		},
	}

	faces, err := NewProviderWithAPI(api, DefaultConfig()).DetectFaces(context.Background(), testImage(t))
	require.NoError(t, err)
	require.Len(t, faces, 1)
	assert.Nil(t, faces[0].Landmarks)
}

func TestProvider_DetectFaces_FiltersAndOrders(t *testing.T) {
	api := &mockRekognitionAPI{
		detectFacesFunc: func(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error) {
			return &rekognition.DetectFacesOutput{
				FaceDetails: []types.FaceDetail{
					faceDetail(99, types.BoundingBox{Left: aws.Float32(0), Top: aws.Float32(0), Width: aws.Float32(0.125), Height: aws.Float32(0.125)}),
					faceDetail(50, types.BoundingBox{Left: aws.Float32(0), Top: aws.Float32(0), Width: aws.Float32(1), Height: aws.Float32(1)}),
					faceDetail(97, types.BoundingBox{Left: aws.Float32(0.5), Top: aws.Float32(0.5), Width: aws.Float32(0.5), Height: aws.Float32(0.5)}),
					{Confidence: aws.Float32(99)},
				},
			}, nil
		},
	}

	faces, err := NewProviderWithAPI(api, DefaultConfig()).DetectFaces(context.Background(), testImage(t))
	require.NoError(t, err)
	require.Len(t, faces, 2)
	assert.InDelta(t, 97, faces[0].Confidence, 1e-4)
	assert.InDelta(t, 99, faces[1].Confidence, 1e-4)
}

func TestProvider_DetectFaces_NoFaces(t *testing.T) {
	faces, err := NewProviderWithAPI(&mockRekognitionAPI{}, DefaultConfig()).DetectFaces(context.Background(), testImage(t))
	require.NoError(t, err)
	assert.Empty(t, faces)
}

func TestProvider_DetectFaces_InvalidImage(t *testing.T) {
	tests := []struct {
		name  string
		image []byte
	}{
		{"empty", nil},
		{"too small", make([]byte, 50)},
		{"too large", make([]byte, maxImageSize+1)},
		{"not an image", bytes.Repeat([]byte("x"), 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockRekognitionAPI{}
			_, err := NewProviderWithAPI(api, DefaultConfig()).DetectFaces(context.Background(), tt.image)
			assert.ErrorIs(t, err, domain.ErrInvalidImage)
			assert.Zero(t, api.calls)
		})
	}
}

func TestProvider_DetectFaces_APIErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"access denied", &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "denied"}, ErrInvalidCredentials},
		{"invalid image format", &smithy.GenericAPIError{Code: "InvalidImageFormatException", Message: "bad"}, domain.ErrInvalidImage},
		{"invalid parameter", &smithy.GenericAPIError{Code: "InvalidParameterException", Message: "bad"}, domain.ErrInvalidImage},
		{"throttled", &smithy.GenericAPIError{Code: "ThrottlingException", Message: "slow down"}, ErrThrottled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockRekognitionAPI{
				detectFacesFunc: func(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error) {
					return nil, tt.err
				},
			}

			_, err := NewProviderWithAPI(api, DefaultConfig()).DetectFaces(context.Background(), testImage(t))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("unknown error is wrapped", func(t *testing.T) {
		boom := errors.New("connection reset")
		api := &mockRekognitionAPI{
			detectFacesFunc: func(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error) {
				return nil, boom
			},
		}

		_, err := NewProviderWithAPI(api, DefaultConfig()).DetectFaces(context.Background(), testImage(t))
		assert.ErrorIs(t, err, boom)
	})
}

func TestProvider_Name(t *testing.T) {
	assert.Equal(t, "rekognition", NewProviderWithAPI(&mockRekognitionAPI{}, DefaultConfig()).Name())
}
