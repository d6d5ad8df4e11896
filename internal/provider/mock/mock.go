package mock

import (
	"context"
	"crypto/sha256"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/provider"
)

// Provider implementa provider.LandmarkProvider para testes e desenvolvimento.
// Every decodable image yields exactly one face whose proportions are derived
// from the image hash, so the same image always produces the same face shape.
type Provider struct{}

// New cria uma nova instância do MockProvider
func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return "mock"
}

// DetectFaces simula detecção de faces
func (p *Provider) DetectFaces(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	size, err := provider.DecodeSize(image)
	if err != nil {
		return nil, err
	}

	return []provider.DetectedFace{generateFace(image, size)}, nil
}

// generateFace places a face centered in the frame. Width/height ratio spans
// 0.55..1.0 and jaw/forehead ratio 0.6..1.1 depending on the image hash.
func generateFace(image []byte, size provider.ImageSize) provider.DetectedFace {
	hash := sha256.Sum256(image)

	height := float64(size.Height) * 0.6
	width := height * (0.55 + 0.45*float64(hash[0])/255)
	forehead := width * 0.7
	jaw := forehead * (0.6 + 0.5*float64(hash[1])/255)

	cx := float64(size.Width) / 2
	top := float64(size.Height) * 0.2
	left := cx - width/2

	return provider.DetectedFace{
		BoundingBox: domain.BoundingBox{
			TopLeft:     domain.Point{X: left, Y: top},
			BottomRight: domain.Point{X: left + width, Y: top + height},
		},
		Landmarks: domain.Landmarks{
			{X: left, Y: top},
			{X: left + forehead, Y: top},
			{X: cx - jaw/2, Y: top + height*0.8},
			{X: cx + jaw/2, Y: top + height*0.8},
			{X: left + width, Y: top + height*0.5},
			{X: cx, Y: top + height},
		},
		Confidence: 99.0,
	}
}

var _ provider.LandmarkProvider = (*Provider)(nil)
