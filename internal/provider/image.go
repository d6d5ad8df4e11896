package provider

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
)

// ImageSize is the pixel size and format of an encoded image
type ImageSize struct {
	Width  int
	Height int
	Format string
}

// DecodeSize reads the image header (jpeg, png or webp) without decoding pixels
func DecodeSize(data []byte) (ImageSize, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageSize{}, domain.ErrInvalidImage.WithError(fmt.Errorf("decode image header: %w", err))
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return ImageSize{}, domain.ErrInvalidImage.WithError(fmt.Errorf("empty %s image", format))
	}

	return ImageSize{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}
