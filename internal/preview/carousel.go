// Package preview tracks which 3D meshes the preview viewer should show.
package preview

import (
	"slices"
	"sync"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
)

// Carousel cycles hair meshes on top of a head model. Rendering happens in
// the client; the carousel only hands out model paths.
type Carousel struct {
	headModel  string
	hairModels []string

	mu      sync.Mutex
	current int
}

func NewCarousel(headModel string, hairModels []string) *Carousel {
	return &Carousel{
		headModel:  headModel,
		hairModels: slices.Clone(hairModels),
	}
}

// HeadModel returns the head mesh path, or ErrHeadModelNotLoaded when none
// is configured.
func (c *Carousel) HeadModel() (string, error) {
	if c.headModel == "" {
		return "", domain.ErrHeadModelNotLoaded
	}
	return c.headModel, nil
}

// Next advances to the following hair mesh and returns its path. The index
// moves before the lookup, so the first call returns the second mesh and the
// sequence wraps around.
func (c *Carousel) Next() (string, error) {
	if c.headModel == "" {
		return "", domain.ErrHeadModelNotLoaded
	}
	if len(c.hairModels) == 0 {
		return "", domain.ErrNoHairModels
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = (c.current + 1) % len(c.hairModels)
	return c.hairModels[c.current], nil
}

// Current returns the hair mesh selected last, without advancing
func (c *Carousel) Current() (string, error) {
	if len(c.hairModels) == 0 {
		return "", domain.ErrNoHairModels
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.hairModels[c.current], nil
}
