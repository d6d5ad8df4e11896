package preview

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
)

var hairModels = []string{"hair1.glb", "hair2.glb", "hair3.glb", "hair4.glb"}

func TestCarousel_Next(t *testing.T) {
	c := NewCarousel("head.glb", hairModels)

	want := []string{"hair2.glb", "hair3.glb", "hair4.glb", "hair1.glb", "hair2.glb"}
	for _, w := range want {
		got, err := c.Next()
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}

	current, err := c.Current()
	require.NoError(t, err)
	assert.Equal(t, "hair2.glb", current)
}

func TestCarousel_Errors(t *testing.T) {
	_, err := NewCarousel("", hairModels).Next()
	assert.ErrorIs(t, err, domain.ErrHeadModelNotLoaded)

	_, err = NewCarousel("", hairModels).HeadModel()
	assert.ErrorIs(t, err, domain.ErrHeadModelNotLoaded)

	_, err = NewCarousel("head.glb", nil).Next()
	assert.ErrorIs(t, err, domain.ErrNoHairModels)

	_, err = NewCarousel("head.glb", nil).Current()
	assert.ErrorIs(t, err, domain.ErrNoHairModels)
}

func TestCarousel_CopiesInput(t *testing.T) {
	models := []string{"a.glb", "b.glb"}
	c := NewCarousel("head.glb", models)
	models[1] = "changed.glb"

	got, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, "b.glb", got)
}

func TestCarousel_ConcurrentNext(t *testing.T) {
	c := NewCarousel("head.glb", hairModels)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Next()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// 40 advances on 4 models land back on the first one
	current, err := c.Current()
	require.NoError(t, err)
	assert.Equal(t, "hair1.glb", current)
}
