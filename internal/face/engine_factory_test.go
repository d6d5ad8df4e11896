package face

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/config"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
)

func TestNewEngine(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		engine, err := NewEngine(&config.Config{})
		require.NoError(t, err)
		assert.NotEmpty(t, engine.Catalog().Styles())
	})

	t.Run("seeded engines agree", func(t *testing.T) {
		a, err := NewEngine(&config.Config{RandomSeed: 99})
		require.NoError(t, err)
		b, err := NewEngine(&config.Config{RandomSeed: 99})
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			assert.Equal(t, a.RandomShape(), b.RandomShape())
		}
	})

	t.Run("custom catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		doc := ""
		for _, shape := range domain.FaceShapes {
			doc += string(shape) + ":\n  recommended: [\"Buzz Cut\"]\n  avoid: []\n  reasoning: \"short\"\n"
		}
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		engine, err := NewEngine(&config.Config{CatalogPath: path})
		require.NoError(t, err)
		assert.Equal(t, []string{"Buzz Cut"}, engine.Catalog().Styles())
	})

	t.Run("missing catalog", func(t *testing.T) {
		_, err := NewEngine(&config.Config{CatalogPath: "/nonexistent/catalog.yaml"})
		assert.Error(t, err)
	})
}
