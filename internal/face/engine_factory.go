package face

import (
	"fmt"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/analyzer"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/config"
)

// NewEngine builds the analysis engine from configuration
//
// Environment variables:
//   - CATALOG_PATH: YAML catalog replacing the built-in one (optional)
//   - RANDOM_SEED: fixed seed for reproducible fallback picks and scores (optional)
func NewEngine(cfg *config.Config) (*analyzer.Engine, error) {
	var opts []analyzer.Option

	if cfg.CatalogPath != "" {
		catalog, err := analyzer.LoadCatalogFile(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		opts = append(opts, analyzer.WithCatalog(catalog))
	}

	if cfg.RandomSeed != 0 {
		opts = append(opts, analyzer.WithRandomSource(analyzer.NewSeededSource(cfg.RandomSeed)))
	}

	return analyzer.New(opts...), nil
}
