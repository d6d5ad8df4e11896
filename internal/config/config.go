package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`

	// Provider
	ProviderType    string        `envconfig:"PROVIDER_TYPE" default:"mock"`
	AWSRegion       string        `envconfig:"AWS_REGION" default:"us-east-1"`
	MinConfidence   float64       `envconfig:"REKOGNITION_MIN_CONFIDENCE" default:"90"`
	DeepFaceURL     string        `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`
	DeepFaceTimeout time.Duration `envconfig:"DEEPFACE_TIMEOUT" default:"30s"`

	// Analysis
	CatalogPath     string `envconfig:"CATALOG_PATH"`
	MaxScanAttempts int    `envconfig:"MAX_SCAN_ATTEMPTS" default:"20"`
	// RandomSeed makes placeholder analyses reproducible; 0 keeps them random
	RandomSeed uint64 `envconfig:"RANDOM_SEED"`

	// 3D preview
	HeadModelPath  string   `envconfig:"HEAD_MODEL_PATH" default:"models/head.glb"`
	HairModelPaths []string `envconfig:"HAIR_MODEL_PATHS" default:"models/hair1.glb,models/hair2.glb,models/hair3.glb,models/hair4.glb"`

	// Rate limiting
	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"60"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.MaxScanAttempts < 1 {
		return nil, fmt.Errorf("load config: MAX_SCAN_ATTEMPTS must be at least 1, got %d", cfg.MaxScanAttempts)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
