// Package config loads YAML-backed defaults for the engine's construction
// parameters, the query caches, and CLI logging — a convenience layer for
// callers; the engine constructor itself never touches the filesystem.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"silkmoth/internal/domain"
	"silkmoth/internal/engine"
)

// Config holds all configuration for the silkmoth tool.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig holds the engine's construction parameters, spelled as
// strings in YAML and resolved to domain enums by BuildEngineConfig.
type EngineConfig struct {
	Delta       float64 `yaml:"delta"`
	Alpha       float64 `yaml:"alpha"`
	Q           int     `yaml:"q"`
	SimMetric   string  `yaml:"sim_metric"`   // "set-similarity" | "set-containment"
	SimFunc     string  `yaml:"sim_func"`     // "jaccard" | "edit" | "norm-edit"
	SigType     string  `yaml:"sig_type"`     // "weighted" | "skyline" | "dichotomy"
	Reduction   bool    `yaml:"reduction"`
	CheckFilter bool    `yaml:"check_filter"`
	NnFilter    bool    `yaml:"nn_filter"`
}

// CacheConfig holds the query-cache and persistent discover-cache settings.
type CacheConfig struct {
	QuerySize      int           `yaml:"query_size"`
	QueryTTL       time.Duration `yaml:"query_ttl"`
	PersistentPath string        `yaml:"persistent_path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Delta:       0.7,
			Alpha:       0,
			Q:           3,
			SimMetric:   "set-containment",
			SimFunc:     "jaccard",
			SigType:     "weighted",
			Reduction:   false,
			CheckFilter: true,
			NnFilter:    true,
		},
		Cache: CacheConfig{
			QuerySize:      100,
			QueryTTL:       5 * time.Minute,
			PersistentPath: ".silkmoth/discover.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file is not an
// error: it yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for silkmoth.yaml
// then .silkmoth/config.yaml, falling back to defaults).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "silkmoth.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".silkmoth", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildEngineConfig resolves the YAML-friendly EngineConfig/CacheConfig
// strings into the engine.Config the façade constructor expects.
func (c *Config) BuildEngineConfig() (engine.Config, error) {
	simMetric, err := ParseSimMetric(c.Engine.SimMetric)
	if err != nil {
		return engine.Config{}, err
	}
	simFunc, err := ParseSimFunc(c.Engine.SimFunc)
	if err != nil {
		return engine.Config{}, err
	}
	sigType, err := ParseSigType(c.Engine.SigType)
	if err != nil {
		return engine.Config{}, err
	}

	return engine.Config{
		Delta:       c.Engine.Delta,
		Alpha:       c.Engine.Alpha,
		Q:           c.Engine.Q,
		SimMetric:   simMetric,
		SimFunc:     simFunc,
		SigType:     sigType,
		Reduction:   c.Engine.Reduction,
		CheckFilter: c.Engine.CheckFilter,
		NnFilter:    c.Engine.NnFilter,
		CacheSize:   c.Cache.QuerySize,
		CacheTTL:    c.Cache.QueryTTL,
	}, nil
}

// ParseSimMetric resolves a YAML/CLI sim-metric name to its domain enum.
func ParseSimMetric(s string) (domain.SimMetric, error) {
	switch s {
	case "set-similarity":
		return domain.SetSimilarity, nil
	case "set-containment":
		return domain.SetContainment, nil
	default:
		return 0, fmt.Errorf("%w: sim_metric %q", domain.ErrUnsupportedSimilarity, s)
	}
}

// ParseSimFunc resolves a YAML/CLI sim-func name to its domain enum.
func ParseSimFunc(s string) (domain.SimFunc, error) {
	switch s {
	case "jaccard":
		return domain.Jaccard, nil
	case "edit":
		return domain.Edit, nil
	case "norm-edit":
		return domain.NormEdit, nil
	default:
		return 0, fmt.Errorf("%w: sim_func %q", domain.ErrUnsupportedSimilarity, s)
	}
}

// ParseSigType resolves a YAML/CLI signature-scheme name to its domain enum.
func ParseSigType(s string) (domain.SigType, error) {
	switch s {
	case "weighted":
		return domain.Weighted, nil
	case "skyline":
		return domain.Skyline, nil
	case "dichotomy":
		return domain.Dichotomy, nil
	default:
		return 0, fmt.Errorf("%w: sig_type %q", domain.ErrUnsupportedSimilarity, s)
	}
}

// EnsureCacheDir ensures the persistent cache's parent directory exists.
func EnsureCacheDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}
