package charge

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/woodtho/charge/internal/enrich"
)

// WorkloadConfig holds the per-tag workload adjustments.
//
// A room's workload starts at Base, adds the delta of every tag it carries, and is
// clamped to at least Floor. Untagged rooms therefore weigh Base.
type WorkloadConfig struct {
	Base      float64 `yaml:"base"`
	Discharge float64 `yaml:"discharge"`
	BabyInSCN float64 `yaml:"babyInScn"`
	Gyn       float64 `yaml:"gyn"`
	BFI       float64 `yaml:"bfi"`
	CS        float64 `yaml:"cs"`
	Vag       float64 `yaml:"vag"`

	// Floor is the minimum workload of any room. Must be > 0.
	Floor float64 `yaml:"floor"`
}

// ScoringConfig controls the scored selection used for rooms outside the
// discharge, under_24 and over_24 phases.
type ScoringConfig struct {
	// AdjacencyDiscount is subtracted from a nurse's score when the nurse already
	// holds a room in the same bay. Small enough to only break near-ties.
	AdjacencyDiscount float64 `yaml:"adjacencyDiscount"`

	// BFIPenalty is added when the room is bfi and the nurse already holds a bfi room.
	BFIPenalty float64 `yaml:"bfiPenalty"`

	// CSPenalty is added when the room is cs and the nurse already holds a cs room.
	CSPenalty float64 `yaml:"csPenalty"`
}

// CacheConfig controls the in-memory result cache.
type CacheConfig struct {
	// Enabled turns the result cache on. Off by default.
	Enabled bool `yaml:"enabled"`

	// MaxEntries bounds the cache; it is cleared when full.
	MaxEntries int `yaml:"maxEntries"`
}

// Config is the configuration for the Allocator.
type Config struct {
	// Timezone is the IANA zone used to format times in labels and views.
	// It never affects allocation order or scoring.
	Timezone string `yaml:"timezone"`

	// BayPrefixes are the room id prefixes of multi-bed bays ("A" makes "A-3" part of bay "A").
	BayPrefixes []string `yaml:"bayPrefixes"`

	// Workload holds the per-tag workload weights.
	Workload WorkloadConfig `yaml:"workload"`

	// Scoring holds the scored-selection constants.
	Scoring ScoringConfig `yaml:"scoring"`

	// Cache controls result caching.
	Cache CacheConfig `yaml:"cache"`
}

// DefaultConfig returns a Config with the standard ward settings.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	w := enrich.DefaultWeights()

	return Config{
		Timezone:    "UTC",
		BayPrefixes: []string{"A", "B", "C", "D"},
		Workload: WorkloadConfig{
			Base:      w.Base,
			Discharge: w.Discharge,
			BabyInSCN: w.BabyInSCN,
			Gyn:       w.Gyn,
			BFI:       w.BFI,
			CS:        w.CS,
			Vag:       w.Vag,
			Floor:     w.Floor,
		},
		Scoring: ScoringConfig{
			AdjacencyDiscount: 0.001,
			BFIPenalty:        50,
			CSPenalty:         75,
		},
		Cache: CacheConfig{
			Enabled:    false,
			MaxEntries: 128,
		},
	}
}

// SetDefaults fills in the settings whose zero value is never usable.
//
// Timezone, a nil BayPrefixes, Workload.Base, Workload.Floor and Cache.MaxEntries
// are defaulted field by field. Tag deltas and scoring constants are left alone:
// 0 is a legitimate value for each of them, so a Config built in code should start
// from DefaultConfig(). ParseConfig decodes on top of DefaultConfig() for the
// same reason.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Timezone == "" {
		cfg.Timezone = defaults.Timezone
	}
	if cfg.BayPrefixes == nil {
		cfg.BayPrefixes = defaults.BayPrefixes
	}
	if cfg.Workload.Base == 0 {
		cfg.Workload.Base = defaults.Workload.Base
	}
	if cfg.Workload.Floor == 0 {
		cfg.Workload.Floor = defaults.Workload.Floor
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = defaults.Cache.MaxEntries
	}
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Rules:
//   - Timezone must name a loadable location
//   - Workload.Base and Workload.Floor must be > 0
//   - Scoring constants must not be negative
//   - Cache.MaxEntries must be > 0 when the cache is enabled
//   - Bay prefixes must be non-empty and must not contain "-"
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("Timezone %q: %w", cfg.Timezone, err)
	}

	if cfg.Workload.Base <= 0 {
		return fmt.Errorf("Workload.Base must be > 0, got %v", cfg.Workload.Base)
	}
	if cfg.Workload.Floor <= 0 {
		return fmt.Errorf("Workload.Floor must be > 0, got %v", cfg.Workload.Floor)
	}

	if cfg.Scoring.AdjacencyDiscount < 0 || cfg.Scoring.BFIPenalty < 0 || cfg.Scoring.CSPenalty < 0 {
		return fmt.Errorf("Scoring constants must not be negative, got %+v", cfg.Scoring)
	}

	if cfg.Cache.Enabled && cfg.Cache.MaxEntries <= 0 {
		return fmt.Errorf("Cache.MaxEntries must be > 0 when the cache is enabled, got %d", cfg.Cache.MaxEntries)
	}

	for _, p := range cfg.BayPrefixes {
		if p == "" {
			return errors.New("BayPrefixes must not contain empty prefixes")
		}
		if strings.Contains(p, "-") {
			return fmt.Errorf("bay prefix %q must not contain '-'", p)
		}
	}

	return nil
}

// ValidateWithWarnings logs warnings for legal but unusual values.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.Scoring.AdjacencyDiscount >= 1 {
		logger.Warn(
			"AdjacencyDiscount is large enough to override count balance",
			"adjacencyDiscount", cfg.Scoring.AdjacencyDiscount,
			"recommended", "well below 1",
		)
	}

	if len(cfg.BayPrefixes) == 0 {
		logger.Warn("no bay prefixes configured; every room is its own group")
	}
}

// Location resolves the configured display zone.
//
// Returns:
//   - *time.Location: Display zone
//   - error: Non-nil if Timezone cannot be loaded
func (cfg *Config) Location() (*time.Location, error) {
	return time.LoadLocation(cfg.Timezone)
}

// ParseConfig decodes a YAML configuration on top of DefaultConfig().
//
// Keys missing from the document keep their default; keys present, including an
// explicit 0, replace it. Unknown keys are rejected so typos do not silently fall
// back to defaults.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - *Config: Decoded configuration with defaults applied
//   - error: ErrInvalidConfig wrapping the decode or validation failure
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - *Config: Decoded configuration with defaults applied
//   - error: Read error, or ErrInvalidConfig on bad content
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return ParseConfig(data)
}

// TestConfig returns a configuration for tests: defaults with the cache enabled
// and a small bound so eviction paths are exercised.
//
// Returns:
//   - Config: Configuration for tests
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.MaxEntries = 4

	return cfg
}

func (cfg *Config) weights() enrich.Weights {
	return enrich.Weights{
		Base:      cfg.Workload.Base,
		Discharge: cfg.Workload.Discharge,
		BabyInSCN: cfg.Workload.BabyInSCN,
		Gyn:       cfg.Workload.Gyn,
		BFI:       cfg.Workload.BFI,
		CS:        cfg.Workload.CS,
		Vag:       cfg.Workload.Vag,
		Floor:     cfg.Workload.Floor,
	}
}
