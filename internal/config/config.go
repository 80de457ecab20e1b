package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/dpup/georuler/internal/lib/angle"
	"github.com/dpup/georuler/internal/lib/ellipsoid"
)

// EnvPrefix marks environment variables read by Load. A double underscore
// separates nesting levels: GEORULER_RULER__REFERENCE_LATITUDE.
const EnvPrefix = "GEORULER_"

// CustomEllipsoid selects the semi_major_axis and flattening settings instead of a preset
const CustomEllipsoid = "custom"

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the complete ruler configuration
type Config struct {
	Ruler    RulerConfig    `koanf:"ruler" yaml:"ruler"`
	Sampling SamplingConfig `koanf:"sampling" yaml:"sampling"`
	Logging  LoggingConfig  `koanf:"logging" yaml:"logging"`
}

// RulerConfig selects the ellipsoid, reference latitude and arc tangent strategy.
// With AutoReference the latitude of the first input point is used instead of
// ReferenceLatitude.
type RulerConfig struct {
	Ellipsoid         string  `koanf:"ellipsoid" yaml:"ellipsoid"`
	SemiMajorAxis     float64 `koanf:"semi_major_axis" yaml:"semi_major_axis,omitempty"`
	Flattening        float64 `koanf:"flattening" yaml:"flattening,omitempty"`
	ReferenceLatitude float64 `koanf:"reference_latitude" yaml:"reference_latitude"`
	AutoReference     bool    `koanf:"auto_reference" yaml:"auto_reference"`
	AngleStrategy     string  `koanf:"angle_strategy" yaml:"angle_strategy"`
}

// SamplingConfig holds PointsAlongLine defaults
type SamplingConfig struct {
	MaxSpacingMeters float64 `koanf:"max_spacing_meters" yaml:"max_spacing_meters"`
	IncludeEndpoints bool    `koanf:"include_endpoints" yaml:"include_endpoints"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string `koanf:"level" yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Ruler: RulerConfig{
			Ellipsoid:     ellipsoid.WGS84().Name(),
			AutoReference: true,
			AngleStrategy: angle.Default.String(),
		},
		Sampling: SamplingConfig{
			MaxSpacingMeters: 50,
			IncludeEndpoints: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func defaultValues() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"ruler.ellipsoid":             d.Ruler.Ellipsoid,
		"ruler.semi_major_axis":       d.Ruler.SemiMajorAxis,
		"ruler.flattening":            d.Ruler.Flattening,
		"ruler.reference_latitude":    d.Ruler.ReferenceLatitude,
		"ruler.auto_reference":        d.Ruler.AutoReference,
		"ruler.angle_strategy":        d.Ruler.AngleStrategy,
		"sampling.max_spacing_meters": d.Sampling.MaxSpacingMeters,
		"sampling.include_endpoints":  d.Sampling.IncludeEndpoints,
		"logging.level":               d.Logging.Level,
	}
}

// Load layers the defaults, the YAML file at path (skipped when path is empty)
// and GEORULER_ environment variables, then validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps GEORULER_SAMPLING__MAX_SPACING_METERS to sampling.max_spacing_meters
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks every setting without building anything
func (c *Config) Validate() error {
	if _, err := c.Model(); err != nil {
		return err
	}
	if lat := c.Ruler.ReferenceLatitude; !(lat >= -90 && lat <= 90) {
		return fmt.Errorf("%w: ruler.reference_latitude %v must be in [-90, 90]", ErrInvalidConfig, lat)
	}
	if _, err := c.Strategy(); err != nil {
		return err
	}
	if s := c.Sampling.MaxSpacingMeters; !(s > 0) || math.IsInf(s, 0) {
		return fmt.Errorf("%w: sampling.max_spacing_meters %v must be positive and finite", ErrInvalidConfig, s)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Model resolves the configured preset, or builds the custom ellipsoid
func (c *Config) Model() (ellipsoid.Model, error) {
	if strings.EqualFold(strings.TrimSpace(c.Ruler.Ellipsoid), CustomEllipsoid) {
		m, err := ellipsoid.New(c.Ruler.SemiMajorAxis, c.Ruler.Flattening)
		if err != nil {
			return ellipsoid.Model{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return m, nil
	}

	m, ok := ellipsoid.Lookup(c.Ruler.Ellipsoid)
	if !ok {
		return ellipsoid.Model{}, fmt.Errorf("%w: unknown ruler.ellipsoid %q", ErrInvalidConfig, c.Ruler.Ellipsoid)
	}
	return m, nil
}

// Strategy parses ruler.angle_strategy
func (c *Config) Strategy() (angle.Strategy, error) {
	s, err := angle.ParseStrategy(c.Ruler.AngleStrategy)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return s, nil
}

// YAML renders the effective configuration
func (c *Config) YAML() ([]byte, error) {
	return yamlv3.Marshal(c)
}
