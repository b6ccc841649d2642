// SPDX-License-Identifier: MIT
// Package: lvraster/engine
//
// config.go: evaluator settings, deterministic defaults and YAML config.
//
// Deterministic defaults:
//   • log          = logrus logger writing to io.Discard at Warn
//   • memoize      = true
//   • eigenTol     = algebra.DefaultEigenTolerance
//   • eigenSweeps  = algebra.DefaultEigenMaxSweeps
//   • pinvTol      = 0 (matrix default)
//   • defaultScale = 0 (raster cell size)

package engine

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/katalvlaran/lvraster/algebra"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// settings aggregates every evaluator knob.
type settings struct {
	log          logrus.FieldLogger
	memoize      bool
	eigenTol     float64
	eigenSweeps  int
	pinvTol      float64
	defaultScale float64
}

func newSettings(opts ...Option) settings {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	quiet.SetLevel(logrus.WarnLevel)

	s := settings{
		log:         quiet,
		memoize:     true,
		eigenTol:    algebra.DefaultEigenTolerance,
		eigenSweeps: algebra.DefaultEigenMaxSweeps,
	}
	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// Config is the file form of the evaluator options:
//
//	memoize: true
//	eigen:
//	  tolerance: 1e-12
//	  max_sweeps: 10000
//	pinv:
//	  tolerance: 1e-10
//	default_scale: 30
//	log_level: debug
//
// Omitted fields keep their defaults.
type Config struct {
	Memoize *bool `yaml:"memoize"`
	Eigen   struct {
		Tolerance float64 `yaml:"tolerance"`
		MaxSweeps int     `yaml:"max_sweeps"`
	} `yaml:"eigen"`
	Pinv struct {
		Tolerance float64 `yaml:"tolerance"`
	} `yaml:"pinv"`
	DefaultScale float64 `yaml:"default_scale"`
	LogLevel     string  `yaml:"log_level"`
}

// LoadConfig decodes and validates a YAML config. Unknown keys are errors.
func LoadConfig(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("engine: decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// LoadConfigFile is LoadConfig over the file at path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("engine: open config: %w", err)
	}
	defer f.Close()

	return LoadConfig(f)
}

// Validate checks every set field against its option's domain.
func (c *Config) Validate() error {
	bad := func(field string, v any) error {
		return fmt.Errorf("%s = %v: %w", field, v, ErrInvalidConfig)
	}
	if t := c.Eigen.Tolerance; t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return bad("eigen.tolerance", t)
	}
	if c.Eigen.MaxSweeps < 0 {
		return bad("eigen.max_sweeps", c.Eigen.MaxSweeps)
	}
	if t := c.Pinv.Tolerance; t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return bad("pinv.tolerance", t)
	}
	if s := c.DefaultScale; s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return bad("default_scale", s)
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return bad("log_level", c.LogLevel)
		}
	}

	return nil
}

// Options converts the config into evaluator options. A log_level yields a
// logger writing to stderr at that level.
func (c *Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var opts []Option
	if c.Memoize != nil {
		opts = append(opts, WithMemoization(*c.Memoize))
	}
	if c.Eigen.Tolerance > 0 {
		opts = append(opts, WithEigenTolerance(c.Eigen.Tolerance))
	}
	if c.Eigen.MaxSweeps > 0 {
		opts = append(opts, WithEigenMaxSweeps(c.Eigen.MaxSweeps))
	}
	if c.Pinv.Tolerance > 0 {
		opts = append(opts, WithPinvTolerance(c.Pinv.Tolerance))
	}
	if c.DefaultScale > 0 {
		opts = append(opts, WithDefaultScale(c.DefaultScale))
	}
	if c.LogLevel != "" {
		lvl, _ := logrus.ParseLevel(c.LogLevel)
		log := logrus.New()
		log.SetLevel(lvl)
		opts = append(opts, WithLogger(log))
	}

	return opts, nil
}
