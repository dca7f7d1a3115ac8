// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config controls a single solve. Immutable once solving starts.
//
// The zero value is not usable; start from DefaultConfig and override.
type Config struct {
	// MaxIterations caps the number of Bellman backups. Hitting the cap is
	// a normal terminal state (finite-horizon solves rely on it together
	// with Discount = 1), not an error.
	MaxIterations int `yaml:"max_iterations" validate:"gt=0"`

	// Tolerance is the infinity-norm residual below which the value table
	// is considered converged.
	Tolerance float64 `yaml:"tolerance" validate:"gt=0"`

	// Discount is the per-step discount factor in (0, 1]. A discount of 1
	// is only meaningful for finite-horizon use, where termination comes
	// from MaxIterations.
	Discount float64 `yaml:"discount" validate:"gt=0,lte=1"`

	// Verbose enables per-iteration progress logging.
	Verbose bool `yaml:"verbose"`

	// StateDiscretization maps each continuous state variable to its grid
	// step. Every range-typed state variable must have an entry.
	StateDiscretization map[string]float64 `yaml:"state_discretization"`

	// ActionDiscretization maps each continuous action variable to its
	// grid step. Every range-typed action variable must have an entry.
	ActionDiscretization map[string]float64 `yaml:"action_discretization"`

	// Workers is the backup worker count. 0 resolves once, at solve start,
	// to half the detected logical cores (approximating physical cores),
	// with a floor of 1. 1 forces the serial path.
	Workers int `yaml:"workers" validate:"gte=0"`

	// ProbeSamples is the number of random (state, action) draws used by
	// the statistical transition probe during validation. 0 resolves to
	// the default of 16.
	ProbeSamples int `yaml:"probe_samples" validate:"gte=0"`

	// Seed seeds the probe's random source. 0 resolves to a time-derived
	// seed; set it explicitly for reproducible validation.
	Seed int64 `yaml:"seed"`
}

// defaultProbeSamples is the probe draw count when Config.ProbeSamples is 0.
const defaultProbeSamples = 16

// DefaultConfig returns an infinite-horizon configuration with conservative
// convergence controls.
func DefaultConfig() Config {
	return Config{
		MaxIterations: 1000,
		Tolerance:     1e-4,
		Discount:      0.99,
	}
}

// LoadConfig reads a Config from a YAML file, starting from DefaultConfig
// so absent keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

var validate = validator.New()

// check verifies the configuration's structural constraints.
func (c Config) check() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// workers resolves the effective worker count. Ambient core counts are read
// exactly once here, never during iteration.
func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	n := runtime.NumCPU() / 2
	if n < 1 {
		n = 1
	}
	return n
}

// probeSamples resolves the effective probe draw count.
func (c Config) probeSamples() int {
	if c.ProbeSamples > 0 {
		return c.ProbeSamples
	}
	return defaultProbeSamples
}

// seed resolves the probe RNG seed.
func (c Config) seed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
