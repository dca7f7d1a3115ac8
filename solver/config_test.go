// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1000, cfg.MaxIterations)
	assert.InDelta(t, 1e-4, cfg.Tolerance, 0)
	assert.InDelta(t, 0.99, cfg.Discount, 0)
	assert.NoError(t, cfg.check())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solve.yaml")
	doc := `
max_iterations: 250
discount: 0.9
workers: 3
state_discretization:
  x: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.MaxIterations)
	assert.InDelta(t, 0.9, cfg.Discount, 0)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, map[string]float64{"x": 0.5}, cfg.StateDiscretization)

	// Absent keys keep their defaults.
	assert.InDelta(t, 1e-4, cfg.Tolerance, 0)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_iterations: [nope"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigWorkersResolution(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 6
	assert.Equal(t, 6, cfg.workers())

	cfg.Workers = 0
	assert.GreaterOrEqual(t, cfg.workers(), 1)
}

func TestConfigProbeResolution(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, defaultProbeSamples, cfg.probeSamples())
	cfg.ProbeSamples = 99
	assert.Equal(t, 99, cfg.probeSamples())

	cfg.Seed = 42
	assert.Equal(t, int64(42), cfg.seed())
	cfg.Seed = 0
	assert.NotZero(t, cfg.seed())
}
