// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdpkit/mdpkit/solver"
)

func TestApplySolveOverridesFromEnv(t *testing.T) {
	t.Setenv("MDPKIT_WORKERS", "3")
	t.Setenv("MDPKIT_DISCOUNT", "0.5")

	cfg := solver.DefaultConfig()
	applySolveOverrides(solveCmd, &cfg)

	assert.Equal(t, 3, cfg.Workers)
	assert.InDelta(t, 0.5, cfg.Discount, 0)
	// Untouched settings keep their defaults.
	assert.Equal(t, 1000, cfg.MaxIterations)
}

func TestApplySolveOverridesFlagBeatsEnv(t *testing.T) {
	t.Setenv("MDPKIT_WORKERS", "3")
	require.NoError(t, solveCmd.Flags().Set("workers", "5"))

	cfg := solver.DefaultConfig()
	applySolveOverrides(solveCmd, &cfg)

	assert.Equal(t, 5, cfg.Workers)
}
