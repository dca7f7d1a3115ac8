// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package problems

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdpkit/mdpkit/mdp"
	"github.com/mdpkit/mdpkit/solver"
)

func TestInventoryPolicy(t *testing.T) {
	p := Inventory()
	cfg := p.Config
	cfg.Seed = 7

	sol, err := solver.Solve(context.Background(), p.Model, cfg)
	require.NoError(t, err)
	require.Equal(t, solver.StatusConverged, sol.Status)

	policy := sol.Policy()

	// Empty shelf: paying the restock cost beats selling nothing forever.
	action, err := policy([]mdp.Value{mdp.Num(0)})
	require.NoError(t, err)
	assert.Equal(t, "restock", action[0].Label)

	// Full shelf: restocking is pure cost, the extra units are clamped away.
	action, err = policy([]mdp.Value{mdp.Num(stockMax)})
	require.NoError(t, err)
	assert.Equal(t, "none", action[0].Label)

	// More stock is worth more.
	vFull, err := sol.Value([]mdp.Value{mdp.Num(stockMax)})
	require.NoError(t, err)
	vEmpty, err := sol.Value([]mdp.Value{mdp.Num(0)})
	require.NoError(t, err)
	assert.Greater(t, vFull, vEmpty)
	assert.InDelta(t, 16.66, vFull, 0.05)
}
