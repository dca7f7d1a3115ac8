// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdpkit/mdpkit/mdp"
)

// fixedSolution hand-builds a Solution over a 3-point state grid and a
// 2-label action grid with a known Q-table.
func fixedSolution(t *testing.T, q []float64) *Solution {
	t.Helper()
	states, err := mdp.NewSpace(
		[]mdp.Variable{mdp.RangeVar("x", 0, 10)},
		map[string]float64{"x": 5},
	)
	require.NoError(t, err)
	actions, err := mdp.NewSpace(
		[]mdp.Variable{mdp.ValuesVar("a", "first", "second")},
		nil,
	)
	require.NoError(t, err)
	return newSolution(q, states, actions, 1, 0, time.Millisecond, StatusConverged)
}

func TestQValuesInterpolatesPerAction(t *testing.T) {
	// Rows (state-major): x=0 -> (0, 10), x=5 -> (4, 6), x=10 -> (8, 2).
	sol := fixedSolution(t, []float64{0, 10, 4, 6, 8, 2})

	qs, err := sol.QValues([]mdp.Value{mdp.Num(2.5)})
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.InDelta(t, 2.0, qs[0], 1e-12) // (0+4)/2
	assert.InDelta(t, 8.0, qs[1], 1e-12) // (10+6)/2
}

func TestPolicyArgMax(t *testing.T) {
	sol := fixedSolution(t, []float64{0, 10, 4, 6, 8, 2})
	policy := sol.Policy()

	tests := []struct {
		x    float64
		want string
	}{
		{0, "second"},
		{5, "second"},
		{10, "first"},
		{7.5, "first"},  // Q: (6, 4)
		{-99, "second"}, // clamped to x=0
	}

	for _, tt := range tests {
		action, err := policy([]mdp.Value{mdp.Num(tt.x)})
		require.NoError(t, err)
		assert.Equal(t, tt.want, action[0].Label, "x=%g", tt.x)
	}
}

func TestPolicyTieBreaksFirstDeclared(t *testing.T) {
	// Identical Q rows: the first-declared action must win everywhere.
	sol := fixedSolution(t, []float64{3, 3, 3, 3, 3, 3})
	policy := sol.Policy()

	for _, x := range []float64{0, 2.5, 5, 10} {
		action, err := policy([]mdp.Value{mdp.Num(x)})
		require.NoError(t, err)
		assert.Equal(t, "first", action[0].Label, "x=%g", x)
	}
}

func TestPolicyRejectsUnknownLabel(t *testing.T) {
	states, err := mdp.NewSpace(
		[]mdp.Variable{mdp.ValuesVar("s", "one", "two")},
		nil,
	)
	require.NoError(t, err)
	actions, err := mdp.NewSpace(
		[]mdp.Variable{mdp.ValuesVar("a", "go")},
		nil,
	)
	require.NoError(t, err)
	sol := newSolution([]float64{1, 2}, states, actions, 1, 0, time.Millisecond, StatusConverged)

	_, err = sol.Policy()([]mdp.Value{mdp.Label("three")})
	assert.ErrorIs(t, err, mdp.ErrUnknownLabel)
}
