// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdpkit/mdpkit/mdp"
)

// buildEngine validates the model and wires an engine the way Solve does.
func buildEngine(t *testing.T, m *mdp.Model, cfg Config) *engine {
	t.Helper()
	rep, err := Validate(m, cfg)
	require.NoError(t, err)
	states, err := mdp.NewSpace(m.StateVars, cfg.StateDiscretization)
	require.NoError(t, err)
	actions, err := mdp.NewSpace(m.ActionVars, cfg.ActionDiscretization)
	require.NoError(t, err)
	return newEngine(m, rep.Convention, states, actions, cfg.Discount)
}

// selfLoopModel is the smallest contractive fixture: one label state, one
// action, reward 1 every step. Closed form: V* = 1/(1-discount).
func selfLoopModel() *mdp.Model {
	return &mdp.Model{
		StateVars:      []mdp.Variable{mdp.ValuesVar("s", "only")},
		ActionVars:     []mdp.Variable{mdp.ValuesVar("a", "stay")},
		TransitionArgs: []string{"s", "a"},
		RewardArgs:     []string{"s", "a"},
		TransitionDist: func(args []mdp.Value) []mdp.Weighted {
			return []mdp.Weighted{{State: []mdp.Value{mdp.Label("only")}, Prob: 1}}
		},
		Reward: func(args []mdp.Value) float64 { return 1 },
	}
}

func TestBackupIdempotent(t *testing.T) {
	cfg := chainConfig()
	e := buildEngine(t, chainModel(), cfg)

	vPrev := make([]float64, e.states.Size())
	for i := range vPrev {
		vPrev[i] = float64(i) * 0.25
	}

	q1, v1, r1, err := e.backup(vPrev)
	require.NoError(t, err)
	q2, v2, r2, err := e.backup(vPrev)
	require.NoError(t, err)

	// Bit-identical: no hidden mutable state between backups.
	assert.Equal(t, q1, q2)
	assert.Equal(t, v1, v2)
	assert.Equal(t, r1, r2)
}

func TestBackupClosedForm(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Discount = 0.5
	cfg.Seed = 7
	e := buildEngine(t, selfLoopModel(), cfg)

	// V_{k+1} = 1 + 0.5 V_k from V_0 = 0: 1, 1.5, 1.75, ... -> 2.
	v := make([]float64, 1)
	want := 0.0
	for i := 0; i < 20; i++ {
		want = 1 + 0.5*want
		var err error
		_, v, _, err = e.backup(v)
		require.NoError(t, err)
		assert.InDelta(t, want, v[0], 1e-12)
	}
	assert.InDelta(t, 2.0, v[0], 1e-5)
}

func TestBackupResidualNonIncreasing(t *testing.T) {
	cfg := chainConfig()
	cfg.Discount = 0.9
	e := buildEngine(t, chainModel(), cfg)

	// Contractive operator: the max-norm residual shrinks every sweep.
	v := make([]float64, e.states.Size())
	prev := 0.0
	for i := 0; i < 30; i++ {
		var residual float64
		var err error
		_, v, residual, err = e.backup(v)
		require.NoError(t, err)
		if i > 0 {
			assert.LessOrEqual(t, residual, prev+1e-12, "iteration %d", i)
		}
		prev = residual
	}
}

func TestBackupDensePathMatchesSparse(t *testing.T) {
	// The same deterministic chain expressed in both conventions must
	// produce the same tables.
	cfg := chainConfig()

	sparse := buildEngine(t, chainModel(), cfg)

	dense := chainModel()
	dense.TransitionDist = nil
	dense.TransitionArgs = []string{"x", "dir", "x"}
	dense.TransitionProb = func(args []mdp.Value) float64 {
		x := args[0].Num
		if args[1].Label == "left" {
			x--
		} else {
			x++
		}
		if x < 0 {
			x = 0
		}
		if x > 10 {
			x = 10
		}
		if args[2].Num == x {
			return 1
		}
		return 0
	}
	densE := buildEngine(t, dense, cfg)

	vPrev := make([]float64, sparse.states.Size())
	for i := range vPrev {
		vPrev[i] = float64(i)
	}

	qs, vs, rs, err := sparse.backup(vPrev)
	require.NoError(t, err)
	qd, vd, rd, err := densE.backup(vPrev)
	require.NoError(t, err)

	assert.InDeltaSlice(t, qs, qd, 1e-12)
	assert.InDeltaSlice(t, vs, vd, 1e-12)
	assert.InDelta(t, rs, rd, 1e-12)
}

func TestBackupInterpolatesOffGridSuccessor(t *testing.T) {
	// A transition landing between grid points must blend the neighboring
	// values instead of snapping.
	m := &mdp.Model{
		StateVars:      []mdp.Variable{mdp.RangeVar("x", 0, 10)},
		ActionVars:     []mdp.Variable{mdp.ValuesVar("a", "go")},
		TransitionArgs: []string{"x", "a"},
		RewardArgs:     []string{"x", "a"},
		TransitionDist: func(args []mdp.Value) []mdp.Weighted {
			// Always jump to 7.5, halfway between grid points 5 and 10.
			return []mdp.Weighted{{State: []mdp.Value{mdp.Num(7.5)}, Prob: 1}}
		},
		Reward: func(args []mdp.Value) float64 { return 0 },
	}
	cfg := DefaultConfig()
	cfg.Discount = 1
	cfg.Seed = 7
	cfg.StateDiscretization = map[string]float64{"x": 5}

	e := buildEngine(t, m, cfg)
	vPrev := []float64{0, 40, 80} // grid 0, 5, 10

	_, v, _, err := e.backup(vPrev)
	require.NoError(t, err)
	for i := range v {
		assert.InDelta(t, 60.0, v[i], 1e-12) // (40+80)/2
	}
}
