// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"math"
	"time"

	"github.com/mdpkit/mdpkit/mdp"
)

// Status is the terminal state of a solve. Both values accompany a usable
// Solution; StatusMaxIterations is a diagnostic, not an error.
type Status int

const (
	// StatusConverged means the residual fell below the tolerance.
	StatusConverged Status = iota

	// StatusMaxIterations means the iteration cap was reached first.
	// Finite-horizon solves with discount 1 terminate this way by design.
	StatusMaxIterations
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusMaxIterations:
		return "max_iterations"
	default:
		return "unknown"
	}
}

// Solution is the immutable result of a solve: the final Q-table over the
// discretized state and action grids plus run diagnostics. Produced once by
// Solve and never mutated afterwards.
type Solution struct {
	// Q is the Q-table, row-major over (state index, action index).
	Q []float64

	// States and Actions are the discretized grids the table is indexed by.
	States  *mdp.Space
	Actions *mdp.Space

	// Iterations is the number of Bellman backups run.
	Iterations int

	// Residual is the final infinity-norm residual.
	Residual float64

	// Elapsed is the wall-clock solve duration.
	Elapsed time.Duration

	// Status reports how the solve terminated.
	Status Status

	interp *interpolator
}

func newSolution(q []float64, states, actions *mdp.Space, iterations int, residual float64, elapsed time.Duration, status Status) *Solution {
	return &Solution{
		Q:          q,
		States:     states,
		Actions:    actions,
		Iterations: iterations,
		Residual:   residual,
		Elapsed:    elapsed,
		Status:     status,
		interp:     newInterpolator(states),
	}
}

// QValues returns Q(state, a) for every discretized action, in action grid
// order. Off-grid range coordinates are interpolated with the same clamped
// multilinear rule the backup uses.
func (s *Solution) QValues(state []mdp.Value) ([]float64, error) {
	nA := s.Actions.Size()
	out := make([]float64, nA)
	for a := 0; a < nA; a++ {
		val, err := s.interp.valueFunc(state, func(i int) float64 {
			return s.Q[i*nA+a]
		})
		if err != nil {
			return nil, err
		}
		out[a] = val
	}
	return out, nil
}

// Value returns the state value max_a Q(state, a).
func (s *Solution) Value(state []mdp.Value) (float64, error) {
	qs, err := s.QValues(state)
	if err != nil {
		return 0, err
	}
	best := math.Inf(-1)
	for _, q := range qs {
		if q > best {
			best = q
		}
	}
	return best, nil
}

// Policy returns the greedy policy over the solved Q-table.
//
// The returned function maps a possibly-continuous query state to the
// arg-max action tuple. Ties break toward the first-declared action in the
// action grid's order, deterministically.
func (s *Solution) Policy() func(state []mdp.Value) ([]mdp.Value, error) {
	return func(state []mdp.Value) ([]mdp.Value, error) {
		qs, err := s.QValues(state)
		if err != nil {
			return nil, err
		}
		best := 0
		for a := 1; a < len(qs); a++ {
			if qs[a] > qs[best] {
				best = a
			}
		}
		return s.Actions.Point(best), nil
	}
}
