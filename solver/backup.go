// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"fmt"
	"math"

	"github.com/mdpkit/mdpkit/mdp"
)

// engine performs Bellman backups over the discretized state and action
// grids. All fields are read-only after construction, so one engine can be
// shared by every worker of a parallel backup.
type engine struct {
	model    *mdp.Model
	conv     Convention
	states   *mdp.Space
	actions  *mdp.Space
	discount float64
	interp   *interpolator
}

func newEngine(m *mdp.Model, conv Convention, states, actions *mdp.Space, discount float64) *engine {
	return &engine{
		model:    m,
		conv:     conv,
		states:   states,
		actions:  actions,
		discount: discount,
		interp:   newInterpolator(states),
	}
}

// backup runs one full serial Bellman backup against vPrev.
//
// Outputs:
//   - q: Q-table, row-major over (state index, action index).
//   - v: next value table, v[i] = max_a q[i*nA+a].
//   - residual: infinity norm of v - vPrev.
//
// The backup reads only its inputs; calling it twice with the same vPrev
// yields bit-identical tables.
func (e *engine) backup(vPrev []float64) (q, v []float64, residual float64, err error) {
	nS, nA := e.states.Size(), e.actions.Size()
	q = make([]float64, nS*nA)
	v = make([]float64, nS)
	residual, err = e.backupRange(0, nS, vPrev, q, v)
	if err != nil {
		return nil, nil, 0, err
	}
	return q, v, residual, nil
}

// backupRange computes Q rows and values for states [lo, hi), writing into
// q (row-major, indexed from lo) and v (indexed from lo). Returns the
// partial residual over the range.
//
// Thread Safety: Safe to call concurrently on disjoint ranges; all scratch
// is local, and engine state plus vPrev are only read.
func (e *engine) backupRange(lo, hi int, vPrev, q, v []float64) (float64, error) {
	nA := e.actions.Size()
	nSV, nAV := e.states.NumVars(), e.actions.NumVars()

	// One args buffer sized for the widest calling convention; the reward
	// and T(s,a) calls see the state++action prefix only.
	nBase := nSV + nAV
	nArgs := nBase
	if e.conv == ConventionProb {
		nArgs += nSV
	}
	args := make([]mdp.Value, nArgs)

	residual := 0.0
	for i := lo; i < hi; i++ {
		e.states.PointInto(i, args[:nSV])
		best := math.Inf(-1)

		for a := 0; a < nA; a++ {
			e.actions.PointInto(a, args[nSV:nBase])

			reward := e.model.Reward(args[:nBase])
			cont, err := e.continuation(args, vPrev)
			if err != nil {
				return 0, err
			}

			qv := reward + e.discount*cont
			q[(i-lo)*nA+a] = qv
			if qv > best {
				best = qv
			}
		}

		v[i-lo] = best
		if d := math.Abs(best - vPrev[i]); d > residual {
			residual = d
		}
	}
	return residual, nil
}

// continuation computes the expected continuation value for the (state,
// action) pair currently encoded in args.
func (e *engine) continuation(args []mdp.Value, vPrev []float64) (float64, error) {
	nBase := e.states.NumVars() + e.actions.NumVars()

	switch e.conv {
	case ConventionDist:
		// Sparse path: the callable enumerates its own successors; any
		// off-grid successor is interpolated against the state grid.
		cont := 0.0
		for _, w := range e.model.TransitionDist(args[:nBase]) {
			if w.Prob == 0 {
				continue
			}
			val, err := e.interp.value(w.State, vPrev)
			if err != nil {
				return 0, fmt.Errorf("%w: %v", ErrTransitionBounds, err)
			}
			cont += w.Prob * val
		}
		return cont, nil

	case ConventionProb:
		// Dense path: one scalar per explicit (s,a,s') triple means the
		// full successor grid is enumerated per pair. Expensive; the
		// sparse convention is preferred for large grids.
		cont := 0.0
		succ := args[nBase:]
		for j := 0; j < e.states.Size(); j++ {
			e.states.PointInto(j, succ)
			if p := e.model.TransitionProb(args); p != 0 {
				cont += p * vPrev[j]
			}
		}
		return cont, nil

	default:
		return 0, fmt.Errorf("%w: unresolved convention %v", ErrTransitionShape, e.conv)
	}
}
