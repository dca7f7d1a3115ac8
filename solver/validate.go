// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"slices"

	"github.com/mdpkit/mdpkit/mdp"
)

// Convention identifies which transition calling convention a model uses.
// It is resolved once during validation and dispatched on thereafter.
type Convention int

const (
	// ConventionDist is the sparse T(s,a) form returning a distribution.
	ConventionDist Convention = iota

	// ConventionProb is the dense T(s,a,s') form returning one scalar.
	ConventionProb
)

// String returns the conventional notation for the convention.
func (c Convention) String() string {
	switch c {
	case ConventionDist:
		return "T(s,a)"
	case ConventionProb:
		return "T(s,a,s')"
	default:
		return fmt.Sprintf("convention(%d)", int(c))
	}
}

// probMassTol is the slack allowed before a distribution's probability mass
// is flagged as not summing to 1.
const probMassTol = 1e-6

// Report carries the outcome of a successful validation: the resolved
// transition convention and any soft diagnostics the probe produced.
type Report struct {
	// Convention is the transition calling convention the model was
	// resolved to.
	Convention Convention

	// Warnings are non-fatal probe diagnostics. Single-sample checks can
	// misfire on unreachable or degenerate states, so these never abort
	// solving.
	Warnings []string
}

// Validate checks that (model, config) form a solvable pair.
//
// Description:
//
//	Runs the fail-fast check sequence: configuration constraints, variable
//	declarations, discretization coverage, transition/reward argument-order
//	consistency, then the statistical transition probe. Each failure wraps
//	a distinct sentinel (ErrInvalidConfig, mdp.ErrInvalidVariable,
//	mdp.ErrDiscretization, ErrConsistency, ErrTransitionShape,
//	ErrTransitionBounds) so callers can branch on the kind.
//
// Outputs:
//   - *Report: Resolved convention and probe warnings, on success.
//   - error: The first failed check.
func Validate(m *mdp.Model, cfg Config) (*Report, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	if err := checkVariables(m); err != nil {
		return nil, err
	}
	if err := checkDiscretization(m.StateVars, cfg.StateDiscretization, "state"); err != nil {
		return nil, err
	}
	if err := checkDiscretization(m.ActionVars, cfg.ActionDiscretization, "action"); err != nil {
		return nil, err
	}
	conv, err := resolveConvention(m)
	if err != nil {
		return nil, err
	}
	if err := checkArgOrder(m, conv); err != nil {
		return nil, err
	}

	rep := &Report{Convention: conv}
	if err := probeTransition(m, cfg, conv, rep); err != nil {
		return nil, err
	}
	for _, w := range rep.Warnings {
		slog.Warn("transition probe diagnostic", slog.String("detail", w))
	}
	return rep, nil
}

// checkVariables verifies every declaration and name uniqueness within each
// namespace.
func checkVariables(m *mdp.Model) error {
	for _, vars := range [][]mdp.Variable{m.StateVars, m.ActionVars} {
		seen := make(map[string]struct{}, len(vars))
		for _, v := range vars {
			if err := v.Check(); err != nil {
				return err
			}
			if _, dup := seen[v.Name]; dup {
				return fmt.Errorf("%w: duplicate variable name %q", mdp.ErrInvalidVariable, v.Name)
			}
			seen[v.Name] = struct{}{}
		}
	}
	if len(m.StateVars) == 0 {
		return fmt.Errorf("%w: model declares no state variables", mdp.ErrInvalidVariable)
	}
	if len(m.ActionVars) == 0 {
		return fmt.Errorf("%w: model declares no action variables", mdp.ErrInvalidVariable)
	}
	return nil
}

// checkDiscretization verifies every range variable has a usable step entry.
func checkDiscretization(vars []mdp.Variable, disc map[string]float64, ns string) error {
	for _, v := range vars {
		if v.Kind != mdp.KindRange {
			continue
		}
		step, ok := disc[v.Name]
		if !ok {
			return fmt.Errorf("%w: %s variable %s has no discretization step", mdp.ErrDiscretization, ns, v.Name)
		}
		if step <= 0 || step > v.Max-v.Min {
			return fmt.Errorf("%w: %s variable %s: step %g outside (0, %g]", mdp.ErrDiscretization, ns, v.Name, step, v.Max-v.Min)
		}
	}
	return nil
}

// resolveConvention maps the populated transition field to its convention.
func resolveConvention(m *mdp.Model) (Convention, error) {
	switch {
	case m.Reward == nil:
		return 0, fmt.Errorf("%w: reward function is nil", ErrTransitionShape)
	case m.TransitionDist != nil && m.TransitionProb != nil:
		return 0, fmt.Errorf("%w: both TransitionDist and TransitionProb are set", ErrTransitionShape)
	case m.TransitionDist != nil:
		return ConventionDist, nil
	case m.TransitionProb != nil:
		return ConventionProb, nil
	default:
		return 0, fmt.Errorf("%w: neither TransitionDist nor TransitionProb is set", ErrTransitionShape)
	}
}

// checkArgOrder enforces the concatenation rule on declared argument names:
// reward args are state ++ action; transition args are the same sequence,
// extended by the state names again under the T(s,a,s') convention.
func checkArgOrder(m *mdp.Model, conv Convention) error {
	base := append(append([]string{}, m.StateNames()...), m.ActionNames()...)

	if !slices.Equal(m.RewardArgs, base) {
		return fmt.Errorf("%w: reward args %v, want state++action %v", ErrConsistency, m.RewardArgs, base)
	}

	want := base
	if conv == ConventionProb {
		want = append(append([]string{}, base...), m.StateNames()...)
	}
	if !slices.Equal(m.TransitionArgs, want) {
		return fmt.Errorf("%w: transition args %v, want %v for %s", ErrConsistency, m.TransitionArgs, want, conv)
	}
	return nil
}

// probeTransition statistically probes the transition function with random
// (state, action) assignments. Structural violations are fatal; single-
// sample numeric oddities are recorded as warnings on rep.
func probeTransition(m *mdp.Model, cfg Config, conv Convention, rep *Report) error {
	rng := rand.New(rand.NewSource(cfg.seed()))

	for i := 0; i < cfg.probeSamples(); i++ {
		args := sampleVars(rng, m.StateVars)
		args = append(args, sampleVars(rng, m.ActionVars)...)

		switch conv {
		case ConventionProb:
			args = append(args, sampleVars(rng, m.StateVars)...)
			p := m.TransitionProb(args)
			if p < 0 || p > 1 || math.IsNaN(p) {
				// The sampled triple may simply be unreachable; a single
				// probe cannot tell a broken model from a sparse one.
				rep.Warnings = append(rep.Warnings,
					fmt.Sprintf("T(s,a,s') returned probability %g outside [0,1] at %s", p, mdp.FormatPoint(args)))
			}

		case ConventionDist:
			dist := m.TransitionDist(args)
			if dist == nil {
				return fmt.Errorf("%w: T(s,a) returned no distribution at %s", ErrTransitionShape, mdp.FormatPoint(args))
			}
			mass := 0.0
			for _, w := range dist {
				if err := checkSuccessor(m.StateVars, w); err != nil {
					return err
				}
				mass += w.Prob
			}
			if math.Abs(mass-1) > probMassTol {
				rep.Warnings = append(rep.Warnings,
					fmt.Sprintf("T(s,a) probability mass sums to %g at %s", mass, mdp.FormatPoint(args)))
			}
		}
	}
	return nil
}

// checkSuccessor verifies one (state, probability) pair against the declared
// state variables. Violations here are structural contract breakages.
func checkSuccessor(vars []mdp.Variable, w mdp.Weighted) error {
	if len(w.State) != len(vars) {
		return fmt.Errorf("%w: successor %s has arity %d, want %d",
			ErrTransitionBounds, mdp.FormatPoint(w.State), len(w.State), len(vars))
	}
	if w.Prob < 0 || w.Prob > 1 || math.IsNaN(w.Prob) {
		return fmt.Errorf("%w: probability %g outside [0,1] for successor %s",
			ErrTransitionBounds, w.Prob, mdp.FormatPoint(w.State))
	}
	for d, v := range vars {
		c := w.State[d]
		switch v.Kind {
		case mdp.KindRange:
			if c.Kind != mdp.KindRange {
				return fmt.Errorf("%w: successor coordinate %s for range variable %s",
					ErrTransitionBounds, c, v.Name)
			}
			if c.Num < v.Min || c.Num > v.Max || math.IsNaN(c.Num) {
				return fmt.Errorf("%w: %s = %g outside [%g, %g]",
					ErrTransitionBounds, v.Name, c.Num, v.Min, v.Max)
			}
		case mdp.KindValues:
			if c.Kind != mdp.KindValues || v.LabelIndex(c.Label) < 0 {
				return fmt.Errorf("%w: %s = %s not in declared label set",
					ErrTransitionBounds, v.Name, c)
			}
		}
	}
	return nil
}

// sampleVars draws one uniformly random assignment per variable: uniform in
// range for range variables, uniform over labels for values variables.
func sampleVars(rng *rand.Rand, vars []mdp.Variable) []mdp.Value {
	out := make([]mdp.Value, len(vars))
	for i, v := range vars {
		switch v.Kind {
		case mdp.KindRange:
			out[i] = mdp.Num(v.Min + rng.Float64()*(v.Max-v.Min))
		case mdp.KindValues:
			out[i] = mdp.Label(v.Labels[rng.Intn(len(v.Labels))])
		}
	}
	return out
}
