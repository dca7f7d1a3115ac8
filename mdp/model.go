// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package mdp

// Weighted is one (successor state, probability) pair returned by the
// sparse T(s,a) transition convention.
type Weighted struct {
	State []Value
	Prob  float64
}

// Model is an immutable factored MDP. The solver consumes it read-only; it
// must not be mutated after solving starts.
//
// The transition dynamics use exactly one of two calling conventions:
//
//   - TransitionDist (T(s,a)): args are the state coordinates followed by
//     the action coordinates, in declared order; the return value is the
//     successor distribution.
//   - TransitionProb (T(s,a,s')): args are state, action, then explicit
//     successor-state coordinates; the return value is the scalar
//     probability of that one transition.
//
// TransitionArgs and RewardArgs declare the argument names the callables
// were written against. Solver validation checks them against the declared
// variable order before any numeric work happens, so a model author who
// wires arguments in the wrong order fails fast instead of silently solving
// the wrong problem.
type Model struct {
	// StateVars and ActionVars are the ordered variable declarations.
	StateVars  []Variable
	ActionVars []Variable

	// TransitionArgs are the transition callable's declared argument names.
	// Must equal state names ++ action names (TransitionDist) or that
	// sequence extended by the state names again (TransitionProb).
	TransitionArgs []string

	// RewardArgs are the reward callable's declared argument names. Must
	// equal state names ++ action names exactly.
	RewardArgs []string

	// TransitionDist implements the T(s,a) convention. Exactly one of
	// TransitionDist and TransitionProb must be non-nil.
	TransitionDist func(args []Value) []Weighted

	// TransitionProb implements the T(s,a,s') convention.
	TransitionProb func(args []Value) float64

	// Reward returns the immediate reward for (state, action) args.
	Reward func(args []Value) float64
}

// StateNames returns the declared state-variable names in order.
func (m *Model) StateNames() []string { return Names(m.StateVars) }

// ActionNames returns the declared action-variable names in order.
func (m *Model) ActionNames() []string { return Names(m.ActionVars) }
