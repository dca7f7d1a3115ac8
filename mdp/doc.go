// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package mdp defines factored Markov Decision Process models and the
// discretization primitives the solver evaluates them on.
//
// A factored MDP declares its state and action spaces as ordered lists of
// independently named variables. Each variable is either a continuous range
// (RangeVar) or an ordered set of discrete labels (ValuesVar). A concrete
// state or action is a fixed-length []Value tuple aligned to the declared
// variable order.
//
// Continuous variables are evaluated on a grid built by BuildGrid: points
// start at the range minimum, advance by the discretization step, and always
// include the range maximum as a final boundary point so that interpolation
// has full coverage of the closed range. Space composes per-variable grids
// into the Cartesian product with a mixed-radix index codec.
//
// Transition dynamics come in two calling conventions:
//
//   - T(s,a): TransitionDist returns the sparse successor distribution as
//     (state, probability) pairs.
//   - T(s,a,s'): TransitionProb returns the scalar probability of one
//     explicit transition.
//
// Exactly one of the two must be populated on a Model; the solver resolves
// the convention once during validation and dispatches on it thereafter.
package mdp
