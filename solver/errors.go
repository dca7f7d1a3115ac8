// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import "errors"

// Sentinel errors for the solver package. All fatal validation and solve
// failures wrap one of these, so callers can branch with errors.Is.
var (
	// ErrInvalidConfig indicates a solver configuration that fails its
	// structural constraints (non-positive tolerance, discount outside
	// (0,1], and so on).
	ErrInvalidConfig = errors.New("invalid solver configuration")

	// ErrConsistency indicates a structural mismatch between the declared
	// variables and the transition/reward argument lists.
	ErrConsistency = errors.New("argument-order inconsistency")

	// ErrTransitionShape indicates the model's transition dynamics are
	// neither a valid T(s,a) nor a valid T(s,a,s') form.
	ErrTransitionShape = errors.New("invalid transition shape")

	// ErrTransitionBounds indicates the transition function returned a
	// successor state outside its variables' declared bounds or label sets,
	// or a probability outside [0,1]. These are definitional breakages of
	// the transition contract, not sampling noise.
	ErrTransitionBounds = errors.New("transition out of bounds")

	// ErrWorkerFailure indicates a parallel backup worker failed; the
	// in-flight iteration was discarded.
	ErrWorkerFailure = errors.New("backup worker failure")
)
