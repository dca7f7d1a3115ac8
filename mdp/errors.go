// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package mdp

import "errors"

// Sentinel errors for the mdp package.
var (
	// ErrInvalidVariable indicates a malformed variable declaration.
	ErrInvalidVariable = errors.New("invalid variable")

	// ErrDiscretization indicates a missing or invalid discretization step
	// for a range variable.
	ErrDiscretization = errors.New("invalid discretization")

	// ErrUnknownLabel indicates a label outside a variable's declared set.
	ErrUnknownLabel = errors.New("unknown label")

	// ErrArity indicates a point whose length does not match the declared
	// variable list.
	ErrArity = errors.New("wrong point arity")
)
