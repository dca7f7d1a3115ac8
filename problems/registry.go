// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package problems

import (
	"sort"

	"github.com/mdpkit/mdpkit/mdp"
	"github.com/mdpkit/mdpkit/solver"
)

// Problem bundles a model with the solver configuration it was designed
// for. The config is a starting point; callers may override fields before
// solving.
type Problem struct {
	Name        string
	Description string
	Model       *mdp.Model
	Config      solver.Config
}

var registry = map[string]func() Problem{
	"gridworld": GridWorld1D,
	"inventory": Inventory,
}

// Lookup returns the named problem, freshly built.
func Lookup(name string) (Problem, bool) {
	build, ok := registry[name]
	if !ok {
		return Problem{}, false
	}
	return build(), true
}

// List returns the registered problems in name order.
func List() []Problem {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Problem, len(names))
	for i, name := range names {
		out[i], _ = Lookup(name)
	}
	return out
}
