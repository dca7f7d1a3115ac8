// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package mdp

import "fmt"

// Kind discriminates the two variable flavors. The set is closed: every
// switch over Kind must handle exactly these two cases.
type Kind int

const (
	// KindRange is a continuous variable with ordered (min, max) bounds.
	KindRange Kind = iota

	// KindValues is a discrete variable with an ordered label set.
	KindValues
)

// String returns the human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindRange:
		return "range"
	case KindValues:
		return "values"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Variable is a single named state or action variable. The kind is fixed at
// construction and never changes.
//
// Min/Max are meaningful only for KindRange; Labels only for KindValues.
// Use RangeVar and ValuesVar rather than constructing literals.
type Variable struct {
	Name   string
	Kind   Kind
	Min    float64
	Max    float64
	Labels []string
}

// RangeVar declares a continuous variable over the closed range [min, max].
// Bounds must satisfy min < max; this is enforced by solver validation
// before any grid is built.
func RangeVar(name string, min, max float64) Variable {
	return Variable{Name: name, Kind: KindRange, Min: min, Max: max}
}

// ValuesVar declares a discrete variable over an ordered label set.
// Labels must be distinct; this is enforced by solver validation.
func ValuesVar(name string, labels ...string) Variable {
	return Variable{Name: name, Kind: KindValues, Labels: labels}
}

// Check verifies the variable declaration is well-formed.
func (v Variable) Check() error {
	if v.Name == "" {
		return fmt.Errorf("%w: variable has empty name", ErrInvalidVariable)
	}
	switch v.Kind {
	case KindRange:
		if !(v.Min < v.Max) {
			return fmt.Errorf("%w: %s: bounds (%g, %g) are not ordered", ErrInvalidVariable, v.Name, v.Min, v.Max)
		}
	case KindValues:
		if len(v.Labels) == 0 {
			return fmt.Errorf("%w: %s: empty label set", ErrInvalidVariable, v.Name)
		}
		seen := make(map[string]struct{}, len(v.Labels))
		for _, l := range v.Labels {
			if _, dup := seen[l]; dup {
				return fmt.Errorf("%w: %s: duplicate label %q", ErrInvalidVariable, v.Name, l)
			}
			seen[l] = struct{}{}
		}
	default:
		return fmt.Errorf("%w: %s: unknown kind %v", ErrInvalidVariable, v.Name, v.Kind)
	}
	return nil
}

// LabelIndex returns the position of label in the declared label set, or -1
// if the label is not declared or the variable is not KindValues.
func (v Variable) LabelIndex(label string) int {
	if v.Kind != KindValues {
		return -1
	}
	for i, l := range v.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Names returns the declared variable names in order.
func Names(vars []Variable) []string {
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = v.Name
	}
	return out
}
