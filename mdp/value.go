// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package mdp

import (
	"fmt"
	"strings"
)

// Value is one coordinate of a factored state or action. A KindRange
// coordinate carries Num; a KindValues coordinate carries Label. Values are
// comparable, so on-grid points can be matched with ==.
type Value struct {
	Kind  Kind
	Num   float64
	Label string
}

// Num wraps a numeric coordinate for a range variable.
func Num(x float64) Value {
	return Value{Kind: KindRange, Num: x}
}

// Label wraps a label coordinate for a values variable.
func Label(s string) Value {
	return Value{Kind: KindValues, Label: s}
}

// String renders the coordinate for diagnostics.
func (v Value) String() string {
	if v.Kind == KindValues {
		return v.Label
	}
	return fmt.Sprintf("%g", v.Num)
}

// FormatPoint renders a factored point as "(x1, x2, ...)" for diagnostics.
func FormatPoint(p []Value) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
