// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package mdp

import "testing"

func TestVariableCheck(t *testing.T) {
	tests := []struct {
		name    string
		v       Variable
		wantErr bool
	}{
		{"valid range", RangeVar("x", 0, 1), false},
		{"valid values", ValuesVar("m", "a", "b"), false},
		{"empty name", RangeVar("", 0, 1), true},
		{"degenerate range", RangeVar("x", 1, 1), true},
		{"inverted range", RangeVar("x", 2, 1), true},
		{"no labels", ValuesVar("m"), true},
		{"repeated label", ValuesVar("m", "a", "b", "a"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Check()
			if (err != nil) != tt.wantErr {
				t.Errorf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLabelIndex(t *testing.T) {
	v := ValuesVar("move", "W", "E", "stop")

	if got := v.LabelIndex("E"); got != 1 {
		t.Errorf("LabelIndex(E) = %d, want 1", got)
	}
	if got := v.LabelIndex("N"); got != -1 {
		t.Errorf("LabelIndex(N) = %d, want -1", got)
	}
	if got := RangeVar("x", 0, 1).LabelIndex("W"); got != -1 {
		t.Errorf("LabelIndex on range var = %d, want -1", got)
	}
}

func TestNames(t *testing.T) {
	vars := []Variable{RangeVar("x", 0, 1), ValuesVar("m", "a")}
	got := Names(vars)
	if len(got) != 2 || got[0] != "x" || got[1] != "m" {
		t.Errorf("Names() = %v", got)
	}
}

func TestFormatPoint(t *testing.T) {
	p := []Value{Num(1.5), Label("stop")}
	if got := FormatPoint(p); got != "(1.5, stop)" {
		t.Errorf("FormatPoint() = %q", got)
	}
}
