// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package mdp

import (
	"fmt"
	"math"
)

// BuildGrid returns the ordered representative points for one variable.
//
// Description:
//
//	For a KindValues variable the grid is the declared label sequence; step
//	is ignored (its presence is not an error). For a KindRange variable the
//	grid is min, min+step, min+2*step, ... and always ends exactly at max:
//	when the stride does not land on max, max is appended as a boundary
//	point so interpolation covers the closed range.
//
// Inputs:
//   - v: The variable to discretize.
//   - step: Discretization step. Required for KindRange; must satisfy
//     0 < step <= max-min.
//
// Outputs:
//   - []Value: Monotonically increasing grid points.
//   - error: ErrDiscretization for a missing or oversized step,
//     ErrInvalidVariable for a malformed declaration.
func BuildGrid(v Variable, step float64) ([]Value, error) {
	if err := v.Check(); err != nil {
		return nil, err
	}
	if v.Kind == KindValues {
		grid := make([]Value, len(v.Labels))
		for i, l := range v.Labels {
			grid[i] = Label(l)
		}
		return grid, nil
	}

	span := v.Max - v.Min
	if step <= 0 {
		return nil, fmt.Errorf("%w: %s: step %g must be positive", ErrDiscretization, v.Name, step)
	}
	if step > span {
		return nil, fmt.Errorf("%w: %s: step %g exceeds range %g", ErrDiscretization, v.Name, step, span)
	}

	// Generate by index rather than accumulating to avoid float drift.
	n := int(math.Floor(span/step + gridEps))
	grid := make([]Value, 0, n+2)
	for i := 0; i <= n; i++ {
		grid = append(grid, Num(v.Min+float64(i)*step))
	}
	if last := grid[len(grid)-1].Num; v.Max-last > gridEps*step {
		grid = append(grid, Num(v.Max))
	} else {
		// Snap a stride that lands within rounding distance of max.
		grid[len(grid)-1] = Num(v.Max)
	}
	return grid, nil
}

// gridEps absorbs floating-point rounding when deciding whether a stride
// landed on the range maximum.
const gridEps = 1e-9

// Space is the Cartesian product grid over an ordered variable list. A point
// in the space is a fixed-length []Value tuple in declared variable order;
// points are addressed by a mixed-radix index with the first variable most
// significant.
//
// Thread Safety: Safe for concurrent reads after construction.
type Space struct {
	vars    []Variable
	grids   [][]Value
	strides []int
	size    int
}

// NewSpace builds the composite grid for vars using the per-variable steps
// in disc. Every KindRange variable must have an entry in disc; KindValues
// variables ignore it.
func NewSpace(vars []Variable, disc map[string]float64) (*Space, error) {
	s := &Space{
		vars:    vars,
		grids:   make([][]Value, len(vars)),
		strides: make([]int, len(vars)),
		size:    1,
	}
	for i, v := range vars {
		step, ok := disc[v.Name]
		if v.Kind == KindRange && !ok {
			return nil, fmt.Errorf("%w: %s: no discretization step declared", ErrDiscretization, v.Name)
		}
		grid, err := BuildGrid(v, step)
		if err != nil {
			return nil, err
		}
		s.grids[i] = grid
		s.size *= len(grid)
	}
	stride := 1
	for i := len(vars) - 1; i >= 0; i-- {
		s.strides[i] = stride
		stride *= len(s.grids[i])
	}
	return s, nil
}

// Size returns the number of points in the space.
func (s *Space) Size() int { return s.size }

// NumVars returns the number of variables spanning the space.
func (s *Space) NumVars() int { return len(s.vars) }

// Vars returns the declared variable list. Callers must not mutate it.
func (s *Space) Vars() []Variable { return s.vars }

// Grid returns the per-variable grid for dimension d. Callers must not
// mutate it.
func (s *Space) Grid(d int) []Value { return s.grids[d] }

// Stride returns the mixed-radix stride of dimension d.
func (s *Space) Stride(d int) int { return s.strides[d] }

// Point decodes index idx into a freshly allocated point tuple.
func (s *Space) Point(idx int) []Value {
	return s.PointInto(idx, make([]Value, len(s.vars)))
}

// PointInto decodes index idx into dst, which must have length NumVars.
// Returns dst for chaining. Useful in hot loops to avoid allocation.
func (s *Space) PointInto(idx int, dst []Value) []Value {
	for d := range s.vars {
		g := s.grids[d]
		dst[d] = g[(idx/s.strides[d])%len(g)]
	}
	return dst
}

// Index encodes per-dimension grid coordinates back into a point index.
func (s *Space) Index(coords []int) int {
	idx := 0
	for d, c := range coords {
		idx += c * s.strides[d]
	}
	return idx
}
