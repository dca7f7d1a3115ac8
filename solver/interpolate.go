// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"fmt"
	"math"
	"sort"

	"github.com/mdpkit/mdpkit/mdp"
)

// interpolator evaluates a value table at possibly-off-grid points by
// multilinear interpolation over the enclosing grid cell. Out-of-bounds
// coordinates are clamped to the nearest grid boundary, never extrapolated.
//
// Thread Safety: Safe for concurrent use; all fields are read-only after
// construction and per-call scratch lives on the stack of the caller.
type interpolator struct {
	space *mdp.Space

	// axes holds the numeric grid per dimension, nil for values dimensions.
	axes [][]float64

	// rangeDims lists the dimensions that interpolate (KindRange).
	rangeDims []int
}

// newInterpolator precomputes the numeric axes for a space.
func newInterpolator(space *mdp.Space) *interpolator {
	ip := &interpolator{
		space: space,
		axes:  make([][]float64, space.NumVars()),
	}
	for d, v := range space.Vars() {
		if v.Kind != mdp.KindRange {
			continue
		}
		grid := space.Grid(d)
		axis := make([]float64, len(grid))
		for i, g := range grid {
			axis[i] = g.Num
		}
		ip.axes[d] = axis
		ip.rangeDims = append(ip.rangeDims, d)
	}
	return ip
}

// cell is the per-dimension locator for one query point: the lower corner
// coordinate and the fractional weight toward the upper corner.
type cell struct {
	lo     int
	hi     int
	weight float64
}

// value evaluates table (indexed by the space's point index) at point.
//
// Values coordinates must match a declared label exactly; range coordinates
// are clamped into the grid and interpolated linearly per dimension, with
// the 2^k corner weights multiplied together (k = number of range dims).
func (ip *interpolator) value(point []mdp.Value, table []float64) (float64, error) {
	return ip.valueFunc(point, func(i int) float64 { return table[i] })
}

// valueFunc is value with an indirect table accessor, for callers whose
// table is strided (per-action Q columns) rather than a flat slice.
func (ip *interpolator) valueFunc(point []mdp.Value, at func(int) float64) (float64, error) {
	if len(point) != ip.space.NumVars() {
		return 0, fmt.Errorf("%w: point %s has arity %d, want %d",
			mdp.ErrArity, mdp.FormatPoint(point), len(point), ip.space.NumVars())
	}

	cells := make([]cell, len(point))
	base := 0
	for d, v := range ip.space.Vars() {
		switch v.Kind {
		case mdp.KindValues:
			li := v.LabelIndex(point[d].Label)
			if li < 0 {
				return 0, fmt.Errorf("%w: %s = %q", mdp.ErrUnknownLabel, v.Name, point[d].Label)
			}
			base += li * ip.space.Stride(d)

		case mdp.KindRange:
			c := locate(ip.axes[d], point[d].Num)
			cells[d] = c
		}
	}

	// Accumulate over the 2^k corners of the enclosing cell.
	k := len(ip.rangeDims)
	total := 0.0
	for mask := 0; mask < 1<<k; mask++ {
		idx := base
		weight := 1.0
		for bit, d := range ip.rangeDims {
			c := cells[d]
			if mask&(1<<bit) != 0 {
				idx += c.hi * ip.space.Stride(d)
				weight *= c.weight
			} else {
				idx += c.lo * ip.space.Stride(d)
				weight *= 1 - c.weight
			}
		}
		if weight == 0 {
			continue
		}
		total += weight * at(idx)
	}
	return total, nil
}

// locate finds the grid interval enclosing x on axis, clamping out-of-range
// queries to the boundary point.
func locate(axis []float64, x float64) cell {
	last := len(axis) - 1
	switch {
	case math.IsNaN(x) || x <= axis[0]:
		return cell{lo: 0, hi: 0, weight: 0}
	case x >= axis[last]:
		return cell{lo: last, hi: last, weight: 0}
	}

	// First index with axis[i] > x; the enclosing interval is [i-1, i].
	i := sort.SearchFloat64s(axis, x)
	if axis[i] == x {
		return cell{lo: i, hi: i, weight: 0}
	}
	lo := i - 1
	return cell{
		lo:     lo,
		hi:     i,
		weight: (x - axis[lo]) / (axis[i] - axis[lo]),
	}
}
