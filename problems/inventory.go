// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package problems

import (
	"math"

	"github.com/mdpkit/mdpkit/mdp"
	"github.com/mdpkit/mdpkit/solver"
)

// Inventory dynamics: one unit sells per step when stock is available,
// restocking adds two units, shelf capacity caps the stock.
const (
	stockMin    = 0.0
	stockMax    = 5.0
	stockStep   = 1.0
	restockQty  = 2.0
	saleReward  = 1.0
	restockCost = 0.4
)

// Inventory builds a small restocking problem on the dense T(s,a,s')
// convention: the transition callable scores one explicit (s,a,s') triple
// at a time, so the solver enumerates the full successor grid per pair.
//
// Deterministic dynamics: next = clamp(stock - 1 + 2*restock). The scalar
// form returns 1 for the matching successor grid point and 0 elsewhere.
func Inventory() Problem {
	stock := mdp.RangeVar("stock", stockMin, stockMax)
	order := mdp.ValuesVar("order", "none", "restock")

	next := func(s float64, a string) float64 {
		n := s - 1
		if a == "restock" {
			n += restockQty
		}
		return math.Min(math.Max(n, stockMin), stockMax)
	}

	model := &mdp.Model{
		StateVars:      []mdp.Variable{stock},
		ActionVars:     []mdp.Variable{order},
		TransitionArgs: []string{"stock", "order", "stock"},
		RewardArgs:     []string{"stock", "order"},
		TransitionProb: func(args []mdp.Value) float64 {
			want := next(args[0].Num, args[1].Label)
			if math.Abs(args[2].Num-want) < stockStep/2 {
				return 1
			}
			return 0
		},
		Reward: func(args []mdp.Value) float64 {
			r := 0.0
			if args[0].Num >= 1 {
				r += saleReward
			}
			if args[1].Label == "restock" {
				r -= restockCost
			}
			return r
		},
	}

	cfg := solver.DefaultConfig()
	cfg.Discount = 0.95
	cfg.StateDiscretization = map[string]float64{"stock": stockStep}

	return Problem{
		Name:        "inventory",
		Description: "shelf restocking with sales; dense T(s,a,s') convention",
		Model:       model,
		Config:      cfg,
	}
}
