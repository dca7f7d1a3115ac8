// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package problems

import (
	"github.com/mdpkit/mdpkit/mdp"
	"github.com/mdpkit/mdpkit/solver"
)

// Grid world geometry. The goal sits on an interior grid point so the
// optimal policy is direction-dependent: E below the goal, W above it,
// stop on it.
const (
	gridMin  = 0.0
	gridMax  = 100.0
	gridStep = 20.0
	gridGoal = 60.0
)

// GridWorld1D builds a single-corridor grid world.
//
// One continuous state variable x in [0, 100] discretized at step 20, one
// discrete action move in {W, E, stop}. Moving shifts x by one step,
// clamped at the corridor ends; stop stays. Reward 1 is paid only for
// stopping on the goal point. With discount 0.99 the converged greedy
// policy walks toward the goal and stops there.
func GridWorld1D() Problem {
	x := mdp.RangeVar("x", gridMin, gridMax)
	move := mdp.ValuesVar("move", "W", "E", "stop")

	model := &mdp.Model{
		StateVars:      []mdp.Variable{x},
		ActionVars:     []mdp.Variable{move},
		TransitionArgs: []string{"x", "move"},
		RewardArgs:     []string{"x", "move"},
		TransitionDist: func(args []mdp.Value) []mdp.Weighted {
			pos := args[0].Num
			switch args[1].Label {
			case "W":
				pos -= gridStep
			case "E":
				pos += gridStep
			}
			if pos < gridMin {
				pos = gridMin
			}
			if pos > gridMax {
				pos = gridMax
			}
			return []mdp.Weighted{{State: []mdp.Value{mdp.Num(pos)}, Prob: 1}}
		},
		Reward: func(args []mdp.Value) float64 {
			if args[0].Num == gridGoal && args[1].Label == "stop" {
				return 1
			}
			return 0
		},
	}

	cfg := solver.DefaultConfig()
	cfg.StateDiscretization = map[string]float64{"x": gridStep}

	return Problem{
		Name:        "gridworld",
		Description: "1-D corridor with a rewarded goal point; sparse T(s,a) convention",
		Model:       model,
		Config:      cfg,
	}
}
