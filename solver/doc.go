// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package solver turns a factored MDP model plus a configuration into a
// value table and an extractable policy, by discretized value iteration.
//
// The pipeline is: Validate (fail-fast structural checks plus a statistical
// transition probe) → grid construction → repeated Bellman backups, serial
// or sharded across a worker pool, until the infinity-norm residual drops
// below tolerance or the iteration cap is reached → a Solution wrapping the
// converged Q-table, from which Policy extracts the arg-max action for
// possibly-continuous query states via multilinear interpolation.
//
// # Validation is statistical
//
// The transition probe draws a handful of uniformly random state/action
// assignments and checks the returned probabilities and successor states.
// That is sound for catching systematic bugs (wrong arity, out-of-bounds
// successors, malformed probabilities) but cannot prove global correctness:
// full enumeration is infeasible for continuous domains. Checks that a
// single unlucky sample can trip legitimately (a scalar probability outside
// [0,1] for an unreachable triple, mass not summing to 1 at a degenerate
// state) are therefore surfaced as warnings, never upgraded to errors.
//
// # Concurrency
//
// In parallel mode each iteration shards the state grid across a fixed pool
// of workers. Workers share the model and the previous iteration's value
// table strictly read-only and publish their shard's rows back to the
// controller, which merges them after a barrier; no iteration N+1 work
// starts before iteration N's merge completes. A failing worker aborts the
// whole iteration, since a partially updated value table is unsound to
// resume from.
package solver
