// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// shard is one worker's contiguous partition of the state grid, together
// with the rows it produced. Workers fill only their own shard; the
// controller merges after the barrier.
type shard struct {
	lo, hi   int
	q        []float64
	v        []float64
	residual float64
}

// backupParallel runs one Bellman backup with the state grid sharded across
// a fixed worker pool.
//
// Description:
//
//	Each worker executes the serial per-state loop over its contiguous
//	shard, reading the shared immutable vPrev snapshot and model. Workers
//	publish per-shard Q/V rows; the merge after the barrier is keyed by
//	state index, so correctness does not depend on completion order. The
//	next table only becomes visible once every shard has merged, giving
//	each iteration a clean barrier.
//
//	Any worker error (including a panicking transition or reward callable)
//	cancels the group, discards every partial result, and surfaces
//	ErrWorkerFailure: a partially updated value table is unsound to resume
//	from.
//
// Thread Safety: Safe; workers share no mutable state.
func (e *engine) backupParallel(ctx context.Context, workers int, vPrev []float64) (q, v []float64, residual float64, err error) {
	nS, nA := e.states.Size(), e.actions.Size()
	if workers > nS {
		workers = nS
	}

	// Ceil division can produce fewer than workers non-empty shards (e.g.
	// 5 states over 4 workers yields chunks of 2); emit shards only while
	// states remain so no shard starts past the grid.
	chunk := (nS + workers - 1) / workers
	shards := make([]shard, 0, workers)
	for lo := 0; lo < nS; lo += chunk {
		shards = append(shards, shard{lo: lo, hi: min(lo+chunk, nS)})
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range shards {
		sh := &shards[i]
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					buf := make([]byte, 4096)
					n := runtime.Stack(buf, false)
					slog.Error("panic in backup worker",
						slog.Int("shard_lo", sh.lo),
						slog.Any("panic", r),
						slog.String("stack", string(buf[:n])),
					)
					err = fmt.Errorf("panic: %v", r)
				}
			}()

			if err := ctx.Err(); err != nil {
				return err
			}
			sh.q = make([]float64, (sh.hi-sh.lo)*nA)
			sh.v = make([]float64, sh.hi-sh.lo)
			sh.residual, err = e.backupRange(sh.lo, sh.hi, vPrev, sh.q, sh.v)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, 0, fmt.Errorf("%w: %v", ErrWorkerFailure, err)
	}

	q = make([]float64, nS*nA)
	v = make([]float64, nS)
	for i := range shards {
		sh := &shards[i]
		copy(q[sh.lo*nA:sh.hi*nA], sh.q)
		copy(v[sh.lo:sh.hi], sh.v)
		if sh.residual > residual {
			residual = sh.residual
		}
	}
	return q, v, residual, nil
}
