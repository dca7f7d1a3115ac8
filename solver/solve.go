// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mdpkit/mdpkit/mdp"
)

var tracer = otel.Tracer("mdpkit/solver")

// Solve runs discretized value iteration on model with cfg.
//
// Description:
//
//	Validates the (model, config) pair, builds the state and action grids,
//	then repeats Bellman backups until the infinity-norm residual falls
//	below cfg.Tolerance (StatusConverged) or cfg.MaxIterations backups
//	have run (StatusMaxIterations; a Solution is still returned, since
//	finite-horizon use relies on hitting the cap with discount 1). With
//	more than one resolved worker each backup is sharded across a pool;
//	the result is identical to the serial path.
//
// Inputs:
//   - ctx: Carries the otel span context and cancels queued parallel
//     shards on worker failure. No mid-iteration cancellation is
//     supported; tolerance and the iteration cap are the only termination
//     controls.
//   - m: The immutable model. Must not be mutated while solving.
//   - cfg: Solver configuration. Immutable once solving starts.
//
// Outputs:
//   - *Solution: Q-table, grids, and run diagnostics.
//   - error: Validation failure before any iteration, or ErrWorkerFailure
//     if a backup died mid-solve.
func Solve(ctx context.Context, m *mdp.Model, cfg Config) (*Solution, error) {
	start := time.Now()
	runID := uuid.NewString()

	ctx, span := tracer.Start(ctx, "solver.Solve",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.Int("max_iterations", cfg.MaxIterations),
			attribute.Float64("tolerance", cfg.Tolerance),
			attribute.Float64("discount", cfg.Discount),
		),
	)
	defer span.End()

	rep, err := Validate(m, cfg)
	if err != nil {
		return nil, failSolve(span, "invalid", err)
	}

	states, err := mdp.NewSpace(m.StateVars, cfg.StateDiscretization)
	if err != nil {
		return nil, failSolve(span, "invalid", err)
	}
	actions, err := mdp.NewSpace(m.ActionVars, cfg.ActionDiscretization)
	if err != nil {
		return nil, failSolve(span, "invalid", err)
	}

	workers := cfg.workers()
	span.SetAttributes(
		attribute.String("convention", rep.Convention.String()),
		attribute.Int("state_grid_size", states.Size()),
		attribute.Int("action_grid_size", actions.Size()),
		attribute.Int("workers", workers),
	)
	if cfg.Verbose {
		slog.Info("starting value iteration",
			slog.String("run_id", runID),
			slog.String("convention", rep.Convention.String()),
			slog.Int("states", states.Size()),
			slog.Int("actions", actions.Size()),
			slog.Int("workers", workers),
		)
	}

	e := newEngine(m, rep.Convention, states, actions, cfg.Discount)

	// Ready -> Iterating. The value table is replaced wholesale each
	// iteration; vPrev stays immutable for the duration of one backup.
	vPrev := make([]float64, states.Size())
	var (
		q          []float64
		residual   float64
		status     = StatusMaxIterations
		iterations = cfg.MaxIterations
	)
	for it := 1; it <= cfg.MaxIterations; it++ {
		itStart := time.Now()
		itCtx, itSpan := tracer.Start(ctx, "solver.backup",
			trace.WithAttributes(attribute.Int("iteration", it)),
		)

		var vNext []float64
		if workers > 1 {
			q, vNext, residual, err = e.backupParallel(itCtx, workers, vPrev)
		} else {
			q, vNext, residual, err = e.backup(vPrev)
		}
		if err != nil {
			itSpan.RecordError(err)
			itSpan.SetStatus(codes.Error, err.Error())
			itSpan.End()
			return nil, failSolve(span, "error", err)
		}
		itSpan.SetAttributes(attribute.Float64("residual", residual))
		itSpan.End()
		backupDuration.Observe(time.Since(itStart).Seconds())

		if cfg.Verbose {
			slog.Info("backup complete",
				slog.String("run_id", runID),
				slog.Int("iteration", it),
				slog.Float64("residual", residual),
			)
		}

		vPrev = vNext
		if residual < cfg.Tolerance {
			status = StatusConverged
			iterations = it
			break
		}
	}

	elapsed := time.Since(start)
	solvesTotal.WithLabelValues(status.String()).Inc()
	solveIterations.Observe(float64(iterations))
	finalResidual.Set(residual)
	span.SetAttributes(
		attribute.Int("iterations", iterations),
		attribute.Float64("residual", residual),
		attribute.String("status", status.String()),
	)
	span.SetStatus(codes.Ok, "")

	slog.Info("solve finished",
		slog.String("run_id", runID),
		slog.String("status", status.String()),
		slog.Int("iterations", iterations),
		slog.Float64("residual", residual),
		slog.Duration("elapsed", elapsed),
	)

	return newSolution(q, states, actions, iterations, residual, elapsed, status), nil
}

// failSolve records a terminal failure on the span and metrics.
func failSolve(span trace.Span, label string, err error) error {
	solvesTotal.WithLabelValues(label).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
