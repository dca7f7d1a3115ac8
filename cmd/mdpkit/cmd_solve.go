// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mdpkit/mdpkit/mdp"
	"github.com/mdpkit/mdpkit/problems"
	"github.com/mdpkit/mdpkit/solver"
	"github.com/mdpkit/mdpkit/telemetry"
)

var (
	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Solve a registered problem by value iteration",
		Long: `Runs discretized value iteration on one of the built-in problems and
prints convergence diagnostics. Solver settings come from the problem's
bundled config, optionally overridden by a YAML file and then by flags.`,
		RunE: runSolve,
	}

	solveProblem  string
	solveConfig   string
	solveWorkers  int
	solveMaxIter  int
	solveVerbose  bool
	solvePolicy   bool
	solveMetrics  int
	solveDiscount float64
)

func init() {
	f := solveCmd.Flags()
	f.StringVar(&solveProblem, "problem", "", "Name of the registered problem to solve (see 'mdpkit problems')")
	f.StringVar(&solveConfig, "config", "", "Path to a YAML solver config overriding the problem's defaults")
	f.IntVar(&solveWorkers, "workers", 0, "Backup worker count (0 = half the logical cores)")
	f.IntVar(&solveMaxIter, "max-iterations", 0, "Override the iteration cap")
	f.Float64Var(&solveDiscount, "discount", 0, "Override the discount factor")
	f.BoolVar(&solveVerbose, "verbose", false, "Log per-iteration residuals")
	f.BoolVar(&solvePolicy, "print-policy", false, "Print the greedy action for every grid state")
	f.IntVar(&solveMetrics, "metrics-port", 0, "Serve Prometheus metrics on this port during the solve")
	_ = solveCmd.MarkFlagRequired("problem")
}

func runSolve(cmd *cobra.Command, args []string) error {
	p, ok := problems.Lookup(solveProblem)
	if !ok {
		names := make([]string, 0)
		for _, q := range problems.List() {
			names = append(names, q.Name)
		}
		return fmt.Errorf("unknown problem %q (available: %s)", solveProblem, strings.Join(names, ", "))
	}

	cfg := p.Config
	if solveConfig != "" {
		data, err := os.ReadFile(solveConfig)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
	}
	applySolveOverrides(cmd, &cfg)
	if solveVerbose {
		cfg.Verbose = true
	}

	ctx := cmd.Context()

	tcfg := telemetry.DefaultConfig()
	v := newViper()
	_ = v.BindEnv("metric-exporter")
	switch {
	case v.IsSet("metric-exporter"):
		tcfg.MetricExporter = v.GetString("metric-exporter")
	case solveMetrics <= 0:
		// No listener and no explicit choice: skip exporter setup.
		tcfg.MetricExporter = "none"
	}
	shutdown, err := telemetry.Init(ctx, tcfg)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() { _ = shutdown(ctx) }()

	if solveMetrics > 0 {
		if handler := telemetry.MetricsHandler(); handler != nil {
			mux := http.NewServeMux()
			mux.Handle("/metrics", handler)
			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", solveMetrics),
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("metrics server failed", "error", err)
				}
			}()
			defer func() { _ = srv.Close() }()
			logger.Info("serving metrics", "port", solveMetrics)
		}
	}

	sol, err := solver.Solve(ctx, p.Model, cfg)
	if err != nil {
		return fmt.Errorf("solve %s: %w", p.Name, err)
	}

	fmt.Printf("problem:    %s\n", p.Name)
	fmt.Printf("status:     %s\n", sol.Status)
	fmt.Printf("iterations: %d\n", sol.Iterations)
	fmt.Printf("residual:   %.3g\n", sol.Residual)
	fmt.Printf("elapsed:    %s\n", sol.Elapsed.Round(time.Microsecond))
	fmt.Printf("grid:       %d states x %d actions\n", sol.States.Size(), sol.Actions.Size())

	if solvePolicy {
		if err := printPolicy(sol); err != nil {
			return err
		}
	}
	return nil
}

// applySolveOverrides layers solver settings onto cfg: MDPKIT_-prefixed
// environment variables override the config file, and explicitly set flags
// override both.
func applySolveOverrides(cmd *cobra.Command, cfg *solver.Config) {
	v := newViper()
	for _, key := range []string{"workers", "max-iterations", "discount"} {
		_ = v.BindEnv(key)
	}

	if cmd.Flags().Changed("workers") {
		cfg.Workers = solveWorkers
	} else if v.IsSet("workers") {
		cfg.Workers = v.GetInt("workers")
	}
	if cmd.Flags().Changed("max-iterations") {
		cfg.MaxIterations = solveMaxIter
	} else if v.IsSet("max-iterations") {
		cfg.MaxIterations = v.GetInt("max-iterations")
	}
	if cmd.Flags().Changed("discount") {
		cfg.Discount = solveDiscount
	} else if v.IsSet("discount") {
		cfg.Discount = v.GetFloat64("discount")
	}
}

// printPolicy walks the discretized state grid and prints the greedy
// action for each point.
func printPolicy(sol *solver.Solution) error {
	policy := sol.Policy()
	fmt.Println("policy:")
	for i := 0; i < sol.States.Size(); i++ {
		state := sol.States.Point(i)
		action, err := policy(state)
		if err != nil {
			return err
		}
		value, err := sol.Value(state)
		if err != nil {
			return err
		}
		fmt.Printf("  %s -> %s  (V=%.4f)\n", mdp.FormatPoint(state), mdp.FormatPoint(action), value)
	}
	return nil
}
