// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Solver metrics, registered with the default prometheus registry. Exposed
// through telemetry.MetricsHandler when the prometheus exporter is enabled.
var (
	solvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mdpkit_solves_total",
		Help: "Completed solves by terminal status",
	}, []string{"status"})

	solveIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mdpkit_solve_iterations",
		Help:    "Bellman backups per solve",
		Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
	})

	backupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mdpkit_backup_duration_seconds",
		Help:    "Duration of one Bellman backup over the full state grid",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10, 60},
	})

	finalResidual = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mdpkit_final_residual",
		Help: "Infinity-norm residual of the most recent completed solve",
	})
)
