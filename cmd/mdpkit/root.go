// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mdpkit/mdpkit/pkg/logging"
)

var (
	rootCmd = &cobra.Command{
		Use:   "mdpkit",
		Short: "A discretized value-iteration solver for factored MDPs",
		Long: `mdpkit solves Markov decision processes whose state and action
spaces are lists of named continuous or discrete variables. Continuous
variables are discretized onto regular grids and the optimal Q-table is
computed by parallel value iteration.`,
	}

	logger = logging.Default()
)

// newViper builds the settings source shared by subcommands: environment
// variables prefixed MDPKIT_ (dashes in keys mapped to underscores, e.g.
// max-iterations -> MDPKIT_MAX_ITERATIONS) sit between config file values
// and explicit flags in precedence.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("mdpkit")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func init() {
	// Route the solver's package-level slog output through the same
	// handler as the CLI's own logger, so probe warnings and iteration
	// logs carry the service attribute and file destination.
	slog.SetDefault(logger.Slog())

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(problemsCmd)
}
