// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mdpkit/mdpkit/mdp"
	"github.com/mdpkit/mdpkit/problems"
)

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "List the built-in problems",
	RunE:  runProblems,
}

func runProblems(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATE VARS\tACTION VARS\tDESCRIPTION")
	for _, p := range problems.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			p.Name,
			strings.Join(mdp.Names(p.Model.StateVars), ","),
			strings.Join(mdp.Names(p.Model.ActionVars), ","),
			p.Description,
		)
	}
	return w.Flush()
}
