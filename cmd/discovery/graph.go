package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/discovery/internal/client"
)

var graphCmd = &cobra.Command{
	Use:     "graph <project-id>",
	Short:   "Show the relationship graph of a project",
	GroupID: "graph",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid project id %q", args[0])
		}

		g, err := discoveryClient.GetGraph(cmd.Context(), id)
		if client.IsNotFound(err) {
			return fmt.Errorf("project %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("fetching graph: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), g)
		}
		printGraphTable(cmd.OutOrStdout(), g)
		return nil
	},
}
