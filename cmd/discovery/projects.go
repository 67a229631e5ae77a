package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Short:   "List discovery projects",
	GroupID: "graph",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := discoveryClient.ListProjects(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing projects: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		printProjectsTable(cmd.OutOrStdout(), resp.Projects, resp.Total)
		return nil
	},
}
