package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/discovery/internal/client"
)

var (
	httpURL    string
	authToken  string
	jsonOutput bool

	discoveryClient client.DiscoveryClient
)

func defaultHTTPURL() string {
	if s := os.Getenv("DISCOVERY_HTTP_URL"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// noClient replaces the root PersistentPreRunE for commands that talk to the
// database or the bus directly.
func noClient(*cobra.Command, []string) error { return nil }

var rootCmd = &cobra.Command{
	Use:          "discovery <command>",
	Short:        "Relationship graphs for product discovery projects",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		discoveryClient = client.NewHTTPClient(httpURL, authToken)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if discoveryClient != nil {
			discoveryClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpURL, "http-url", defaultHTTPURL(), "HTTP server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("DISCOVERY_AUTH_TOKEN"), "bearer token for the HTTP API")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "graph", Title: "Graphs:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Graphs
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(watchCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
