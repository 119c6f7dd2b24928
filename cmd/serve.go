/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// serve.go implements the "vers serve" command: the MCP server over stdio.

package cmd

import (
	"github.com/jpl-au/vers/internal/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server (stdio)",
	Long: `Run vers as a Model Context Protocol server over stdio, exposing save,
purge, list and diff as tools for editors and LLM agents.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
