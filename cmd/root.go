/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Design: PersistentPreRunE loads configuration once per invocation. A
// malformed config (bad YAML, malformed glob pattern, out-of-range value)
// disables the whole engine with a single diagnostic rather than letting
// commands partially operate. The noConfigCommands map lists commands that
// must still run against a broken config so users can repair it.

package cmd

import (
	"fmt"
	"os"

	"github.com/jpl-au/vers/internal/config"
	"github.com/jpl-au/vers/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vers",
	Short: "Numbered on-save revision history for files",
	Long: `vers keeps a sequential, numbered history of prior file revisions on
disk (file.0001.clean, file.0002.clean, ...), prunes that history by a
retention cutoff, and diffs current content against any historical revision.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && output != "json" {
			return fmt.Errorf("invalid output format: %s (valid: json)", output)
		}

		if noConfigCommands[cmd.Name()] {
			return nil
		}

		loaded, err := config.Load()
		if err != nil {
			if JSON() {
				_ = PrintJSON(map[string]string{"error": err.Error()})
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
			}
			return fmt.Errorf("versioning engine disabled: %w", err)
		}
		cfg = loaded
		return nil
	},
}

// noConfigCommands can run without a valid engine configuration: they either
// repair it (config) or never touch it (guide, version, serve loads its own).
var noConfigCommands = map[string]bool{
	"config":     true,
	"guide":      true,
	"version":    true,
	"serve":      true,
	"help":       true,
	"completion": true,
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, executes the command, and exits 1 on error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	if wd, err := os.Getwd(); err == nil {
		log.SetProject(wd)
	}

	if err := rootCmd.Execute(); err != nil {
		log.Close()
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
