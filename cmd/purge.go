/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// purge.go implements the "vers purge" command.
//
// The cutoff token is validated before anything is deleted: a non-numeric
// token aborts with the offending token named, and no filesystem mutation
// has happened by then.

package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jpl-au/vers/internal/log"
	"github.com/jpl-au/vers/internal/purge"
	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge <file> [N]",
	Short: "Delete revisions above a retention cutoff",
	Long: `Delete numbered revisions above cutoff N, keeping slots 1..N. N defaults
to the configured purge.cutoff (1). N=0 deletes every revision.

Examples:
  vers purge main.c        # keep slot 1, purge the rest
  vers purge main.c 5      # keep slots 1-5
  vers purge -a main.c 0   # purge all revisions of every matching file
                           # in main.c's directory`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPurge,
}

func runPurge(c *cobra.Command, args []string) error {
	all, _ := c.Flags().GetBool("all")
	verbose, _ := c.Flags().GetBool("verbose")

	base, err := filepath.Abs(args[0])
	if err != nil {
		return PrintJSONError(err)
	}

	cutoff := Config().Cutoff()
	if len(args) == 2 {
		cutoff, err = purge.ParseCutoff(args[1])
		if err != nil {
			return PrintJSONError(err)
		}
	}

	opts := purge.Options{
		Cutoff:  cutoff,
		All:     all,
		Verbose: verbose,
		Path:    base,
	}

	w := Out()
	if JSON() {
		w = io.Discard
	}

	res, err := purge.Run(w, Config(), opts)

	log.Event("purge:scan", "purge").
		Path(base).
		Detail("cutoff", cutoff).
		Detail("all", all).
		Detail("purged", res.Purged).
		Detail("retained", res.Retained).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("purge %q: %w", args[0], err))
	}
	return PrintJSON(res)
}

func init() {
	purgeCmd.Flags().BoolP("all", "a", false, "Purge every file in the directory matching the configured patterns")
	purgeCmd.Flags().BoolP("verbose", "v", false, "Report each deleted revision")
	rootCmd.AddCommand(purgeCmd)
}
