/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// ls.go implements the "vers ls" command: list a file's existing revisions.

package cmd

import (
	"fmt"

	"github.com/jpl-au/vers/internal/log"
	"github.com/jpl-au/vers/internal/slot"
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls <file>",
	Short: "List the numbered revisions of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runLs,
}

func runLs(_ *cobra.Command, args []string) error {
	base := args[0]
	c := Config()

	infos := slot.List(base, c.MaxVersion(), c.Suffix())

	log.Event("ls:list", "list").Path(base).Detail("count", len(infos)).Write(nil)

	if !JSON() {
		if len(infos) == 0 {
			fmt.Fprintf(Out(), "no revisions of %s\n", base)
		}
		for i, info := range infos {
			marker := " "
			if i == len(infos)-1 {
				marker = "*" // newest
			}
			fmt.Fprintf(Out(), "%s %4d  %8d  %s  %s\n",
				marker, info.Slot, info.Size,
				info.ModTime.Format("2006-01-02 15:04"), info.Path)
		}
	}
	return PrintJSON(infos)
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
