/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// save.go implements the "vers save" command.
//
// Save is the standalone rendition of save interception: the previous
// content of the file moves into the next free revision slot, then the new
// content is written to the original path. Content comes from an argument,
// the -f flag, or stdin, in that priority order.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/vers/internal/intercept"
	"github.com/jpl-au/vers/internal/log"
	"github.com/jpl-au/vers/internal/slot"
	"github.com/spf13/cobra"
)

// saveResult contains the outcome of a save operation.
type saveResult struct {
	Path     string         `json:"path"`
	Revision *slot.Revision `json:"revision,omitempty"`
}

var saveCmd = &cobra.Command{
	Use:   "save <file> [content]",
	Short: "Save new content, keeping the previous content as a numbered revision",
	Long: `Save new content to a file. The existing on-disk content is renamed into
the next free revision slot (file.0001.clean, file.0002.clean, ...) before
the new content is written. Content from argument, stdin, or -f flag.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSave,
}

func runSave(c *cobra.Command, args []string) error {
	base := args[0]
	var content string

	file, _ := c.Flags().GetString("file")
	switch {
	case len(args) >= 2:
		content = args[1]
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return PrintJSONError(fmt.Errorf("read file %q: %w", file, err))
		}
		content = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return PrintJSONError(fmt.Errorf("read stdin: %w", err))
		}
		content = string(data)
	}

	rev, err := intercept.Snapshot(base, Config())
	if err == nil {
		err = os.WriteFile(base, []byte(content), 0644)
	}

	log.Event("save:snapshot", "save").
		Path(base).
		ResultSlot(rev.Slot).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("save %q: %w", base, err))
	}

	res := saveResult{Path: base}
	if rev.Slot > 0 {
		res.Revision = &rev
	}

	if !JSON() {
		if rev.Slot > 0 {
			fmt.Fprintf(Out(), "Saved %s; previous content -> %s\n", base, rev.Path)
		} else {
			fmt.Fprintf(Out(), "Saved %s (first save)\n", base)
		}
	}
	return PrintJSON(res)
}

func init() {
	saveCmd.Flags().StringP("file", "f", "", "Read content from file")
	rootCmd.AddCommand(saveCmd)
}
