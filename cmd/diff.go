/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// diff.go implements the "vers diff" command.
//
// Flag parsing is non-interspersed so selector tokens that look like flags
// ("-1", "-cvs", "-c") survive as positional arguments; command flags go
// before the file path.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/vers/internal/diffview"
	"github.com/jpl-au/vers/internal/log"
	"github.com/jpl-au/vers/internal/vcs"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var diffCmd = &cobra.Command{
	Use:   "diff <file> [selector]",
	Short: "Diff current content against a historical revision",
	Long: `Diff a file's current content against a historical revision.

Selectors:
  0 (default)  the current on-disk saved copy
  N            revision slot N
  -N           Nth revision from the newest (-1 = newest)
  head, -cvs   the most recent checked-in copy (from git)
  -c, close    close the active diff session instead of opening one

With --stdin, current content is read from standard input (the unsaved
buffer) rather than from the file.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDiff,
}

func runDiff(c *cobra.Command, args []string) error {
	raw, _ := c.Flags().GetBool("raw")
	useStdin, _ := c.Flags().GetBool("stdin")
	base := args[0]

	token := ""
	if len(args) == 2 {
		token = args[1]
	}

	sel, err := diffview.ParseSelector(token)
	if err != nil {
		return PrintJSONError(err)
	}

	if sel.Kind == diffview.KindClose {
		// One invocation, one process: there is never a view left open.
		fmt.Fprintln(Out(), "no diff session active")
		return nil
	}

	tgt, err := diffview.Resolve(base, sel, Config(), vcs.Git{})
	if err != nil {
		log.Event("diff:resolve", "diff").Path(base).Slot(sel.N).Write(err)
		return PrintJSONError(fmt.Errorf("diff %q: %w", base, err))
	}

	var current []byte
	if useStdin {
		current, err = io.ReadAll(os.Stdin)
	} else {
		current, err = os.ReadFile(base)
	}
	if err != nil {
		return PrintJSONError(fmt.Errorf("reading current content: %w", err))
	}

	r := diffview.Compute(tgt.Content, string(current), tgt.Label, base)

	log.Event("diff:resolve", "diff").Path(base).Slot(sel.N).Write(nil)

	if !JSON() {
		colour := !raw && term.IsTerminal(int(os.Stdout.Fd()))
		fmt.Fprint(Out(), r.Format(colour))
	}
	return PrintJSON(map[string]string{
		"old":  r.Old,
		"new":  r.New,
		"diff": r.Format(false),
	})
}

func init() {
	diffCmd.Flags().Bool("raw", false, "Output without colour")
	diffCmd.Flags().Bool("stdin", false, "Read current content from stdin")
	diffCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(diffCmd)
}
