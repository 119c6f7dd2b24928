/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// config.go implements the "vers config" command for configuration
// management.
//
// Design: Config follows a cascade model similar to git: local config
// (.vers/config.yaml) takes precedence over global (~/.vers/config.yaml).
// The --local flag forces use of local config even if it doesn't exist yet.
// This command deliberately loads its own config rather than relying on the
// root pre-run, so it still works when the engine is disabled by a broken
// config file — users need it to repair the breakage.

package cmd

import (
	"fmt"
	"sort"

	"github.com/jpl-au/vers/internal/config"
	"github.com/jpl-au/vers/internal/log"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "View or set config values",
	Long: `View or set config values.

  vers config                        # show config
  vers config backup.max_version     # show one value
  vers config backup.max_version 99  # set a value

Configuration locations:
  Global: ~/.vers/config.yaml
  Local:  .vers/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool("local")

	// Raw load: an invalid file must still be inspectable and repairable.
	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScopeRaw(config.ScopeLocal)
	} else {
		cfg, err = config.LoadRaw()
	}
	if err != nil {
		return PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		all := cfg.All()
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(Out(), "%s: %s\n", k, all[k])
		}
		log.Event("config:show", "config").Write(nil)
		return PrintJSON(all)

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("config:get", "config").Detail("key", args[0]).Write(err)
		if err != nil {
			return PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		fmt.Fprintln(Out(), v)
		return PrintJSON(map[string]string{args[0]: v})

	default:
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("config:set", "config").Detail("key", args[0]).Write(err)
			return PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		log.Event("config:set", "config").Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		fmt.Fprintf(Out(), "%s = %s (%s)\n", args[0], args[1], scopeName)
		return PrintJSON(map[string]string{args[0]: args[1], "scope": scopeName})
	}
}

func init() {
	configCmd.Flags().Bool("local", false, "Use local config (.vers/config.yaml)")
	rootCmd.AddCommand(configCmd)
}
