// Package purge implements the purge command: retention scans over one file
// or over every file in a directory matching the configured glob patterns.
package purge

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jpl-au/vers/internal/config"
	"github.com/jpl-au/vers/internal/progress"
	"github.com/jpl-au/vers/internal/retain"
	"github.com/jpl-au/vers/internal/slot"
)

// ErrInvalidCutoff is returned when a cutoff token is not a non-negative
// integer. The offending token is attached by ParseCutoff.
var ErrInvalidCutoff = errors.New("invalid cutoff")

// Options configures a purge operation.
type Options struct {
	Cutoff  int    // Retention boundary; slots <= Cutoff are kept
	All     bool   // Scan every pattern match in the file's directory
	Verbose bool   // Report each deleted revision path
	Path    string // Base file the purge starts from
}

// ParseCutoff validates a user-supplied cutoff token. Only unsigned decimal
// digits are accepted; anything else fails before any deletion happens.
func ParseCutoff(token string) (int, error) {
	if token == "" {
		return 0, fmt.Errorf("%w: empty token", ErrInvalidCutoff)
	}
	n := 0
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidCutoff, token)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// Run executes a purge and writes verbose output and the summary line to w.
// When the engine is disabled (empty suffix) it performs nothing and
// returns zero counts, mirroring the save interceptor's gating.
func Run(w io.Writer, cfg *config.Config, opts Options) (retain.Result, error) {
	var total retain.Result

	if !cfg.Enabled() {
		fmt.Fprintln(w, "versioning disabled (backup suffix is empty); nothing purged")
		return total, nil
	}

	scanOpts := retain.Options{
		Cutoff:     opts.Cutoff,
		MaxVersion: cfg.MaxVersion(),
		ScanFloor:  cfg.ScanFloor(),
		Suffix:     cfg.Suffix(),
		Verbose:    opts.Verbose,
		Out:        w,
	}

	bases := []string{opts.Path}
	if opts.All {
		var err error
		bases, err = Expand(filepath.Dir(opts.Path), cfg)
		if err != nil {
			return total, err
		}
	}

	prog := progress.New("Purging", len(bases))
	for _, base := range bases {
		res, err := retain.Scan(base, scanOpts)
		total.Add(res)
		if err != nil {
			return total, err
		}
		prog.Increment()
		prog.Print()
	}
	prog.Done()

	fmt.Fprintln(w, total.String())
	return total, nil
}

// Expand resolves the configured comma-separated glob patterns against dir,
// returning the matched base paths sorted and deduplicated. Overlapping
// patterns contribute a file once, so batch counters never double-count.
// Matches whose names are themselves revision files (numbered slot plus the
// active suffix) are skipped: patterns address original files, and scanning
// a revision as a base would treat its history as a separate file's.
func Expand(dir string, cfg *config.Config) ([]string, error) {
	width := slot.Width(cfg.MaxVersion())
	seen := make(map[string]struct{})
	var bases []string

	for _, pat := range cfg.PatternList() {
		matches, err := filepath.Glob(filepath.Join(dir, pat))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", config.ErrBadPattern, pat)
		}
		for _, m := range matches {
			if isRevisionName(filepath.Base(m), width, cfg.Suffix()) {
				continue
			}
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			bases = append(bases, m)
		}
	}

	sort.Strings(bases)
	return bases, nil
}

// isRevisionName reports whether name ends in ".<width digits><suffix>".
func isRevisionName(name string, width int, suffix string) bool {
	rest, ok := strings.CutSuffix(name, suffix)
	if !ok {
		return false
	}
	if len(rest) < width+1 {
		return false
	}
	digits := rest[len(rest)-width:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return rest[len(rest)-width-1] == '.'
}
