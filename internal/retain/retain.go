// Package retain implements the retention scan that prunes numbered
// revisions above a cutoff.
//
// The scan assumes a dense revision set: slots are walked from 1 and the
// first unexpected absence stops the whole pass. Below the cutoff a missing
// slot means the history has ended; above it a missing slot (or a failed
// delete) means there is nothing further to reap. Deleting a middle slot
// out of band therefore hides every slot above it from future scans.
package retain

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/vers/internal/slot"
)

// Options configures a retention scan.
type Options struct {
	Cutoff     int       // Slots <= Cutoff are kept; 0 keeps nothing
	MaxVersion int       // Configured slot ceiling (fixes padding width)
	ScanFloor  int       // Hard floor on the walk's upper bound
	Suffix     string    // Revision filename suffix
	Verbose    bool      // Report each deleted path
	Out        io.Writer // Destination for verbose output (nil = discard)
}

// Result tallies one scan.
type Result struct {
	Purged   int `json:"purged"`   // Revisions deleted
	Retained int `json:"retained"` // Revisions at or below the cutoff
}

// Add accumulates another scan's counters, for batch purges.
func (r *Result) Add(o Result) {
	r.Purged += o.Purged
	r.Retained += o.Retained
}

// String formats the result the way the purge command reports it.
func (r Result) String() string {
	return fmt.Sprintf("%d files purged; %d remain.", r.Purged, r.Retained)
}

// Scan walks the revision slots of base and deletes those above the cutoff.
//
// The upper bound is max(MaxVersion, ScanFloor): even when the configured
// ceiling has been lowered after revisions were written beyond it, the walk
// still reaches them. A clean pass never returns an error; slot absence is
// how the walk terminates. Only verbose-output write failures surface as
// errors, and by then the counters are already correct.
func Scan(base string, opts Options) (Result, error) {
	var res Result

	upper := opts.MaxVersion
	if opts.ScanFloor > upper {
		upper = opts.ScanFloor
	}
	width := slot.Width(opts.MaxVersion)

	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	for n := 1; n <= upper; n++ {
		p := base + slot.Format(n, width, opts.Suffix)

		if n <= opts.Cutoff {
			if _, err := os.Stat(p); err != nil {
				// Gap at or below the cutoff: the history ends here.
				return res, nil
			}
			res.Retained++
			continue
		}

		if err := os.Remove(p); err != nil {
			// Absent or undeletable: nothing further to reap.
			return res, nil
		}
		res.Purged++
		if opts.Verbose {
			if _, err := fmt.Fprintf(out, "purged %s\n", p); err != nil {
				return res, fmt.Errorf("reporting purged path: %w", err)
			}
		}
	}
	return res, nil
}
