// Package slot implements revision slot numbering for versioned files.
//
// A revision of base path P occupies slot n when the file
// P + "." + zero-padded(n) + suffix exists. Slots are assigned first-gap:
// allocation scans from 1 and takes the first number whose file is absent.
// The set is never compacted; deleting slot 3 does not renumber slot 4.
package slot

import (
	"fmt"
	"io/fs"
	"os"
	"time"
)

// DefaultMaxVersion is the slot ceiling applied when none is configured.
// Also fixes the default zero-padding width (4 digits).
const DefaultMaxVersion = 9999

// Revision identifies one saved-off copy of a file.
type Revision struct {
	Slot int    `json:"slot"`
	Path string `json:"path"`
}

// Info describes an existing revision on disk.
type Info struct {
	Revision
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mtime"`
}

// Width returns the zero-padding width for a slot ceiling: the number of
// decimal digits in maxVersion. Width(9999) == 4.
func Width(maxVersion int) int {
	w := 1
	for maxVersion >= 10 {
		maxVersion /= 10
		w++
	}
	return w
}

// Format produces the filename extension for a slot:
// "." + zero-padded slot + suffix. Format(7, 4, ".clean") == ".0007.clean".
//
// The caller guarantees slot >= 1; slots wider than width render at their
// natural width rather than truncating.
func Format(n, width int, suffix string) string {
	return fmt.Sprintf(".%0*d%s", width, n, suffix)
}

// Path returns the full revision path for slot n of base.
func Path(base string, n, width int, suffix string) string {
	return base + Format(n, width, suffix)
}

// exists reports whether a revision file is present. Probe only; any stat
// error other than non-existence is treated as present so allocation never
// silently overwrites a slot it cannot read.
func exists(path string) bool {
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	return !os.IsNotExist(err)
}

// Allocate scans slots 1..maxVersion in order and returns the extension and
// number of the first free slot. When every slot is occupied it returns the
// last slot: the range is saturated and the next save overwrites slot
// maxVersion. Read-only; performs no filesystem mutation.
func Allocate(base string, maxVersion int, suffix string) (string, int) {
	if maxVersion < 1 {
		maxVersion = DefaultMaxVersion
	}
	width := Width(maxVersion)

	for n := 1; n <= maxVersion; n++ {
		ext := Format(n, width, suffix)
		if !exists(base + ext) {
			return ext, n
		}
	}
	return Format(maxVersion, width, suffix), maxVersion
}

// Newest returns the highest slot in the leading contiguous run of
// revisions, i.e. the allocator's next-free slot minus one. Returns 0 when
// no revisions exist. This is the "newest" a negative diff selector counts
// back from; revisions above an out-of-band gap are deliberately invisible
// to it, matching the allocator's sequential assumption.
func Newest(base string, maxVersion int, suffix string) int {
	_, next := Allocate(base, maxVersion, suffix)
	if next == maxVersion && exists(base+Format(next, Width(maxVersion), suffix)) {
		// Saturated range: the last slot is occupied, not free.
		return maxVersion
	}
	return next - 1
}

// List returns the existing revisions of base in the leading contiguous run,
// oldest first. Like allocation, the walk stops at the first gap.
func List(base string, maxVersion int, suffix string) []Info {
	if maxVersion < 1 {
		maxVersion = DefaultMaxVersion
	}
	width := Width(maxVersion)

	var infos []Info
	for n := 1; n <= maxVersion; n++ {
		p := base + Format(n, width, suffix)
		st, err := os.Stat(p)
		if err != nil {
			break
		}
		infos = append(infos, Info{
			Revision: Revision{Slot: n, Path: p},
			Size:     st.Size(),
			ModTime:  st.ModTime(),
		})
	}
	return infos
}

// Stat returns file info for slot n of base, or the underlying fs error.
func Stat(base string, n, maxVersion int, suffix string) (fs.FileInfo, string, error) {
	p := Path(base, n, Width(maxVersion), suffix)
	st, err := os.Stat(p)
	return st, p, err
}
