// Package intercept redirects a host editor's backup mechanism into
// numbered revision slots.
//
// A host that keeps backups by appending a suffix to the overwritten file
// exposes that suffix as a mutable option. The interceptor wraps one save:
// BeforeSave points the option at the next free revision slot, the host's
// own save routine renames the previous content into that slot, and
// AfterSave restores the option. Saved values live on an explicit stack so
// nested or re-entrant saves restore in the right order.
//
// Standalone callers that are not embedded in a host use Snapshot instead:
// it performs the rename itself and the caller then writes the new content
// to the original path. The on-disk layout is identical either way.
package intercept

import (
	"errors"
	"fmt"
	"os"

	"github.com/jpl-au/vers/internal/config"
	"github.com/jpl-au/vers/internal/slot"
)

// ErrDisabled is returned by Snapshot when the engine is switched off
// (empty backup suffix).
var ErrDisabled = errors.New("versioning disabled: backup suffix is empty")

// SuffixOption is the host's backup-suffix setting. Implementations adapt
// whatever option store the host provides.
type SuffixOption interface {
	Get() string
	Set(string)
}

// Interceptor arms the host backup-suffix option around individual saves.
// Not safe for concurrent use; hosts are single-threaded event loops.
type Interceptor struct {
	opt SuffixOption
	cfg *config.Config

	// saved holds pre-override suffix values, one per armed save.
	saved []string
}

// New returns an interceptor bound to a host option and configuration.
func New(opt SuffixOption, cfg *config.Config) *Interceptor {
	return &Interceptor{opt: opt, cfg: cfg}
}

// BeforeSave arms the interceptor for one save of base. When the active
// suffix is empty the feature is disabled for this save and nothing is
// armed. Otherwise the current suffix value is pushed and the option is
// overwritten with the allocated slot extension, so the host's save routine
// renames the previous content into that slot.
func (i *Interceptor) BeforeSave(base string) {
	cur := i.opt.Get()
	if cur == "" {
		return
	}

	ext, _ := slot.Allocate(base, i.cfg.MaxVersion(), cur)
	i.saved = append(i.saved, cur)
	i.opt.Set(ext)
}

// AfterSave restores the suffix option after a save. A no-op when nothing
// is armed or the option is empty, so it is always safe to fire — including
// after an aborted BeforeSave. Each call pops exactly one saved value.
func (i *Interceptor) AfterSave() {
	if len(i.saved) == 0 || i.opt.Get() == "" {
		return
	}
	last := len(i.saved) - 1
	i.opt.Set(i.saved[last])
	i.saved = i.saved[:last]
}

// Armed reports whether a save is currently intercepted. Exposed for hosts
// that want to assert hook pairing.
func (i *Interceptor) Armed() bool {
	return len(i.saved) > 0
}

// Snapshot moves the current content of base into its next free revision
// slot and returns the created revision. The caller writes the new content
// to base afterwards. Returns ErrDisabled when the suffix is empty, and a
// zero revision with nil error when base does not exist yet (first save:
// nothing to snapshot).
func Snapshot(base string, cfg *config.Config) (slot.Revision, error) {
	if !cfg.Enabled() {
		return slot.Revision{}, ErrDisabled
	}

	if _, err := os.Stat(base); err != nil {
		if os.IsNotExist(err) {
			return slot.Revision{}, nil
		}
		return slot.Revision{}, fmt.Errorf("stat %s: %w", base, err)
	}

	ext, n := slot.Allocate(base, cfg.MaxVersion(), cfg.Suffix())
	rev := slot.Revision{Slot: n, Path: base + ext}
	if err := os.Rename(base, rev.Path); err != nil {
		return slot.Revision{}, fmt.Errorf("snapshot %s: %w", base, err)
	}
	return rev, nil
}
