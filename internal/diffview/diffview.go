// Package diffview compares current file content against historical
// revisions. It resolves a version selector to a concrete content source,
// computes a semantic diff, and manages the single diff session a
// long-running host may hold open.
package diffview

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/jpl-au/vers/internal/config"
	"github.com/jpl-au/vers/internal/slot"
	"github.com/jpl-au/vers/internal/vcs"
)

var (
	// ErrNotEnoughVersions is returned when a negative selector counts back
	// past the oldest revision.
	ErrNotEnoughVersions = errors.New("not enough versions available")
	// ErrInvalidSelector is returned for selector tokens that are neither a
	// number, the head token, nor the close token.
	ErrInvalidSelector = errors.New("invalid version selector")
	// ErrNoSession is returned when closing while no diff session is open.
	ErrNoSession = errors.New("no diff session active")
)

// Kind discriminates selector forms.
type Kind int

const (
	// KindSlot targets a revision slot; 0 means the current saved copy.
	KindSlot Kind = iota
	// KindOffset counts back from the newest revision (-1 = newest).
	KindOffset
	// KindHead targets the most recent checked-in copy from the VCS.
	KindHead
	// KindClose closes the active diff session instead of opening one.
	KindClose
)

// Selector is a parsed version selector.
type Selector struct {
	Kind Kind
	N    int // slot for KindSlot, negative offset for KindOffset
}

// ParseSelector parses a diff argument. An empty token selects the current
// saved copy (slot 0). Accepted forms: "N", "-N", "head" (with "-cvs" kept
// as the historical alias), and "-c"/"close".
func ParseSelector(token string) (Selector, error) {
	switch token {
	case "":
		return Selector{Kind: KindSlot, N: 0}, nil
	case "head", "-cvs":
		return Selector{Kind: KindHead}, nil
	case "-c", "close":
		return Selector{Kind: KindClose}, nil
	}

	n, err := strconv.Atoi(token)
	if err != nil {
		return Selector{}, fmt.Errorf("%w: %q", ErrInvalidSelector, token)
	}
	if n < 0 {
		return Selector{Kind: KindOffset, N: n}, nil
	}
	return Selector{Kind: KindSlot, N: n}, nil
}

// Target is a resolved diff target: a label for the header and the content
// to diff against.
type Target struct {
	Label   string
	Content string
}

// Resolve turns a selector into concrete content for base. head supplies
// the checked-in copy and may be nil when KindHead is never used. An
// unreadable target resolves to an error and nothing else happens.
func Resolve(base string, sel Selector, cfg *config.Config, head vcs.Source) (Target, error) {
	switch sel.Kind {
	case KindSlot:
		if sel.N == 0 {
			data, err := os.ReadFile(base)
			if err != nil {
				return Target{}, fmt.Errorf("reading saved copy: %w", err)
			}
			return Target{Label: base, Content: string(data)}, nil
		}
		return readSlot(base, sel.N, cfg)

	case KindOffset:
		newest := slot.Newest(base, cfg.MaxVersion(), cfg.Suffix())
		n := newest + 1 + sel.N
		if n <= 0 {
			return Target{}, fmt.Errorf("%w: %d exist, requested %d back", ErrNotEnoughVersions, newest, -sel.N)
		}
		return readSlot(base, n, cfg)

	case KindHead:
		if head == nil {
			return Target{}, errors.New("no version-control source configured")
		}
		content, err := head.Head(base)
		if err != nil {
			return Target{}, fmt.Errorf("fetching checked-in copy: %w", err)
		}
		return Target{Label: base + "@head", Content: content}, nil

	default:
		return Target{}, fmt.Errorf("%w: close is not a diff target", ErrInvalidSelector)
	}
}

func readSlot(base string, n int, cfg *config.Config) (Target, error) {
	p := slot.Path(base, n, slot.Width(cfg.MaxVersion()), cfg.Suffix())
	data, err := os.ReadFile(p)
	if err != nil {
		return Target{}, fmt.Errorf("reading revision %d: %w", n, err)
	}
	return Target{Label: p, Content: string(data)}, nil
}
