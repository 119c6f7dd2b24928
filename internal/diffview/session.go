// session.go tracks the single diff view a long-running process may hold
// open. One session exists at a time: opening against a different parent
// tears the old view down first, and teardown restores whatever view state
// the session changed, exactly once.

package diffview

// Session is the process-wide diff view bookkeeping. Zero value is ready.
// Single-threaded by the host's event model, like the rest of the engine.
type Session struct {
	open     bool
	parent   string
	result   Result
	teardown func()
}

// Active reports whether a diff view is open, and for which parent.
func (s *Session) Active() (string, bool) {
	return s.parent, s.open
}

// Open records a new diff view for parent. An existing view — for this
// parent or any other — is closed first so its state restoration runs
// before the replacement takes over. teardown restores everything the host
// changed for the view (window geometry, per-window options); nil is
// permitted for hosts with nothing to restore.
func (s *Session) Open(parent string, r Result, teardown func()) {
	if s.open {
		s.Close()
	}
	s.open = true
	s.parent = parent
	s.result = r
	s.teardown = teardown
}

// Result returns the diff shown by the open view.
func (s *Session) Result() (Result, bool) {
	return s.result, s.open
}

// Close tears the view down and restores host state. Closing an inactive
// session returns ErrNoSession; the teardown never runs twice.
func (s *Session) Close() error {
	if !s.open {
		return ErrNoSession
	}
	if s.teardown != nil {
		s.teardown()
	}
	*s = Session{}
	return nil
}
