// Package log provides centralised audit logging for vers operations.
// Logs are stored in ~/.vers/log/vers-log.db and track saves, purges and
// diffs across projects.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("save:snapshot", "save").
//		Path(base).
//		ResultSlot(rev.Slot).
//		Write(err)
//
//	log.Event("purge:scan", "purge").
//		Path(base).
//		Detail("purged", res.Purged).
//		Write(err)
//
// The source parameter follows the format "{command}:{step}" for CLI
// commands or "mcp:{tool}" for MCP tools.
package log

import (
	"sync"
	"time"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "purge:scan", "mcp:vers_save"
	Action string // verb: save, purge, diff, list, config
	Path   string // base file the operation targeted
	Slot   int    // input: revision slot requested

	// ResultSlot is populated after the operation succeeds: the slot a save
	// snapshotted into, or the slot a diff actually resolved.
	ResultSlot int

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Path sets the base file this operation affects.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Slot sets the input revision slot for this operation.
func (b *Builder) Slot(n int) *Builder {
	b.entry.Slot = n
	return b
}

// ResultSlot sets the slot that resulted from the operation.
func (b *Builder) ResultSlot(n int) *Builder {
	b.entry.ResultSlot = n
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from
// err. This is the standard way to complete a log entry after an operation.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort
// logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	l, err := open(dbPath())
	if err != nil {
		return err
	}
	global = l
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// dir should be the directory whose files are being versioned.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
