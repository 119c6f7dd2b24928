package log

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	tmpDir := t.TempDir()
	origDBPath := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	defer func() { dbPathFunc = origDBPath }()

	t.Run("open and close", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)
		defer Close()

		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetProject("/test/project")

		Log(Entry{
			Source:     "save:snapshot",
			Action:     "save",
			Path:       "src/main.c",
			ResultSlot: 3,
			Success:    true,
		})

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM log").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		var source, action, path string
		var resultSlot, success int
		err = db.QueryRow("SELECT source, action, path, result_slot, success FROM log WHERE id = 1").
			Scan(&source, &action, &path, &resultSlot, &success)
		require.NoError(t, err)
		assert.Equal(t, "save:snapshot", source)
		assert.Equal(t, "save", action)
		assert.Equal(t, "src/main.c", path)
		assert.Equal(t, 3, resultSlot)
		assert.Equal(t, 1, success)
	})

	t.Run("builder derives failure from error", func(t *testing.T) {
		Close()

		err := Open()
		require.NoError(t, err)
		defer Close()

		Event("purge:scan", "purge").
			Path("src/main.c").
			Detail("cutoff", 2).
			Write(errors.New("deletion failed"))

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var success int
		var errMsg, detail string
		err = db.QueryRow("SELECT success, error, detail FROM log ORDER BY id DESC LIMIT 1").
			Scan(&success, &errMsg, &detail)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, "deletion failed", errMsg)
		assert.Contains(t, detail, `"cutoff":2`)
	})

	t.Run("log without open is a no-op", func(t *testing.T) {
		Close()
		Log(Entry{Source: "save:snapshot", Action: "save"})
	})
}
