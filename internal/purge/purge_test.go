package purge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/vers/internal/config"
	"github.com/jpl-au/vers/internal/retain"
	"github.com/jpl-au/vers/internal/slot"
)

func strp(s string) *string { return &s }

func write(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

// seed creates a base file plus contiguous revisions 1..n.
func seed(t *testing.T, dir, name string, n int) string {
	t.Helper()
	base := filepath.Join(dir, name)
	write(t, base)
	for i := 1; i <= n; i++ {
		write(t, base+slot.Format(i, 4, ".clean"))
	}
	return base
}

func TestParseCutoff(t *testing.T) {
	tests := []struct {
		token   string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"1", 1, false},
		{"42", 42, false},
		{"abc", 0, true},
		{"1x", 0, true},
		{"-1", 0, true},
		{"", 0, true},
	}
	for _, tc := range tests {
		n, err := ParseCutoff(tc.token)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidCutoff, "token %q", tc.token)
			if tc.token != "" {
				assert.Contains(t, err.Error(), tc.token, "error names the offending token")
			}
		} else {
			require.NoError(t, err, "token %q", tc.token)
			assert.Equal(t, tc.want, n)
		}
	}
}

func TestRun_SingleFile(t *testing.T) {
	dir := t.TempDir()
	base := seed(t, dir, "file.txt", 4)

	var sb strings.Builder
	res, err := Run(&sb, &config.Config{}, Options{Cutoff: 2, Path: base})
	require.NoError(t, err)
	assert.Equal(t, retain.Result{Purged: 2, Retained: 2}, res)
	assert.Contains(t, sb.String(), "2 files purged; 2 remain.")
}

func TestRun_Disabled(t *testing.T) {
	dir := t.TempDir()
	base := seed(t, dir, "file.txt", 3)

	cfg := &config.Config{Backup: config.Backup{Suffix: strp("")}}
	var sb strings.Builder
	res, err := Run(&sb, cfg, Options{Cutoff: 0, Path: base})
	require.NoError(t, err)
	assert.Zero(t, res.Purged)
	assert.Zero(t, res.Retained)
	assert.Contains(t, sb.String(), "disabled")

	// No deletions happened.
	_, err = os.Stat(base + ".0003.clean")
	assert.NoError(t, err)
}

func TestRun_AllSumsAcrossPatterns(t *testing.T) {
	dir := t.TempDir()
	a := seed(t, dir, "main.c", 3)
	b := seed(t, dir, "util.h", 2)
	seed(t, dir, "notes.md", 5) // not matched

	cfg := &config.Config{Backup: config.Backup{Patterns: strp("*.c,*.h")}}
	var sb strings.Builder
	res, err := Run(&sb, cfg, Options{Cutoff: 1, All: true, Path: a})
	require.NoError(t, err)

	// main.c: keep 1, purge 2,3. util.h: keep 1, purge 2.
	assert.Equal(t, retain.Result{Purged: 3, Retained: 2}, res)
	_, err = os.Stat(b + ".0002.clean")
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "notes.md") + slot.Format(5, 4, ".clean"))
	assert.NoError(t, err, "unmatched files untouched")
}

// Overlapping patterns must not double-count a file's retained revisions.
func TestRun_AllOverlappingPatterns(t *testing.T) {
	dir := t.TempDir()
	base := seed(t, dir, "main.c", 2)

	cfg := &config.Config{Backup: config.Backup{Patterns: strp("*.c,main.*")}}
	var sb strings.Builder
	res, err := Run(&sb, cfg, Options{Cutoff: 2, All: true, Path: base})
	require.NoError(t, err)
	assert.Equal(t, retain.Result{Purged: 0, Retained: 2}, res)
}

func TestRun_Verbose(t *testing.T) {
	dir := t.TempDir()
	base := seed(t, dir, "file.txt", 2)

	var sb strings.Builder
	_, err := Run(&sb, &config.Config{}, Options{Cutoff: 0, Verbose: true, Path: base})
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "purged "+base+".0001.clean")
	assert.Contains(t, sb.String(), "purged "+base+".0002.clean")
}

func TestExpand_SkipsRevisionFiles(t *testing.T) {
	dir := t.TempDir()
	base := seed(t, dir, "file.txt", 2)

	bases, err := Expand(dir, &config.Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{base}, bases, "revision files never become bases")
}

func TestExpand_Dedup(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "main.c"))
	write(t, filepath.Join(dir, "util.c"))

	cfg := &config.Config{Backup: config.Backup{Patterns: strp("*.c,main.c,*")}}
	bases, err := Expand(dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "main.c"),
		filepath.Join(dir, "util.c"),
	}, bases)
}

func TestIsRevisionName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"file.txt.0001.clean", true},
		{"file.txt", false},
		{"file.clean", false},
		{"file.12a4.clean", false},
		{"file.txt.00001.clean", false}, // five digits is not a 4-wide slot
		{"0001.clean", false},           // no dot before the digits
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, isRevisionName(tc.name, 4, ".clean"), tc.name)
	}
}
