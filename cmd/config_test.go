package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("show defaults", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config")
		env.contains(out, "backup.suffix: .clean")
		env.contains(out, "backup.max_version: 9999")
		env.contains(out, "backup.patterns: *")
		env.contains(out, "purge.cutoff: 1")
		env.contains(out, "purge.scan_floor: 9999")
		env.contains(out, "diff.resize_windows: true")
	})

	t.Run("get single value", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config", "backup.suffix")
		env.equals(out, ".clean")
	})

	t.Run("set and read back", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config", "backup.max_version", "99")
		env.contains(out, "backup.max_version = 99 (global)")

		out = env.run("config", "backup.max_version")
		env.equals(out, "99")
	})

	t.Run("local scope", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config", "--local", "backup.suffix", ".bak")
		env.contains(out, "backup.suffix = .bak (local)")

		if !env.exists(filepath.Join(".vers", "config.yaml")) {
			t.Error("local config file not created")
		}

		// Local cascades over global.
		env.run("config", "backup.suffix", ".global")
		out = env.run("config", "backup.suffix")
		env.equals(out, ".bak")
	})

	t.Run("unknown key", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.runErr("config", "backup.bogus")
		if err == nil {
			t.Fatal("config get with unknown key succeeded, want error")
		}
		env.contains(out, "backup.bogus")
	})

	t.Run("invalid value rejected", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("config", "backup.max_version", "zero")
		if err == nil {
			t.Fatal("config set with non-numeric ceiling succeeded, want error")
		}
	})
}

func TestConfig_BrokenConfigDisablesEngine(t *testing.T) {
	env := newTestEnv(t)
	if err := os.MkdirAll(env.path(".vers"), 0755); err != nil {
		t.Fatal(err)
	}
	env.write(filepath.Join(".vers", "config.yaml"), "backup:\n  patterns: \"[\"\n")

	env.write("report.txt", "content")
	out, err := env.runErr("ls", "report.txt")
	if err == nil {
		t.Fatal("ls with malformed pattern config succeeded, want engine disabled")
	}
	env.contains(out, "versioning engine disabled")

	// config still runs so the breakage can be repaired.
	out = env.run("config", "--local", "backup.patterns", "*")
	env.contains(out, "backup.patterns = * (local)")

	out = env.run("ls", "report.txt")
	env.contains(out, "no revisions of report.txt")
}

func TestConfig_EmptySuffixDisables(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("config", "--local", "backup.suffix", "")
	env.contains(out, "backup.suffix =  (local)")

	out = env.run("config", "backup.suffix")
	env.equals(out, "")
}

func TestConfig_JSON(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("config", "-o", "json", "backup.suffix")
	env.contains(out, `"backup.suffix":".clean"`)
}
