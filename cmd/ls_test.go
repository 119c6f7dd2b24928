package cmd

import (
	"os"
	"strings"
	"testing"
)

func TestLs(t *testing.T) {
	t.Run("no revisions", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("report.txt", "content")

		out := env.run("ls", "report.txt")
		env.contains(out, "no revisions of report.txt")
	})

	t.Run("lists oldest first with newest marked", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("save", "report.txt", "v1")
		env.run("save", "report.txt", "v2")
		env.run("save", "report.txt", "v3")

		out := env.run("ls", "report.txt")
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 2 {
			t.Fatalf("ls printed %d lines, want 2:\n%s", len(lines), out)
		}
		env.contains(lines[0], "report.txt.0001.clean")
		env.contains(lines[1], "report.txt.0002.clean")
		if !strings.HasPrefix(lines[1], "*") {
			t.Errorf("newest revision not marked: %q", lines[1])
		}
		if strings.HasPrefix(lines[0], "*") {
			t.Errorf("oldest revision marked as newest: %q", lines[0])
		}
	})

	t.Run("stops at gap", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("save", "report.txt", "v1")
		env.run("save", "report.txt", "v2")
		env.run("save", "report.txt", "v3")
		env.run("save", "report.txt", "v4")

		if err := os.Remove(env.path("report.txt.0002.clean")); err != nil {
			t.Fatal(err)
		}

		out := env.run("ls", "report.txt")
		env.contains(out, "report.txt.0001.clean")
		env.notContains(out, "report.txt.0003.clean")
	})
}

func TestLs_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.run("save", "report.txt", "v1")
	env.run("save", "report.txt", "v2")

	out := env.run("ls", "-o", "json", "report.txt")
	env.contains(out, `"slot":1`)
	env.contains(out, `"path":"report.txt.0001.clean"`)
	env.contains(out, `"size":2`)
}
