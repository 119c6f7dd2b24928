// Package mcp implements the Model Context Protocol server, exposing vers
// operations to editors and LLM agents. This is the host-integration
// surface: a long-running process where the single diff session has a real
// lifecycle, unlike one-shot CLI invocations.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/vers/internal/config"
	"github.com/jpl-au/vers/internal/diffview"
	"github.com/jpl-au/vers/internal/vcs"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio. Uses stdio transport for
// compatibility with editor plugins and MCP-capable agents.
//
// Configuration is loaded once at startup, matching the CLI's load-once
// model; a malformed config refuses to serve rather than half-operating.
func Serve() error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}

	h := &handlers{
		cfg:  cfg,
		head: vcs.Git{},
	}

	s := server.NewMCPServer(
		"vers",
		Version,
		server.WithToolCapabilities(true),
	)

	registerTools(s, h)

	slog.Info("vers MCP server ready",
		"version", Version,
		"transport", "stdio",
		"enabled", cfg.Enabled())

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers. The session field holds the one
// diff view this process may keep open.
type handlers struct {
	cfg     *config.Config
	head    vcs.Source
	session diffview.Session
}

// registerTools exposes vers operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("vers_save",
			mcp.WithDescription("Save new content to a file, moving the previous content into the next numbered revision slot"),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
			mcp.WithString("content", mcp.Required(), mcp.Description("New file content")),
		),
		h.saveFile,
	)

	s.AddTool(
		mcp.NewTool("vers_list",
			mcp.WithDescription("List the numbered revisions of a file"),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
		),
		h.listRevisions,
	)

	s.AddTool(
		mcp.NewTool("vers_purge",
			mcp.WithDescription("Delete revisions above a cutoff. Slots <= cutoff are kept; cutoff 0 deletes all"),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
			mcp.WithNumber("cutoff", mcp.Description("Retention cutoff (default: configured purge.cutoff)")),
			mcp.WithBoolean("all", mcp.Description("Purge every file in the directory matching the configured patterns")),
		),
		h.purgeRevisions,
	)

	s.AddTool(
		mcp.NewTool("vers_diff",
			mcp.WithDescription("Open a diff of a file's current content against a revision. Selector: 0 = saved copy, N = slot N, -N = Nth from newest, 'head' = checked-in copy"),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
			mcp.WithString("selector", mcp.Description("Version selector (default: 0)")),
		),
		h.openDiff,
	)

	s.AddTool(
		mcp.NewTool("vers_diff_close",
			mcp.WithDescription("Close the active diff session"),
		),
		h.closeDiff,
	)

	s.AddTool(
		mcp.NewTool("vers_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (e.g. backup.suffix, purge.cutoff) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("vers_config_set",
			mcp.WithDescription("Set a configuration value"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)
}
