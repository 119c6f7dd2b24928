// tools.go implements the MCP tool handlers.
//
// Errors return MCP tool error results rather than Go errors so the client
// receives actionable feedback it can parse and potentially retry, instead
// of a protocol-level failure.

package mcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jpl-au/vers/internal/diffview"
	"github.com/jpl-au/vers/internal/intercept"
	"github.com/jpl-au/vers/internal/log"
	"github.com/jpl-au/vers/internal/purge"
	"github.com/jpl-au/vers/internal/slot"
	"github.com/mark3labs/mcp-go/mcp"
)

// errDisabled is the guidance returned by mutating tools when the engine is
// switched off.
const errDisabled = "versioning disabled: backup.suffix is empty - set it via vers_config_set to enable"

func (h *handlers) saveFile(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil //nolint:nilerr
	}

	if !h.cfg.Enabled() {
		return mcp.NewToolResultError(errDisabled), nil
	}

	rev, err := intercept.Snapshot(path, h.cfg)
	if err == nil {
		err = os.WriteFile(path, []byte(content), 0644)
	}

	log.Event("mcp:vers_save", "save").Path(path).ResultSlot(rev.Slot).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := map[string]any{"path": path}
	if rev.Slot > 0 {
		out["revision"] = rev
	}
	return jsonResult(out)
}

func (h *handlers) listRevisions(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	infos := slot.List(path, h.cfg.MaxVersion(), h.cfg.Suffix())
	log.Event("mcp:vers_list", "list").Path(path).Detail("count", len(infos)).Write(nil)
	return jsonResult(map[string]any{"path": path, "revisions": infos})
}

func (h *handlers) purgeRevisions(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	opts := purge.Options{
		Cutoff: getInt(req, "cutoff", h.cfg.Cutoff()),
		All:    getBool(req, "all", false),
		Path:   path,
	}
	if opts.Cutoff < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid cutoff %d: must be non-negative", opts.Cutoff)), nil
	}

	res, err := purge.Run(io.Discard, h.cfg, opts)

	log.Event("mcp:vers_purge", "purge").
		Path(path).
		Detail("cutoff", opts.Cutoff).
		Detail("all", opts.All).
		Detail("purged", res.Purged).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func (h *handlers) openDiff(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	sel, err := diffview.ParseSelector(getString(req, "selector", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if sel.Kind == diffview.KindClose {
		return h.closeDiff(context.Background(), req)
	}

	tgt, err := diffview.Resolve(path, sel, h.cfg, h.head)
	if err != nil {
		log.Event("mcp:vers_diff", "diff").Path(path).Slot(sel.N).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	current, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading %s: %v", path, err)), nil
	}

	r := diffview.Compute(tgt.Content, string(current), tgt.Label, path)
	h.session.Open(path, r, nil)

	log.Event("mcp:vers_diff", "diff").Path(path).Slot(sel.N).Write(nil)
	return jsonResult(map[string]string{
		"old":  r.Old,
		"new":  r.New,
		"diff": r.Format(false),
	})
}

func (h *handlers) closeDiff(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	parent, _ := h.session.Active()
	if err := h.session.Close(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("closed diff session for " + parent), nil
}

func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := getString(req, "key", "")
	if key == "" {
		return jsonResult(h.cfg.All())
	}

	v, err := h.cfg.Get(key)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]string{key: v})
}

func (h *handlers) configSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	if err := h.cfg.Set(key, value); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.cfg.Save(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Event("mcp:vers_config", "config").Detail("key", key).Write(nil)
	return mcp.NewToolResultText(key + " = " + strconv.Quote(value)), nil
}
