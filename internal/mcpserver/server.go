// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes FieldTuner tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tstetson/fieldtuner/internal/engine"
	"github.com/tstetson/fieldtuner/internal/schema"
)

// Server wraps the MCP server with FieldTuner tools.
type Server struct {
	mcp *server.MCPServer
	svc *engine.Service
}

// New creates a new MCP server with all FieldTuner tools registered.
func New(svc *engine.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"FieldTuner",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_settings",
		mcp.WithDescription("List the documented settings catalog: key, kind, range, "+
			"allowed values, and category. Read this before proposing edits."),
		mcp.WithString("category", mcp.Description("Optional category filter (e.g. Graphics)")),
	), s.listSettings)

	s.mcp.AddTool(mcp.NewTool("get_setting",
		mcp.WithDescription("Look up one setting by canonical key or alias "+
			"(e.g. \"fov\" resolves to GstRender.FieldOfViewVertical)."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Canonical key or alias")),
	), s.getSetting)

	s.mcp.AddTool(mcp.NewTool("get_profile",
		mcp.WithDescription("Read the current profile: every recognized setting with its "+
			"value and validation findings, plus the unrecognized keys."),
	), s.getProfile)

	s.mcp.AddTool(mcp.NewTool("preview_changes",
		mcp.WithDescription("Validate proposed edits and compute the change set a commit "+
			"would apply. Nothing is written. Edits are a JSON object of key to raw value."),
		mcp.WithString("changes", mcp.Required(), mcp.Description(`JSON object, e.g. {"GstRender.MotionBlurEnable":"0"}`)),
	), s.previewChanges)

	s.mcp.AddTool(mcp.NewTool("commit_changes",
		mcp.WithDescription("Validate and atomically apply edits to the profile. A verified "+
			"backup is taken first; hard-range violations reject the whole batch. "+
			"Preview first via preview_changes."),
		mcp.WithString("changes", mcp.Required(), mcp.Description(`JSON object of key to raw value`)),
		mcp.WithString("description", mcp.Description("Short label for the pre-commit backup")),
	), s.commitChanges)

	s.mcp.AddTool(mcp.NewTool("apply_preset",
		mcp.WithDescription("Apply a named preset to the profile. Values already in effect "+
			"are skipped, so re-applying is harmless."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Preset id (e.g. esports, balanced, quality)")),
	), s.applyPreset)

	s.mcp.AddTool(mcp.NewTool("list_backups",
		mcp.WithDescription("List profile backups, newest first."),
	), s.listBackups)

	s.mcp.AddTool(mcp.NewTool("restore_backup",
		mcp.WithDescription("Replace the profile with a backup's payload. A safety backup "+
			"of the current state is taken first."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Numeric backup id from list_backups")),
	), s.restoreBackup)

	// Resource: settings catalog contract.
	s.mcp.AddResource(
		mcp.NewResource("fieldtuner://settings-catalog", "Settings Catalog",
			mcp.WithResourceDescription("Documented profile settings with kinds, ranges and allowed values."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCatalogResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := ""
	if c, err := req.RequireString("category"); err == nil {
		category = c
	}

	var out []*schema.Descriptor
	for _, d := range s.svc.Catalog() {
		if category != "" && d.Category != category {
			continue
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no settings in category: %s", category)), nil
	}
	return jsonResult(settingSummaries(out))
}

func (s *Server) getSetting(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, ok := schema.Resolve(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no setting named %q", name)), nil
	}
	summaries := settingSummaries([]*schema.Descriptor{d})
	return jsonResult(summaries[0])
}

func (s *Server) getProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	detail, err := s.svc.Profile(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(detail)
}

func (s *Server) previewChanges(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	edits, errResult := editsArg(req)
	if errResult != nil {
		return errResult, nil
	}
	res, err := s.svc.Preview(ctx, edits)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func (s *Server) commitChanges(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	edits, errResult := editsArg(req)
	if errResult != nil {
		return errResult, nil
	}
	description := ""
	if d, err := req.RequireString("description"); err == nil {
		description = d
	}

	res, report, err := s.svc.Commit(ctx, edits, description)
	if err != nil {
		if report.HasErrors() {
			out, _ := json.MarshalIndent(report.Errors(), "", "  ")
			return mcp.NewToolResultError(fmt.Sprintf("rejected:\n%s", out)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"state":   res.State,
		"changes": res.Applied.Len(),
		"backup":  res.Backup,
		"report":  report,
	})
}

func (s *Server) applyPreset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, _, err := s.svc.ApplyPreset(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"state":   res.State,
		"changes": res.Applied.Len(),
		"backup":  res.Backup,
	})
}

func (s *Server) listBackups(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recs, err := s.svc.Backups(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(recs) == 0 {
		return mcp.NewToolResultText("no backups"), nil
	}
	return jsonResult(recs)
}

func (s *Server) restoreBackup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid backup id: %s", raw)), nil
	}
	rec, err := s.svc.RestoreBackup(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("restored backup %d (%s)", rec.ID, rec.FileName)), nil
}

func (s *Server) readCatalogResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "fieldtuner://settings-catalog",
			MIMEType: "text/markdown",
			Text:     CatalogContract(),
		},
	}, nil
}

// settingSummary is the compact tool-facing view of a descriptor.
type settingSummary struct {
	Key      string   `json:"key"`
	Kind     string   `json:"kind"`
	Label    string   `json:"label,omitempty"`
	Category string   `json:"category,omitempty"`
	Default  string   `json:"default,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Hard     bool     `json:"hard_range,omitempty"`
	Members  []string `json:"members,omitempty"`
}

func settingSummaries(descriptors []*schema.Descriptor) []settingSummary {
	out := make([]settingSummary, len(descriptors))
	for i, d := range descriptors {
		s := settingSummary{
			Key:      d.Key,
			Kind:     d.Kind.String(),
			Label:    d.Label,
			Category: d.Category,
			Default:  d.Default,
			Hard:     d.HardRange,
			Members:  d.MemberValues(),
		}
		if d.HasRange() {
			min, max := d.Min, d.Max
			s.Min, s.Max = &min, &max
		}
		out[i] = s
	}
	return out
}

func editsArg(req mcp.CallToolRequest) (map[string]string, *mcp.CallToolResult) {
	raw, err := req.RequireString("changes")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	var edits map[string]string
	if err := json.Unmarshal([]byte(raw), &edits); err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("changes must be a JSON object of key to value: %v", err))
	}
	if len(edits) == 0 {
		return nil, mcp.NewToolResultError("changes are required")
	}
	return edits, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.TrimSpace(string(out))), nil
}
