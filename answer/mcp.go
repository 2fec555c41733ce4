package answer

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/serpjson/kit"
	"github.com/hazyhaar/serpjson/locator"
)

// RegisterMCP registers the service's tools on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerExtractTool(srv)
	s.registerAttemptsTool(srv)
	s.registerStatsTool(srv)
}

// inputSchema builds a JSON Schema object with type "object".
func inputSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// --- extract ---

type extractToolRequest struct {
	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
}

func (s *Service) registerExtractTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "serpjson_extract",
		Description: "Recover a clean JSON document from raw AI answer text. Returns the accepted document or an empty string.",
		InputSchema: inputSchema(map[string]any{
			"text": map[string]any{"type": "string", "description": "Raw answer text (may contain fences, boilerplate, markup remnants)"},
			"html": map[string]any{"type": "string", "description": "Optional answer HTML, used when text is empty"},
		}, []string{"text"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*extractToolRequest)
		out := s.ExtractResponse(ctx, locator.Response{Text: r.Text, HTML: r.HTML})
		return extractResponse{JSON: out, Accepted: out != ""}, nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r extractToolRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- attempts ---

func (s *Service) registerAttemptsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "serpjson_attempts",
		Description: "List recent extraction attempts with outcome and rejection reason.",
		InputSchema: inputSchema(map[string]any{
			"limit": map[string]any{"type": "integer", "description": "Max attempts (default 20)"},
		}, nil),
	}

	type attemptsReq struct {
		Limit int `json:"limit"`
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*attemptsReq)
		return s.Recent(ctx, r.Limit)
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r attemptsReq
		json.Unmarshal(req.Params.Arguments, &r)
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- stats ---

func (s *Service) registerStatsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "serpjson_stats",
		Description: "Get extraction statistics: total, accepted, and rejected attempt counts.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(ctx context.Context, _ any) (any, error) {
		return s.Counts(ctx)
	}

	decode := func(_ *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
