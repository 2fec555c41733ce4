package answer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/serpjson/capture"
)

var testImpl = &mcp.Implementation{Name: "serpjson-test", Version: "0.1.0"}

// mcpSession creates a Service, registers MCP tools, and returns a connected
// client session that can call tools end-to-end.
func mcpSession(t *testing.T) (*Service, *mcp.ClientSession) {
	t.Helper()
	svc := testService(t)

	srv := mcp.NewServer(testImpl, nil)
	svc.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()

	go func() {
		_ = srv.Run(ctx, serverT)
	}()

	client := mcp.NewClient(testImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })

	return svc, session
}

// callTool invokes a tool and returns the JSON text from the first TextContent.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if err := result.GetError(); err != nil {
		t.Fatalf("CallTool(%s) tool error: %v", name, err)
	}
	if len(result.Content) == 0 {
		t.Fatalf("CallTool(%s): empty content", name)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent, got %T", name, result.Content[0])
	}
	return tc.Text
}

// --- serpjson_extract ---

func TestMCP_Extract(t *testing.T) {
	_, session := mcpSession(t)

	text := callTool(t, session, "serpjson_extract", map[string]any{
		"text": "Use code with caution.\njson{\"domain\":\"abm.com\",\"notes\":\"ok\"}",
	})

	var resp extractResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Accepted {
		t.Fatal("expected accepted result")
	}
	if resp.JSON != `{"domain":"abm.com","notes":"ok"}` {
		t.Errorf("JSON = %q", resp.JSON)
	}
}

func TestMCP_Extract_Rejected(t *testing.T) {
	// WHAT: Rejections come back as accepted=false, not as tool errors.
	_, session := mcpSession(t)

	text := callTool(t, session, "serpjson_extract", map[string]any{
		"text": "no structured answer here",
	})

	var resp extractResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Accepted || resp.JSON != "" {
		t.Errorf("resp = %+v, want rejected", resp)
	}
}

func TestMCP_Extract_HTMLFallback(t *testing.T) {
	_, session := mcpSession(t)

	text := callTool(t, session, "serpjson_extract", map[string]any{
		"text": "",
		"html": `<div>{"domain":"abm.com"}</div>`,
	})

	var resp extractResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.JSON != `{"domain":"abm.com"}` {
		t.Errorf("JSON = %q", resp.JSON)
	}
}

// --- serpjson_attempts / serpjson_stats ---

func TestMCP_AttemptsAndStats(t *testing.T) {
	svc, session := mcpSession(t)

	svc.ExtractText(context.Background(), `{"domain":"abm.com"}`)
	svc.ExtractText(context.Background(), "garbage")

	text := callTool(t, session, "serpjson_attempts", map[string]any{"limit": 10})
	var attempts []*capture.Attempt
	if err := json.Unmarshal([]byte(text), &attempts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("attempts = %d, want 2", len(attempts))
	}
	// Newest first.
	if attempts[0].Outcome != capture.OutcomeRejected {
		t.Errorf("first outcome = %q, want rejected", attempts[0].Outcome)
	}

	text = callTool(t, session, "serpjson_stats", nil)
	var stats capture.Stats
	if err := json.Unmarshal([]byte(text), &stats); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if stats.Total != 2 || stats.Accepted != 1 || stats.Rejected != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestMCP_Attempts_NoArguments(t *testing.T) {
	// WHAT: Omitting arguments entirely falls back to the default limit.
	_, session := mcpSession(t)

	text := callTool(t, session, "serpjson_attempts", nil)
	var attempts []*capture.Attempt
	if err := json.Unmarshal([]byte(text), &attempts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(attempts) != 0 {
		t.Errorf("attempts = %d, want 0", len(attempts))
	}
}
