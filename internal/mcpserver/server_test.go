package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/daybook/internal/journal"
	"github.com/starford/daybook/internal/journalservice"
	"github.com/starford/daybook/internal/storage"
	"github.com/starford/daybook/internal/testutil"
)

func testServer(t *testing.T) (*Server, storage.Provider) {
	t.Helper()

	_, store := testutil.TestJournal(t)
	db := testutil.TestDB(t)

	synth := journal.NewSynthesizer(store, nil, journal.SynthConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := journalservice.NewService(store, db, synth)
	return New(svc, nil), store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so the handler
	// functions are called directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "create_entry":
		result, err = srv.createEntry(ctx, req)
	case "read_entry":
		result, err = srv.readEntry(ctx, req)
	case "search_entries":
		result, err = srv.searchEntries(ctx, req)
	case "list_entries":
		result, err = srv.listEntries(ctx, req)
	case "get_entry_contract":
		result, err = srv.getEntryContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateAndReadEntry(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "create_entry", map[string]interface{}{"date": "2025-12-29"})
	text := resultText(r)
	if !strings.HasPrefix(text, "created: 2025/12/29.md") {
		t.Errorf("create result = %q", text)
	}

	r = callTool(t, srv, "read_entry", map[string]interface{}{"date": "2025-12-29"})
	text = resultText(r)
	if !strings.Contains(text, "# 2025-12-29 - Monday") {
		t.Errorf("read result = %q", text)
	}
}

func TestCreateEntry_ExistingReported(t *testing.T) {
	srv, _ := testServer(t)

	_ = callTool(t, srv, "create_entry", map[string]interface{}{"date": "2025-12-29"})
	r := callTool(t, srv, "create_entry", map[string]interface{}{"date": "2025-12-29"})
	if !strings.HasPrefix(resultText(r), "exists: 2025/12/29.md") {
		t.Errorf("second create result = %q", resultText(r))
	}
}

func TestReadEntryMissing(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "read_entry", map[string]interface{}{"date": "2025-01-01"})
	if !r.IsError {
		t.Error("expected error for missing entry")
	}
}

func TestSearchEntries(t *testing.T) {
	srv, _ := testServer(t)
	_ = callTool(t, srv, "create_entry", map[string]interface{}{"date": "2025-12-29"})

	r := callTool(t, srv, "search_entries", map[string]interface{}{"query": "Gratitude"})
	if r.IsError {
		t.Fatalf("search error: %q", resultText(r))
	}
	if !strings.Contains(resultText(r), "2025/12/29.md") {
		t.Errorf("search result = %q", resultText(r))
	}
}

func TestListEntries(t *testing.T) {
	srv, _ := testServer(t)
	_ = callTool(t, srv, "create_entry", map[string]interface{}{"date": "2025-12-28"})
	_ = callTool(t, srv, "create_entry", map[string]interface{}{"date": "2025-12-29"})

	r := callTool(t, srv, "list_entries", map[string]interface{}{"year": "2025"})
	text := resultText(r)
	if !strings.Contains(text, "2025/12/29.md") || !strings.Contains(text, "2025/12/28.md") {
		t.Errorf("list result = %q", text)
	}
}

func TestGetEntryContract(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_entry_contract", map[string]interface{}{})
	if !strings.Contains(resultText(r), "Entry Format Contract") {
		t.Error("contract text missing")
	}
}
