// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Daybook tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/daybook/internal/journalservice"
	"github.com/starford/daybook/internal/reminders"
)

// Server wraps the MCP server with Daybook tools.
type Server struct {
	mcp     *server.MCPServer
	svc     *journalservice.Service
	sources []reminders.Source
}

// New creates a new MCP server with all Daybook tools registered.
func New(svc *journalservice.Service, sources []reminders.Source) *Server {
	s := &Server{svc: svc, sources: sources}

	s.mcp = server.NewMCPServer(
		"Daybook",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("create_entry",
		mcp.WithDescription("Create the journal entry for a date (default today). "+
			"Unfinished tasks from the previous entry and open reminder items are "+
			"merged in automatically. If the entry already exists it is returned "+
			"unchanged."),
		mcp.WithString("date", mcp.Description("Entry date as YYYY-MM-DD (default today)")),
	), s.createEntry)

	s.mcp.AddTool(mcp.NewTool("read_entry",
		mcp.WithDescription("Read the full Markdown content of the entry for a date."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Entry date as YYYY-MM-DD")),
	), s.readEntry)

	s.mcp.AddTool(mcp.NewTool("search_entries",
		mcp.WithDescription("Full-text search through entry content and titles."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchEntries)

	s.mcp.AddTool(mcp.NewTool("list_entries",
		mcp.WithDescription("List entries newest first, optionally limited to one year or month."),
		mcp.WithString("year", mcp.Description("Optional four-digit year filter")),
		mcp.WithString("month", mcp.Description("Optional month number filter (requires year)")),
	), s.listEntries)

	s.mcp.AddTool(mcp.NewTool("get_entry_contract",
		mcp.WithDescription("Returns the canonical Daybook entry format contract. "+
			"Call this before writing entry content to ensure correct structure."),
	), s.getEntryContract)

	// Resource: entry format contract.
	s.mcp.AddResource(
		mcp.NewResource("daybook://entry-format", "Entry Format Contract",
			mcp.WithResourceDescription("Canonical Markdown entry format used by the journal."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readEntryFormatResource,
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

func parseDateArg(req mcp.CallToolRequest, required bool) (time.Time, error) {
	raw, err := req.RequireString("date")
	if err != nil {
		if required {
			return time.Time{}, err
		}
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", raw)
}

func (s *Server) createEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := parseDateArg(req, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, err := s.svc.CreateEntry(ctx, date, s.sources)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	verb := "exists"
	if entry.Created {
		verb = "created"
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s: %s\n\n%s", verb, entry.Path, entry.Content)), nil
}

func (s *Server) readEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := parseDateArg(req, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, err := s.svc.GetEntry(ctx, date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", date.Format("2006-01-02"))), nil
	}
	return mcp.NewToolResultText(entry.Content), nil
}

func (s *Server) searchEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year := 0
	month := 0
	if raw, err := req.RequireString("year"); err == nil {
		fmt.Sscanf(raw, "%d", &year)
	}
	if raw, err := req.RequireString("month"); err == nil {
		fmt.Sscanf(raw, "%d", &month)
	}

	items, _, err := s.svc.ListEntries(ctx, 100, 0, year, time.Month(month))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(items) == 0 {
		return mcp.NewToolResultText("no entries found"), nil
	}
	var lines []string
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s\t%s", it.Path, it.Title))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) getEntryContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(EntryFormatContract), nil
}

func (s *Server) readEntryFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "daybook://entry-format",
			MIMEType: "text/markdown",
			Text:     EntryFormatContract,
		},
	}, nil
}
