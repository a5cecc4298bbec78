// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Ansuz agenda tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/aigen"
	"github.com/starford/ansuz/internal/store"
	"github.com/starford/ansuz/internal/templates"
)

// Server wraps the MCP server with Ansuz tools.
type Server struct {
	mcp     *server.MCPServer
	gen     *aigen.Service
	store   store.AgendaStore
	catalog *templates.Catalog
}

// New creates a new MCP server with all Ansuz tools registered.
func New(gen *aigen.Service, st store.AgendaStore, catalog *templates.Catalog) *Server {
	s := &Server{gen: gen, store: st, catalog: catalog}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("generate_agenda",
		mcp.WithDescription("Generate a structured meeting agenda from a meeting title. "+
			"The title must be specific (at least two words containing letters)."),
		mcp.WithString("meetingTitle", mcp.Required(), mcp.Description("Specific meeting title, e.g. \"Sprint Planning\"")),
	), s.generateAgenda)

	s.mcp.AddTool(mcp.NewTool("save_agenda",
		mcp.WithDescription("Save an agenda and get back its record with a share token. "+
			"The agenda argument MUST follow the canonical agenda format (JSON with "+
			"opening, topics, wrapUp). Read the contract first via the "+
			"get_agenda_contract tool or the ansuz://agenda-format resource."),
		mcp.WithString("meeting_title", mcp.Required(), mcp.Description("Title the agenda is saved under")),
		mcp.WithString("agenda", mcp.Required(), mcp.Description("Agenda JSON following the Ansuz agenda format contract")),
		mcp.WithString("user_id", mcp.Description("Optional owner id for listing")),
		mcp.WithBoolean("is_public", mcp.Description("Whether the share token resolves for others (default true)")),
	), s.saveAgenda)

	s.mcp.AddTool(mcp.NewTool("get_shared_agenda",
		mcp.WithDescription("Fetch a publicly shared agenda by its share token. Counts as a view."),
		mcp.WithString("token", mcp.Required(), mcp.Description("Share token from a saved agenda")),
	), s.getSharedAgenda)

	s.mcp.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List the built-in agenda templates for common meeting kinds."),
	), s.listTemplates)

	s.mcp.AddTool(mcp.NewTool("get_agenda_contract",
		mcp.WithDescription("Returns the canonical Ansuz agenda format contract. "+
			"Call this before saving agendas to ensure correct structure."),
	), s.getAgendaContract)

	// Resource: agenda format contract.
	s.mcp.AddResource(
		mcp.NewResource("ansuz://agenda-format", "Agenda Format Contract",
			mcp.WithResourceDescription("Canonical agenda JSON shape that all agendas must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readAgendaFormatResource,
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

func (s *Server) generateAgenda(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("meetingTitle")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	agenda, err := s.gen.Generate(ctx, title)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(agenda, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) saveAgenda(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("meeting_title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	agendaText, err := req.RequireString("agenda")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	agenda, err := aigen.ParseAgenda(agendaText)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("agenda does not match the contract: %v", err)), nil
	}

	isPublic := req.GetBool("is_public", true)
	rec, err := s.store.CreateAgenda(store.CreateParams{
		MeetingTitle: title,
		Opening:      agenda.Opening,
		Topics:       agenda.Topics,
		WrapUp:       agenda.WrapUp,
		UserID:       req.GetString("user_id", ""),
		IsPublic:     &isPublic,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(rec, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getSharedAgenda(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	token, err := req.RequireString("token")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.store.GetAgendaByShareToken(token)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if rec == nil {
		return mcp.NewToolResultError("agenda not found or not public"), nil
	}
	out, _ := json.MarshalIndent(rec, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.catalog.Items(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getAgendaContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(AgendaFormatContract), nil
}

func (s *Server) readAgendaFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://agenda-format",
			MIMEType: "text/markdown",
			Text:     AgendaFormatContract,
		},
	}, nil
}
