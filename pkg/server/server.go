package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"aimodesearch/pkg/logging"
	"aimodesearch/pkg/search"
)

const (
	serverName    = "aimodesearch"
	serverVersion = "1.0.0"
)

// Searcher is the controller surface the MCP server drives.
type Searcher interface {
	Search(ctx context.Context, query, language string) search.SearchResult
	ContinueConversation(ctx context.Context, query string) search.SearchResult
	HasActiveSession() bool
	CloseSession()
}

// Server exposes the search controller as MCP tools over stdio.
type Server struct {
	controller Searcher
	logger     *logging.Logger
	mcp        *mcp.Server
}

// searchArgs are the arguments of the ai_search tool.
type searchArgs struct {
	Query    string `json:"query"`
	Language string `json:"language,omitempty"`
}

// New builds the MCP server and registers the tool surface.
func New(controller Searcher, logger *logging.Logger) *Server {
	s := &Server{
		controller: controller,
		logger:     logger,
	}

	impl := &mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}
	s.mcp = mcp.NewServer(impl, nil)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "ai_search",
		Description: "Search Google AI mode and return the AI-generated answer with reference " +
			"sources. Follow-up questions reuse the open conversation and return only the new content.",
		Annotations: &mcp.ToolAnnotations{Title: "AI Mode Search"},
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query or follow-up question",
				},
				"language": map[string]any{
					"type":        "string",
					"description": "Interface language for the search session",
					"enum":        search.Languages,
				},
			},
			"required": []string{"query"},
		},
	}, s.handleSearch)

	return s
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Infof("mcp server %s %s listening on stdio", serverName, serverVersion)
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}
	return nil
}

// handleSearch runs one search or follow-up turn.
func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, args searchArgs) (*mcp.CallToolResult, any, error) {
	if args.Query == "" {
		return textResult(formatError("query must not be empty"), true), nil, nil
	}
	if args.Language != "" && !search.IsSupportedLanguage(args.Language) {
		return textResult(formatError(fmt.Sprintf("unsupported language %q", args.Language)), true), nil, nil
	}

	var result search.SearchResult
	if s.controller.HasActiveSession() {
		s.logger.Infof("tool ai_search: follow-up %q", args.Query)
		result = s.controller.ContinueConversation(ctx, args.Query)
	} else {
		s.logger.Infof("tool ai_search: new search %q language=%s", args.Query, args.Language)
		result = s.controller.Search(ctx, args.Query, args.Language)
	}

	return textResult(FormatResult(result), !result.Success), nil, nil
}

// textResult wraps markdown text as a tool call result.
func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}
