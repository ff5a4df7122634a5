package api

import (
	"fmt"
	"log/slog"

	"github.com/hazyhaar/anunturi/pkg/article"
	"github.com/hazyhaar/anunturi/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer returns an MCP server exposing the announcement tools. The
// tools dispatch to the same endpoints as the HTTP API.
func NewMCPServer(svc *Service, logger *slog.Logger, version string) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}
	srv := server.NewMCPServer("anunturi", version, server.WithToolCapabilities(false))
	RegisterMCPTools(srv, svc, logger)
	return srv
}

// RegisterMCPTools registers the announcement tools on srv.
func RegisterMCPTools(srv *server.MCPServer, svc *Service, logger *slog.Logger) {
	ep := newEndpoints(svc, logger)

	kit.RegisterMCPTool(srv, mcp.NewTool("filter_articles",
		mcp.WithDescription("Filter government announcements by free text, document type and subject. Matching ignores case and Romanian diacritics."),
		mcp.WithString("query", mcp.Description("Free-text search over title, original and simplified content")),
		mcp.WithString("document_type", mcp.Description("Document type: all, hotarare, ordonanta, ordin, informare, comunicat")),
		mcp.WithString("subject", mcp.Description("Subject category (e.g. sanatate, transport) or all")),
	), ep.filter, decodeFilter)

	kit.RegisterMCPTool(srv, mcp.NewTool("get_article",
		mcp.WithDescription("Fetch one announcement with its legal terms highlighted and explained."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Article ID")),
		mcp.WithString("catalog", mcp.Description("Term catalog ID (default catalog if omitted)")),
	), ep.article, decodeArticle)

	kit.RegisterMCPTool(srv, mcp.NewTool("highlight_text",
		mcp.WithDescription("Split a text into plain and legal-term segments, with explanations for the terms."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to highlight")),
		mcp.WithString("catalog", mcp.Description("Term catalog ID (default catalog if omitted)")),
	), ep.highlight, decodeHighlight)

	kit.RegisterMCPTool(srv, mcp.NewTool("explain_term",
		mcp.WithDescription("Explain a legal term in plain language."),
		mcp.WithString("term", mcp.Required(), mcp.Description("The legal term, e.g. ordonanță de urgență")),
		mcp.WithString("catalog", mcp.Description("Term catalog ID (default catalog if omitted)")),
	), ep.explain, decodeExplain)

	kit.RegisterMCPTool(srv, mcp.NewTool("list_catalogs",
		mcp.WithDescription("List the loaded legal-term catalogs with metadata."),
	), ep.catalogs, decodeNone)
}

func decodeFilter(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	args := req.GetArguments()
	return &kit.MCPDecodeResult{Request: &filterReq{Criteria: article.Criteria{
		Query:        argString(args, "query"),
		DocumentType: argString(args, "document_type"),
		Subject:      argString(args, "subject"),
	}}}, nil
}

func decodeArticle(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	return &kit.MCPDecodeResult{Request: &articleReq{ID: id, Catalog: argString(args, "catalog")}}, nil
}

func decodeHighlight(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	args := req.GetArguments()
	text, err := requireString(args, "text")
	if err != nil {
		return nil, err
	}
	return &kit.MCPDecodeResult{Request: &highlightReq{Text: text, Catalog: argString(args, "catalog")}}, nil
}

func decodeExplain(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	args := req.GetArguments()
	term, err := requireString(args, "term")
	if err != nil {
		return nil, err
	}
	return &kit.MCPDecodeResult{Request: &explainReq{Term: term, Catalog: argString(args, "catalog")}}, nil
}

func decodeNone(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	return &kit.MCPDecodeResult{Request: nil}, nil
}

func argString(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func requireString(args map[string]any, key string) (string, error) {
	v := argString(args, key)
	if v == "" {
		return "", fmt.Errorf("missing %s", key)
	}
	return v, nil
}
