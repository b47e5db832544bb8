// Package mcpserver exposes the builder as a single MCP tool,
// fetch_context, for a downstream model host to call directly.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
	mcpgoserver "github.com/mark3labs/mcp-go/server"

	"github.com/Abdulmumin1/lmfetch/internal/pipeline"
)

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

// fetchContextArgs is the single source of truth for fetch_context's
// parameter descriptions. jsonschema reflection over this struct feeds
// the mcp.Tool builder below, so a field's description only needs to be
// written once.
type fetchContextArgs struct {
	Path          string `json:"path" jsonschema:"required" jsonschema_description:"Root directory to search"`
	Query         string `json:"query" jsonschema:"required" jsonschema_description:"Natural-language or keyword query"`
	Budget        string `json:"budget" jsonschema_description:"Token budget like '8k' or '50000', default 8k"`
	Fast          bool   `json:"fast,omitempty" jsonschema_description:"Keyword-only ranking when true (default); hybrid ranking when false"`
	Format        string `json:"format,omitempty" jsonschema_description:"Context rendering: 'markdown' (default) or 'xml'"`
	FollowImports bool   `json:"follow_imports,omitempty" jsonschema_description:"Spend leftover budget on files reachable through the import graph, default true"`
}

func fieldDescription(schema *jsonschema.Schema, name string) string {
	if prop, ok := schema.Properties.Get(name); ok {
		return prop.Description
	}
	return ""
}

func fetchContextTool() mcp.Tool {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(&fetchContextArgs{})

	return mcp.NewTool("fetch_context",
		mcp.WithDescription("Assemble a relevance-ranked, token-budgeted excerpt of a source-code corpus for a given query."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description(fieldDescription(schema, "path")),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description(fieldDescription(schema, "query")),
		),
		mcp.WithString("budget",
			mcp.Description(fieldDescription(schema, "budget")),
		),
		mcp.WithBoolean("fast",
			mcp.Description(fieldDescription(schema, "fast")),
		),
		mcp.WithString("format",
			mcp.Description(fieldDescription(schema, "format")),
		),
		mcp.WithBoolean("follow_imports",
			mcp.Description(fieldDescription(schema, "follow_imports")),
		),
	)
}

// New builds an MCP server exposing fetch_context, backed by p.
func New(p *pipeline.Pipeline) *mcpgoserver.MCPServer {
	s := mcpgoserver.NewMCPServer("lmfetch", "1.0.0", mcpgoserver.WithToolCapabilities(false))
	s.AddTool(fetchContextTool(), makeFetchContextHandler(p))
	return s
}

// Serve runs the MCP server over stdio, the transport the teacher's
// own mcp.go used.
func Serve(p *pipeline.Pipeline) error {
	return mcpgoserver.ServeStdio(New(p))
}

func makeFetchContextHandler(p *pipeline.Pipeline) mcpgoserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		query := req.GetString("query", "")
		if path == "" || query == "" {
			return mcp.NewToolResultError("path and query are required"), nil
		}
		budget := req.GetString("budget", "8k")
		fast := req.GetBool("fast", true)
		format := req.GetString("format", "markdown")
		followImports := req.GetBool("follow_imports", true)

		runID := uuid.NewString()
		result, err := p.Build(ctx, pipeline.Options{
			Path:          path,
			Query:         query,
			Budget:        budget,
			Fast:          fast,
			Format:        format,
			FollowImports: followImports,
			ImportDepth:   1,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("fetch_context[%s] failed: %v", runID, err)), nil
		}
		if result.Context == "" {
			return mcp.NewToolResultText(fmt.Sprintf("No relevant context found for query %q.", query)), nil
		}
		return mcp.NewToolResultText(result.Context), nil
	}
}
