package api

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/crmclean/pkg/kit"
	"github.com/hazyhaar/crmclean/pkg/schema"
)

// RegisterMCPTools registers the crmclean MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, svc *Service) {
	registerCleanRows(srv, svc)
	registerListSchemas(srv, svc)
}

func registerCleanRows(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("clean_rows",
		mcp.WithDescription("Normalize, filter and deduplicate CRM rows (accounts or contacts). Returns the surviving rows plus removal statistics."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Dataset kind: account or contact")),
		mcp.WithString("rows", mcp.Required(), mcp.Description("JSON array of row objects, field name to value")),
	)

	kit.RegisterMCPTool(srv, tool, cleanRowsEndpoint(svc), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		kindStr, _ := args["kind"].(string)
		kind, err := schema.ParseKind(kindStr)
		if err != nil {
			return nil, err
		}
		rowsStr, _ := args["rows"].(string)
		var rows []map[string]string
		if err := json.Unmarshal([]byte(rowsStr), &rows); err != nil {
			return nil, fmt.Errorf("rows must be a JSON array of objects: %w", err)
		}
		return &kit.MCPDecodeResult{Request: &cleanRowsReq{Kind: kind, Rows: rows}}, nil
	})
}

func registerListSchemas(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("list_schemas",
		mcp.WithDescription("List the dataset schemas (columns, aliases, completeness fields, key strategy) crmclean cleans against."),
	)

	kit.RegisterMCPTool(srv, tool, listSchemasEndpoint(svc), func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	})
}
