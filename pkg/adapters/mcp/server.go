// Package mcp exposes the compiler over the Model Context Protocol, so
// agent tooling can compile and inspect flows without linking the library.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/autograph-dev/autograph"
	"github.com/autograph-dev/autograph/pkg/domain"
	"github.com/autograph-dev/autograph/pkg/flowfile"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CompileResponse is the structured output of the compile_flow tool.
type CompileResponse struct {
	Result *domain.CompilationResult `json:"result" jsonschema_description:"The full compilation result"`
}

// ValidateResponse is the structured output of the validate_flow tool.
type ValidateResponse struct {
	Valid       bool                `json:"valid" jsonschema_description:"True when no structural problems were found"`
	Diagnostics []domain.Diagnostic `json:"diagnostics" jsonschema_description:"Structural findings, if any"`
}

// DecompileResponse is the structured output of the decompile_rule tool.
type DecompileResponse struct {
	Graph domain.GraphDescription `json:"graph" jsonschema_description:"The laid-out graph description"`
}

// Server wraps the autograph Compiler and exposes it as an MCP server.
type Server struct {
	compiler  *autograph.Compiler
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(compiler *autograph.Compiler) *Server {
	s := &Server{
		compiler:  compiler,
		mcpServer: server.NewMCPServer("autograph-mcp", strings.TrimSpace(autograph.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	compileTool := mcp.NewTool("compile_flow",
		mcp.WithDescription("Compile a YAML flow document into executable automations."),
		mcp.WithString("flow", mcp.Required(), mcp.Description("The flow document (YAML)")),
		mcp.WithOutputSchema[CompileResponse](),
	)
	s.mcpServer.AddTool(compileTool, mcp.NewStructuredToolHandler(s.handleCompile))

	validateTool := mcp.NewTool("validate_flow",
		mcp.WithDescription("Run structural validation on a YAML flow document without compiling it."),
		mcp.WithString("flow", mcp.Required(), mcp.Description("The flow document (YAML)")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	decompileTool := mcp.NewTool("decompile_rule",
		mcp.WithDescription("Lay an automation rule back out as an editable flow graph."),
		mcp.WithString("rule", mcp.Required(), mcp.Description("The automation (JSON)")),
		mcp.WithOutputSchema[DecompileResponse](),
	)
	s.mcpServer.AddTool(decompileTool, mcp.NewStructuredToolHandler(s.handleDecompile))

	s.mcpServer.AddTool(mcp.NewTool("get_catalog",
		mcp.WithDescription("List the trigger, condition and action types the compiler understands."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(domain.Catalog())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleCompile(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CompileResponse, error) {
	raw, _ := args["flow"].(string)
	flow, err := flowfile.Parse([]byte(raw))
	if err != nil {
		return CompileResponse{}, fmt.Errorf("parse failed: %w", err)
	}
	return CompileResponse{Result: s.compiler.Compile(flow)}, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	raw, _ := args["flow"].(string)
	flow, err := flowfile.Parse([]byte(raw))
	if err != nil {
		return ValidateResponse{}, fmt.Errorf("parse failed: %w", err)
	}
	diags := s.compiler.Validate(flow)
	if diags == nil {
		diags = []domain.Diagnostic{}
	}
	return ValidateResponse{Valid: len(diags) == 0, Diagnostics: diags}, nil
}

func (s *Server) handleDecompile(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DecompileResponse, error) {
	raw, _ := args["rule"].(string)
	var rule domain.Automation
	if err := json.Unmarshal([]byte(raw), &rule); err != nil {
		return DecompileResponse{}, fmt.Errorf("parse failed: %w", err)
	}
	return DecompileResponse{Graph: s.compiler.Decompile(rule)}, nil
}
